package storage

import "context"

// LinkedAccountStore persists the in-game name each caller has linked. Every
// implementation is safe for concurrent use.
type LinkedAccountStore interface {
	LinkedName(ctx context.Context, callerID string) (string, bool, error)
	SaveLinkedName(ctx context.Context, callerID, name string) error
	DeleteLinkedName(ctx context.Context, callerID string) error
}
