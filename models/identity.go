package models

import "fmt"

// CallerIdentity describes the user that issued a command on the chat or assistant
// platform. Nickname is the display name they use on the current channel, it may be
// empty when the platform does not expose one.
type CallerIdentity struct {
	ID       string
	Nickname string
}

// IdentitySource records which resolution strategy produced the working name for
// a ResolvedIdentity.
type IdentitySource int

// Resolution strategies in the order they are attempted.
const (
	SourceExplicit IdentitySource = iota
	SourceLinkedAccount
	SourceNickname
)

func (s IdentitySource) String() string {
	switch s {
	case SourceExplicit:
		return "explicit"
	case SourceLinkedAccount:
		return "linked-account"
	case SourceNickname:
		return "nickname"
	default:
		return fmt.Sprintf("IdentitySource(%d)", int(s))
	}
}

// ResolvedIdentity is the canonical name and unique id of a player. UniqueID is
// always the value returned by, or accepted by, the identity service.
type ResolvedIdentity struct {
	DisplayName string
	UniqueID    string
	Source      IdentitySource
}

// SourcedFromNickname is true when the caller supplied no name and had no linked
// account, so the name was guessed from their nickname.
func (r *ResolvedIdentity) SourcedFromNickname() bool {
	return r.Source == SourceNickname
}

func (r *ResolvedIdentity) String() string {
	return fmt.Sprintf("ResolvedIdentity{Name: %s, UUID: %s, Source: %s}",
		r.DisplayName, r.UniqueID, r.Source)
}
