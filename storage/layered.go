package storage

import (
	"context"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"
)

// LayeredLinks reads through a fast cache in front of the durable store. Writes go
// to the durable store first, the cache is updated afterwards.
type LayeredLinks struct {
	Cache   LinkedAccountStore
	Durable LinkedAccountStore
}

// LinkedName checks the cache and falls back to the durable store, populating the
// cache on a hit. Cache failures are logged and never fail the read.
func (l *LayeredLinks) LinkedName(ctx context.Context, callerID string) (string, bool, error) {

	name, ok, err := l.Cache.LinkedName(ctx, callerID)
	if err != nil {
		raven.CaptureError(err, map[string]string{"store": "cache"})
		glg.Warnf("Linked account cache read failed for %s: %s", callerID, err.Error())
	} else if ok {
		return name, true, nil
	}

	name, ok, err = l.Durable.LinkedName(ctx, callerID)
	if err != nil || !ok {
		return name, ok, err
	}

	if err = l.Cache.SaveLinkedName(ctx, callerID, name); err != nil {
		glg.Warnf("Failed to populate linked account cache for %s: %s", callerID, err.Error())
	}

	return name, true, nil
}

// SaveLinkedName writes the link to both layers.
func (l *LayeredLinks) SaveLinkedName(ctx context.Context, callerID, name string) error {

	if err := l.Durable.SaveLinkedName(ctx, callerID, name); err != nil {
		return err
	}

	if err := l.Cache.SaveLinkedName(ctx, callerID, name); err != nil {
		// A stale cached name would shadow the new link, drop it instead.
		glg.Warnf("Failed to cache linked account for %s: %s", callerID, err.Error())
		l.Cache.DeleteLinkedName(ctx, callerID)
	}

	return nil
}

// DeleteLinkedName removes the link from both layers.
func (l *LayeredLinks) DeleteLinkedName(ctx context.Context, callerID string) error {

	if err := l.Durable.DeleteLinkedName(ctx, callerID); err != nil {
		return err
	}

	return l.Cache.DeleteLinkedName(ctx, callerID)
}
