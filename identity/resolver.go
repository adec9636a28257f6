package identity

import (
	"context"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"
	"github.com/pkg/errors"

	"github.com/rking788/skyblock-helper/models"
	"github.com/rking788/skyblock-helper/mojang"
)

// Lookup is the identity service used to resolve names and unique ids. Both
// methods return models.ErrPlayerNotFound when the player does not exist.
type Lookup interface {
	LookupIDByName(ctx context.Context, name string) (*mojang.Player, error)
	LookupNameByID(ctx context.Context, id string) (*mojang.Player, error)
}

// LinkedAccounts gives read access to the in-game names callers have linked.
type LinkedAccounts interface {
	LinkedName(ctx context.Context, callerID string) (string, bool, error)
}

// strategy produces a working name for a caller, ok is false when it has nothing
// to offer and the next strategy should be tried.
type strategy struct {
	source  models.IdentitySource
	working func(ctx context.Context, caller models.CallerIdentity, rawInput string) (name string, ok bool, err error)
}

// Resolver turns loosely specified user input into a ResolvedIdentity.
type Resolver struct {
	lookup     Lookup
	links      LinkedAccounts
	strategies []strategy
}

// NewResolver creates a Resolver trying explicit input, then the caller's linked
// account, then their nickname.
func NewResolver(lookup Lookup, links LinkedAccounts) *Resolver {
	r := &Resolver{lookup: lookup, links: links}
	r.strategies = []strategy{
		{source: models.SourceExplicit, working: explicitInput},
		{source: models.SourceLinkedAccount, working: r.linkedAccount},
		{source: models.SourceNickname, working: nickname},
	}

	return r
}

func explicitInput(_ context.Context, _ models.CallerIdentity, rawInput string) (string, bool, error) {
	return rawInput, rawInput != "", nil
}

func (r *Resolver) linkedAccount(ctx context.Context, caller models.CallerIdentity, _ string) (string, bool, error) {
	if r.links == nil || caller.ID == "" {
		return "", false, nil
	}

	return r.links.LinkedName(ctx, caller.ID)
}

func nickname(_ context.Context, caller models.CallerIdentity, _ string) (string, bool, error) {
	return caller.Nickname, true, nil
}

// Resolve finds the display name and unique id for rawInput, or for the caller
// themselves when rawInput is empty.
func (r *Resolver) Resolve(ctx context.Context, caller models.CallerIdentity, rawInput string) (*models.ResolvedIdentity, error) {

	working, source, err := r.workingName(ctx, caller, rawInput)
	if err != nil {
		return nil, err
	}

	name := Sanitize(StripTag(working))
	glg.Debugf("Resolving %q as %q from %s", working, name, source)

	if IsName(name) {
		return r.byName(ctx, name, source)
	}

	return r.byID(ctx, name, source)
}

func (r *Resolver) workingName(ctx context.Context, caller models.CallerIdentity, rawInput string) (string, models.IdentitySource, error) {

	for _, s := range r.strategies {
		name, ok, err := s.working(ctx, caller, rawInput)
		if err != nil {
			raven.CaptureError(err, map[string]string{"strategy": s.source.String()})
			glg.Errorf("Failed reading working name from %s: %s", s.source, err.Error())
			return "", s.source, &Error{Kind: Unavailable, Source: s.source, Err: err}
		}
		if ok {
			return name, s.source, nil
		}
	}

	// The nickname strategy always answers, this is only reachable with an empty list.
	return "", models.SourceNickname, nil
}

func (r *Resolver) byName(ctx context.Context, name string, source models.IdentitySource) (*models.ResolvedIdentity, error) {

	player, err := r.lookup.LookupIDByName(ctx, name)
	if err != nil {
		return nil, lookupError(err, name, source, false)
	}

	displayName := player.Name
	if displayName == "" {
		displayName = name
	}

	return &models.ResolvedIdentity{
		DisplayName: displayName,
		UniqueID:    player.ID,
		Source:      source,
	}, nil
}

func (r *Resolver) byID(ctx context.Context, id string, source models.IdentitySource) (*models.ResolvedIdentity, error) {

	player, err := r.lookup.LookupNameByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, id, source, true)
	}

	uniqueID := player.ID
	if uniqueID == "" {
		uniqueID = id
	}

	return &models.ResolvedIdentity{
		DisplayName: player.Name,
		UniqueID:    uniqueID,
		Source:      source,
	}, nil
}

func lookupError(err error, input string, source models.IdentitySource, byID bool) error {

	if errors.Is(err, models.ErrPlayerNotFound) {
		glg.Infof("No player found for %q (%s)", input, source)
		return &Error{Kind: NotFound, Source: source, Input: input, ByID: byID, Err: err}
	}

	raven.CaptureError(err, map[string]string{"upstream": "mojang"})
	glg.Errorf("Identity lookup for %q failed: %s", input, err.Error())

	return &Error{Kind: Unavailable, Source: source, Input: input, ByID: byID, Err: err}
}
