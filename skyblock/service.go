package skyblock

import (
	"context"
	"strings"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"
	"github.com/pkg/errors"

	"github.com/rking788/skyblock-helper/models"
)

// IdentityResolver turns caller input into a player identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, caller models.CallerIdentity, rawInput string) (*models.ResolvedIdentity, error)
}

// ProfileFetcher loads the SkyBlock profiles for a unique id. found is false when
// the player never joined SkyBlock.
type ProfileFetcher interface {
	FetchProfiles(ctx context.Context, uniqueID string) (profiles models.ProfileSet, found bool, err error)
}

// LinkWriter stores and removes caller to in-game name links.
type LinkWriter interface {
	SaveLinkedName(ctx context.Context, callerID, name string) error
	DeleteLinkedName(ctx context.Context, callerID string) error
}

// Service runs the lookup pipeline shared by every profile based command.
type Service struct {
	Identities IdentityResolver
	Profiles   ProfileFetcher
	Links      LinkWriter
}

// NewService creates a Service from its collaborators.
func NewService(identities IdentityResolver, profiles ProfileFetcher, links LinkWriter) *Service {
	return &Service{
		Identities: identities,
		Profiles:   profiles,
		Links:      links,
	}
}

// ProfileListing is the unselected result used by commands that look at every
// profile of a player, such as net worth.
type ProfileListing struct {
	Player      *models.ResolvedIdentity
	Profiles    models.ProfileSet
	ProfileHint string
}

// ProfileData resolves username (or the caller when empty), fetches their profiles
// and returns the selected one. profile optionally names the profile to use.
func (s *Service) ProfileData(ctx context.Context, caller models.CallerIdentity, username, profile string) (*models.NormalizedProfile, error) {

	listing, err := s.ProfileList(ctx, caller, username, profile)
	if err != nil {
		return nil, err
	}

	record, err := Select(listing.Profiles, listing.Player.UniqueID, listing.ProfileHint)
	if err != nil {
		glg.Infof("No profile selected for %s (hint %q): %s", listing.Player.DisplayName, listing.ProfileHint, err.Error())
		return nil, err
	}

	// A profile picked by name may belong to somebody else.
	if !record.HasMember(listing.Player.UniqueID) {
		glg.Infof("%s is not a member of profile %s", listing.Player.DisplayName, record.ProfileID)
		return nil, &SelectionError{Kind: NotMember, Name: record.CuteName}
	}

	return Normalize(record, listing.Player.UniqueID, listing.Player.DisplayName), nil
}

// ProfileList resolves the player and fetches all of their profiles without
// selecting one.
func (s *Service) ProfileList(ctx context.Context, caller models.CallerIdentity, username, profile string) (*ProfileListing, error) {

	username = strings.TrimSpace(username)
	profile = strings.TrimSpace(profile)

	// "Banana" on its own means the caller's Banana profile.
	if username != "" && IsProfileName(username) {
		profile = username
		username = ""
	}

	player, err := s.Identities.Resolve(ctx, caller, username)
	if err != nil {
		return nil, err
	}

	profiles, found, err := s.Profiles.FetchProfiles(ctx, player.UniqueID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &NoProfilesError{Player: player.DisplayName}
	}

	return &ProfileListing{
		Player:      player,
		Profiles:    profiles,
		ProfileHint: profile,
	}, nil
}

// Link resolves ign and remembers it for the caller so later commands can leave
// the name out. The canonical name is stored.
func (s *Service) Link(ctx context.Context, caller models.CallerIdentity, ign string) (*models.ResolvedIdentity, error) {

	if strings.TrimSpace(ign) == "" {
		return nil, ErrMissingName
	}

	player, err := s.Identities.Resolve(ctx, caller, ign)
	if err != nil {
		return nil, err
	}

	if err = s.Links.SaveLinkedName(ctx, caller.ID, player.DisplayName); err != nil {
		raven.CaptureError(err, map[string]string{"operation": "link"})
		glg.Errorf("Failed to save linked account for %s: %s", caller.ID, err.Error())
		return nil, errors.Wrap(err, "saving linked account")
	}

	glg.Infof("Linked caller %s to %s", caller.ID, player.DisplayName)

	return player, nil
}

// Unlink forgets the caller's linked account.
func (s *Service) Unlink(ctx context.Context, caller models.CallerIdentity) error {

	if err := s.Links.DeleteLinkedName(ctx, caller.ID); err != nil {
		raven.CaptureError(err, map[string]string{"operation": "unlink"})
		glg.Errorf("Failed to delete linked account for %s: %s", caller.ID, err.Error())
		return errors.Wrap(err, "deleting linked account")
	}

	return nil
}
