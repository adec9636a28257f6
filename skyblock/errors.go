package skyblock

import (
	"fmt"

	"github.com/pkg/errors"
)

// SelectionKind classifies why no profile could be selected.
type SelectionKind int

// Selection failure kinds.
const (
	// NameNotFound means no profile matched the requested profile name.
	NameNotFound SelectionKind = iota
	// NoSelectedProfile means the player has not marked any of their profiles as current.
	NoSelectedProfile
	// NotMember means the named profile does not list the player as a member.
	NotMember
)

// SelectionError is returned by Select.
type SelectionError struct {
	Kind SelectionKind
	// Name is the requested profile name, if any.
	Name string
}

func (e *SelectionError) Error() string {
	switch e.Kind {
	case NameNotFound:
		return fmt.Sprintf("no profile named %q", e.Name)
	case NotMember:
		return fmt.Sprintf("player is not a member of profile %q", e.Name)
	}
	return "no selected profile"
}

// Title is the headline shown to the user.
func (e *SelectionError) Title() string {
	switch e.Kind {
	case NameNotFound:
		return "Error, couldn't find that profile name"
	case NotMember:
		return "Error, that player is not a member of that profile!"
	}
	return "Error, cannot find profiles for this user!"
}

// Hint is shown under the title.
func (e *SelectionError) Hint() string {
	switch e.Kind {
	case NameNotFound:
		return "Make sure you type it correctly and try again."
	case NotMember:
		return "Pick one of the player's own profiles and try again."
	}
	return "Make sure you spelled the target player's name correctly"
}

// NoProfilesError is returned when the player exists but never joined SkyBlock.
type NoProfilesError struct {
	Player string
}

func (e *NoProfilesError) Error() string {
	return fmt.Sprintf("%s has no SkyBlock profiles", e.Player)
}

// Title is the headline shown to the user.
func (e *NoProfilesError) Title() string { return "That user has never joined Skyblock before!" }

// Hint is shown under the title.
func (e *NoProfilesError) Hint() string {
	return "Make sure you typed the name correctly and try again."
}

// IsNoProfiles reports whether err means the player never created a profile.
func IsNoProfiles(err error) bool {
	var noProfiles *NoProfilesError
	return errors.As(err, &noProfiles)
}

// missingNameError is returned when the link command is used without a name.
type missingNameError struct{}

func (missingNameError) Error() string { return "no in-game name given" }
func (missingNameError) Title() string { return "Error, you need to give your in-game name." }
func (missingNameError) Hint() string {
	return "Use the link command followed by your Minecraft username."
}

// ErrMissingName is returned by Service.Link when no name was given.
var ErrMissingName error = missingNameError{}
