package identity

import (
	"fmt"

	"github.com/rking788/skyblock-helper/models"
)

// Kind classifies an identity resolution failure.
type Kind int

// Failure kinds.
const (
	// NotFound means the name or unique id does not belong to any player.
	NotFound Kind = iota
	// Unavailable means the identity service or linked account store could not be reached.
	Unavailable
)

func (k Kind) String() string {
	if k == NotFound {
		return "not-found"
	}
	return "unavailable"
}

// Error is returned when a caller's input cannot be turned into a player identity.
type Error struct {
	Kind   Kind
	Source models.IdentitySource
	// Input is the sanitised working string that was looked up.
	Input string
	// ByID is set when Input was looked up as a unique id.
	ByID bool
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("resolving %q (%s, by id: %t): %s: %v", e.Input, e.Source, e.ByID, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Title is the headline shown to the user.
func (e *Error) Title() string {
	switch {
	case e.Source == models.SourceNickname:
		return "Error, could not parse username from your nickname."
	case e.Kind == Unavailable && e.Source == models.SourceLinkedAccount && e.Input == "":
		return "Error, could not read your linked account."
	case e.Kind == Unavailable:
		return "Error, the Mojang API could not be reached."
	case e.ByID:
		return "Error! UUID was incorrect."
	default:
		return "Error! Username was incorrect."
	}
}

// Hint tells the user how to fix the problem.
func (e *Error) Hint() string {
	switch {
	case e.Source == models.SourceNickname && e.Kind == Unavailable:
		return "The username service could not be reached, link your account or give a username and try again."
	case e.Source == models.SourceNickname:
		return "Link your account with the link command, or give the player's name explicitly."
	case e.Kind == Unavailable:
		return "Please try again in a few minutes."
	case e.ByID:
		return "Could not find that player's uuid."
	case e.Source == models.SourceLinkedAccount:
		return "Your linked account could not be found, link your current name again."
	default:
		return "Make sure you spelled the target player's name correctly."
	}
}
