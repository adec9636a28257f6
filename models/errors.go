package models

import "github.com/pkg/errors"

// UserError is implemented by errors that can be shown to the person who issued a
// command. Title is a short headline and Hint tells them how to fix the problem.
type UserError interface {
	error
	Title() string
	Hint() string
}

// Generic message used when an error carries no user facing description.
const (
	GenericErrorTitle = "Error, something went wrong."
	GenericErrorHint  = "Please try again in a few minutes."
)

// Describe returns the title and hint for any error so raw errors never reach the
// end user.
func Describe(err error) (title, hint string) {
	var userErr UserError
	if errors.As(err, &userErr) {
		return userErr.Title(), userErr.Hint()
	}

	return GenericErrorTitle, GenericErrorHint
}

// ErrPlayerNotFound is returned by identity lookups when the name or id does not
// belong to any player.
var ErrPlayerNotFound = errors.New("player not found")
