package hypixel

import "fmt"

// ErrorKind classifies a failed profile fetch.
type ErrorKind int

// Fetch failure kinds.
const (
	// Unavailable covers transport failures, maintenance and malformed responses.
	Unavailable ErrorKind = iota
	// InvalidCredential means the API key was missing or rejected, every request
	// will fail until an operator replaces it.
	InvalidCredential
)

func (k ErrorKind) String() string {
	if k == InvalidCredential {
		return "invalid-credential"
	}
	return "unavailable"
}

// FetchError is returned by Client.FetchProfiles.
type FetchError struct {
	Kind ErrorKind
	// Cause is the cause string reported by the API, if any.
	Cause string
	Err   error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hypixel fetch %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("hypixel fetch %s: %s", e.Kind, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Title is the headline shown to the user.
func (e *FetchError) Title() string {
	if e.Kind == InvalidCredential {
		return "Error, the api key used to run this bot has failed."
	}
	return "Error, the Hypixel API is in maintenance mode!"
}

// Hint tells the user what to do next.
func (e *FetchError) Hint() string {
	if e.Kind == InvalidCredential {
		return "This is because Hypixel randomly kill API keys. Please be patient, a fix is coming soon!"
	}
	return "Please try again in a few hours!"
}
