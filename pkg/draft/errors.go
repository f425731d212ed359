// Package draft holds the report edit-session core: a canonical copy of the
// last loaded report, a mutable draft the form writes into, and the save
// path that reconciles the two. Mirrors the dashboard's edit flow, with the
// save guard made a real guarantee instead of a disabled button.
package draft

import (
	"errors"
	"fmt"
)

// ErrorKind classifies session failures for the UI.
type ErrorKind int

const (
	// KindLoadFailed covers fetch failures and not-found on load. The page
	// renders a full error block, nothing partial.
	KindLoadFailed ErrorKind = iota + 1
	// KindSaveFailed covers update failures. The draft is kept so the user
	// can retry; the error sticks until the next save attempt.
	KindSaveFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindLoadFailed:
		return "load_failed"
	case KindSaveFailed:
		return "save_failed"
	default:
		return "unknown"
	}
}

// Error wraps a backend failure with its kind.
type Error struct {
	Kind  ErrorKind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

var (
	// ErrNoReport means no report has been loaded into the session yet.
	ErrNoReport = errors.New("draft: no report loaded")
	// ErrSaveInFlight means a save is already running for this report.
	ErrSaveInFlight = errors.New("draft: save already in flight")
	// ErrSessionNotResolved means the auth session has not finished
	// resolving; the caller should keep showing its loading state.
	ErrSessionNotResolved = errors.New("draft: auth session not resolved")
)
