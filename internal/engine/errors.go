// Package engine holds the consensus and moderation rules that turn community claims about
// pubs into displayed state. Subpackages are pure: they never read the clock or touch storage.
package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated is returned when a mutating call has no user identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrDependencyUnavailable is returned when the trust lookup fails.
	// Submissions are rejected instead of defaulting to either trust state.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrForbidden is returned when a user lacks the role for an action.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when the subject of an operation does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned when a state machine refuses a transition.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrRateLimited is returned when a caller exceeds a submission limit.
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError describes a malformed or incomplete submission.
type ValidationError struct {
	Field  string
	Reason string
}

// Invalid creates a new validation error for the given field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
