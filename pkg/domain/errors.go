package domain

import (
	"errors"
	"fmt"
)

var (
	// a referenced entity is absent
	ErrMissing = errors.New("missing")

	// an operation's precondition on existing records is violated
	ErrConflict = errors.New("conflict")

	// someone else completed this step first; a stale snapshot pointed here.
	// It is a Conflict, but one callers may recover from by skipping ahead.
	ErrSuperseded = fmt.Errorf("superseded: %w", ErrConflict)

	// actor-submitted content is not acceptable
	ErrValidation = errors.New("validation")

	// the actor lacks the role or study scope for the action
	ErrPermissionDenied = errors.New("permission denied")
)

// IsSuperseded reports whether err means "someone else already completed
// this step", as opposed to a precondition the caller got wrong.
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}
