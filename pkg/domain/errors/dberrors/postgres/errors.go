package postgres

import (
	"fmt"

	"github.com/uw-gac/phenotag/pkg/domain"
)

// requested record is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return domain.ErrMissing
}

// an operation's precondition on existing records is violated.
type Conflict struct {
	Table    string
	Identity string
	Reason   string
}

var _ error = Conflict{}

func (c Conflict) Error() string {
	return fmt.Sprintf("conflict on %s in %s: %s", c.Identity, c.Table, c.Reason)
}

func (c Conflict) Unwrap() error {
	return domain.ErrConflict
}

// someone else completed the step first; recoverable by skipping ahead.
type Superseded struct {
	Table    string
	Identity string
	Reason   string
}

var _ error = Superseded{}

func (s Superseded) Error() string {
	return fmt.Sprintf("superseded on %s in %s: %s", s.Identity, s.Table, s.Reason)
}

func (s Superseded) Unwrap() error {
	return domain.ErrSuperseded
}

// the actor lacks the role or study scope for the action.
type PermissionDenied struct {
	Capability domain.Capability
	StudyId    int64

	// Reason overrides the capability-based message, for denials that are
	// not about a study-scoped capability (e.g. "not the creator").
	Reason string
}

var _ error = PermissionDenied{}

func (p PermissionDenied) Error() string {
	if p.Reason != "" {
		return p.Reason
	}
	return fmt.Sprintf(
		"actor does not have capability '%s' on study %d", p.Capability, p.StudyId,
	)
}

func (p PermissionDenied) Unwrap() error {
	return domain.ErrPermissionDenied
}
