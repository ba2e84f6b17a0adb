package db

import (
	"fmt"

	"github.com/uw-gac/phenotag/pkg/domain"
)

// ErrAlreadyTagged reports every variable in a bulk submission that already
// carries the tag, so the actor can correct the set and resubmit.
type ErrAlreadyTagged struct {
	TagId       int64
	VariableIds []int64
}

var _ error = &ErrAlreadyTagged{}

func (e *ErrAlreadyTagged) Error() string {
	return fmt.Sprintf(
		"variables %v are already tagged with tag %d", e.VariableIds, e.TagId,
	)
}

func (e *ErrAlreadyTagged) Unwrap() error {
	return domain.ErrConflict
}
