package db

import (
	"context"

	"github.com/uw-gac/phenotag/pkg/domain"
)

type Interface interface {
	// Create associates one variable with one tag.
	//
	// Args
	//
	// - context.Context
	//
	// - variableId: variable to be tagged.
	//
	// - tagId: tag to apply.
	//
	// - actor: who tags. The actor needs the tag capability on the
	// variable's study.
	//
	// Returns
	//
	// - domain.TaggedVariable: the new association. It starts unreviewed;
	// no review records are created here.
	//
	// - error: ErrMissing (variable or tag is absent),
	// ErrConflict (a non-archived association already exists for the pair),
	// ErrPermissionDenied.
	Create(ctx context.Context, variableId int64, tagId int64, actor domain.Actor) (domain.TaggedVariable, error)

	// BulkCreate applies the tag to every variable in one transaction.
	//
	// Either every variable is newly tagged, or none are: a single conflict
	// rolls back the whole batch. The error then is an ErrAlreadyTagged
	// naming every offending variable, not just the first.
	//
	// Returns
	//
	// - []domain.TaggedVariable: created associations, in the order of
	// variableIds.
	//
	// - error: ErrMissing, ErrPermissionDenied, or *ErrAlreadyTagged
	// (unwraps to ErrConflict).
	BulkCreate(ctx context.Context, variableIds []int64, tagId int64, actor domain.Actor) ([]domain.TaggedVariable, error)

	// DeleteOwn hard-deletes an unreviewed association made by mistake.
	//
	// Only the creator may do this, and only while no DCCReview exists.
	// Once reviewed, the association is quality-review history and may only
	// be archived by the review pipeline.
	//
	// Returns
	//
	// - error: ErrMissing, ErrPermissionDenied (actor is not the creator),
	// ErrConflict (a DCCReview exists).
	DeleteOwn(ctx context.Context, taggedVariableId int64, actor domain.Actor) error

	// Get retrieves tagged variables with their review records.
	//
	// Ids absent from the store are omitted from the returned map,
	// not reported as error.
	Get(ctx context.Context, taggedVariableIds []int64) (map[int64]domain.TaggedVariableState, error)

	// Find lists tagged variable ids matching the query, ordered by id.
	Find(ctx context.Context, query domain.TaggedVariableQuery) ([]int64, error)
}
