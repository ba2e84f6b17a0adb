package db

import (
	"context"

	"github.com/uw-gac/phenotag/pkg/domain"
)

type Interface interface {
	// AddDCCReview performs the first review step on a tagged variable.
	//
	// The existence check and the insert run in one transaction, so two
	// concurrent reviewers cannot both create a review for the same
	// tagged variable.
	//
	// Side effect: a confirming review resolves the tagged variable;
	// no further steps follow.
	//
	// Returns
	//
	// - domain.DCCReview: the created review.
	//
	// - error: ErrMissing (tagged variable absent),
	// ErrSuperseded (a review already exists; the submitter worked from a
	// stale snapshot), ErrConflict (the tagged variable is archived),
	// ErrValidation (needs-followup without comment),
	// ErrPermissionDenied (actor lacks the dcc-review capability).
	AddDCCReview(ctx context.Context, taggedVariableId int64, attr domain.ReviewAttr, actor domain.Actor) (domain.DCCReview, error)

	// UpdateDCCReview revises a review while it is still open.
	//
	// Once a StudyResponse exists the review is immutable history and
	// updating fails with ErrConflict.
	UpdateDCCReview(ctx context.Context, taggedVariableId int64, attr domain.ReviewAttr, actor domain.Actor) (domain.DCCReview, error)

	// AddStudyResponse records the study's answer to a needs-followup review.
	//
	// Side effect: an agreeing response archives the tagged variable in the
	// same transaction. The pipeline ends there; no decision step follows.
	//
	// Returns
	//
	// - error: ErrMissing (review absent),
	// ErrConflict (review is not needs-followup),
	// ErrSuperseded (a response already exists),
	// ErrValidation (disagree without comment),
	// ErrPermissionDenied (actor does not represent the study).
	AddStudyResponse(ctx context.Context, dccReviewId int64, attr domain.ResponseAttr, actor domain.Actor) (domain.StudyResponse, error)

	// AddDCCDecision closes a disputed review.
	//
	// Side effect: remove archives the tagged variable; confirm resolves it
	// without archiving. Both commit atomically with the insert.
	//
	// Returns
	//
	// - error: ErrMissing (review absent),
	// ErrConflict (no disagreeing StudyResponse exists),
	// ErrSuperseded (a decision already exists),
	// ErrValidation, ErrPermissionDenied.
	AddDCCDecision(ctx context.Context, dccReviewId int64, attr domain.DecisionAttr, actor domain.Actor) (domain.DCCDecision, error)

	// UpdateDCCDecision revises the final decision.
	//
	// Allowed at any time after creation; the archive/keep side effect is
	// re-applied idempotently, so re-confirming keep is a no-op and
	// switching the outcome toggles the archived flag.
	UpdateDCCDecision(ctx context.Context, dccReviewId int64, attr domain.DecisionAttr, actor domain.Actor) (domain.DCCDecision, error)

	// Resolution derives the pipeline status of a tagged variable.
	Resolution(ctx context.Context, taggedVariableId int64) (domain.Resolution, error)

	// TaggedVariableOf resolves the tagged variable a review belongs to.
	//
	// Returns ErrMissing when no review carries the id.
	TaggedVariableOf(ctx context.Context, dccReviewId int64) (int64, error)

	// UnreviewedIds lists tagged variables of (tag, study) with no
	// DCCReview yet, ordered by ascending id. Archived rows are excluded.
	UnreviewedIds(ctx context.Context, tagId int64, studyId int64) ([]int64, error)

	// CountUnreviewed is len(UnreviewedIds) without materializing the ids.
	CountUnreviewed(ctx context.Context, tagId int64, studyId int64) (int, error)

	// DecisionPendingIds lists tagged variables of (tag, study) whose
	// review needs followup, whose study response disagrees, and which have
	// no DCCDecision yet, ordered by ascending id.
	DecisionPendingIds(ctx context.Context, tagId int64, studyId int64) ([]int64, error)

	// CountDecisionPending is len(DecisionPendingIds) without
	// materializing the ids.
	CountDecisionPending(ctx context.Context, tagId int64, studyId int64) (int, error)
}
