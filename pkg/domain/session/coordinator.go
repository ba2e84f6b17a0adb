package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uw-gac/phenotag/pkg/domain"
)

// Candidates computes the ordered candidate set for one loop namespace.
//
// For the review loop this is "tagged with tag, in study, no DCC review
// yet"; for the decision loop it is "review needs followup, study
// disagrees, no decision yet". Both are ordered by ascending id.
type Candidates func(ctx context.Context, tagId int64, studyId int64) ([]int64, error)

// Store is re-declared here (instead of importing the store package) so the
// coordinator depends only on what it calls; implementations live under
// session/store.
type Store interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, actor string, ns Namespace) (Session, error)
	Delete(ctx context.Context, actor string, ns Namespace) error
}

// Coordinator decouples "what needs review" (a potentially large set,
// computed once) from the one-at-a-time loop the UI drives.
//
// The candidate set is snapshotted at Start and never re-derived; the
// cursor only moves forward. Whether the current item is still actionable
// is re-checked by the submission operation, not here.
type Coordinator struct {
	store      Store
	candidates map[Namespace]Candidates
}

func NewCoordinator(store Store, candidates map[Namespace]Candidates) *Coordinator {
	return &Coordinator{store: store, candidates: candidates}
}

// Start computes and snapshots the candidate set for (tag, study), keyed to
// the actor, and points the cursor at the first element. A previous session
// of the actor in the same namespace is replaced.
//
// Returns ErrMissing when the candidate set is empty.
func (c *Coordinator) Start(
	ctx context.Context, ns Namespace, actor domain.Actor, tagId int64, studyId int64,
) (Session, error) {
	compute, ok := c.candidates[ns]
	if !ok {
		return Session{}, fmt.Errorf("no candidate source for namespace '%s'", ns)
	}

	items, err := compute(ctx, tagId, studyId)
	if err != nil {
		return Session{}, err
	}
	if len(items) == 0 {
		return Session{}, fmt.Errorf(
			"%w: nothing to do for tag %d in study %d", domain.ErrMissing, tagId, studyId,
		)
	}

	s := Session{
		Id:        uuid.NewString(),
		Actor:     actor.Name,
		Namespace: ns,
		TagId:     tagId,
		StudyId:   studyId,
		Items:     items,
		Cursor:    0,
		StartedAt: time.Now(),
	}
	if err := c.store.Put(ctx, s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Current returns the live session and the item at its cursor.
//
// Signals ErrNoSession when no loop was started (or it idled out), and
// ErrSessionComplete when the cursor is past the end.
func (c *Coordinator) Current(
	ctx context.Context, ns Namespace, actor domain.Actor,
) (Session, int64, error) {
	s, err := c.store.Get(ctx, actor.Name, ns)
	if err != nil {
		return Session{}, 0, err
	}
	current, err := s.Current()
	if err != nil {
		return s, 0, err
	}
	return s, current, nil
}

// Advance moves the cursor forward after the current item has been acted
// on. It does not verify the action happened; the submission operation
// enforces that by succeeding first.
func (c *Coordinator) Advance(
	ctx context.Context, ns Namespace, actor domain.Actor,
) (Session, error) {
	s, err := c.store.Get(ctx, actor.Name, ns)
	if err != nil {
		return Session{}, err
	}
	s = s.Advance()
	if err := c.store.Put(ctx, s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Skip records the current item as skipped (resolved by someone else, or
// passed over by the actor) and advances past it.
func (c *Coordinator) Skip(
	ctx context.Context, ns Namespace, actor domain.Actor,
) (Session, error) {
	s, err := c.store.Get(ctx, actor.Name, ns)
	if err != nil {
		return Session{}, err
	}
	s = s.Skip()
	if err := c.store.Put(ctx, s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// SkipIfCurrent records itemId as skipped and advances past it, but only
// when the actor's live session in ns is pointing at it right now.
//
// Submission handlers call this when someone else completed the step
// first, so the loop moves on instead of re-presenting a dead item. No
// session, a finished loop, or a cursor on some other item are all
// no-ops. Reports whether the cursor moved.
func (c *Coordinator) SkipIfCurrent(
	ctx context.Context, ns Namespace, actor domain.Actor, itemId int64,
) (bool, error) {
	s, err := c.store.Get(ctx, actor.Name, ns)
	if errors.Is(err, ErrNoSession) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	current, err := s.Current()
	if err != nil || current != itemId {
		return false, nil
	}

	if err := c.store.Put(ctx, s.Skip()); err != nil {
		return false, err
	}
	return true, nil
}

// End discards the snapshot and reports what was skipped. Items not acted
// on stay in their current state; the next Start picks them up fresh from
// the live predicate.
func (c *Coordinator) End(
	ctx context.Context, ns Namespace, actor domain.Actor,
) (Session, error) {
	s, err := c.store.Get(ctx, actor.Name, ns)
	if err != nil {
		return Session{}, err
	}
	if err := c.store.Delete(ctx, actor.Name, ns); err != nil {
		return Session{}, err
	}
	return s, nil
}
