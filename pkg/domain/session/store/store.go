package store

import (
	"context"

	"github.com/uw-gac/phenotag/pkg/domain/session"
)

// Store holds per-(actor, namespace) session snapshots with an idle TTL.
//
// The store is an injected dependency of the coordinator: an in-memory map
// for tests and single-node deployments, redis when several service
// replicas share sessions. Any access refreshes the TTL; sessions idle
// longer than the TTL are gone as if ended.
type Store interface {
	// Put saves s under (s.Actor, s.Namespace), replacing any previous
	// session there.
	Put(ctx context.Context, s session.Session) error

	// Get returns the live session of (actor, ns).
	//
	// When none is stored, or the stored one idled out,
	// it returns session.ErrNoSession.
	Get(ctx context.Context, actor string, ns session.Namespace) (session.Session, error)

	// Delete discards the session of (actor, ns). Deleting nothing is not
	// an error.
	Delete(ctx context.Context, actor string, ns session.Namespace) error
}
