package phenotag

import (
	"context"

	"github.com/uw-gac/phenotag/pkg/domain/phenotag/db"
	"github.com/uw-gac/phenotag/pkg/domain/phenotag/db/postgres"
	reviewdb "github.com/uw-gac/phenotag/pkg/domain/review/db"
	schemadb "github.com/uw-gac/phenotag/pkg/domain/schema/db"
	"github.com/uw-gac/phenotag/pkg/domain/session"
	taggingdb "github.com/uw-gac/phenotag/pkg/domain/tagging/db"
	traitsdb "github.com/uw-gac/phenotag/pkg/domain/traits/db"
)

// Phenotag bundles the interfaces one service instance works against.
type Phenotag interface {
	Tagging() taggingdb.Interface
	Review() reviewdb.Interface
	Traits() traitsdb.Interface
	Schema() schemadb.Interface
	Sessions() *session.Coordinator

	Close() error
}

type phenotag struct {
	database db.Database
	sessions *session.Coordinator
}

// Default connects to postgres at url and wires the session coordinator
// over store.
func Default(
	ctx context.Context, url string, store session.Store, options ...postgres.Option,
) (Phenotag, error) {
	database, err := postgres.New(ctx, url, options...)
	if err != nil {
		return nil, err
	}
	return New(database, store), nil
}

// New wires an aggregate over an already-built database, for tests and
// alternative wirings.
//
// The session loops snapshot their work sets from the review queries:
// the review loop takes unreviewed tagged variables, the decision loop
// takes disputed ones awaiting a decision.
func New(database db.Database, store session.Store) Phenotag {
	review := database.Review()
	sessions := session.NewCoordinator(store, map[session.Namespace]session.Candidates{
		session.ReviewLoop:   review.UnreviewedIds,
		session.DecisionLoop: review.DecisionPendingIds,
	})

	return &phenotag{database: database, sessions: sessions}
}

func (p *phenotag) Tagging() taggingdb.Interface {
	return p.database.Tagging()
}

func (p *phenotag) Review() reviewdb.Interface {
	return p.database.Review()
}

func (p *phenotag) Traits() traitsdb.Interface {
	return p.database.Traits()
}

func (p *phenotag) Schema() schemadb.Interface {
	return p.database.Schema()
}

func (p *phenotag) Sessions() *session.Coordinator {
	return p.sessions
}

func (p *phenotag) Close() error {
	return p.database.Close()
}
