package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	kpool "github.com/uw-gac/phenotag/pkg/conn/db/postgres/pool"
	dbInterface "github.com/uw-gac/phenotag/pkg/domain/phenotag/db"
	reviewdb "github.com/uw-gac/phenotag/pkg/domain/review/db"
	pgreview "github.com/uw-gac/phenotag/pkg/domain/review/db/postgres"
	schemadb "github.com/uw-gac/phenotag/pkg/domain/schema/db"
	pgschema "github.com/uw-gac/phenotag/pkg/domain/schema/db/postgres"
	taggingdb "github.com/uw-gac/phenotag/pkg/domain/tagging/db"
	pgtagging "github.com/uw-gac/phenotag/pkg/domain/tagging/db/postgres"
	traitsdb "github.com/uw-gac/phenotag/pkg/domain/traits/db"
	pgtraits "github.com/uw-gac/phenotag/pkg/domain/traits/db/postgres"
)

type phenotagDBPostgres struct {
	pool    *pgxpool.Pool
	tagging taggingdb.Interface
	review  reviewdb.Interface
	traits  traitsdb.Interface
	schema  schemadb.Interface
}

type Config struct {
	SchemaRepository string
}

type Option func(*Config) *Config

// WithSchemaRepository points at the directory of numbered schema
// revisions. Without it, schema version management is disabled.
func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

func New(ctx context.Context, url string, options ...Option) (dbInterface.Database, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, err
	}

	c := Config{}
	for _, option := range options {
		c = *option(&c)
	}

	p := kpool.Wrap(pool)
	var schema schemadb.Interface = pgschema.Null()
	if c.SchemaRepository != "" {
		schema = pgschema.New(p, c.SchemaRepository)
	}

	return &phenotagDBPostgres{
		pool:    pool,
		tagging: pgtagging.New(p),
		review:  pgreview.New(p),
		traits:  pgtraits.New(p),
		schema:  schema,
	}, nil
}

func (d *phenotagDBPostgres) Tagging() taggingdb.Interface {
	return d.tagging
}

func (d *phenotagDBPostgres) Review() reviewdb.Interface {
	return d.review
}

func (d *phenotagDBPostgres) Traits() traitsdb.Interface {
	return d.traits
}

func (d *phenotagDBPostgres) Schema() schemadb.Interface {
	return d.schema
}

func (d *phenotagDBPostgres) Close() error {
	d.pool.Close()
	return nil
}
