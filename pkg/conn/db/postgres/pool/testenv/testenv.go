package testenv

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	kpool "github.com/uw-gac/phenotag/pkg/conn/db/postgres/pool"
	pgschema "github.com/uw-gac/phenotag/pkg/domain/schema/db/postgres"
)

// Database tests run against a disposable postgres named by this
// environment variable (a pgx connection URI). They skip when it is unset,
// so the plain unit-test run stays database-free.
const EnvDBURI = "PHENOTAG_TEST_DBURI"

// PoolBroaker is a interface to get a pool.
type PoolBroaker interface {
	// GetPool returns a pool.
	//
	// Tables are cleaned up before returning and after t.
	GetPool(ctx context.Context, t *testing.T) kpool.Pool
}

type pg struct {
	pool *pgxpool.Pool
}

func (p *pg) GetPool(ctx context.Context, t *testing.T) kpool.Pool {
	t.Cleanup(func() {
		t.Helper()
		ClearTables(ctx, p.pool, t)
	})

	ClearTables(ctx, p.pool, t)
	return kpool.Wrap(p.pool)
}

// NewPoolBroaker returns a PoolBroaker over the database EnvDBURI points
// at, with the schema repository applied.
//
// # Args
//
// - ctx: when this context is canceled, the database connection behind
// the pool will be lost.
//
// - t: scope of the PoolBroaker. When this test is finished, the broaker
// will be shut down.
func NewPoolBroaker(ctx context.Context, t *testing.T) PoolBroaker {
	t.Helper()

	dburi := os.Getenv(EnvDBURI)
	if dburi == "" {
		t.Skipf("%s is not set. point it at a disposable postgres to run database tests", EnvDBURI)
	}

	pool, err := pgxpool.Connect(ctx, dburi)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)

	if err := pgschema.New(kpool.Wrap(pool), schemaRepository()).Upgrade(ctx); err != nil {
		t.Fatal(err)
	}

	return &pg{pool: pool}
}

// schemaRepository locates db/schema at the repository root, relative to
// this source file.
func schemaRepository() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(
		filepath.Dir(file), "..", "..", "..", "..", "..", "db", "schema",
	)
}

func ClearTables(ctx context.Context, p *pgxpool.Pool, t *testing.T) {
	t.Helper()

	conn, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("fail to clean-up tables.: %v", err)
	}
	defer conn.Release()

	for _, command := range []string{
		`truncate "study" RESTART IDENTITY cascade`,
		`truncate "tag" RESTART IDENTITY cascade`,
		// by cascade, tagged_variable and the review records go with them.
		// schema_version stays.
	} {
		if _, err := conn.Exec(ctx, command); err != nil {
			t.Errorf("fail to clean-up tables.: %v", err)
		}
	}
}
