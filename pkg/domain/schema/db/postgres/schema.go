package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	kpool "github.com/uw-gac/phenotag/pkg/conn/db/postgres/pool"
	"github.com/uw-gac/phenotag/pkg/utils/filewatch"
)

// schemaPG upgrades the database from a schema repository: a directory of
// numbered subdirectories, each holding the .sql files bringing the schema
// to that version. Non-numeric entries are ignored.
type schemaPG struct {
	pool       kpool.Pool
	repository string
}

func New(pool kpool.Pool, repository string) *schemaPG {
	return &schemaPG{pool: pool, repository: repository}
}

type revision struct {
	version int
	root    string
}

func (r revision) apply(ctx context.Context, conn kpool.Queryer) error {
	return filepath.WalkDir(r.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".sql") {
			return nil
		}

		query, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = conn.Exec(ctx, string(query))
		return err
	})
}

func (s *schemaPG) revisions() ([]revision, error) {
	entries, err := os.ReadDir(s.repository)
	if err != nil {
		return nil, err
	}

	found := make([]revision, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		v, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		found = append(found, revision{
			version: v, root: filepath.Join(s.repository, entry.Name()),
		})
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].version < found[j].version
	})
	return found, nil
}

func (s *schemaPG) Version(ctx context.Context) (int, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return -1, err
	}
	defer conn.Release()

	var version int
	if err := conn.QueryRow(
		ctx, `select max("version") from "schema_version"`,
	).Scan(&version); err != nil {
		if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) &&
			pgerr.Code == pgerrcode.UndefinedTable {
			return 0, nil
		}
		return -1, err
	}
	return version, nil
}

func (s *schemaPG) Upgrade(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	revisions, err := s.revisions()
	if err != nil {
		return err
	}
	current, err := s.Version(ctx)
	if err != nil {
		return err
	}

	for _, r := range revisions {
		if r.version <= current {
			continue
		}
		if err := r.apply(ctx, tx); err != nil {
			return fmt.Errorf("schema version %d: %w", r.version, err)
		}
		if _, err := tx.Exec(ctx, `delete from "schema_version"`); err != nil {
			return err
		}
		if _, err := tx.Exec(
			ctx, `insert into "schema_version" ("version") values ($1)`, r.version,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// check returns nil when the database is at (or past) every revision in
// the repository.
func (s *schemaPG) check(ctx context.Context) error {
	revisions, err := s.revisions()
	if err != nil {
		return err
	}
	current, err := s.Version(ctx)
	if err != nil {
		return err
	}
	for _, r := range revisions {
		if current < r.version {
			return fmt.Errorf(
				"schema is outdated: %d (in db) < %d (in repository)",
				current, r.version,
			)
		}
	}
	return nil
}

func (s *schemaPG) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	if err := s.check(ctx); err != nil {
		cctx, cancel := context.WithCancelCause(ctx)
		cancel(err)
		return cctx, func() {}
	}

	// the repository changing under a running service means a release is
	// half-applied; stop and let the operator finish it
	cctx, cancel, err := filewatch.UntilModifyContext(ctx, s.repository)
	if err != nil {
		cctx, c := context.WithCancelCause(ctx)
		c(err)
		return cctx, func() {}
	}
	return cctx, cancel
}

// Null is the schema interface of a deployment without a repository.
// Version checks are skipped, upgrading is refused.
func Null() *nullSchema {
	return &nullSchema{}
}

type nullSchema struct{}

func (nullSchema) Upgrade(ctx context.Context) error {
	return errors.New("no schema repository available")
}

func (nullSchema) Version(ctx context.Context) (int, error) {
	return -1, nil
}

func (nullSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return ctx, func() {}
}
