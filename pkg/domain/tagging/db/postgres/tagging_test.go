package postgres_test

import (
	"context"
	"errors"
	"testing"

	kpool "github.com/uw-gac/phenotag/pkg/conn/db/postgres/pool"
	"github.com/uw-gac/phenotag/pkg/conn/db/postgres/pool/testenv"
	"github.com/uw-gac/phenotag/pkg/domain"
	kdb "github.com/uw-gac/phenotag/pkg/domain/tagging/db"
	kpgtag "github.com/uw-gac/phenotag/pkg/domain/tagging/db/postgres"
	"github.com/uw-gac/phenotag/pkg/utils/cmp"
	"github.com/uw-gac/phenotag/pkg/utils/try"
)

// one study, one dataset, three variables (101, 102, 103) and one tag (1).
func seedSourceData(ctx context.Context, t *testing.T, conn kpool.Conn) {
	t.Helper()
	for _, command := range []string{
		`insert into "study" ("study_id", "accession", "name") values (1, 7, 'study-1')`,
		`
		insert into "source_dataset" ("dataset_id", "study_id", "accession", "version", "name")
		values (10, 1, 700, 1, 'dataset-10')
		`,
		`
		insert into "source_variable"
			("variable_id", "dataset_id", "study_id", "phv", "version", "participant_set", "name")
		values
			(101, 10, 1, 70001, 1, 1, 'bmi'),
			(102, 10, 1, 70002, 1, 1, 'height'),
			(103, 10, 1, 70003, 1, 1, 'weight')
		`,
		`insert into "tag" ("tag_id", "title") values (1, 'BMI')`,
	} {
		if _, err := conn.Exec(ctx, command); err != nil {
			t.Fatal(err)
		}
	}
}

func countTaggedVariables(ctx context.Context, t *testing.T, conn kpool.Conn) int {
	t.Helper()
	var count int
	if err := conn.QueryRow(
		ctx, `select count(*) from "tagged_variable"`,
	).Scan(&count); err != nil {
		t.Fatal(err)
	}
	return count
}

func TestTagging_BulkCreate(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("when a variable in the batch is already tagged, it should name it and insert nothing", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		conn := try.To(pgpool.Acquire(ctx)).OrFatal(t)
		defer conn.Release()
		seedSourceData(ctx, t, conn)

		if _, err := conn.Exec(ctx,
			`insert into "tagged_variable" ("variable_id", "tag_id", "creator") values (102, 1, 'earlier@example.org')`,
		); err != nil {
			t.Fatal(err)
		}

		testee := kpgtag.New(pgpool)
		actor := domain.Actor{Name: "tagger@example.org", Taggable: []int64{1}}
		created, err := testee.BulkCreate(ctx, []int64{101, 102, 103}, 1, actor)

		already := new(kdb.ErrAlreadyTagged)
		if !errors.As(err, &already) {
			t.Fatalf("unexpected error: %v", err)
		}
		if already.TagId != 1 || !cmp.SliceEq(already.VariableIds, []int64{102}) {
			t.Errorf(
				"conflict report does not match. (actual, expected) = (%+v, tag 1 variable [102])",
				already,
			)
		}
		if created != nil {
			t.Errorf("unexpected created records: %+v", created)
		}

		// the whole batch is rolled back; only the earlier record remains
		if count := countTaggedVariables(ctx, t, conn); count != 1 {
			t.Errorf("record count of tagged_variable does not match. (actual, expected) = (%d, 1)", count)
		}
	})

	t.Run("when no variable in the batch is tagged yet, it should tag them all", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		conn := try.To(pgpool.Acquire(ctx)).OrFatal(t)
		defer conn.Release()
		seedSourceData(ctx, t, conn)

		testee := kpgtag.New(pgpool)
		actor := domain.Actor{Name: "tagger@example.org", Taggable: []int64{1}}
		created := try.To(
			testee.BulkCreate(ctx, []int64{101, 102, 103}, 1, actor),
		).OrFatal(t)

		if len(created) != 3 {
			t.Fatalf("created records do not match: %+v", created)
		}
		variableIds := []int64{}
		for _, tv := range created {
			variableIds = append(variableIds, tv.Variable.Id)
			if tv.TagId != 1 || tv.Creator != actor.Name {
				t.Errorf("created record does not match: %+v", tv)
			}
		}
		if !cmp.SliceEq(variableIds, []int64{101, 102, 103}) {
			t.Errorf(
				"tagged variables do not match. (actual, expected) = (%v, [101 102 103])",
				variableIds,
			)
		}
		if count := countTaggedVariables(ctx, t, conn); count != 3 {
			t.Errorf("record count of tagged_variable does not match. (actual, expected) = (%d, 3)", count)
		}
	})

	t.Run("when a variable carries the tag only as archived history, it should not conflict", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		conn := try.To(pgpool.Acquire(ctx)).OrFatal(t)
		defer conn.Release()
		seedSourceData(ctx, t, conn)

		if _, err := conn.Exec(ctx,
			`
			insert into "tagged_variable" ("variable_id", "tag_id", "creator", "archived")
			values (102, 1, 'earlier@example.org', true)
			`,
		); err != nil {
			t.Fatal(err)
		}

		testee := kpgtag.New(pgpool)
		actor := domain.Actor{Name: "tagger@example.org", Taggable: []int64{1}}
		created := try.To(
			testee.BulkCreate(ctx, []int64{102}, 1, actor),
		).OrFatal(t)

		if len(created) != 1 || created[0].Variable.Id != 102 {
			t.Errorf("created records do not match: %+v", created)
		}
	})
}
