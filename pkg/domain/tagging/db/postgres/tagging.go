package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	kpool "github.com/uw-gac/phenotag/pkg/conn/db/postgres/pool"
	"github.com/uw-gac/phenotag/pkg/domain"
	kpgerr "github.com/uw-gac/phenotag/pkg/domain/errors/dberrors/postgres"
	kdb "github.com/uw-gac/phenotag/pkg/domain/tagging/db"
)

// a struct for DB operations related to TaggedVariable
type taggingPG struct { // implements kdb.Interface
	pool kpool.Pool
}

func New(pool kpool.Pool) *taggingPG {
	return &taggingPG{pool: pool}
}

var _ kdb.Interface = &taggingPG{}

func (m *taggingPG) Create(
	ctx context.Context, variableId int64, tagId int64, actor domain.Actor,
) (domain.TaggedVariable, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.TaggedVariable{}, err
	}
	defer tx.Rollback(ctx)

	tv, err := m.create(ctx, tx, variableId, tagId, actor)
	if err != nil {
		return domain.TaggedVariable{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.TaggedVariable{}, err
	}
	return tv, nil
}

func (m *taggingPG) BulkCreate(
	ctx context.Context, variableIds []int64, tagId int64, actor domain.Actor,
) ([]domain.TaggedVariable, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Gather every conflicting variable up front: a bulk submission is one
	// form submission, and the actor needs the full list to correct it.
	rows, err := tx.Query(
		ctx,
		`
		select "variable_id" from "tagged_variable"
		where "tag_id" = $1 and not "archived" and "variable_id" = any($2)
		order by "variable_id"
		`,
		tagId, variableIds,
	)
	if err != nil {
		return nil, err
	}
	conflicting := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		conflicting = append(conflicting, id)
	}
	rows.Close()
	if 0 < len(conflicting) {
		return nil, &kdb.ErrAlreadyTagged{TagId: tagId, VariableIds: conflicting}
	}

	created := make([]domain.TaggedVariable, 0, len(variableIds))
	for _, variableId := range variableIds {
		tv, err := m.create(ctx, tx, variableId, tagId, actor)
		if err != nil {
			// a pair tagged between our precheck and this insert
			if errors.Is(err, domain.ErrConflict) {
				return nil, &kdb.ErrAlreadyTagged{
					TagId: tagId, VariableIds: []int64{variableId},
				}
			}
			return nil, err
		}
		created = append(created, tv)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// create inserts a single association within the passed transaction.
//
// The partial unique index on (variable_id, tag_id) where not archived is
// the backstop against racing transactions that both pass the lookup.
func (m *taggingPG) create(
	ctx context.Context, tx kpool.Tx, variableId int64, tagId int64, actor domain.Actor,
) (domain.TaggedVariable, error) {

	variable := domain.VariableRef{}
	if err := tx.QueryRow(
		ctx,
		`
		select "variable_id", "phv", "version", "participant_set", "name", "dataset_id", "study_id"
		from "source_variable" where "variable_id" = $1
		`,
		variableId,
	).Scan(
		&variable.Id, &variable.Accession.Phv, &variable.Accession.Version,
		&variable.Accession.ParticipantSet, &variable.Name,
		&variable.DatasetId, &variable.StudyId,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TaggedVariable{}, kpgerr.Missing{
				Table: "source_variable", Identity: fmt.Sprintf("variable id %d", variableId),
			}
		}
		return domain.TaggedVariable{}, err
	}

	if !actor.Can(domain.CapTag, variable.StudyId) {
		return domain.TaggedVariable{}, kpgerr.PermissionDenied{
			Capability: domain.CapTag, StudyId: variable.StudyId,
		}
	}

	var _tagId int64
	if err := tx.QueryRow(
		ctx, `select "tag_id" from "tag" where "tag_id" = $1`, tagId,
	).Scan(&_tagId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TaggedVariable{}, kpgerr.Missing{
				Table: "tag", Identity: fmt.Sprintf("tag id %d", tagId),
			}
		}
		return domain.TaggedVariable{}, err
	}

	tv := domain.TaggedVariable{
		Variable: variable, TagId: tagId, Creator: actor.Name,
	}
	if err := tx.QueryRow(
		ctx,
		`
		insert into "tagged_variable" ("variable_id", "tag_id", "creator")
		values ($1, $2, $3)
		returning "tagged_variable_id", "created_at", "updated_at"
		`,
		variableId, tagId, actor.Name,
	).Scan(&tv.Id, &tv.CreatedAt, &tv.UpdatedAt); err != nil {
		pgerr := new(pgconn.PgError)
		if errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation {
			return domain.TaggedVariable{}, kpgerr.Conflict{
				Table:    "tagged_variable",
				Identity: fmt.Sprintf("(variable %d, tag %d)", variableId, tagId),
				Reason:   "the variable already carries this tag",
			}
		}
		return domain.TaggedVariable{}, err
	}

	return tv, nil
}

func (m *taggingPG) DeleteOwn(
	ctx context.Context, taggedVariableId int64, actor domain.Actor,
) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var creator string
	var reviewed bool
	if err := tx.QueryRow(
		ctx,
		`
		select
			"creator",
			exists (
				select 1 from "dcc_review"
				where "tagged_variable_id" = "tagged_variable"."tagged_variable_id"
			)
		from "tagged_variable"
		where "tagged_variable_id" = $1
		for update of "tagged_variable"
		`,
		taggedVariableId,
	).Scan(&creator, &reviewed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpgerr.Missing{
				Table:    "tagged_variable",
				Identity: fmt.Sprintf("tagged variable id %d", taggedVariableId),
			}
		}
		return err
	}

	if creator != actor.Name {
		return kpgerr.PermissionDenied{
			Reason: "only the creator may delete their own tagged variable",
		}
	}
	if reviewed {
		return kpgerr.Conflict{
			Table:    "tagged_variable",
			Identity: fmt.Sprintf("tagged variable id %d", taggedVariableId),
			Reason:   "reviewed tagged variables are history; they can only be archived",
		}
	}

	if _, err := tx.Exec(
		ctx,
		`delete from "tagged_variable" where "tagged_variable_id" = $1`,
		taggedVariableId,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (m *taggingPG) Get(
	ctx context.Context, taggedVariableIds []int64,
) (map[int64]domain.TaggedVariableState, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select
			tv."tagged_variable_id", tv."tag_id", tv."creator", tv."archived",
			tv."created_at", tv."updated_at",
			v."variable_id", v."phv", v."version", v."participant_set",
			v."name", v."dataset_id", v."study_id",
			r."dcc_review_id", r."status", r."comment", r."creator",
			r."created_at", r."updated_at",
			s."study_response_id", s."status", s."comment", s."creator",
			s."created_at", s."updated_at",
			d."dcc_decision_id", d."decision", d."comment", d."creator",
			d."created_at", d."updated_at"
		from "tagged_variable" tv
		inner join "source_variable" v using ("variable_id")
		left join "dcc_review" r on r."tagged_variable_id" = tv."tagged_variable_id"
		left join "study_response" s on s."dcc_review_id" = r."dcc_review_id"
		left join "dcc_decision" d on d."dcc_review_id" = r."dcc_review_id"
		where tv."tagged_variable_id" = any($1)
		`,
		taggedVariableIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	states := map[int64]domain.TaggedVariableState{}
	for rows.Next() {
		state := domain.TaggedVariableState{}
		review := scannedReview{}
		response := scannedResponse{}
		decision := scannedDecision{}
		if err := rows.Scan(
			&state.Id, &state.TagId, &state.Creator, &state.Archived,
			&state.CreatedAt, &state.UpdatedAt,
			&state.Variable.Id, &state.Variable.Accession.Phv,
			&state.Variable.Accession.Version, &state.Variable.Accession.ParticipantSet,
			&state.Variable.Name, &state.Variable.DatasetId, &state.Variable.StudyId,
			&review.Id, &review.Status, &review.Comment, &review.Creator,
			&review.CreatedAt, &review.UpdatedAt,
			&response.Id, &response.Status, &response.Comment, &response.Creator,
			&response.CreatedAt, &response.UpdatedAt,
			&decision.Id, &decision.Decision, &decision.Comment, &decision.Creator,
			&decision.CreatedAt, &decision.UpdatedAt,
		); err != nil {
			return nil, err
		}
		state.Review = review.toDomain(state.Id)
		if state.Review != nil {
			state.Response = response.toDomain(state.Review.Id)
			state.Decision = decision.toDomain(state.Review.Id)
		}
		states[state.Id] = state
	}

	return states, nil
}

func (m *taggingPG) Find(
	ctx context.Context, query domain.TaggedVariableQuery,
) ([]int64, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	sql := `
	select tv."tagged_variable_id" from "tagged_variable" tv
	inner join "source_variable" v using ("variable_id")
	where true
	`
	args := []interface{}{}
	if query.TagId != nil {
		args = append(args, *query.TagId)
		sql += fmt.Sprintf(` and tv."tag_id" = $%d`, len(args))
	}
	if query.StudyId != nil {
		args = append(args, *query.StudyId)
		sql += fmt.Sprintf(` and v."study_id" = $%d`, len(args))
	}
	if query.Archived != nil {
		args = append(args, *query.Archived)
		sql += fmt.Sprintf(` and tv."archived" = $%d`, len(args))
	}
	sql += ` order by tv."tagged_variable_id"`

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
