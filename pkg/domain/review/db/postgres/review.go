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
	kdb "github.com/uw-gac/phenotag/pkg/domain/review/db"
)

// a struct for DB operations of the review state machine
type reviewPG struct { // implements kdb.Interface
	pool kpool.Pool
}

func New(pool kpool.Pool) *reviewPG {
	return &reviewPG{pool: pool}
}

var _ kdb.Interface = &reviewPG{}

// Every mutating operation below runs as one transaction: the precondition
// checks on existing child records, the insert/update and the archive side
// effect commit together or not at all. Parent rows are locked "for update"
// so two human-paced requests cannot both pass the same existence check;
// the unique index on each child table is the backstop.

func (m *reviewPG) AddDCCReview(
	ctx context.Context, taggedVariableId int64, attr domain.ReviewAttr, actor domain.Actor,
) (domain.DCCReview, error) {
	if err := attr.Validate(); err != nil {
		return domain.DCCReview{}, err
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.DCCReview{}, err
	}
	defer tx.Rollback(ctx)

	var archived bool
	var studyId int64
	if err := tx.QueryRow(
		ctx,
		`
		select tv."archived", v."study_id"
		from "tagged_variable" tv
		inner join "source_variable" v using ("variable_id")
		where tv."tagged_variable_id" = $1
		for update of tv
		`,
		taggedVariableId,
	).Scan(&archived, &studyId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DCCReview{}, kpgerr.Missing{
				Table:    "tagged_variable",
				Identity: fmt.Sprintf("tagged variable id %d", taggedVariableId),
			}
		}
		return domain.DCCReview{}, err
	}

	if !actor.Can(domain.CapDCCReview, studyId) {
		return domain.DCCReview{}, kpgerr.PermissionDenied{
			Capability: domain.CapDCCReview, StudyId: studyId,
		}
	}
	if archived {
		return domain.DCCReview{}, kpgerr.Conflict{
			Table:    "tagged_variable",
			Identity: fmt.Sprintf("tagged variable id %d", taggedVariableId),
			Reason:   "archived tagged variables cannot acquire a review",
		}
	}

	review := domain.DCCReview{
		TaggedVariableId: taggedVariableId,
		Status:           attr.Status,
		Comment:          attr.Comment,
		Creator:          actor.Name,
	}
	if err := tx.QueryRow(
		ctx,
		`
		insert into "dcc_review" ("tagged_variable_id", "status", "comment", "creator")
		values ($1, $2, $3, $4)
		returning "dcc_review_id", "created_at", "updated_at"
		`,
		taggedVariableId, string(attr.Status), attr.Comment, actor.Name,
	).Scan(&review.Id, &review.CreatedAt, &review.UpdatedAt); err != nil {
		pgerr := new(pgconn.PgError)
		if errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation {
			return domain.DCCReview{}, kpgerr.Superseded{
				Table:    "dcc_review",
				Identity: fmt.Sprintf("tagged variable id %d", taggedVariableId),
				Reason:   "the tagged variable has already been reviewed",
			}
		}
		return domain.DCCReview{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.DCCReview{}, err
	}
	return review, nil
}

func (m *reviewPG) UpdateDCCReview(
	ctx context.Context, taggedVariableId int64, attr domain.ReviewAttr, actor domain.Actor,
) (domain.DCCReview, error) {
	if err := attr.Validate(); err != nil {
		return domain.DCCReview{}, err
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.DCCReview{}, err
	}
	defer tx.Rollback(ctx)

	var reviewId, studyId int64
	var responded bool
	if err := tx.QueryRow(
		ctx,
		`
		select
			r."dcc_review_id", v."study_id",
			exists (
				select 1 from "study_response" s
				where s."dcc_review_id" = r."dcc_review_id"
			)
		from "dcc_review" r
		inner join "tagged_variable" tv using ("tagged_variable_id")
		inner join "source_variable" v using ("variable_id")
		where r."tagged_variable_id" = $1
		for update of r
		`,
		taggedVariableId,
	).Scan(&reviewId, &studyId, &responded); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DCCReview{}, kpgerr.Missing{
				Table:    "dcc_review",
				Identity: fmt.Sprintf("review of tagged variable id %d", taggedVariableId),
			}
		}
		return domain.DCCReview{}, err
	}

	if !actor.Can(domain.CapDCCReview, studyId) {
		return domain.DCCReview{}, kpgerr.PermissionDenied{
			Capability: domain.CapDCCReview, StudyId: studyId,
		}
	}
	if responded {
		return domain.DCCReview{}, kpgerr.Conflict{
			Table:    "dcc_review",
			Identity: fmt.Sprintf("review of tagged variable id %d", taggedVariableId),
			Reason:   "a study response exists; the review is immutable history",
		}
	}

	review := domain.DCCReview{
		Id:               reviewId,
		TaggedVariableId: taggedVariableId,
		Status:           attr.Status,
		Comment:          attr.Comment,
	}
	if err := tx.QueryRow(
		ctx,
		`
		update "dcc_review"
		set "status" = $1, "comment" = $2, "updated_at" = now()
		where "dcc_review_id" = $3
		returning "creator", "created_at", "updated_at"
		`,
		string(attr.Status), attr.Comment, reviewId,
	).Scan(&review.Creator, &review.CreatedAt, &review.UpdatedAt); err != nil {
		return domain.DCCReview{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.DCCReview{}, err
	}
	return review, nil
}

func (m *reviewPG) AddStudyResponse(
	ctx context.Context, dccReviewId int64, attr domain.ResponseAttr, actor domain.Actor,
) (domain.StudyResponse, error) {
	if err := attr.Validate(); err != nil {
		return domain.StudyResponse{}, err
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.StudyResponse{}, err
	}
	defer tx.Rollback(ctx)

	var reviewStatus string
	var taggedVariableId, studyId int64
	var archived bool
	if err := tx.QueryRow(
		ctx,
		`
		select r."status", tv."tagged_variable_id", tv."archived", v."study_id"
		from "dcc_review" r
		inner join "tagged_variable" tv using ("tagged_variable_id")
		inner join "source_variable" v using ("variable_id")
		where r."dcc_review_id" = $1
		for update of r, tv
		`,
		dccReviewId,
	).Scan(&reviewStatus, &taggedVariableId, &archived, &studyId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StudyResponse{}, kpgerr.Missing{
				Table:    "dcc_review",
				Identity: fmt.Sprintf("dcc review id %d", dccReviewId),
			}
		}
		return domain.StudyResponse{}, err
	}

	if !actor.Can(domain.CapStudyRespond, studyId) {
		return domain.StudyResponse{}, kpgerr.PermissionDenied{
			Capability: domain.CapStudyRespond, StudyId: studyId,
		}
	}
	if domain.ReviewStatus(reviewStatus) != domain.ReviewNeedsFollowup {
		return domain.StudyResponse{}, kpgerr.Conflict{
			Table:    "dcc_review",
			Identity: fmt.Sprintf("dcc review id %d", dccReviewId),
			Reason:   "the review did not ask for study followup",
		}
	}
	if archived {
		return domain.StudyResponse{}, kpgerr.Conflict{
			Table:    "tagged_variable",
			Identity: fmt.Sprintf("tagged variable id %d", taggedVariableId),
			Reason:   "the tagged variable is already archived",
		}
	}

	response := domain.StudyResponse{
		DCCReviewId: dccReviewId,
		Status:      attr.Status,
		Comment:     attr.Comment,
		Creator:     actor.Name,
	}
	if err := tx.QueryRow(
		ctx,
		`
		insert into "study_response" ("dcc_review_id", "status", "comment", "creator")
		values ($1, $2, $3, $4)
		returning "study_response_id", "created_at", "updated_at"
		`,
		dccReviewId, string(attr.Status), attr.Comment, actor.Name,
	).Scan(&response.Id, &response.CreatedAt, &response.UpdatedAt); err != nil {
		pgerr := new(pgconn.PgError)
		if errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation {
			return domain.StudyResponse{}, kpgerr.Superseded{
				Table:    "study_response",
				Identity: fmt.Sprintf("dcc review id %d", dccReviewId),
				Reason:   "the review already has a study response",
			}
		}
		return domain.StudyResponse{}, err
	}

	// agreeing to removal ends the pipeline: archive right here
	if attr.Status == domain.ResponseAgree {
		if _, err := tx.Exec(
			ctx,
			`
			update "tagged_variable" set "archived" = true, "updated_at" = now()
			where "tagged_variable_id" = $1
			`,
			taggedVariableId,
		); err != nil {
			return domain.StudyResponse{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.StudyResponse{}, err
	}
	return response, nil
}

func (m *reviewPG) AddDCCDecision(
	ctx context.Context, dccReviewId int64, attr domain.DecisionAttr, actor domain.Actor,
) (domain.DCCDecision, error) {
	if err := attr.Validate(); err != nil {
		return domain.DCCDecision{}, err
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.DCCDecision{}, err
	}
	defer tx.Rollback(ctx)

	var responseStatus *string
	var taggedVariableId, studyId int64
	if err := tx.QueryRow(
		ctx,
		`
		select s."status", tv."tagged_variable_id", v."study_id"
		from "dcc_review" r
		left join "study_response" s using ("dcc_review_id")
		inner join "tagged_variable" tv using ("tagged_variable_id")
		inner join "source_variable" v using ("variable_id")
		where r."dcc_review_id" = $1
		for update of r, tv
		`,
		dccReviewId,
	).Scan(&responseStatus, &taggedVariableId, &studyId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DCCDecision{}, kpgerr.Missing{
				Table:    "dcc_review",
				Identity: fmt.Sprintf("dcc review id %d", dccReviewId),
			}
		}
		return domain.DCCDecision{}, err
	}

	if !actor.Can(domain.CapDCCDecide, studyId) {
		return domain.DCCDecision{}, kpgerr.PermissionDenied{
			Capability: domain.CapDCCDecide, StudyId: studyId,
		}
	}
	if responseStatus == nil || domain.ResponseStatus(*responseStatus) != domain.ResponseDisagree {
		return domain.DCCDecision{}, kpgerr.Conflict{
			Table:    "dcc_review",
			Identity: fmt.Sprintf("dcc review id %d", dccReviewId),
			Reason:   "a decision requires a disagreeing study response",
		}
	}

	decision := domain.DCCDecision{
		DCCReviewId: dccReviewId,
		Decision:    attr.Decision,
		Comment:     attr.Comment,
		Creator:     actor.Name,
	}
	if err := tx.QueryRow(
		ctx,
		`
		insert into "dcc_decision" ("dcc_review_id", "decision", "comment", "creator")
		values ($1, $2, $3, $4)
		returning "dcc_decision_id", "created_at", "updated_at"
		`,
		dccReviewId, string(attr.Decision), attr.Comment, actor.Name,
	).Scan(&decision.Id, &decision.CreatedAt, &decision.UpdatedAt); err != nil {
		pgerr := new(pgconn.PgError)
		if errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation {
			return domain.DCCDecision{}, kpgerr.Superseded{
				Table:    "dcc_decision",
				Identity: fmt.Sprintf("dcc review id %d", dccReviewId),
				Reason:   "the review has already been decided",
			}
		}
		return domain.DCCDecision{}, err
	}

	if err := m.applyDecision(ctx, tx, taggedVariableId, attr.Decision); err != nil {
		return domain.DCCDecision{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.DCCDecision{}, err
	}
	return decision, nil
}

func (m *reviewPG) UpdateDCCDecision(
	ctx context.Context, dccReviewId int64, attr domain.DecisionAttr, actor domain.Actor,
) (domain.DCCDecision, error) {
	if err := attr.Validate(); err != nil {
		return domain.DCCDecision{}, err
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return domain.DCCDecision{}, err
	}
	defer tx.Rollback(ctx)

	var decisionId, taggedVariableId, studyId int64
	if err := tx.QueryRow(
		ctx,
		`
		select d."dcc_decision_id", tv."tagged_variable_id", v."study_id"
		from "dcc_decision" d
		inner join "dcc_review" r using ("dcc_review_id")
		inner join "tagged_variable" tv using ("tagged_variable_id")
		inner join "source_variable" v using ("variable_id")
		where d."dcc_review_id" = $1
		for update of d, tv
		`,
		dccReviewId,
	).Scan(&decisionId, &taggedVariableId, &studyId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DCCDecision{}, kpgerr.Missing{
				Table:    "dcc_decision",
				Identity: fmt.Sprintf("decision of dcc review id %d", dccReviewId),
			}
		}
		return domain.DCCDecision{}, err
	}

	if !actor.Can(domain.CapDCCDecide, studyId) {
		return domain.DCCDecision{}, kpgerr.PermissionDenied{
			Capability: domain.CapDCCDecide, StudyId: studyId,
		}
	}

	decision := domain.DCCDecision{
		Id:          decisionId,
		DCCReviewId: dccReviewId,
		Decision:    attr.Decision,
		Comment:     attr.Comment,
	}
	if err := tx.QueryRow(
		ctx,
		`
		update "dcc_decision"
		set "decision" = $1, "comment" = $2, "updated_at" = now()
		where "dcc_decision_id" = $3
		returning "creator", "created_at", "updated_at"
		`,
		string(attr.Decision), attr.Comment, decisionId,
	).Scan(&decision.Creator, &decision.CreatedAt, &decision.UpdatedAt); err != nil {
		return domain.DCCDecision{}, err
	}

	if err := m.applyDecision(ctx, tx, taggedVariableId, attr.Decision); err != nil {
		return domain.DCCDecision{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.DCCDecision{}, err
	}
	return decision, nil
}

// applyDecision projects the decision onto the archived flag.
//
// Idempotent: re-applying the same decision leaves the row untouched
// (including "updated_at"), switching the outcome toggles the flag.
func (m *reviewPG) applyDecision(
	ctx context.Context, tx kpool.Tx, taggedVariableId int64, decision domain.DecisionStatus,
) error {
	_, err := tx.Exec(
		ctx,
		`
		update "tagged_variable" set "archived" = $1, "updated_at" = now()
		where "tagged_variable_id" = $2 and "archived" <> $1
		`,
		decision == domain.DecisionRemove, taggedVariableId,
	)
	return err
}

func (m *reviewPG) Resolution(
	ctx context.Context, taggedVariableId int64,
) (domain.Resolution, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	var archived bool
	var reviewStatus, responseStatus, decisionStatus *string
	if err := conn.QueryRow(
		ctx,
		`
		select tv."archived", r."status", s."status", d."decision"
		from "tagged_variable" tv
		left join "dcc_review" r on r."tagged_variable_id" = tv."tagged_variable_id"
		left join "study_response" s on s."dcc_review_id" = r."dcc_review_id"
		left join "dcc_decision" d on d."dcc_review_id" = r."dcc_review_id"
		where tv."tagged_variable_id" = $1
		`,
		taggedVariableId,
	).Scan(&archived, &reviewStatus, &responseStatus, &decisionStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", kpgerr.Missing{
				Table:    "tagged_variable",
				Identity: fmt.Sprintf("tagged variable id %d", taggedVariableId),
			}
		}
		return "", err
	}

	state := domain.TaggedVariableState{
		TaggedVariable: domain.TaggedVariable{Id: taggedVariableId, Archived: archived},
	}
	if reviewStatus != nil {
		state.Review = &domain.DCCReview{Status: domain.ReviewStatus(*reviewStatus)}
	}
	if responseStatus != nil {
		state.Response = &domain.StudyResponse{Status: domain.ResponseStatus(*responseStatus)}
	}
	if decisionStatus != nil {
		state.Decision = &domain.DCCDecision{Decision: domain.DecisionStatus(*decisionStatus)}
	}
	return state.Resolution(), nil
}

func (m *reviewPG) TaggedVariableOf(
	ctx context.Context, dccReviewId int64,
) (int64, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var taggedVariableId int64
	if err := conn.QueryRow(
		ctx,
		`select "tagged_variable_id" from "dcc_review" where "dcc_review_id" = $1`,
		dccReviewId,
	).Scan(&taggedVariableId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, kpgerr.Missing{
				Table:    "dcc_review",
				Identity: fmt.Sprintf("dcc review id %d", dccReviewId),
			}
		}
		return 0, err
	}
	return taggedVariableId, nil
}

func (m *reviewPG) UnreviewedIds(
	ctx context.Context, tagId int64, studyId int64,
) ([]int64, error) {
	return m.queryIds(
		ctx,
		`
		select tv."tagged_variable_id"
		from "tagged_variable" tv
		inner join "source_variable" v using ("variable_id")
		where tv."tag_id" = $1 and v."study_id" = $2 and not tv."archived"
		and not exists (
			select 1 from "dcc_review" r
			where r."tagged_variable_id" = tv."tagged_variable_id"
		)
		order by tv."tagged_variable_id"
		`,
		tagId, studyId,
	)
}

func (m *reviewPG) CountUnreviewed(
	ctx context.Context, tagId int64, studyId int64,
) (int, error) {
	return m.queryCount(
		ctx,
		`
		select count(*)
		from "tagged_variable" tv
		inner join "source_variable" v using ("variable_id")
		where tv."tag_id" = $1 and v."study_id" = $2 and not tv."archived"
		and not exists (
			select 1 from "dcc_review" r
			where r."tagged_variable_id" = tv."tagged_variable_id"
		)
		`,
		tagId, studyId,
	)
}

func (m *reviewPG) DecisionPendingIds(
	ctx context.Context, tagId int64, studyId int64,
) ([]int64, error) {
	return m.queryIds(
		ctx,
		`
		select tv."tagged_variable_id"
		from "tagged_variable" tv
		inner join "source_variable" v using ("variable_id")
		inner join "dcc_review" r on r."tagged_variable_id" = tv."tagged_variable_id"
		inner join "study_response" s on s."dcc_review_id" = r."dcc_review_id"
		where tv."tag_id" = $1 and v."study_id" = $2
		and r."status" = $3 and s."status" = $4
		and not exists (
			select 1 from "dcc_decision" d
			where d."dcc_review_id" = r."dcc_review_id"
		)
		order by tv."tagged_variable_id"
		`,
		tagId, studyId,
		string(domain.ReviewNeedsFollowup), string(domain.ResponseDisagree),
	)
}

func (m *reviewPG) CountDecisionPending(
	ctx context.Context, tagId int64, studyId int64,
) (int, error) {
	return m.queryCount(
		ctx,
		`
		select count(*)
		from "tagged_variable" tv
		inner join "source_variable" v using ("variable_id")
		inner join "dcc_review" r on r."tagged_variable_id" = tv."tagged_variable_id"
		inner join "study_response" s on s."dcc_review_id" = r."dcc_review_id"
		where tv."tag_id" = $1 and v."study_id" = $2
		and r."status" = $3 and s."status" = $4
		and not exists (
			select 1 from "dcc_decision" d
			where d."dcc_review_id" = r."dcc_review_id"
		)
		`,
		tagId, studyId,
		string(domain.ReviewNeedsFollowup), string(domain.ResponseDisagree),
	)
}

func (m *reviewPG) queryIds(
	ctx context.Context, sql string, args ...interface{},
) ([]int64, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

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

func (m *reviewPG) queryCount(
	ctx context.Context, sql string, args ...interface{},
) (int, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var count int
	if err := conn.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
