package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	kpool "github.com/uw-gac/phenotag/pkg/conn/db/postgres/pool"
	"github.com/uw-gac/phenotag/pkg/domain"
	kpgerr "github.com/uw-gac/phenotag/pkg/domain/errors/dberrors/postgres"
	kdb "github.com/uw-gac/phenotag/pkg/domain/traits/db"
)

// read-only window into the imported trait directory
type traitsPG struct { // implements kdb.Interface
	pool kpool.Pool
}

func New(pool kpool.Pool) *traitsPG {
	return &traitsPG{pool: pool}
}

var _ kdb.Interface = &traitsPG{}

func (m *traitsPG) GetVariables(
	ctx context.Context, variableIds []int64,
) (map[int64]domain.VariableRef, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "variable_id", "phv", "version", "participant_set", "name", "dataset_id", "study_id"
		from "source_variable"
		where "variable_id" = any($1)
		`,
		variableIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variables := map[int64]domain.VariableRef{}
	for rows.Next() {
		v := domain.VariableRef{}
		if err := rows.Scan(
			&v.Id, &v.Accession.Phv, &v.Accession.Version, &v.Accession.ParticipantSet,
			&v.Name, &v.DatasetId, &v.StudyId,
		); err != nil {
			return nil, err
		}
		variables[v.Id] = v
	}
	return variables, nil
}

func (m *traitsPG) LookupAccession(
	ctx context.Context, accession string,
) (domain.VariableRef, error) {
	phv, err := domain.ParsePhv(accession)
	if err != nil {
		return domain.VariableRef{}, err
	}

	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return domain.VariableRef{}, err
	}
	defer conn.Release()

	v := domain.VariableRef{}
	if err := conn.QueryRow(
		ctx,
		`
		select "variable_id", "phv", "version", "participant_set", "name", "dataset_id", "study_id"
		from "source_variable"
		where "phv" = $1
		`,
		phv,
	).Scan(
		&v.Id, &v.Accession.Phv, &v.Accession.Version, &v.Accession.ParticipantSet,
		&v.Name, &v.DatasetId, &v.StudyId,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.VariableRef{}, kpgerr.Missing{
				Table:    "source_variable",
				Identity: fmt.Sprintf("accession phv%08d", phv),
			}
		}
		return domain.VariableRef{}, err
	}
	return v, nil
}
