package db

import (
	"context"

	"github.com/uw-gac/phenotag/pkg/domain"
)

// Interface is the read-only window into the trait directory.
//
// Variables, datasets and studies are imported from dbGaP by a separate
// job; this service never writes them.
type Interface interface {
	// GetVariables retrieves variables by id.
	//
	// Ids absent from the directory are omitted from the returned map.
	GetVariables(ctx context.Context, variableIds []int64) (map[int64]domain.VariableRef, error)

	// LookupAccession finds a variable by its phv accession string.
	//
	// The lookup is tolerant of leading-zero variation: "803",
	// "00000803" and "phv00000803.v1.p1" all hit phv00000803.
	//
	// Returns ErrMissing when no variable carries the accession,
	// ErrValidation when the string is not an accession at all.
	LookupAccession(ctx context.Context, accession string) (domain.VariableRef, error)
}
