package mock

import (
	"context"
	"errors"

	"github.com/uw-gac/phenotag/pkg/domain"
	mocks "github.com/uw-gac/phenotag/pkg/domain/internal/db/mock"
	kdb "github.com/uw-gac/phenotag/pkg/domain/traits/db"
)

type TraitsInterface struct {
	Impl struct {
		GetVariables    func(ctx context.Context, variableIds []int64) (map[int64]domain.VariableRef, error)
		LookupAccession func(ctx context.Context, accession string) (domain.VariableRef, error)
	}

	Calls struct {
		GetVariables    mocks.CallLog[[]int64]
		LookupAccession mocks.CallLog[string]
	}
}

func NewTraitsInterface() *TraitsInterface {
	return &TraitsInterface{}
}

var _ kdb.Interface = &TraitsInterface{}

func (m *TraitsInterface) GetVariables(
	ctx context.Context, variableIds []int64,
) (map[int64]domain.VariableRef, error) {
	m.Calls.GetVariables = append(m.Calls.GetVariables, variableIds)
	if m.Impl.GetVariables != nil {
		return m.Impl.GetVariables(ctx, variableIds)
	}

	panic(errors.New("it should not be called"))
}

func (m *TraitsInterface) LookupAccession(
	ctx context.Context, accession string,
) (domain.VariableRef, error) {
	m.Calls.LookupAccession = append(m.Calls.LookupAccession, accession)
	if m.Impl.LookupAccession != nil {
		return m.Impl.LookupAccession(ctx, accession)
	}

	panic(errors.New("it should not be called"))
}
