package mock

import (
	"context"
	"errors"

	"github.com/uw-gac/phenotag/pkg/domain"
	mocks "github.com/uw-gac/phenotag/pkg/domain/internal/db/mock"
	kdb "github.com/uw-gac/phenotag/pkg/domain/tagging/db"
)

type TaggingInterface struct {
	Impl struct {
		Create     func(ctx context.Context, variableId int64, tagId int64, actor domain.Actor) (domain.TaggedVariable, error)
		BulkCreate func(ctx context.Context, variableIds []int64, tagId int64, actor domain.Actor) ([]domain.TaggedVariable, error)
		DeleteOwn  func(ctx context.Context, taggedVariableId int64, actor domain.Actor) error
		Get        func(ctx context.Context, taggedVariableIds []int64) (map[int64]domain.TaggedVariableState, error)
		Find       func(ctx context.Context, query domain.TaggedVariableQuery) ([]int64, error)
	}

	Calls struct {
		Create mocks.CallLog[struct {
			VariableId int64
			TagId      int64
			Actor      domain.Actor
		}]
		BulkCreate mocks.CallLog[struct {
			VariableIds []int64
			TagId       int64
			Actor       domain.Actor
		}]
		DeleteOwn mocks.CallLog[struct {
			TaggedVariableId int64
			Actor            domain.Actor
		}]
		Get  mocks.CallLog[[]int64]
		Find mocks.CallLog[domain.TaggedVariableQuery]
	}
}

func NewTaggingInterface() *TaggingInterface {
	return &TaggingInterface{}
}

var _ kdb.Interface = &TaggingInterface{}

func (m *TaggingInterface) Create(
	ctx context.Context, variableId int64, tagId int64, actor domain.Actor,
) (domain.TaggedVariable, error) {
	m.Calls.Create = append(m.Calls.Create, struct {
		VariableId int64
		TagId      int64
		Actor      domain.Actor
	}{VariableId: variableId, TagId: tagId, Actor: actor})
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, variableId, tagId, actor)
	}

	panic(errors.New("it should not be called"))
}

func (m *TaggingInterface) BulkCreate(
	ctx context.Context, variableIds []int64, tagId int64, actor domain.Actor,
) ([]domain.TaggedVariable, error) {
	m.Calls.BulkCreate = append(m.Calls.BulkCreate, struct {
		VariableIds []int64
		TagId       int64
		Actor       domain.Actor
	}{VariableIds: variableIds, TagId: tagId, Actor: actor})
	if m.Impl.BulkCreate != nil {
		return m.Impl.BulkCreate(ctx, variableIds, tagId, actor)
	}

	panic(errors.New("it should not be called"))
}

func (m *TaggingInterface) DeleteOwn(
	ctx context.Context, taggedVariableId int64, actor domain.Actor,
) error {
	m.Calls.DeleteOwn = append(m.Calls.DeleteOwn, struct {
		TaggedVariableId int64
		Actor            domain.Actor
	}{TaggedVariableId: taggedVariableId, Actor: actor})
	if m.Impl.DeleteOwn != nil {
		return m.Impl.DeleteOwn(ctx, taggedVariableId, actor)
	}

	panic(errors.New("it should not be called"))
}

func (m *TaggingInterface) Get(
	ctx context.Context, taggedVariableIds []int64,
) (map[int64]domain.TaggedVariableState, error) {
	m.Calls.Get = append(m.Calls.Get, taggedVariableIds)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, taggedVariableIds)
	}

	panic(errors.New("it should not be called"))
}

func (m *TaggingInterface) Find(
	ctx context.Context, query domain.TaggedVariableQuery,
) ([]int64, error) {
	m.Calls.Find = append(m.Calls.Find, query)
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, query)
	}

	panic(errors.New("it should not be called"))
}
