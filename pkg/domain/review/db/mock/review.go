package mock

import (
	"context"
	"errors"

	"github.com/uw-gac/phenotag/pkg/domain"
	mocks "github.com/uw-gac/phenotag/pkg/domain/internal/db/mock"
	kdb "github.com/uw-gac/phenotag/pkg/domain/review/db"
)

type reviewCall struct {
	TaggedVariableId int64
	Attr             domain.ReviewAttr
	Actor            domain.Actor
}

type responseCall struct {
	DCCReviewId int64
	Attr        domain.ResponseAttr
	Actor       domain.Actor
}

type decisionCall struct {
	DCCReviewId int64
	Attr        domain.DecisionAttr
	Actor       domain.Actor
}

type candidateCall struct {
	TagId   int64
	StudyId int64
}

type ReviewInterface struct {
	Impl struct {
		AddDCCReview         func(ctx context.Context, taggedVariableId int64, attr domain.ReviewAttr, actor domain.Actor) (domain.DCCReview, error)
		UpdateDCCReview      func(ctx context.Context, taggedVariableId int64, attr domain.ReviewAttr, actor domain.Actor) (domain.DCCReview, error)
		AddStudyResponse     func(ctx context.Context, dccReviewId int64, attr domain.ResponseAttr, actor domain.Actor) (domain.StudyResponse, error)
		AddDCCDecision       func(ctx context.Context, dccReviewId int64, attr domain.DecisionAttr, actor domain.Actor) (domain.DCCDecision, error)
		UpdateDCCDecision    func(ctx context.Context, dccReviewId int64, attr domain.DecisionAttr, actor domain.Actor) (domain.DCCDecision, error)
		Resolution           func(ctx context.Context, taggedVariableId int64) (domain.Resolution, error)
		TaggedVariableOf     func(ctx context.Context, dccReviewId int64) (int64, error)
		UnreviewedIds        func(ctx context.Context, tagId int64, studyId int64) ([]int64, error)
		CountUnreviewed      func(ctx context.Context, tagId int64, studyId int64) (int, error)
		DecisionPendingIds   func(ctx context.Context, tagId int64, studyId int64) ([]int64, error)
		CountDecisionPending func(ctx context.Context, tagId int64, studyId int64) (int, error)
	}

	Calls struct {
		AddDCCReview         mocks.CallLog[reviewCall]
		UpdateDCCReview      mocks.CallLog[reviewCall]
		AddStudyResponse     mocks.CallLog[responseCall]
		AddDCCDecision       mocks.CallLog[decisionCall]
		UpdateDCCDecision    mocks.CallLog[decisionCall]
		Resolution           mocks.CallLog[int64]
		TaggedVariableOf     mocks.CallLog[int64]
		UnreviewedIds        mocks.CallLog[candidateCall]
		CountUnreviewed      mocks.CallLog[candidateCall]
		DecisionPendingIds   mocks.CallLog[candidateCall]
		CountDecisionPending mocks.CallLog[candidateCall]
	}
}

func NewReviewInterface() *ReviewInterface {
	return &ReviewInterface{}
}

var _ kdb.Interface = &ReviewInterface{}

func (m *ReviewInterface) AddDCCReview(
	ctx context.Context, taggedVariableId int64, attr domain.ReviewAttr, actor domain.Actor,
) (domain.DCCReview, error) {
	m.Calls.AddDCCReview = append(m.Calls.AddDCCReview, reviewCall{
		TaggedVariableId: taggedVariableId, Attr: attr, Actor: actor,
	})
	if m.Impl.AddDCCReview != nil {
		return m.Impl.AddDCCReview(ctx, taggedVariableId, attr, actor)
	}

	panic(errors.New("it should not be called"))
}

func (m *ReviewInterface) UpdateDCCReview(
	ctx context.Context, taggedVariableId int64, attr domain.ReviewAttr, actor domain.Actor,
) (domain.DCCReview, error) {
	m.Calls.UpdateDCCReview = append(m.Calls.UpdateDCCReview, reviewCall{
		TaggedVariableId: taggedVariableId, Attr: attr, Actor: actor,
	})
	if m.Impl.UpdateDCCReview != nil {
		return m.Impl.UpdateDCCReview(ctx, taggedVariableId, attr, actor)
	}

	panic(errors.New("it should not be called"))
}

func (m *ReviewInterface) AddStudyResponse(
	ctx context.Context, dccReviewId int64, attr domain.ResponseAttr, actor domain.Actor,
) (domain.StudyResponse, error) {
	m.Calls.AddStudyResponse = append(m.Calls.AddStudyResponse, responseCall{
		DCCReviewId: dccReviewId, Attr: attr, Actor: actor,
	})
	if m.Impl.AddStudyResponse != nil {
		return m.Impl.AddStudyResponse(ctx, dccReviewId, attr, actor)
	}

	panic(errors.New("it should not be called"))
}

func (m *ReviewInterface) AddDCCDecision(
	ctx context.Context, dccReviewId int64, attr domain.DecisionAttr, actor domain.Actor,
) (domain.DCCDecision, error) {
	m.Calls.AddDCCDecision = append(m.Calls.AddDCCDecision, decisionCall{
		DCCReviewId: dccReviewId, Attr: attr, Actor: actor,
	})
	if m.Impl.AddDCCDecision != nil {
		return m.Impl.AddDCCDecision(ctx, dccReviewId, attr, actor)
	}

	panic(errors.New("it should not be called"))
}

func (m *ReviewInterface) UpdateDCCDecision(
	ctx context.Context, dccReviewId int64, attr domain.DecisionAttr, actor domain.Actor,
) (domain.DCCDecision, error) {
	m.Calls.UpdateDCCDecision = append(m.Calls.UpdateDCCDecision, decisionCall{
		DCCReviewId: dccReviewId, Attr: attr, Actor: actor,
	})
	if m.Impl.UpdateDCCDecision != nil {
		return m.Impl.UpdateDCCDecision(ctx, dccReviewId, attr, actor)
	}

	panic(errors.New("it should not be called"))
}

func (m *ReviewInterface) Resolution(
	ctx context.Context, taggedVariableId int64,
) (domain.Resolution, error) {
	m.Calls.Resolution = append(m.Calls.Resolution, taggedVariableId)
	if m.Impl.Resolution != nil {
		return m.Impl.Resolution(ctx, taggedVariableId)
	}

	panic(errors.New("it should not be called"))
}

func (m *ReviewInterface) TaggedVariableOf(
	ctx context.Context, dccReviewId int64,
) (int64, error) {
	m.Calls.TaggedVariableOf = append(m.Calls.TaggedVariableOf, dccReviewId)
	if m.Impl.TaggedVariableOf != nil {
		return m.Impl.TaggedVariableOf(ctx, dccReviewId)
	}

	panic(errors.New("it should not be called"))
}

func (m *ReviewInterface) UnreviewedIds(
	ctx context.Context, tagId int64, studyId int64,
) ([]int64, error) {
	m.Calls.UnreviewedIds = append(m.Calls.UnreviewedIds, candidateCall{
		TagId: tagId, StudyId: studyId,
	})
	if m.Impl.UnreviewedIds != nil {
		return m.Impl.UnreviewedIds(ctx, tagId, studyId)
	}

	panic(errors.New("it should not be called"))
}

func (m *ReviewInterface) CountUnreviewed(
	ctx context.Context, tagId int64, studyId int64,
) (int, error) {
	m.Calls.CountUnreviewed = append(m.Calls.CountUnreviewed, candidateCall{
		TagId: tagId, StudyId: studyId,
	})
	if m.Impl.CountUnreviewed != nil {
		return m.Impl.CountUnreviewed(ctx, tagId, studyId)
	}

	panic(errors.New("it should not be called"))
}

func (m *ReviewInterface) DecisionPendingIds(
	ctx context.Context, tagId int64, studyId int64,
) ([]int64, error) {
	m.Calls.DecisionPendingIds = append(m.Calls.DecisionPendingIds, candidateCall{
		TagId: tagId, StudyId: studyId,
	})
	if m.Impl.DecisionPendingIds != nil {
		return m.Impl.DecisionPendingIds(ctx, tagId, studyId)
	}

	panic(errors.New("it should not be called"))
}

func (m *ReviewInterface) CountDecisionPending(
	ctx context.Context, tagId int64, studyId int64,
) (int, error) {
	m.Calls.CountDecisionPending = append(m.Calls.CountDecisionPending, candidateCall{
		TagId: tagId, StudyId: studyId,
	})
	if m.Impl.CountDecisionPending != nil {
		return m.Impl.CountDecisionPending(ctx, tagId, studyId)
	}

	panic(errors.New("it should not be called"))
}
