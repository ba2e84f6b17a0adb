package postgres

import (
	"time"

	"github.com/uw-gac/phenotag/pkg/domain"
)

// scan targets for left-joined review records; all columns are null when
// the record does not exist.

type scannedReview struct {
	Id        *int64
	Status    *string
	Comment   *string
	Creator   *string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

func (s scannedReview) toDomain(taggedVariableId int64) *domain.DCCReview {
	if s.Id == nil {
		return nil
	}
	return &domain.DCCReview{
		Id:               *s.Id,
		TaggedVariableId: taggedVariableId,
		Status:           domain.ReviewStatus(*s.Status),
		Comment:          *s.Comment,
		Creator:          *s.Creator,
		CreatedAt:        *s.CreatedAt,
		UpdatedAt:        *s.UpdatedAt,
	}
}

type scannedResponse struct {
	Id        *int64
	Status    *string
	Comment   *string
	Creator   *string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

func (s scannedResponse) toDomain(dccReviewId int64) *domain.StudyResponse {
	if s.Id == nil {
		return nil
	}
	return &domain.StudyResponse{
		Id:          *s.Id,
		DCCReviewId: dccReviewId,
		Status:      domain.ResponseStatus(*s.Status),
		Comment:     *s.Comment,
		Creator:     *s.Creator,
		CreatedAt:   *s.CreatedAt,
		UpdatedAt:   *s.UpdatedAt,
	}
}

type scannedDecision struct {
	Id        *int64
	Decision  *string
	Comment   *string
	Creator   *string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

func (s scannedDecision) toDomain(dccReviewId int64) *domain.DCCDecision {
	if s.Id == nil {
		return nil
	}
	return &domain.DCCDecision{
		Id:          *s.Id,
		DCCReviewId: dccReviewId,
		Decision:    domain.DecisionStatus(*s.Decision),
		Comment:     *s.Comment,
		Creator:     *s.Creator,
		CreatedAt:   *s.CreatedAt,
		UpdatedAt:   *s.UpdatedAt,
	}
}
