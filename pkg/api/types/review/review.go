package review

import (
	"time"

	"github.com/uw-gac/phenotag/pkg/domain"
)

// Spec is the submitted content of a DCC review.
type Spec struct {
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
}

func (s Spec) Attr() (domain.ReviewAttr, error) {
	status, err := domain.AsReviewStatus(s.Status)
	if err != nil {
		return domain.ReviewAttr{}, err
	}
	return domain.ReviewAttr{Status: status, Comment: s.Comment}, nil
}

type Detail struct {
	Id               int64     `json:"id"`
	TaggedVariableId int64     `json:"taggedVariable"`
	Status           string    `json:"status"`
	Comment          string    `json:"comment,omitempty"`
	Creator          string    `json:"creator"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func ComposeDetail(r domain.DCCReview) Detail {
	return Detail{
		Id:               r.Id,
		TaggedVariableId: r.TaggedVariableId,
		Status:           r.Status.String(),
		Comment:          r.Comment,
		Creator:          r.Creator,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// ResponseSpec is the submitted content of a study response.
type ResponseSpec struct {
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
}

func (s ResponseSpec) Attr() (domain.ResponseAttr, error) {
	status, err := domain.AsResponseStatus(s.Status)
	if err != nil {
		return domain.ResponseAttr{}, err
	}
	return domain.ResponseAttr{Status: status, Comment: s.Comment}, nil
}

type ResponseDetail struct {
	Id          int64     `json:"id"`
	DCCReviewId int64     `json:"dccReview"`
	Status      string    `json:"status"`
	Comment     string    `json:"comment,omitempty"`
	Creator     string    `json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ComposeResponseDetail(r domain.StudyResponse) ResponseDetail {
	return ResponseDetail{
		Id:          r.Id,
		DCCReviewId: r.DCCReviewId,
		Status:      r.Status.String(),
		Comment:     r.Comment,
		Creator:     r.Creator,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// DecisionSpec is the submitted content of a final decision.
type DecisionSpec struct {
	Decision string `json:"decision"`
	Comment  string `json:"comment"`
}

func (s DecisionSpec) Attr() (domain.DecisionAttr, error) {
	decision, err := domain.AsDecisionStatus(s.Decision)
	if err != nil {
		return domain.DecisionAttr{}, err
	}
	return domain.DecisionAttr{Decision: decision, Comment: s.Comment}, nil
}

type DecisionDetail struct {
	Id          int64     `json:"id"`
	DCCReviewId int64     `json:"dccReview"`
	Decision    string    `json:"decision"`
	Comment     string    `json:"comment"`
	Creator     string    `json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ComposeDecisionDetail(d domain.DCCDecision) DecisionDetail {
	return DecisionDetail{
		Id:          d.Id,
		DCCReviewId: d.DCCReviewId,
		Decision:    d.Decision.String(),
		Comment:     d.Comment,
		Creator:     d.Creator,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// Resolution is the derived pipeline status of one tagged variable.
type Resolution struct {
	TaggedVariableId int64  `json:"taggedVariable"`
	Resolution       string `json:"resolution"`
}
