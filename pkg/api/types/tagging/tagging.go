package tagging

import (
	"time"

	apireview "github.com/uw-gac/phenotag/pkg/api/types/review"
	"github.com/uw-gac/phenotag/pkg/domain"
)

// TagRequest associates one variable, named by accession, with a tag.
type TagRequest struct {
	Tag      int64  `json:"tag"`
	Variable string `json:"variable"`
}

// BulkTagRequest applies one tag to many variables atomically.
type BulkTagRequest struct {
	Tag       int64    `json:"tag"`
	Variables []string `json:"variables"`
}

type Variable struct {
	Id        int64  `json:"id"`
	Accession string `json:"accession"`
	Name      string `json:"name"`
	DatasetId int64  `json:"dataset"`
	StudyId   int64  `json:"study"`
}

func ComposeVariable(v domain.VariableRef) Variable {
	return Variable{
		Id:        v.Id,
		Accession: v.Accession.String(),
		Name:      v.Name,
		DatasetId: v.DatasetId,
		StudyId:   v.StudyId,
	}
}

type Summary struct {
	Id        int64     `json:"id"`
	Variable  Variable  `json:"variable"`
	Tag       int64     `json:"tag"`
	Creator   string    `json:"creator"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ComposeSummary(tv domain.TaggedVariable) Summary {
	return Summary{
		Id:        tv.Id,
		Variable:  ComposeVariable(tv.Variable),
		Tag:       tv.TagId,
		Creator:   tv.Creator,
		Archived:  tv.Archived,
		CreatedAt: tv.CreatedAt,
		UpdatedAt: tv.UpdatedAt,
	}
}

// Detail is a tagged variable with its review records and derived
// resolution.
type Detail struct {
	Summary

	Resolution string                    `json:"resolution"`
	Review     *apireview.Detail         `json:"dccReview,omitempty"`
	Response   *apireview.ResponseDetail `json:"studyResponse,omitempty"`
	Decision   *apireview.DecisionDetail `json:"dccDecision,omitempty"`
}

func ComposeDetail(s domain.TaggedVariableState) Detail {
	d := Detail{
		Summary:    ComposeSummary(s.TaggedVariable),
		Resolution: string(s.Resolution()),
	}
	if s.Review != nil {
		r := apireview.ComposeDetail(*s.Review)
		d.Review = &r
	}
	if s.Response != nil {
		r := apireview.ComposeResponseDetail(*s.Response)
		d.Response = &r
	}
	if s.Decision != nil {
		dd := apireview.ComposeDecisionDetail(*s.Decision)
		d.Decision = &dd
	}
	return d
}
