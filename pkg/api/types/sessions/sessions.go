package sessions

import (
	"time"

	apitagging "github.com/uw-gac/phenotag/pkg/api/types/tagging"
	"github.com/uw-gac/phenotag/pkg/domain/session"
)

// StartRequest scopes a loop to one (tag, study) pair.
type StartRequest struct {
	Tag   int64 `json:"tag"`
	Study int64 `json:"study"`
}

// Detail is the state of one review loop.
//
// Done is set when every item has been passed; Current then is absent.
type Detail struct {
	Id        string    `json:"id"`
	Namespace string    `json:"namespace"`
	Tag       int64     `json:"tag"`
	Study     int64     `json:"study"`
	Position  int       `json:"position"`
	Total     int       `json:"total"`
	Skipped   []int64   `json:"skipped,omitempty"`
	Done      bool      `json:"done"`
	StartedAt time.Time `json:"startedAt"`

	Current *apitagging.Detail `json:"current,omitempty"`
}

// ComposeDetail renders s; current may be nil (loop finished or the
// caller does not materialize items).
func ComposeDetail(s session.Session, current *apitagging.Detail) Detail {
	return Detail{
		Id:        s.Id,
		Namespace: string(s.Namespace),
		Tag:       s.TagId,
		Study:     s.StudyId,
		Position:  s.Cursor,
		Total:     len(s.Items),
		Skipped:   s.Skipped,
		Done:      s.Cursor >= len(s.Items),
		StartedAt: s.StartedAt,
		Current:   current,
	}
}
