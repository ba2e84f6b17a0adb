package domain

import (
	"strings"
	"time"
)

// Tag is a controlled-vocabulary phenotype concept, maintained by DCC staff.
//
// The catalog itself (creating and editing tags) is owned by another system;
// this service only reads tags to validate and display associations.
type Tag struct {
	Id           int64
	Title        string
	Description  string
	Instructions string
	Creator      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowerTitle is the unique, lookup form of the title.
func (t Tag) LowerTitle() string {
	return strings.ToLower(strings.TrimSpace(t.Title))
}

// TaggedVariable is the association record between one study variable and one Tag.
//
// At most one non-archived TaggedVariable exists per (variable, tag) pair.
// Archived rows are soft-removed: retained for review history, excluded from
// active displays, and allowed to coexist with a newer association for the
// same pair.
type TaggedVariable struct {
	Id        int64
	Variable  VariableRef
	TagId     int64
	Creator   string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (tv TaggedVariable) Equal(other TaggedVariable) bool {
	return tv.Id == other.Id &&
		tv.Variable == other.Variable &&
		tv.TagId == other.TagId &&
		tv.Creator == other.Creator &&
		tv.Archived == other.Archived
}

// TaggedVariableQuery filters tagged variables for display listings.
//
// Nil fields mean "do not care".
type TaggedVariableQuery struct {
	TagId    *int64
	StudyId  *int64
	Archived *bool
}
