package session

import (
	"errors"
	"time"
)

// Namespace separates the per-actor loops so a curator can have one review
// loop and one decision loop open at the same time without cursor collision.
type Namespace string

const (
	// the one-at-a-time DCC review loop
	ReviewLoop Namespace = "review"

	// the one-at-a-time final-decision loop
	DecisionLoop Namespace = "decision"
)

func AsNamespace(ns string) (Namespace, error) {
	switch ns {
	case string(ReviewLoop):
		return ReviewLoop, nil
	case string(DecisionLoop):
		return DecisionLoop, nil
	default:
		return "", errors.New("'" + ns + "' is not a session namespace")
	}
}

// coordinator-specific signals; not true errors
var (
	ErrNoSession       = errors.New("no session")
	ErrSessionComplete = errors.New("session complete")
)

// Session is the snapshot of one in-progress loop.
//
// Items is the ordered candidate set computed when the loop started; it is
// immutable so that items resolved concurrently by someone else cannot
// shift positions and cause skips or repeats. Staleness is handled at
// submission time, not here.
type Session struct {
	Id        string    `json:"id"`
	Actor     string    `json:"actor"`
	Namespace Namespace `json:"namespace"`
	TagId     int64     `json:"tagId"`
	StudyId   int64     `json:"studyId"`
	Items     []int64   `json:"items"`
	Cursor    int       `json:"cursor"`
	Skipped   []int64   `json:"skipped,omitempty"`
	StartedAt time.Time `json:"startedAt"`
}

// Current returns the item at the cursor.
func (s Session) Current() (int64, error) {
	if len(s.Items) <= s.Cursor {
		return 0, ErrSessionComplete
	}
	return s.Items[s.Cursor], nil
}

// Advance returns the session with the cursor moved one position forward.
func (s Session) Advance() Session {
	if s.Cursor < len(s.Items) {
		s.Cursor += 1
	}
	return s
}

// Skip records the current item as skipped and advances past it.
func (s Session) Skip() Session {
	if current, err := s.Current(); err == nil {
		s.Skipped = append(s.Skipped, current)
	}
	return s.Advance()
}

// Remaining counts items at or after the cursor.
func (s Session) Remaining() int {
	if len(s.Items) <= s.Cursor {
		return 0
	}
	return len(s.Items) - s.Cursor
}
