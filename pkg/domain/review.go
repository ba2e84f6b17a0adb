package domain

import (
	"fmt"
	"time"
)

type ReviewStatus string

const (
	// The DCC reviewer confirmed the tagged variable as correct.
	ReviewConfirmed ReviewStatus = "confirmed"

	// The DCC reviewer flagged the tagged variable for removal;
	// the study is asked to follow up.
	ReviewNeedsFollowup ReviewStatus = "needs_followup"
)

func (rs ReviewStatus) String() string {
	return string(rs)
}

func AsReviewStatus(status string) (ReviewStatus, error) {
	switch status {
	case string(ReviewConfirmed):
		return ReviewConfirmed, nil
	case string(ReviewNeedsFollowup):
		return ReviewNeedsFollowup, nil
	default:
		return "", fmt.Errorf("%w: '%s' is not ReviewStatus", ErrValidation, status)
	}
}

type ResponseStatus string

const (
	// The study agrees the tagged variable should be removed.
	ResponseAgree ResponseStatus = "agree"

	// The study disagrees with removal; a DCC decision is required.
	ResponseDisagree ResponseStatus = "disagree"
)

func (rs ResponseStatus) String() string {
	return string(rs)
}

func AsResponseStatus(status string) (ResponseStatus, error) {
	switch status {
	case string(ResponseAgree):
		return ResponseAgree, nil
	case string(ResponseDisagree):
		return ResponseDisagree, nil
	default:
		return "", fmt.Errorf("%w: '%s' is not ResponseStatus", ErrValidation, status)
	}
}

type DecisionStatus string

const (
	// Keep the tagged variable despite the followup flag.
	DecisionConfirm DecisionStatus = "confirm"

	// Remove (archive) the tagged variable.
	DecisionRemove DecisionStatus = "remove"
)

func (ds DecisionStatus) String() string {
	return string(ds)
}

func AsDecisionStatus(status string) (DecisionStatus, error) {
	switch status {
	case string(DecisionConfirm):
		return DecisionConfirm, nil
	case string(DecisionRemove):
		return DecisionRemove, nil
	default:
		return "", fmt.Errorf("%w: '%s' is not DecisionStatus", ErrValidation, status)
	}
}

// DCCReview is the first quality-review step of a TaggedVariable.
// At most one exists per TaggedVariable.
type DCCReview struct {
	Id               int64
	TaggedVariableId int64
	Status           ReviewStatus
	Comment          string
	Creator          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StudyResponse is the study's answer to a needs-followup DCCReview.
// At most one exists per DCCReview.
type StudyResponse struct {
	Id          int64
	DCCReviewId int64
	Status      ResponseStatus
	Comment     string
	Creator     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DCCDecision is the final DCC ruling after a disagreeing StudyResponse.
// At most one exists per DCCReview, but it may be revised at any time.
type DCCDecision struct {
	Id          int64
	DCCReviewId int64
	Decision    DecisionStatus
	Comment     string
	Creator     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReviewAttr is the actor-submitted content of a DCCReview.
type ReviewAttr struct {
	Status  ReviewStatus
	Comment string
}

// A needs-followup review must say what the study should follow up on.
func (a ReviewAttr) Validate() error {
	if _, err := AsReviewStatus(string(a.Status)); err != nil {
		return err
	}
	if a.Status == ReviewNeedsFollowup && a.Comment == "" {
		return fmt.Errorf("%w: comment is required to flag for followup", ErrValidation)
	}
	return nil
}

// ResponseAttr is the actor-submitted content of a StudyResponse.
type ResponseAttr struct {
	Status  ResponseStatus
	Comment string
}

// A disagreeing response must say why the tagged variable should be kept.
func (a ResponseAttr) Validate() error {
	if _, err := AsResponseStatus(string(a.Status)); err != nil {
		return err
	}
	if a.Status == ResponseDisagree && a.Comment == "" {
		return fmt.Errorf("%w: comment is required to disagree with removal", ErrValidation)
	}
	return nil
}

// DecisionAttr is the actor-submitted content of a DCCDecision.
type DecisionAttr struct {
	Decision DecisionStatus
	Comment  string
}

// Decisions close a disputed review; they always carry an explanation.
func (a DecisionAttr) Validate() error {
	if _, err := AsDecisionStatus(string(a.Decision)); err != nil {
		return err
	}
	if a.Comment == "" {
		return fmt.Errorf("%w: comment is required for a final decision", ErrValidation)
	}
	return nil
}

// Resolution is the derived pipeline status of a TaggedVariable.
//
// It is a pure function of which review records exist and their outcomes,
// and is never stored.
type Resolution string

const (
	// Some review step is still pending.
	Open Resolution = "open"

	// The tagged variable is confirmed and stays in active displays.
	Confirmed Resolution = "confirmed"

	// The tagged variable is archived (soft-removed).
	Removed Resolution = "removed"
)

// TaggedVariableState is a TaggedVariable with whatever review records
// exist for it. Absent records are nil.
type TaggedVariableState struct {
	TaggedVariable
	Review   *DCCReview
	Response *StudyResponse
	Decision *DCCDecision
}

// Resolution derives the pipeline status per the invariant graph:
// a TaggedVariable is resolved exactly when it is archived, or its review
// confirmed it, or the study agreed to removal, or a final decision exists.
func (s TaggedVariableState) Resolution() Resolution {
	if s.Decision != nil {
		if s.Decision.Decision == DecisionRemove {
			return Removed
		}
		return Confirmed
	}
	if s.Archived {
		return Removed
	}
	if s.Review != nil {
		if s.Review.Status == ReviewConfirmed {
			return Confirmed
		}
		if s.Response != nil && s.Response.Status == ResponseAgree {
			return Removed
		}
	}
	return Open
}

// Resolved reports whether the review pipeline is closed for this
// tagged variable.
func (s TaggedVariableState) Resolved() bool {
	return s.Resolution() != Open
}
