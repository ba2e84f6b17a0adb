package domain

// Capability is a study-scoped permission of an actor.
type Capability string

const (
	// apply tags to variables of the study
	CapTag Capability = "tag"

	// perform the first DCC review step
	CapDCCReview Capability = "dcc-review"

	// respond to a needs-followup review on behalf of the study
	CapStudyRespond Capability = "study-respond"

	// make the final DCC decision on a disputed review
	CapDCCDecide Capability = "dcc-decide"
)

type CapabilitySet map[Capability]struct{}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := CapabilitySet{}
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// Actor is the authenticated identity performing an operation.
//
// DCC staff act on every study; other actors carry explicit study grants
// (the studies they may tag, and the studies they represent).
type Actor struct {
	Name string

	// DCC staff: review, decide and tag on all studies.
	DCC bool

	// study ids the actor may tag variables of
	Taggable []int64

	// study ids the actor responds for
	Represents []int64
}

// CapabilitiesOn derives the actor's capability set for one study.
func (a Actor) CapabilitiesOn(studyId int64) CapabilitySet {
	caps := CapabilitySet{}
	if a.DCC {
		caps[CapTag] = struct{}{}
		caps[CapDCCReview] = struct{}{}
		caps[CapDCCDecide] = struct{}{}
	}
	for _, s := range a.Taggable {
		if s == studyId {
			caps[CapTag] = struct{}{}
			break
		}
	}
	for _, s := range a.Represents {
		if s == studyId {
			caps[CapStudyRespond] = struct{}{}
			break
		}
	}
	return caps
}

// Can tests a single capability on a single study.
func (a Actor) Can(c Capability, studyId int64) bool {
	return a.CapabilitiesOn(studyId).Has(c)
}
