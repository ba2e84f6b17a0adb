package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// VariableRef locates a dbGaP phenotype variable in the trait directory.
//
// The trait directory is read-only for this service; rows are imported from
// upstream by a separate job.
type VariableRef struct {
	Id        int64
	Accession Accession
	Name      string
	DatasetId int64
	StudyId   int64
}

// Accession is a dbGaP variable accession, e.g. "phv00000803.v1.p1".
type Accession struct {
	Phv            int64
	Version        int
	ParticipantSet int
}

func (a Accession) String() string {
	return fmt.Sprintf("phv%08d.v%d.p%d", a.Phv, a.Version, a.ParticipantSet)
}

// ParsePhv extracts the phv number from an accession-ish string.
//
// dbGaP zero-pads phv numbers to 8 digits, but users paste them in many
// forms. All of "803", "00000803", "phv00000803" and "phv00000803.v1.p1"
// name the same variable.
func ParsePhv(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "phv")
	if base, _, cut := strings.Cut(s, "."); cut {
		s = base
	}
	if s == "" {
		return 0, fmt.Errorf("%w: empty accession", ErrValidation)
	}
	phv, err := strconv.ParseInt(s, 10, 64)
	if err != nil || phv <= 0 {
		return 0, fmt.Errorf("%w: %q is not a phv accession", ErrValidation, s)
	}
	return phv, nil
}
