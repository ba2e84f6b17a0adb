package domain_test

import (
	"testing"

	"github.com/uw-gac/phenotag/pkg/domain"
)

func TestCapabilitiesOn(t *testing.T) {
	t.Run("DCC staff review, decide and tag on every study", func(t *testing.T) {
		actor := domain.Actor{Name: "curator", DCC: true}

		for _, study := range []int64{1, 7, 100} {
			caps := actor.CapabilitiesOn(study)
			for _, c := range []domain.Capability{
				domain.CapTag, domain.CapDCCReview, domain.CapDCCDecide,
			} {
				if !caps.Has(c) {
					t.Errorf("expected capability %s on study %d", c, study)
				}
			}
			if caps.Has(domain.CapStudyRespond) {
				t.Errorf("DCC staff should not respond for study %d", study)
			}
		}
	})

	t.Run("a tagger only tags the studies granted to them", func(t *testing.T) {
		actor := domain.Actor{Name: "tagger", Taggable: []int64{7}}

		if !actor.Can(domain.CapTag, 7) {
			t.Error("expected CapTag on study 7")
		}
		if actor.Can(domain.CapTag, 8) {
			t.Error("unexpected CapTag on study 8")
		}
		if actor.Can(domain.CapDCCReview, 7) {
			t.Error("unexpected CapDCCReview on study 7")
		}
	})

	t.Run("a study representative responds only for their studies", func(t *testing.T) {
		actor := domain.Actor{Name: "phenotype-pi", Represents: []int64{3, 4}}

		if !actor.Can(domain.CapStudyRespond, 3) {
			t.Error("expected CapStudyRespond on study 3")
		}
		if !actor.Can(domain.CapStudyRespond, 4) {
			t.Error("expected CapStudyRespond on study 4")
		}
		if actor.Can(domain.CapStudyRespond, 5) {
			t.Error("unexpected CapStudyRespond on study 5")
		}
	})
}
