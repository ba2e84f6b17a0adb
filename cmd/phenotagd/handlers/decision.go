package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/uw-gac/phenotag/pkg/api/types/errors"
	apireview "github.com/uw-gac/phenotag/pkg/api/types/review"
	"github.com/uw-gac/phenotag/pkg/domain"
	reviewdb "github.com/uw-gac/phenotag/pkg/domain/review/db"
	"github.com/uw-gac/phenotag/pkg/domain/session"
)

// AddDCCDecisionHandler closes a disputed review.
func AddDCCDecisionHandler(
	dbReview reviewdb.Interface, sessions *session.Coordinator,
) echo.HandlerFunc {
	return decisionHandler(dbReview, dbReview.AddDCCDecision, sessions, http.StatusCreated)
}

// UpdateDCCDecisionHandler revises the final decision. The archive/keep
// side effect is re-applied to match.
func UpdateDCCDecisionHandler(
	dbReview reviewdb.Interface, sessions *session.Coordinator,
) echo.HandlerFunc {
	return decisionHandler(dbReview, dbReview.UpdateDCCDecision, sessions, http.StatusOK)
}

func decisionHandler(
	dbReview reviewdb.Interface,
	op func(ctx context.Context, dccReviewId int64, attr domain.DecisionAttr, actor domain.Actor) (domain.DCCDecision, error),
	sessions *session.Coordinator,
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		actor, ok := ActorOf(c)
		if !ok {
			return apierr.Unauthorized("no actor", nil)
		}

		id, herr := pathId(c, "dccReviewId")
		if herr != nil {
			return herr
		}

		spec := apireview.DecisionSpec{}
		if err := decodeBody(c, &spec); err != nil {
			return err
		}
		attr, err := spec.Attr()
		if err != nil {
			return translate(err)
		}

		decided, err := op(ctx, id, attr, actor)
		if domain.IsSuperseded(err) {
			// the decision loop cursors over tagged variables; find the
			// one this review belongs to before trying to skip it
			taggedVariableId, lerr := dbReview.TaggedVariableOf(ctx, id)
			if lerr != nil {
				return translate(err)
			}
			return supersededResponse(
				c, sessions, session.DecisionLoop, actor, taggedVariableId, err,
			)
		}
		if err != nil {
			return translate(err)
		}
		return c.JSON(status, apireview.ComposeDecisionDetail(decided))
	}
}
