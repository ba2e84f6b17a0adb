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

// AddDCCReviewHandler performs the first review step of a tagged variable.
func AddDCCReviewHandler(
	dbReview reviewdb.Interface, sessions *session.Coordinator,
) echo.HandlerFunc {
	return reviewHandler(dbReview.AddDCCReview, sessions, http.StatusCreated)
}

// UpdateDCCReviewHandler revises an open review.
func UpdateDCCReviewHandler(
	dbReview reviewdb.Interface, sessions *session.Coordinator,
) echo.HandlerFunc {
	return reviewHandler(dbReview.UpdateDCCReview, sessions, http.StatusOK)
}

func reviewHandler(
	op func(ctx context.Context, taggedVariableId int64, attr domain.ReviewAttr, actor domain.Actor) (domain.DCCReview, error),
	sessions *session.Coordinator,
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, ok := ActorOf(c)
		if !ok {
			return apierr.Unauthorized("no actor", nil)
		}

		id, herr := pathId(c, "taggedVariableId")
		if herr != nil {
			return herr
		}

		spec := apireview.Spec{}
		if err := decodeBody(c, &spec); err != nil {
			return err
		}
		attr, err := spec.Attr()
		if err != nil {
			return translate(err)
		}

		created, err := op(c.Request().Context(), id, attr, actor)
		if domain.IsSuperseded(err) {
			return supersededResponse(c, sessions, session.ReviewLoop, actor, id, err)
		}
		if err != nil {
			return translate(err)
		}
		return c.JSON(status, apireview.ComposeDetail(created))
	}
}

// ResolutionHandler derives the pipeline status of a tagged variable.
func ResolutionHandler(dbReview reviewdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, herr := pathId(c, "taggedVariableId")
		if herr != nil {
			return herr
		}

		resolution, err := dbReview.Resolution(ctx, id)
		if err != nil {
			return translate(err)
		}
		return c.JSON(http.StatusOK, apireview.Resolution{
			TaggedVariableId: id,
			Resolution:       string(resolution),
		})
	}
}
