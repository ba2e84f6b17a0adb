package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/uw-gac/phenotag/pkg/api/types/errors"
	apireview "github.com/uw-gac/phenotag/pkg/api/types/review"
	reviewdb "github.com/uw-gac/phenotag/pkg/domain/review/db"
)

// AddStudyResponseHandler records the study's answer to a needs-followup
// review. Agreeing archives the tagged variable.
func AddStudyResponseHandler(dbReview reviewdb.Interface) echo.HandlerFunc {
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

		spec := apireview.ResponseSpec{}
		if err := decodeBody(c, &spec); err != nil {
			return err
		}
		attr, err := spec.Attr()
		if err != nil {
			return translate(err)
		}

		created, err := dbReview.AddStudyResponse(ctx, id, attr, actor)
		if err != nil {
			return translate(err)
		}
		return c.JSON(http.StatusCreated, apireview.ComposeResponseDetail(created))
	}
}
