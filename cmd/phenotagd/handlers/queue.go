package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	apierr "github.com/uw-gac/phenotag/pkg/api/types/errors"
	apiqueue "github.com/uw-gac/phenotag/pkg/api/types/queue"
	reviewdb "github.com/uw-gac/phenotag/pkg/domain/review/db"
)

// ReviewQueueHandler counts the outstanding work of both loops for one
// (tag, study) pair, so the UI can show "N variables to review".
func ReviewQueueHandler(dbReview reviewdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		tagId, err := strconv.ParseInt(c.QueryParam("tag"), 10, 64)
		if err != nil {
			return apierr.BadRequest(`query parameter "tag" is required and should be an id`, err)
		}
		studyId, err := strconv.ParseInt(c.QueryParam("study"), 10, 64)
		if err != nil {
			return apierr.BadRequest(`query parameter "study" is required and should be an id`, err)
		}

		unreviewed, err := dbReview.CountUnreviewed(ctx, tagId, studyId)
		if err != nil {
			return translate(err)
		}
		pending, err := dbReview.CountDecisionPending(ctx, tagId, studyId)
		if err != nil {
			return translate(err)
		}

		return c.JSON(http.StatusOK, apiqueue.Summary{
			Tag:             tagId,
			Study:           studyId,
			Unreviewed:      unreviewed,
			DecisionPending: pending,
		})
	}
}
