package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"
	apierr "github.com/uw-gac/phenotag/pkg/api/types/errors"
	"github.com/uw-gac/phenotag/pkg/domain"
	"github.com/uw-gac/phenotag/pkg/domain/session"
)

// translate maps domain errors onto the error envelope.
//
// ErrSuperseded is tested before ErrConflict; it wraps ErrConflict but
// carries the "someone got there first, skip ahead" advice.
func translate(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return apierr.BadRequest(err.Error(), err)
	case errors.Is(err, domain.ErrMissing):
		return apierr.NotFound()
	case domain.IsSuperseded(err):
		return apierr.Conflict(
			"already handled",
			apierr.WithAdvice("another submitter resolved this item first. skip ahead."),
			apierr.WithError(err),
		)
	case errors.Is(err, domain.ErrConflict):
		return apierr.Conflict(err.Error(), apierr.WithError(err))
	case errors.Is(err, domain.ErrPermissionDenied):
		return apierr.Forbidden("operation not permitted", err)
	case errors.Is(err, session.ErrNoSession):
		return apierr.NotFound()
	default:
		return apierr.InternalServerError(err)
	}
}

// supersededResponse answers a superseded submission, first moving the
// actor's loop in ns past the dead item when the cursor is on it. The
// advice tells the actor whether their session already moved on or they
// have to skip by hand.
func supersededResponse(
	c echo.Context,
	sessions *session.Coordinator,
	ns session.Namespace,
	actor domain.Actor,
	itemId int64,
	err error,
) *echo.HTTPError {
	skipped, serr := sessions.SkipIfCurrent(c.Request().Context(), ns, actor, itemId)
	if serr != nil {
		c.Logger().Warnf("cannot skip superseded item %d: %s", itemId, serr)
	}
	if skipped {
		return apierr.Conflict(
			"already handled",
			apierr.WithAdvice("another submitter resolved this item first. it is recorded as skipped; continue with the next item of your session."),
			apierr.WithError(err),
		)
	}
	return translate(err)
}
