package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apierr "github.com/uw-gac/phenotag/pkg/api/types/errors"
	apisessions "github.com/uw-gac/phenotag/pkg/api/types/sessions"
	apitagging "github.com/uw-gac/phenotag/pkg/api/types/tagging"
	"github.com/uw-gac/phenotag/pkg/domain"
	"github.com/uw-gac/phenotag/pkg/domain/session"
	taggingdb "github.com/uw-gac/phenotag/pkg/domain/tagging/db"
)

func pathNamespace(c echo.Context) (session.Namespace, *echo.HTTPError) {
	ns, err := session.AsNamespace(c.Param("namespace"))
	if err != nil {
		return "", apierr.BadRequest(`namespace should be "review" or "decision"`, err)
	}
	return ns, nil
}

// StartSessionHandler snapshots the candidate set of (tag, study) and
// opens a one-at-a-time loop over it.
func StartSessionHandler(
	coordinator *session.Coordinator, dbTagging taggingdb.Interface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		actor, ok := ActorOf(c)
		if !ok {
			return apierr.Unauthorized("no actor", nil)
		}

		ns, herr := pathNamespace(c)
		if herr != nil {
			return herr
		}

		req := apisessions.StartRequest{}
		if err := decodeBody(c, &req); err != nil {
			return err
		}

		s, err := coordinator.Start(ctx, ns, actor, req.Tag, req.Study)
		if err != nil {
			return translate(err)
		}

		detail, err := composeWithCurrent(c, dbTagging, s)
		if err != nil {
			return translate(err)
		}
		return c.JSON(http.StatusCreated, detail)
	}
}

// CurrentSessionHandler shows the loop state and the item at the cursor.
//
// A finished loop answers 200 with done set; no session at all is 404.
func CurrentSessionHandler(
	coordinator *session.Coordinator, dbTagging taggingdb.Interface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		actor, ok := ActorOf(c)
		if !ok {
			return apierr.Unauthorized("no actor", nil)
		}

		ns, herr := pathNamespace(c)
		if herr != nil {
			return herr
		}

		s, _, err := coordinator.Current(ctx, ns, actor)
		if errors.Is(err, session.ErrSessionComplete) {
			return c.JSON(http.StatusOK, apisessions.ComposeDetail(s, nil))
		}
		if err != nil {
			return translate(err)
		}

		detail, err := composeWithCurrent(c, dbTagging, s)
		if err != nil {
			return translate(err)
		}
		return c.JSON(http.StatusOK, detail)
	}
}

// AdvanceSessionHandler moves past the current item after it has been
// acted on.
func AdvanceSessionHandler(
	coordinator *session.Coordinator, dbTagging taggingdb.Interface,
) echo.HandlerFunc {
	return stepSessionHandler(coordinator, dbTagging, (*session.Coordinator).Advance)
}

// SkipSessionHandler passes over the current item without acting on it.
func SkipSessionHandler(
	coordinator *session.Coordinator, dbTagging taggingdb.Interface,
) echo.HandlerFunc {
	return stepSessionHandler(coordinator, dbTagging, (*session.Coordinator).Skip)
}

func stepSessionHandler(
	coordinator *session.Coordinator,
	dbTagging taggingdb.Interface,
	step func(*session.Coordinator, context.Context, session.Namespace, domain.Actor) (session.Session, error),
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		actor, ok := ActorOf(c)
		if !ok {
			return apierr.Unauthorized("no actor", nil)
		}

		ns, herr := pathNamespace(c)
		if herr != nil {
			return herr
		}

		s, err := step(coordinator, ctx, ns, actor)
		if err != nil {
			return translate(err)
		}

		detail, err := composeWithCurrent(c, dbTagging, s)
		if err != nil {
			return translate(err)
		}
		return c.JSON(http.StatusOK, detail)
	}
}

// EndSessionHandler discards the loop and reports what was skipped.
func EndSessionHandler(coordinator *session.Coordinator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		actor, ok := ActorOf(c)
		if !ok {
			return apierr.Unauthorized("no actor", nil)
		}

		ns, herr := pathNamespace(c)
		if herr != nil {
			return herr
		}

		ended, err := coordinator.End(ctx, ns, actor)
		if err != nil {
			return translate(err)
		}
		return c.JSON(http.StatusOK, apisessions.ComposeDetail(ended, nil))
	}
}

// composeWithCurrent renders the session, materializing the item under
// the cursor. A finished loop renders with done set and no current item.
func composeWithCurrent(
	c echo.Context, dbTagging taggingdb.Interface, s session.Session,
) (apisessions.Detail, error) {
	current, err := s.Current()
	if errors.Is(err, session.ErrSessionComplete) {
		return apisessions.ComposeDetail(s, nil), nil
	}
	if err != nil {
		return apisessions.Detail{}, err
	}

	states, err := dbTagging.Get(c.Request().Context(), []int64{current})
	if err != nil {
		return apisessions.Detail{}, err
	}
	state, ok := states[current]
	if !ok {
		// the row went away after the snapshot; show the loop state anyway
		return apisessions.ComposeDetail(s, nil), nil
	}

	detail := apitagging.ComposeDetail(state)
	return apisessions.ComposeDetail(s, &detail), nil
}
