package handlers

import (
	"strings"

	"github.com/labstack/echo/v4"
	apierr "github.com/uw-gac/phenotag/pkg/api/types/errors"
	"github.com/uw-gac/phenotag/pkg/domain"
	"github.com/uw-gac/phenotag/pkg/domain/identity"
)

const actorContextKey = "phenotag-actor"

// BearerAuth verifies the Authorization header and stores the resolved
// actor in the request context for ActorOf.
func BearerAuth(signKey []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				return apierr.Unauthorized("set Authorization: Bearer <token>", nil)
			}

			actor, err := identity.Verify(token, signKey)
			if err != nil {
				return apierr.Unauthorized("token is rejected", err)
			}

			SetActor(c, actor)
			return next(c)
		}
	}
}

// SetActor stores the actor for ActorOf. BearerAuth calls this; tests use
// it to act as somebody.
func SetActor(c echo.Context, actor domain.Actor) {
	c.Set(actorContextKey, actor)
}

// ActorOf extracts the actor BearerAuth stored. Handlers are only ever
// registered behind BearerAuth; a missing actor is a wiring bug.
func ActorOf(c echo.Context) (domain.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(domain.Actor)
	return actor, ok
}
