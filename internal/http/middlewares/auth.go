package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"skillhub.com/skillhub/internal/auth"
	"skillhub.com/skillhub/internal/services"
)

// ActorKey is where the resolved session actor lives on the echo context.
const ActorKey = "actor"

// Auth validates the bearer token and injects the actor into the request
// context. Handlers read it once and pass it down explicitly.
func Auth(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := tokens.Validate(strings.TrimPrefix(header, prefix))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(ActorKey, services.Actor{
				ID:       claims.UserID,
				Username: claims.Username,
				Role:     claims.Role,
			})

			return next(c)
		}
	}
}

// ActorFrom reads the actor set by Auth. It panics on routes that are
// not behind the middleware; that is a wiring bug, not a runtime state.
func ActorFrom(c echo.Context) services.Actor {
	return c.Get(ActorKey).(services.Actor)
}
