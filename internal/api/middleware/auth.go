package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/speernotes/notes-system/internal/core/ports"
)

// PrincipalKey is the echo context key under which the resolved principal is
// stored for the lifetime of one request.
const PrincipalKey = "principal"

// Auth resolves the Authorization header to an authenticated principal and
// injects it into the request context. Resolution failures propagate as
// domain errors and are mapped by the central error handler.
func Auth(resolver ports.PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := resolver.Resolve(
				c.Request().Context(),
				c.Request().Header.Get(echo.HeaderAuthorization),
			)
			if err != nil {
				return err
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}
