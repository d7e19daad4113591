package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/speernotes/notes-system/internal/api/middleware"
	"github.com/speernotes/notes-system/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware.
// Absence means the route was registered without the middleware; fail
// closed with 401 rather than reaching the service layer unauthenticated.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p, _ := c.Get(middleware.PrincipalKey).(*domain.Principal)
	if p == nil || p.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated principal")
	}
	return p, nil
}
