package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/api/middleware"
	"github.com/99minutos/user-management/internal/core/domain"
)

// ctxPrincipal returns the principal attached by the auth pipeline. Its
// absence means the route was registered without a guard.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.ID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "access token required")
	}
	return p, nil
}

// normalizer is implemented by requests that canonicalise fields before
// validation.
type normalizer interface {
	normalize()
}

// bindAndValidate decodes the body into req, normalizes it and runs struct
// validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func parseOptionalRole(s *string) (*domain.Role, error) {
	if s == nil {
		return nil, nil
	}
	r, err := domain.ParseRole(*s)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "role must be one of: Admin Manager User")
	}
	return &r, nil
}

func reqCtx(c echo.Context) context.Context {
	return c.Request().Context()
}
