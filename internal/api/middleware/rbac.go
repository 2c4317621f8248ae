package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/core/domain"
)

const (
	msgNoRole            = "access denied: no role assigned"
	msgInsufficientRole  = "access denied: insufficient permissions"
	msgNotOwner          = "access denied: not the resource owner"
	msgPrincipalRequired = msgTokenRequired
)

type roleCheck struct {
	allowed []domain.Role
}

// RoleCheckHandler admits principals holding one of allowed.
func RoleCheckHandler(allowed ...domain.Role) Handler {
	return &roleCheck{allowed: allowed}
}

func (h *roleCheck) Handle(c echo.Context, next echo.HandlerFunc) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return unauthorized(c, "missing_token", msgPrincipalRequired)
	}
	if p.Role == nil {
		return forbidden(c, "no_role", msgNoRole)
	}
	if !p.HasRole(h.allowed...) {
		return forbidden(c, "insufficient_role", msgInsufficientRole)
	}
	return next(c)
}

// AnyRoleHandler admits any principal that has a role at all.
func AnyRoleHandler() Handler {
	return HandlerFunc(func(c echo.Context, next echo.HandlerFunc) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return unauthorized(c, "missing_token", msgPrincipalRequired)
		}
		if p.Role == nil {
			return forbidden(c, "no_role", msgNoRole)
		}
		return next(c)
	})
}

// OwnerFunc extracts the id of the user a request targets.
type OwnerFunc func(c echo.Context) string

// ParamOwner reads the owner id from a path parameter.
func ParamOwner(name string) OwnerFunc {
	return func(c echo.Context) string { return c.Param(name) }
}

type roleOrSelf struct {
	allowed []domain.Role
	owner   OwnerFunc
}

// RoleOrSelfHandler admits principals holding one of allowed, or whose id
// equals the id returned by owner.
func RoleOrSelfHandler(allowed []domain.Role, owner OwnerFunc) Handler {
	return &roleOrSelf{allowed: allowed, owner: owner}
}

func (h *roleOrSelf) Handle(c echo.Context, next echo.HandlerFunc) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return unauthorized(c, "missing_token", msgPrincipalRequired)
	}
	if p.HasRole(h.allowed...) {
		return next(c)
	}
	if id := h.owner(c); id != "" && id == p.ID {
		return next(c)
	}
	return forbidden(c, "not_owner", msgNotOwner)
}
