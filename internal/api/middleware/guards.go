package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
)

// Guards builds the standard route protections. Every guard starts with
// token verification.
type Guards struct {
	tokens ports.TokenService
}

func NewGuards(tokens ports.TokenService) *Guards {
	return &Guards{tokens: tokens}
}

func (g *Guards) chain(steps ...Handler) *Chain {
	return NewChain(append([]Handler{TokenVerificationHandler(g.tokens)}, steps...)...)
}

// Authenticate requires a valid token.
func (g *Guards) Authenticate() echo.MiddlewareFunc {
	return g.chain().Middleware()
}

// RequireRole requires a valid token whose role is one of roles.
func (g *Guards) RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return g.chain(RoleCheckHandler(roles...)).Middleware()
}

// RequireAnyRole requires a valid token carrying some role.
func (g *Guards) RequireAnyRole() echo.MiddlewareFunc {
	return g.chain(AnyRoleHandler()).Middleware()
}

// RequireRoleOrSelf requires a valid token whose role is one of roles or
// whose subject is the targeted user.
func (g *Guards) RequireRoleOrSelf(roles []domain.Role, owner OwnerFunc) echo.MiddlewareFunc {
	return g.chain(RoleOrSelfHandler(roles, owner)).Middleware()
}
