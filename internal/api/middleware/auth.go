package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/core/domain"
	"github.com/99minutos/user-management/internal/core/ports"
)

const principalKey = "auth.principal"

const (
	msgTokenRequired = "access token required"
	msgTokenExpired  = "token expired"
	msgTokenInvalid  = "invalid token"
)

// SetPrincipal attaches p to the request context.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal attached by TokenVerificationHandler.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

type tokenVerification struct {
	tokens ports.TokenService
}

// TokenVerificationHandler authenticates the bearer token. A missing token
// or an expired one is 401; any other verification failure is 403.
func TokenVerificationHandler(tokens ports.TokenService) Handler {
	return &tokenVerification{tokens: tokens}
}

func (h *tokenVerification) Handle(c echo.Context, next echo.HandlerFunc) error {
	token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	if token == "" {
		return unauthorized(c, "missing_token", msgTokenRequired)
	}

	p, err := h.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return unauthorized(c, "token_expired", msgTokenExpired)
		}
		return forbidden(c, "token_invalid", msgTokenInvalid)
	}

	SetPrincipal(c, p)
	return next(c)
}

// bearerToken returns the token from "Bearer <token>", or "" when the header
// is absent, uses another scheme, or carries an empty token.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
