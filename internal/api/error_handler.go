package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/user-management/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// domainStatus maps sentinel errors to a status and the message sent to the
// client. An empty message means the sentinel's own text is used. Order
// matters only for errors wrapping more than one sentinel.
var domainStatus = []struct {
	err    error
	status int
	msg    string
}{
	{domain.ErrPasswordTooShort, http.StatusBadRequest, ""},
	{domain.ErrEmailAlreadyTaken, http.StatusConflict, ""},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, ""},
	{domain.ErrInvalidCurrentPassword, http.StatusUnauthorized, ""},
	{domain.ErrUserNotFound, http.StatusNotFound, ""},
	{domain.ErrForbidden, http.StatusForbidden, ""},
	{domain.ErrTokenExpired, http.StatusUnauthorized, ""},
	{domain.ErrTokenInvalid, http.StatusForbidden, "invalid token"},
	{domain.ErrVerificationFailed, http.StatusForbidden, "invalid token"},
}

// NewHTTPErrorHandler renders every error as {"error": "<message>"}. Domain
// sentinels get their mapped status; anything unrecognised is logged and
// reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}

	for _, m := range domainStatus {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.msg == "" {
			return m.status, m.err.Error()
		}
		return m.status, m.msg
	}

	return http.StatusInternalServerError, "internal server error"
}
