package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/core/domain"
)

func newGuardedEcho(t *testing.T) (*echo.Echo, func(id string, role *domain.Role) string) {
	t.Helper()
	tokens := newTokens(t)
	g := NewGuards(tokens)

	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	e := echo.New()
	e.GET("/me", ok, g.Authenticate())
	e.GET("/users", ok, g.RequireAnyRole())
	e.POST("/users", ok, g.RequireRole(domain.RoleAdmin))
	e.GET("/users/:id", ok, g.RequireRoleOrSelf([]domain.Role{domain.RoleAdmin, domain.RoleManager}, ParamOwner("id")))

	issue := func(id string, role *domain.Role) string {
		tok, err := tokens.Generate(domain.Principal{ID: id, Email: id + "@example.com", Role: role})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		return tok
	}
	return e, issue
}

func TestGuards(t *testing.T) {
	e, issue := newGuardedEcho(t)

	admin := issue("1", domain.RolePtr(domain.RoleAdmin))
	manager := issue("2", domain.RolePtr(domain.RoleManager))
	user := issue("3", domain.RolePtr(domain.RoleUser))
	roleless := issue("4", nil)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"authenticate without token", http.MethodGet, "/me", "", http.StatusUnauthorized},
		{"authenticate roleless", http.MethodGet, "/me", roleless, http.StatusOK},
		{"any role without token", http.MethodGet, "/users", "", http.StatusUnauthorized},
		{"any role roleless", http.MethodGet, "/users", roleless, http.StatusForbidden},
		{"any role user", http.MethodGet, "/users", user, http.StatusOK},
		{"admin only as admin", http.MethodPost, "/users", admin, http.StatusOK},
		{"admin only as manager", http.MethodPost, "/users", manager, http.StatusForbidden},
		{"admin only as user", http.MethodPost, "/users", user, http.StatusForbidden},
		{"role or self as manager", http.MethodGet, "/users/3", manager, http.StatusOK},
		{"role or self as self", http.MethodGet, "/users/3", user, http.StatusOK},
		{"role or self as other", http.MethodGet, "/users/1", user, http.StatusForbidden},
		{"garbage token", http.MethodGet, "/me", "garbage", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}
