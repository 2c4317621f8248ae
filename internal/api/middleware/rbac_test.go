package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-management/internal/core/domain"
)

func newRBACContext(p *domain.Principal, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if p != nil {
		SetPrincipal(c, *p)
	}
	return c, rec
}

func principal(id string, role *domain.Role) *domain.Principal {
	return &domain.Principal{ID: id, Email: id + "@example.com", Role: role}
}

func runHandler(t *testing.T, h Handler, c echo.Context) bool {
	t.Helper()
	called := false
	if err := h.Handle(c, func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return called
}

func TestRoleCheck_Allows(t *testing.T) {
	c, rec := newRBACContext(principal("1", domain.RolePtr(domain.RoleAdmin)), "")

	if !runHandler(t, RoleCheckHandler(domain.RoleAdmin, domain.RoleManager), c) {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRoleCheck_WrongRole(t *testing.T) {
	c, rec := newRBACContext(principal("1", domain.RolePtr(domain.RoleUser)), "")

	if runHandler(t, RoleCheckHandler(domain.RoleAdmin), c) {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != msgInsufficientRole {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRoleCheck_NoRole(t *testing.T) {
	c, rec := newRBACContext(principal("1", nil), "")

	if runHandler(t, RoleCheckHandler(domain.RoleAdmin), c) {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := errorBody(t, rec); msg != msgNoRole {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRoleCheck_NoPrincipal(t *testing.T) {
	c, rec := newRBACContext(nil, "")

	if runHandler(t, RoleCheckHandler(domain.RoleAdmin), c) {
		t.Fatalf("should not reach next handler")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAnyRole(t *testing.T) {
	for _, role := range domain.Roles {
		c, _ := newRBACContext(principal("1", domain.RolePtr(role)), "")
		if !runHandler(t, AnyRoleHandler(), c) {
			t.Fatalf("role %s rejected", role)
		}
	}

	c, rec := newRBACContext(principal("1", nil), "")
	if runHandler(t, AnyRoleHandler(), c) {
		t.Fatalf("roleless principal admitted")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRoleOrSelf(t *testing.T) {
	allowed := []domain.Role{domain.RoleAdmin, domain.RoleManager}

	cases := []struct {
		name      string
		principal *domain.Principal
		targetID  string
		wantPass  bool
	}{
		{"allowed role on other user", principal("1", domain.RolePtr(domain.RoleManager)), "2", true},
		{"plain user on self", principal("2", domain.RolePtr(domain.RoleUser)), "2", true},
		{"roleless user on self", principal("2", nil), "2", true},
		{"plain user on other", principal("2", domain.RolePtr(domain.RoleUser)), "3", false},
		{"roleless user on other", principal("2", nil), "3", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newRBACContext(tc.principal, tc.targetID)
			passed := runHandler(t, RoleOrSelfHandler(allowed, ParamOwner("id")), c)
			if passed != tc.wantPass {
				t.Fatalf("expected pass=%v, got %v", tc.wantPass, passed)
			}
			if !tc.wantPass && rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
		})
	}
}

func TestRoleOrSelf_EmptyOwnerNeverMatches(t *testing.T) {
	c, rec := newRBACContext(&domain.Principal{ID: "", Email: "x@y.z"}, "")
	if runHandler(t, RoleOrSelfHandler([]domain.Role{domain.RoleAdmin}, ParamOwner("id")), c) {
		t.Fatalf("empty owner id must not match")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
