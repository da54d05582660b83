package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/session"
)

func requestWithIdentity(t *testing.T, e *echo.Echo, identity *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if identity != nil {
		ctx := session.Begin(req.Context())
		if err := session.SetIdentity(ctx, *identity); err != nil {
			t.Fatalf("set identity: %v", err)
		}
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRBAC_AllowsListedRole(t *testing.T) {
	e := echo.New()
	c, rec := requestWithIdentity(t, e, &domain.Identity{UserID: 1, BusinessID: 2, Role: domain.RoleTeacher})

	called := false
	handler := RBAC(domain.RoleAdmin, domain.RoleTeacher)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ForbidsUnlistedRole(t *testing.T) {
	e := echo.New()
	c, rec := requestWithIdentity(t, e, &domain.Identity{UserID: 1, BusinessID: 2, Role: domain.RoleStudent})

	handler := RBAC(domain.RoleAdmin, domain.RoleSuperAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertRejected(t, rec, http.StatusForbidden, "Forbidden")
}

func TestRBAC_NoHierarchy(t *testing.T) {
	// SUPERADMIN is not implicitly allowed where only ADMIN is listed.
	e := echo.New()
	c, rec := requestWithIdentity(t, e, &domain.Identity{UserID: 1, BusinessID: 2, Role: domain.RoleSuperAdmin})

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertRejected(t, rec, http.StatusForbidden, "Forbidden")
}

func TestRBAC_NoIdentity(t *testing.T) {
	e := echo.New()
	c, rec := requestWithIdentity(t, e, nil)

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertRejected(t, rec, http.StatusUnauthorized, "Unauthorized")
}

func TestRBAC_EmptySessionScope(t *testing.T) {
	// A session scope with no identity bound is still unauthorized.
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(session.Begin(req.Context()))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	assertRejected(t, rec, http.StatusUnauthorized, "Unauthorized")
}
