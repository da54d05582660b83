package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

type stubUserService struct {
	businessUsersFn func(ctx context.Context, businessID int64, role domain.Role, activeOnly bool) ([]domain.BusinessUser, error)
	assignmentFn    func(ctx context.Context, userID, businessID int64) (*domain.BusinessUser, error)
}

func (s *stubUserService) Profile(context.Context, int64) (*ports.UserProfile, error) {
	return nil, nil
}

func (s *stubUserService) AssignToBusiness(context.Context, int64, int64, domain.Role) (*domain.BusinessUser, error) {
	return nil, nil
}

func (s *stubUserService) UserBusinesses(context.Context, int64) ([]domain.BusinessUser, error) {
	return nil, nil
}

func (s *stubUserService) Assignment(ctx context.Context, userID, businessID int64) (*domain.BusinessUser, error) {
	return s.assignmentFn(ctx, userID, businessID)
}

func (s *stubUserService) BusinessUsers(ctx context.Context, businessID int64, role domain.Role, activeOnly bool) ([]domain.BusinessUser, error) {
	return s.businessUsersFn(ctx, businessID, role, activeOnly)
}

func (s *stubUserService) UpdateAssignment(context.Context, int64, int64, ports.UpdateAssignmentInput) (*domain.BusinessUser, error) {
	return nil, nil
}

func (s *stubUserService) RemoveAssignment(context.Context, int64, int64) error {
	return nil
}

func newUserContext(t *testing.T, target string, names, values []string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func TestUserHandler_BusinessUsers_RoleFilterIsActiveOnly(t *testing.T) {
	var gotRole domain.Role
	var gotActiveOnly bool
	stub := &stubUserService{
		businessUsersFn: func(_ context.Context, businessID int64, role domain.Role, activeOnly bool) ([]domain.BusinessUser, error) {
			if businessID != 3 {
				t.Fatalf("unexpected business id: %d", businessID)
			}
			gotRole = role
			gotActiveOnly = activeOnly
			return []domain.BusinessUser{}, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newUserContext(t, "/?role=TEACHER", []string{"businessId"}, []string{"3"})
	if err := h.BusinessUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotRole != domain.RoleTeacher || !gotActiveOnly {
		t.Fatalf("role filter must be active-only, got role=%s activeOnly=%v", gotRole, gotActiveOnly)
	}

	c, _ = newUserContext(t, "/", []string{"businessId"}, []string{"3"})
	if err := h.BusinessUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotRole != "" || gotActiveOnly {
		t.Fatalf("unfiltered listing must include inactive assignments, got role=%s activeOnly=%v", gotRole, gotActiveOnly)
	}
}

func TestUserHandler_Assignment_Found(t *testing.T) {
	stub := &stubUserService{
		assignmentFn: func(_ context.Context, userID, businessID int64) (*domain.BusinessUser, error) {
			if userID != 7 || businessID != 2 {
				t.Fatalf("unexpected args: user=%d business=%d", userID, businessID)
			}
			return &domain.BusinessUser{ID: 11, UserID: userID, BusinessID: businessID, Role: domain.RoleStudent, IsActive: true}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newUserContext(t, "/", []string{"userId", "businessId"}, []string{"7", "2"})
	if err := h.Assignment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Assignment_Missing(t *testing.T) {
	stub := &stubUserService{
		assignmentFn: func(context.Context, int64, int64) (*domain.BusinessUser, error) {
			return nil, domain.ErrAssignmentMissing
		},
	}
	h := NewUserHandler(stub)

	c, _ := newUserContext(t, "/", []string{"userId", "businessId"}, []string{"7", "2"})
	if err := h.Assignment(c); err != domain.ErrAssignmentMissing {
		t.Fatalf("expected ErrAssignmentMissing, got %v", err)
	}
}
