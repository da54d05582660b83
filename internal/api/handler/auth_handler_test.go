package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password, name string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (domain.Identity, string, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	return s.registerFn(ctx, email, password, name)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (domain.Identity, string, error) {
	return s.loginFn(ctx, email, password)
}

func newAuthContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, email, password, name string) (*domain.User, error) {
			if email != "alice@example.com" || password != "s3cret" || name != "Alice" {
				t.Fatalf("unexpected args: %s %s %s", email, password, name)
			}
			return &domain.User{ID: 1, Email: email, Name: name}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, `{"email":"alice@example.com","password":"s3cret","name":"Alice"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Message != "User registered successfully" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Data.ID != 1 || resp.Data.Email != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp.Data)
	}
	if strings.Contains(rec.Body.String(), "passwordHash") {
		t.Fatalf("response leaks password hash: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, `{"email":"alice@example.com"}`)
	err := h.Register(c)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrEmailExists
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, `{"email":"bob@example.com","password":"pass","name":"Bob"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	identity := domain.Identity{UserID: 9, Email: "carol@example.com", Name: "Carol", BusinessID: 4, Role: domain.RoleAdmin}
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (domain.Identity, string, error) {
			if email != "carol@example.com" || password != "pw" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return identity, "signed-token", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, `{"email":"carol@example.com","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Token string `json:"token"`
			User  struct {
				ID         int64  `json:"id"`
				BusinessID int64  `json:"businessId"`
				Role       string `json:"role"`
			} `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Message != "Login successful" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Data.Token != "signed-token" {
		t.Fatalf("expected token in response, got %q", resp.Data.Token)
	}
	if resp.Data.User.ID != 9 || resp.Data.User.BusinessID != 4 || resp.Data.User.Role != "ADMIN" {
		t.Fatalf("unexpected user payload: %+v", resp.Data.User)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (domain.Identity, string, error) {
			return domain.Identity{}, "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, `{"email":"x@example.com","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
