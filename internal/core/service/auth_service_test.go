package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
	"github.com/contentkosh/institute-api/internal/infrastructure/token"
)

type stubUserRepo struct {
	nextID      int64
	users       map[string]*domain.User
	assignments map[int64][]domain.BusinessUser
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:       make(map[string]*domain.User),
		assignments: make(map[int64][]domain.BusinessUser),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.Email] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmailWithRoles(_ context.Context, email string) (*domain.User, []domain.BusinessUser, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil, domain.ErrUserNotFound
	}
	return cloneUser(u), r.assignments[u.ID], nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	for _, u := range r.users {
		if u.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type stubThrottle struct {
	failures map[string]int
	blocked  map[string]bool
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), blocked: make(map[string]bool)}
}

func (t *stubThrottle) TooMany(_ context.Context, email string) (bool, error) {
	return t.blocked[email], nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	t.failures[email] = 0
	return nil
}

func newTestAuthService(repo *stubUserRepo, throttle *stubThrottle) (*AuthService, *token.JWTCodec) {
	codec := token.NewJWTCodec("test-secret", time.Hour)
	var th ports.LoginThrottle
	if throttle != nil {
		th = throttle
	}
	return NewAuthService(repo, codec, th, nil, zerolog.Nop()), codec
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), "  Alice@Example.COM ", "s3cret", "Alice")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	cases := []struct {
		name                  string
		email, password, user string
	}{
		{"missing email", "", "pass", "Bob"},
		{"missing password", "bob@example.com", "", "Bob"},
		{"missing name", "bob@example.com", "pass", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.password, tc.user)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "bob@example.com", "pass", "Bob"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	// Different casing still collides after normalization.
	if _, err := svc.Register(context.Background(), "BOB@example.com", "pass2", "Bobby"); err != domain.ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	svc, codec := newTestAuthService(repo, throttle)

	user, err := svc.Register(context.Background(), "carol@example.com", "s3cret", "Carol")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.assignments[user.ID] = []domain.BusinessUser{
		{ID: 1, UserID: user.ID, BusinessID: 42, Role: domain.RoleTeacher, IsActive: true},
	}
	throttle.failures["carol@example.com"] = 3

	identity, signed, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if identity.UserID != user.ID || identity.BusinessID != 42 || identity.Role != domain.RoleTeacher {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	decoded, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if decoded.UserID != user.ID || decoded.Role != domain.RoleTeacher {
		t.Fatalf("decoded identity mismatch: %+v", decoded)
	}
	if throttle.failures["carol@example.com"] != 0 {
		t.Fatalf("expected failure counter reset, got %d", throttle.failures["carol@example.com"])
	}
}

func TestAuthService_Login_NoAssignments(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), "dave@example.com", "pass", "Dave")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	identity, _, err := svc.Login(context.Background(), "dave@example.com", "pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if identity.UserID != user.ID {
		t.Fatalf("unexpected user id: %d", identity.UserID)
	}
	if identity.Role != domain.RoleGuest || identity.BusinessID != domain.NoBusiness {
		t.Fatalf("expected guest identity, got %+v", identity)
	}
}

func TestAuthService_Login_FirstAssignmentWins(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), "erin@example.com", "pass", "Erin")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.assignments[user.ID] = []domain.BusinessUser{
		{ID: 1, UserID: user.ID, BusinessID: 7, Role: domain.RoleAdmin, IsActive: false},
		{ID: 2, UserID: user.ID, BusinessID: 9, Role: domain.RoleStudent, IsActive: true},
	}

	identity, _, err := svc.Login(context.Background(), "erin@example.com", "pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if identity.BusinessID != 7 || identity.Role != domain.RoleAdmin {
		t.Fatalf("expected first assignment, got %+v", identity)
	}
}

func TestAuthService_Login_SoleInactiveAssignment(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo, nil)

	user, err := svc.Register(context.Background(), "gina@example.com", "pass", "Gina")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.assignments[user.ID] = []domain.BusinessUser{
		{ID: 1, UserID: user.ID, BusinessID: 5, Role: domain.RoleTeacher, IsActive: false},
	}

	identity, _, err := svc.Login(context.Background(), "gina@example.com", "pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if identity.BusinessID != 5 || identity.Role != domain.RoleTeacher {
		t.Fatalf("expected the inactive assignment to carry the identity, got %+v", identity)
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	svc, _ := newTestAuthService(repo, throttle)

	if _, err := svc.Register(context.Background(), "frank@example.com", "right", "Frank"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, unknownErr := svc.Login(context.Background(), "nobody@example.com", "whatever")
	_, _, wrongErr := svc.Login(context.Background(), "frank@example.com", "wrong")

	if unknownErr != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if wrongErr != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
	if throttle.failures["nobody@example.com"] != 1 || throttle.failures["frank@example.com"] != 1 {
		t.Fatalf("expected one recorded failure each, got %+v", throttle.failures)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	svc, _ := newTestAuthService(repo, throttle)

	if _, err := svc.Register(context.Background(), "gina@example.com", "pass", "Gina"); err != nil {
		t.Fatalf("register: %v", err)
	}
	throttle.blocked["gina@example.com"] = true

	if _, _, err := svc.Login(context.Background(), "gina@example.com", "pass"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}
