package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/contentkosh/institute-api/internal/api/metrics"
	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

// bcryptCost matches the cost the credential store has always used;
// changing it only affects newly written hashes.
const bcryptCost = 12

// AuthService implements registration and login on top of the credential
// store, the token codec and the redis login throttle.
type AuthService struct {
	users    ports.UserRepository
	codec    ports.TokenCodec
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

// NewAuthService wires an AuthService. throttle and audit may be nil;
// both are best-effort collaborators.
func NewAuthService(
	users ports.UserRepository,
	codec ports.TokenCodec,
	throttle ports.LoginThrottle,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, codec: codec, throttle: throttle, audit: audit, log: log}
}

// NormalizeEmail lower-cases and trims an email so lookups and uniqueness
// are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, domain.Invalid("Email, password, and name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Uniqueness lives in the store; a concurrent duplicate surfaces here
	// as ErrEmailExists no matter who lost the race.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.recordAudit(domain.AuditEvent{
		UserID:     created.ID,
		Action:     domain.AuditRegister,
		OccurredAt: now,
	})
	s.log.Info().Str("email", created.Email).Int64("user_id", created.ID).Msg("user registered")

	return created, nil
}

// Login verifies credentials and issues a bearer token. All credential
// failures collapse into ErrInvalidCredentials so responses cannot be used
// to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Identity, string, error) {
	start := time.Now()
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.Identity{}, "", domain.Invalid("Email and password are required")
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return domain.Identity{}, "", domain.ErrTooManyAttempts
		}
	}

	user, assignments, err := s.users.FindByEmailWithRoles(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return domain.Identity{}, "", s.failLogin(ctx, email, 0)
		}
		return domain.Identity{}, "", fmt.Errorf("login lookup: %w", err)
	}

	// bcrypt rejects malformed stored digests with an error, which takes
	// the same path as a wrong password: a corrupted record never grants
	// access.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.Identity{}, "", s.failLogin(ctx, email, user.ID)
	}

	identity := domain.NewIdentity(user, assignments)
	tokenStr, err := s.codec.Issue(identity)
	if err != nil {
		return domain.Identity{}, "", fmt.Errorf("issue token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.LoginDuration.Observe(time.Since(start).Seconds())
	s.recordAudit(domain.AuditEvent{
		UserID:     identity.UserID,
		BusinessID: identity.BusinessID,
		Action:     domain.AuditLogin,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Str("email", email).Int64("user_id", identity.UserID).Str("role", string(identity.Role)).Msg("user logged in")

	return identity, tokenStr, nil
}

// failLogin counts a failed attempt and returns the uniform credential
// error. userID is zero when the email is unknown.
func (s *AuthService) failLogin(ctx context.Context, email string, userID int64) error {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login throttle record failed")
		}
	}
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	s.recordAudit(domain.AuditEvent{
		UserID:     userID,
		Action:     domain.AuditLoginFailed,
		Detail:     email,
		OccurredAt: time.Now().UTC(),
	})
	return domain.ErrInvalidCredentials
}

func (s *AuthService) recordAudit(event domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Record(event)
	}
}
