package ports

import (
	"context"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

// AuthService implements registration and login.
type AuthService interface {
	// Register creates a credential. The email is lower-cased and trimmed
	// before storage; duplicates fail with domain.ErrEmailExists.
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	// Login verifies credentials and returns the derived identity plus a
	// signed bearer token. Unknown emails and wrong passwords are
	// indistinguishable: both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (domain.Identity, string, error)
}

// LoginThrottle limits failed login attempts per subject.
type LoginThrottle interface {
	// TooMany reports whether the subject has exhausted its attempts.
	TooMany(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, email string) error
}
