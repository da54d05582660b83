package ports

import (
	"context"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

// BusinessRepository persists the tenant record.
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) (*domain.Business, error)
	FindByID(ctx context.Context, id int64) (*domain.Business, error)
	// FindFirst returns the installation's business record, or
	// domain.ErrBusinessNotFound when none exists yet.
	FindFirst(ctx context.Context) (*domain.Business, error)
	Update(ctx context.Context, id int64, update UpdateBusinessInput) (*domain.Business, error)
	Delete(ctx context.Context, id int64) error
}

// UpdateBusinessInput carries partial business updates; nil fields are
// left unchanged.
type UpdateBusinessInput struct {
	InstituteName *string
	Tagline       *string
	ContactNumber *string
	Email         *string
	Address       *string
	YoutubeURL    *string
	InstagramURL  *string
	LinkedinURL   *string
	FacebookURL   *string
}

// BusinessService guards the single-record invariant around the repository.
type BusinessService interface {
	Create(ctx context.Context, business *domain.Business) (*domain.Business, error)
	Get(ctx context.Context, id int64) (*domain.Business, error)
	Update(ctx context.Context, id int64, update UpdateBusinessInput) (*domain.Business, error)
	Delete(ctx context.Context, id int64) error
}
