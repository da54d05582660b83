package ports

import (
	"context"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

// UserRepository persists credentials. Email uniqueness is enforced by the
// store: concurrent creates with the same email yield exactly one success
// and one domain.ErrEmailExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmailWithRoles(ctx context.Context, email string) (*domain.User, []domain.BusinessUser, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// BusinessUserRepository persists role assignments, unique per
// (user, business) pair.
type BusinessUserRepository interface {
	Create(ctx context.Context, assignment *domain.BusinessUser) (*domain.BusinessUser, error)
	FindByUserAndBusiness(ctx context.Context, userID, businessID int64) (*domain.BusinessUser, error)
	FindByUser(ctx context.Context, userID int64) ([]domain.BusinessUser, error)
	FindByBusiness(ctx context.Context, businessID int64, role domain.Role, activeOnly bool) ([]domain.BusinessUser, error)
	Update(ctx context.Context, id int64, update UpdateAssignmentInput) (*domain.BusinessUser, error)
	Delete(ctx context.Context, id int64) error
}

// UpdateAssignmentInput carries the mutable assignment fields; nil means
// leave unchanged.
type UpdateAssignmentInput struct {
	Role     *domain.Role
	IsActive *bool
}
