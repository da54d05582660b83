package ports

import (
	"context"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

// UserProfile is a user together with their business assignments.
type UserProfile struct {
	User        *domain.User          `json:"user"`
	Assignments []domain.BusinessUser `json:"businessUsers"`
}

// UserService covers profile lookup and business-role assignments.
type UserService interface {
	Profile(ctx context.Context, userID int64) (*UserProfile, error)
	AssignToBusiness(ctx context.Context, userID, businessID int64, role domain.Role) (*domain.BusinessUser, error)
	UserBusinesses(ctx context.Context, userID int64) ([]domain.BusinessUser, error)
	Assignment(ctx context.Context, userID, businessID int64) (*domain.BusinessUser, error)
	BusinessUsers(ctx context.Context, businessID int64, role domain.Role, activeOnly bool) ([]domain.BusinessUser, error)
	UpdateAssignment(ctx context.Context, userID, businessID int64, update UpdateAssignmentInput) (*domain.BusinessUser, error)
	RemoveAssignment(ctx context.Context, userID, businessID int64) error
}
