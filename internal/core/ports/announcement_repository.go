package ports

import (
	"context"
	"time"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

// AnnouncementRepository persists announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.Announcement) (*domain.Announcement, error)
	FindByID(ctx context.Context, id int64) (*domain.Announcement, error)
	FindByBusiness(ctx context.Context, businessID int64) ([]domain.Announcement, error)
	// FindActiveByBusiness returns announcements whose date window
	// contains now and whose isActive flag is set.
	FindActiveByBusiness(ctx context.Context, businessID int64, now time.Time) ([]domain.Announcement, error)
	FindByRole(ctx context.Context, businessID int64, role domain.Role, now time.Time) ([]domain.Announcement, error)
	FindByDateRange(ctx context.Context, businessID int64, start, end time.Time) ([]domain.Announcement, error)
	Update(ctx context.Context, id int64, update UpdateAnnouncementInput) (*domain.Announcement, error)
	Delete(ctx context.Context, id int64) error
}

// UpdateAnnouncementInput carries partial announcement updates; nil means
// unchanged.
type UpdateAnnouncementInput struct {
	Heading           *string
	Content           *string
	StartDate         *time.Time
	EndDate           *time.Time
	IsActive          *bool
	VisibleToAdmins   *bool
	VisibleToTeachers *bool
	VisibleToStudents *bool
}

// AnnouncementService validates and orchestrates announcement operations.
type AnnouncementService interface {
	Create(ctx context.Context, announcement *domain.Announcement) (*domain.Announcement, error)
	Get(ctx context.Context, id int64) (*domain.Announcement, error)
	ByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]domain.Announcement, error)
	ByRole(ctx context.Context, businessID int64, role domain.Role) ([]domain.Announcement, error)
	ByDateRange(ctx context.Context, businessID int64, start, end time.Time) ([]domain.Announcement, error)
	Update(ctx context.Context, id int64, update UpdateAnnouncementInput) (*domain.Announcement, error)
	Delete(ctx context.Context, id int64) error
}
