package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

type announcementService struct {
	announcements ports.AnnouncementRepository
	businesses    ports.BusinessRepository
	log           zerolog.Logger
}

// NewAnnouncementService returns an AnnouncementService implementation.
func NewAnnouncementService(
	announcements ports.AnnouncementRepository,
	businesses ports.BusinessRepository,
	log zerolog.Logger,
) ports.AnnouncementService {
	return &announcementService{announcements: announcements, businesses: businesses, log: log}
}

func (s *announcementService) Create(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	if strings.TrimSpace(a.Heading) == "" {
		return nil, domain.Invalid("Announcement heading is required")
	}
	if strings.TrimSpace(a.Content) == "" {
		return nil, domain.Invalid("Announcement content is required")
	}
	if a.StartDate.IsZero() || a.EndDate.IsZero() {
		return nil, domain.Invalid("Start date and end date are required")
	}
	if !a.EndDate.After(a.StartDate) {
		return nil, domain.Invalid("End date must be after start date")
	}
	if a.BusinessID <= 0 {
		return nil, domain.Invalid("Business ID is required")
	}
	if !a.VisibleToAdmins && !a.VisibleToTeachers && !a.VisibleToStudents {
		return nil, domain.Invalid("At least one role must be selected for visibility")
	}

	if _, err := s.businesses.FindByID(ctx, a.BusinessID); err != nil {
		return nil, err
	}

	created, err := s.announcements.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("heading", created.Heading).Int64("announcement_id", created.ID).Msg("announcement created")
	return created, nil
}

func (s *announcementService) Get(ctx context.Context, id int64) (*domain.Announcement, error) {
	return s.announcements.FindByID(ctx, id)
}

func (s *announcementService) ByBusiness(ctx context.Context, businessID int64, activeOnly bool) ([]domain.Announcement, error) {
	if businessID <= 0 {
		return nil, domain.Invalid("Valid Business ID is required")
	}
	if activeOnly {
		return s.announcements.FindActiveByBusiness(ctx, businessID, time.Now().UTC())
	}
	return s.announcements.FindByBusiness(ctx, businessID)
}

func (s *announcementService) ByRole(ctx context.Context, businessID int64, role domain.Role) ([]domain.Announcement, error) {
	if businessID <= 0 {
		return nil, domain.Invalid("Valid Business ID is required")
	}
	switch role {
	case domain.RoleAdmin, domain.RoleSuperAdmin, domain.RoleTeacher, domain.RoleStudent:
	default:
		return nil, domain.Invalid("Invalid role. Must be ADMIN, SUPERADMIN, TEACHER, or STUDENT")
	}
	return s.announcements.FindByRole(ctx, businessID, role, time.Now().UTC())
}

func (s *announcementService) ByDateRange(ctx context.Context, businessID int64, start, end time.Time) ([]domain.Announcement, error) {
	if businessID <= 0 {
		return nil, domain.Invalid("Valid Business ID is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, domain.Invalid("Start date and end date are required")
	}
	if !end.After(start) {
		return nil, domain.Invalid("End date must be after start date")
	}
	return s.announcements.FindByDateRange(ctx, businessID, start, end)
}

func (s *announcementService) Update(ctx context.Context, id int64, update ports.UpdateAnnouncementInput) (*domain.Announcement, error) {
	if update.Heading != nil && strings.TrimSpace(*update.Heading) == "" {
		return nil, domain.Invalid("Announcement heading cannot be empty")
	}
	if update.Content != nil && strings.TrimSpace(*update.Content) == "" {
		return nil, domain.Invalid("Announcement content cannot be empty")
	}
	if update.StartDate != nil && update.EndDate != nil && !update.EndDate.After(*update.StartDate) {
		return nil, domain.Invalid("End date must be after start date")
	}

	// Partial visibility updates are checked against the stored flags so
	// an update can never leave an announcement visible to nobody.
	if update.VisibleToAdmins != nil || update.VisibleToTeachers != nil || update.VisibleToStudents != nil {
		current, err := s.announcements.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		admins := pick(update.VisibleToAdmins, current.VisibleToAdmins)
		teachers := pick(update.VisibleToTeachers, current.VisibleToTeachers)
		students := pick(update.VisibleToStudents, current.VisibleToStudents)
		if !admins && !teachers && !students {
			return nil, domain.Invalid("At least one role must be selected for visibility")
		}
	}

	return s.announcements.Update(ctx, id, update)
}

func (s *announcementService) Delete(ctx context.Context, id int64) error {
	return s.announcements.Delete(ctx, id)
}

func pick(override *bool, current bool) bool {
	if override != nil {
		return *override
	}
	return current
}
