package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

type stubAnnouncementRepo struct {
	nextID int64
	items  map[int64]*domain.Announcement
}

func newStubAnnouncementRepo() *stubAnnouncementRepo {
	return &stubAnnouncementRepo{items: make(map[int64]*domain.Announcement)}
}

func (r *stubAnnouncementRepo) Create(_ context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	r.nextID++
	clone := *a
	clone.ID = r.nextID
	r.items[clone.ID] = &clone
	return &clone, nil
}

func (r *stubAnnouncementRepo) FindByID(_ context.Context, id int64) (*domain.Announcement, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAnnouncementNotFound
	}
	return a, nil
}

func (r *stubAnnouncementRepo) FindByBusiness(_ context.Context, businessID int64) ([]domain.Announcement, error) {
	var out []domain.Announcement
	for _, a := range r.items {
		if a.BusinessID == businessID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAnnouncementRepo) FindActiveByBusiness(_ context.Context, businessID int64, now time.Time) ([]domain.Announcement, error) {
	var out []domain.Announcement
	for _, a := range r.items {
		if a.BusinessID != businessID || !a.IsActive {
			continue
		}
		if now.Before(a.StartDate) || now.After(a.EndDate) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAnnouncementRepo) FindByRole(_ context.Context, businessID int64, role domain.Role, now time.Time) ([]domain.Announcement, error) {
	var out []domain.Announcement
	for _, a := range r.items {
		if a.BusinessID != businessID || !a.IsActive || !a.VisibleTo(role) {
			continue
		}
		if now.Before(a.StartDate) || now.After(a.EndDate) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAnnouncementRepo) FindByDateRange(_ context.Context, businessID int64, start, end time.Time) ([]domain.Announcement, error) {
	var out []domain.Announcement
	for _, a := range r.items {
		if a.BusinessID != businessID {
			continue
		}
		if a.EndDate.Before(start) || a.StartDate.After(end) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAnnouncementRepo) Update(_ context.Context, id int64, update ports.UpdateAnnouncementInput) (*domain.Announcement, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAnnouncementNotFound
	}
	if update.Heading != nil {
		a.Heading = *update.Heading
	}
	if update.VisibleToAdmins != nil {
		a.VisibleToAdmins = *update.VisibleToAdmins
	}
	if update.VisibleToTeachers != nil {
		a.VisibleToTeachers = *update.VisibleToTeachers
	}
	if update.VisibleToStudents != nil {
		a.VisibleToStudents = *update.VisibleToStudents
	}
	return a, nil
}

func (r *stubAnnouncementRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrAnnouncementNotFound
	}
	delete(r.items, id)
	return nil
}

func validAnnouncement() *domain.Announcement {
	start := time.Now().UTC().Add(-time.Hour)
	return &domain.Announcement{
		Heading:           "Mock test schedule",
		Content:           "Weekly mocks start Monday.",
		StartDate:         start,
		EndDate:           start.AddDate(0, 1, 0),
		IsActive:          true,
		VisibleToStudents: true,
		BusinessID:        1,
	}
}

func newTestAnnouncementService(repo *stubAnnouncementRepo) ports.AnnouncementService {
	return NewAnnouncementService(repo, newStubBusinessRepo(1), zerolog.Nop())
}

func TestAnnouncementService_Create_Validation(t *testing.T) {
	svc := newTestAnnouncementService(newStubAnnouncementRepo())

	cases := []struct {
		name   string
		mutate func(*domain.Announcement)
	}{
		{"missing heading", func(a *domain.Announcement) { a.Heading = " " }},
		{"missing content", func(a *domain.Announcement) { a.Content = "" }},
		{"missing dates", func(a *domain.Announcement) { a.EndDate = time.Time{} }},
		{"inverted dates", func(a *domain.Announcement) { a.EndDate = a.StartDate.Add(-time.Hour) }},
		{"no visibility", func(a *domain.Announcement) { a.VisibleToStudents = false }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validAnnouncement()
			tc.mutate(a)
			if _, err := svc.Create(context.Background(), a); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAnnouncementService_Create_UnknownBusiness(t *testing.T) {
	svc := newTestAnnouncementService(newStubAnnouncementRepo())

	a := validAnnouncement()
	a.BusinessID = 42
	if _, err := svc.Create(context.Background(), a); err != domain.ErrBusinessNotFound {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
}

func TestAnnouncementService_Update_KeepsOneRoleVisible(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newTestAnnouncementService(repo)

	created, err := svc.Create(context.Background(), validAnnouncement())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Clearing the only visible role must fail even though the request
	// itself only touches one flag.
	off := false
	if _, err := svc.Update(context.Background(), created.ID, ports.UpdateAnnouncementInput{VisibleToStudents: &off}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Swapping visibility in a single update is fine.
	on := true
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateAnnouncementInput{
		VisibleToStudents: &off,
		VisibleToTeachers: &on,
	})
	if err != nil {
		t.Fatalf("swap visibility: %v", err)
	}
	if updated.VisibleToStudents || !updated.VisibleToTeachers {
		t.Fatalf("unexpected visibility: %+v", updated)
	}
}

func TestAnnouncementService_ByRole(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newTestAnnouncementService(repo)

	student := validAnnouncement()
	if _, err := svc.Create(context.Background(), student); err != nil {
		t.Fatalf("create student announcement: %v", err)
	}
	staff := validAnnouncement()
	staff.Heading = "Staff meeting"
	staff.VisibleToStudents = false
	staff.VisibleToAdmins = true
	staff.VisibleToTeachers = true
	if _, err := svc.Create(context.Background(), staff); err != nil {
		t.Fatalf("create staff announcement: %v", err)
	}

	// An announcement outside its date window stays hidden from every role.
	expired := validAnnouncement()
	expired.Heading = "Last term"
	expired.StartDate = time.Now().UTC().Add(-48 * time.Hour)
	expired.EndDate = time.Now().UTC().Add(-24 * time.Hour)
	if _, err := svc.Create(context.Background(), expired); err != nil {
		t.Fatalf("create expired announcement: %v", err)
	}

	students, err := svc.ByRole(context.Background(), 1, domain.RoleStudent)
	if err != nil {
		t.Fatalf("ByRole students: %v", err)
	}
	if len(students) != 1 || students[0].Heading != "Mock test schedule" {
		t.Fatalf("unexpected student announcements: %+v", students)
	}

	// SUPERADMIN sees what admins see.
	admins, err := svc.ByRole(context.Background(), 1, domain.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("ByRole superadmin: %v", err)
	}
	if len(admins) != 1 || admins[0].Heading != "Staff meeting" {
		t.Fatalf("unexpected admin announcements: %+v", admins)
	}

	if _, err := svc.ByRole(context.Background(), 1, domain.RoleGuest); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for GUEST, got %v", err)
	}
}

func TestAnnouncementService_ByBusiness_ActiveWindow(t *testing.T) {
	repo := newStubAnnouncementRepo()
	svc := newTestAnnouncementService(repo)

	current := validAnnouncement()
	current.StartDate = time.Now().UTC().Add(-time.Hour)
	current.EndDate = time.Now().UTC().Add(time.Hour)
	if _, err := svc.Create(context.Background(), current); err != nil {
		t.Fatalf("create current: %v", err)
	}

	expired := validAnnouncement()
	expired.Heading = "Old news"
	expired.StartDate = time.Now().UTC().Add(-48 * time.Hour)
	expired.EndDate = time.Now().UTC().Add(-24 * time.Hour)
	if _, err := svc.Create(context.Background(), expired); err != nil {
		t.Fatalf("create expired: %v", err)
	}

	all, err := svc.ByBusiness(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("ByBusiness all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 announcements, got %d", len(all))
	}

	active, err := svc.ByBusiness(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("ByBusiness active: %v", err)
	}
	if len(active) != 1 || active[0].Heading != "Mock test schedule" {
		t.Fatalf("unexpected active announcements: %+v", active)
	}
}
