package domain

import "time"

// Announcement is a notice shown to selected roles of a business within a
// date window. At least one visibility flag must be set.
type Announcement struct {
	ID                int64     `json:"id"`
	Heading           string    `json:"heading"`
	Content           string    `json:"content"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	IsActive          bool      `json:"isActive"`
	VisibleToAdmins   bool      `json:"visibleToAdmins"`
	VisibleToTeachers bool      `json:"visibleToTeachers"`
	VisibleToStudents bool      `json:"visibleToStudents"`
	BusinessID        int64     `json:"businessId"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// VisibleTo reports whether the announcement targets the given role.
// Admins and superadmins share the admin flag.
func (a *Announcement) VisibleTo(role Role) bool {
	switch role {
	case RoleAdmin, RoleSuperAdmin:
		return a.VisibleToAdmins
	case RoleTeacher:
		return a.VisibleToTeachers
	case RoleStudent:
		return a.VisibleToStudents
	default:
		return false
	}
}
