package domain

import "time"

// Role is the privilege level a user holds within one business.
// Listed in ascending privilege, but routes treat roles as flat
// allow-lists rather than a hierarchy.
type Role string

const (
	RoleGuest      Role = "GUEST"
	RoleStudent    Role = "STUDENT"
	RoleTeacher    Role = "TEACHER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// Roles lists every valid role in ascending privilege order.
var Roles = []Role{RoleGuest, RoleStudent, RoleTeacher, RoleAdmin, RoleSuperAdmin}

// Valid reports whether r is a member of the role enumeration.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// NoBusiness is the sentinel business id carried by identities that have
// no role assignment yet.
const NoBusiness int64 = -1

// User models a registered account. The password hash never leaves the
// process boundary.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BusinessUser assigns a user a role within one business. At most one
// assignment exists per (user, business) pair.
type BusinessUser struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	BusinessID int64     `json:"businessId"`
	Role       Role      `json:"role"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Identity is the authenticated subject derived at login or token
// verification. It is never persisted.
type Identity struct {
	UserID     int64  `json:"id"`
	Email      string `json:"email,omitempty"`
	Name       string `json:"name,omitempty"`
	BusinessID int64  `json:"businessId"`
	Role       Role   `json:"role"`
}

// NewIdentity derives the identity for a user from their role assignments.
// The first assignment wins regardless of its active flag; users without
// any assignment act as a guest with no business scope.
func NewIdentity(user *User, assignments []BusinessUser) Identity {
	identity := Identity{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		BusinessID: NoBusiness,
		Role:       RoleGuest,
	}
	if len(assignments) > 0 {
		identity.BusinessID = assignments[0].BusinessID
		identity.Role = assignments[0].Role
	}
	return identity
}
