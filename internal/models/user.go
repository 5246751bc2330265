package models

import (
	"strings"
	"time"
)

// Role names understood by the board.
const (
	RoleStudent    = "Student"
	RoleStaff      = "Staff"
	RoleInstructor = "Instructor"
	RoleReviewer   = "Reviewer"
	RoleAdmin      = "Admin"
)

// ValidRoles lists every role an invitation code may grant.
var ValidRoles = []string{RoleStudent, RoleStaff, RoleInstructor, RoleReviewer, RoleAdmin}

// IsValidRole reports whether name is a known role, ignoring case.
func IsValidRole(name string) bool {
	for _, r := range ValidRoles {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"type:varchar(255);not null" json:"role"`
	FirstName    string    `gorm:"type:varchar(255)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(255)" json:"last_name"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Roles splits the stored comma-joined role set.
func (u *User) Roles() []string {
	parts := strings.Split(u.Role, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, p)
		}
	}
	return roles
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles() {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// IsAdminOnly reports whether the role set is exactly "admin".
// Such accounts must never be deleted.
func (u *User) IsAdminOnly() bool {
	return strings.EqualFold(strings.TrimSpace(u.Role), RoleAdmin)
}
