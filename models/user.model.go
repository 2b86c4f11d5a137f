package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user can hold. Admins are seeded manually, never self-assigned.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

type User struct {
	gorm.Model
	Name                string      `gorm:"not null" json:"name"`
	Email               string      `gorm:"unique;not null" json:"email"`
	Role                string      `gorm:"default:'user'" json:"role"` // user, publisher, admin
	Password            string      `gorm:"not null" json:"-"`
	ResetPasswordToken  string      `gorm:"default:''" json:"-"`
	ResetPasswordExpire *time.Time  `json:"-"`
	JoinedBootcamps     []*Bootcamp `gorm:"many2many:bootcamp_members" json:"joinedBootcamps,omitempty"`
}

// ValidRole reports whether a client may register with the given role.
// The admin role is excluded on purpose.
func ValidRole(role string) bool {
	return role == RoleUser || role == RolePublisher
}
