package domain

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleRenter   UserRole = "Renter"
	RoleLandlord UserRole = "Landlord"
	RoleAdmin    UserRole = "Admin"
)

// ParseRole accepts the canonical role names case-insensitively.
func ParseRole(s string) (UserRole, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "renter":
		return RoleRenter, true
	case "landlord":
		return RoleLandlord, true
	case "admin":
		return RoleAdmin, true
	}
	return "", false
}

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:120;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         UserRole  `json:"role" gorm:"size:20;not null;index"`
	ProfileImage string    `json:"profile_image,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserContact is the public projection of a user joined into other records.
type UserContact struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role,omitempty"`
}

func (u *User) Contact() *UserContact {
	if u == nil {
		return nil
	}
	return &UserContact{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
