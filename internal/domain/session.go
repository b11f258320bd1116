package domain

import "time"

// Session links an opaque cookie-carried id to a user.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	Role      UserRole  `json:"role" gorm:"size:20"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Session) TableName() string { return "sessions" }

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
