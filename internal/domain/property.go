package domain

import (
	"time"

	"gorm.io/gorm"
)

type PropertyStatus string

const (
	PropertyAvailable   PropertyStatus = "Available"
	PropertyUnavailable PropertyStatus = "Unavailable"
)

func (s PropertyStatus) Valid() bool {
	return s == PropertyAvailable || s == PropertyUnavailable
}

// Property is a landlord's listing. A non-nil ReportedBy marks it as reported.
type Property struct {
	ID             int64          `json:"id" gorm:"primaryKey"`
	LandlordID     int64          `json:"landlord_id" gorm:"not null;index"`
	Title          string         `json:"title" gorm:"size:200;not null"`
	Description    string         `json:"description" gorm:"type:text"`
	Address        string         `json:"address" gorm:"size:300;not null"`
	Rent           float64        `json:"rent" gorm:"not null"`
	Bedrooms       int            `json:"bedrooms"`
	Bathrooms      int            `json:"bathrooms"`
	AvailableFrom  time.Time      `json:"available_from"`
	AvailableUntil *time.Time     `json:"available_until,omitempty"`
	Image          string         `json:"image,omitempty" gorm:"type:text"`
	Status         PropertyStatus `json:"status" gorm:"size:20;not null;default:Available;index"`

	ReportedBy   *int64     `json:"reported_by,omitempty" gorm:"index"`
	ReportReason *string    `json:"report_reason,omitempty" gorm:"type:text"`
	ReportedAt   *time.Time `json:"reported_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Landlord *User             `json:"landlord,omitempty" gorm:"foreignKey:LandlordID"`
	Reporter *User             `json:"reporter,omitempty" gorm:"foreignKey:ReportedBy"`
	Comments []PropertyComment `json:"comments,omitempty" gorm:"foreignKey:PropertyID"`
}

func (Property) TableName() string { return "properties" }

func (p *Property) IsReported() bool {
	return p.ReportedBy != nil
}

// PropertyComment is append-only; AuthorName is copied from the author at write time.
type PropertyComment struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	PropertyID int64     `json:"property_id" gorm:"not null;index"`
	UserID     int64     `json:"user_id" gorm:"not null"`
	AuthorName string    `json:"name" gorm:"size:120"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (PropertyComment) TableName() string { return "property_comments" }

// PropertyFilter drives both the paginated listing and the search endpoint.
type PropertyFilter struct {
	LandlordID *int64
	Area       string
	Bedrooms   *int
	MinRent    *float64
	MaxRent    *float64
	Status     PropertyStatus
	Limit      int
	Offset     int
}
