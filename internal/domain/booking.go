package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

// Booking.LandlordID is a snapshot of the property's landlord taken at creation.
// It is not kept in sync with later changes to the property.
type Booking struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	PropertyID  int64         `json:"property_id" gorm:"not null;index"`
	RenterID    int64         `json:"renter_id" gorm:"not null;index"`
	LandlordID  int64         `json:"landlord_id" gorm:"not null;index"`
	Status      BookingStatus `json:"status" gorm:"size:20;not null;default:Pending;index"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Renter   *User     `json:"-" gorm:"foreignKey:RenterID"`
	Landlord *User     `json:"-" gorm:"foreignKey:LandlordID"`
}

func (Booking) TableName() string { return "bookings" }
