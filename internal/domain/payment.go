package domain

import "time"

// PeriodLayout is the format of Payment.Period. The period labels which month a
// payment is for; it does not limit how many payments a month may have.
const PeriodLayout = "2006-01"

type Payment struct {
	ID                int64      `json:"id" gorm:"primaryKey"`
	PropertyID        int64      `json:"property_id" gorm:"not null;index"`
	RenterID          int64      `json:"renter_id" gorm:"not null;index"`
	Period            string     `json:"period" gorm:"size:7;not null;index"`
	LandlordID        int64      `json:"landlord_id" gorm:"not null;index"`
	Amount            float64    `json:"amount" gorm:"not null"`
	DueDate           time.Time  `json:"due_date"`
	Paid              bool       `json:"paid" gorm:"not null;default:false"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	LandlordConfirmed bool       `json:"landlord_confirmed" gorm:"not null;default:false"`
	ConfirmedAt       *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`

	Property *Property `json:"-" gorm:"foreignKey:PropertyID"`
	Renter   *User     `json:"-" gorm:"foreignKey:RenterID"`
	Landlord *User     `json:"-" gorm:"foreignKey:LandlordID"`
}

func (Payment) TableName() string { return "payments" }
