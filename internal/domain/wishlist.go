package domain

import "time"

type WishlistItem struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_wishlist_user_property"`
	PropertyID int64     `json:"property_id" gorm:"not null;uniqueIndex:idx_wishlist_user_property"`
	CreatedAt  time.Time `json:"created_at"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

func (WishlistItem) TableName() string { return "wishlist_items" }
