package repository

import (
	"context"

	"rentalconnect/internal/domain"

	"gorm.io/gorm"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Toggle removes the property from the wishlist if present, otherwise appends it.
// It reports whether the property is wishlisted afterwards.
func (r *WishlistRepository) Toggle(ctx context.Context, userID, propertyID int64) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND property_id = ?", userID, propertyID).Delete(&domain.WishlistItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		added = true
		return tx.Create(&domain.WishlistItem{UserID: userID, PropertyID: propertyID}).Error
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// List returns the wishlisted properties in insertion order, skipping deleted ones.
func (r *WishlistRepository) List(ctx context.Context, userID int64) ([]domain.Property, error) {
	var items []domain.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Property").
		Preload("Property.Landlord").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Property, 0, len(items))
	for _, it := range items {
		if it.Property != nil {
			out = append(out, *it.Property)
		}
	}
	return out, nil
}
