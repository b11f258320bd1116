package repository

import (
	"context"
	"time"

	"rentalconnect/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func unscoped(db *gorm.DB) *gorm.DB { return db.Unscoped() }

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetDetail loads the booking with its property (deleted or not) and both parties.
func (r *BookingRepository) GetDetail(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Property", unscoped).
		Preload("Renter").
		Preload("Landlord").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByRenter(ctx context.Context, renterID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Preload("Property", unscoped).
		Preload("Landlord").
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepository) ListPendingForLandlord(ctx context.Context, landlordID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("landlord_id = ? AND status = ?", landlordID, domain.BookingPending).
		Preload("Property", unscoped).
		Preload("Renter").
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetLandlordDecision applies Confirmed or Cancelled on behalf of the booking's landlord.
// The bool is false when no booking with that id and landlord exists any more.
func (r *BookingRepository) SetLandlordDecision(ctx context.Context, id, landlordID int64, status domain.BookingStatus, at time.Time) (bool, error) {
	updates := map[string]any{"status": status, "cancelled_at": nil}
	if status == domain.BookingCancelled {
		updates["cancelled_at"] = at
	}

	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND landlord_id = ?", id, landlordID).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Delete removes the booking on behalf of its renter.
func (r *BookingRepository) Delete(ctx context.Context, id, renterID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND renter_id = ?", id, renterID).
		Delete(&domain.Booking{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
