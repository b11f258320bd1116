package repository

import (
	"context"
	"time"

	"rentalconnect/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetDetail(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).
		Preload("Property", unscoped).
		Preload("Renter").
		Preload("Landlord").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Confirm flips landlord_confirmed false->true for the payment's own landlord only.
func (r *PaymentRepository) Confirm(ctx context.Context, id, landlordID int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("id = ? AND landlord_id = ? AND landlord_confirmed = ?", id, landlordID, false).
		Updates(map[string]any{
			"landlord_confirmed": true,
			"confirmed_at":       at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PaymentRepository) ListByRenter(ctx context.Context, renterID int64) ([]domain.Payment, error) {
	var out []domain.Payment
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

func (r *PaymentRepository) ListByLandlord(ctx context.Context, landlordID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		Preload("Property", unscoped).
		Preload("Renter").
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

type PaymentTotals struct {
	Received             float64
	Pending              float64
	AwaitingConfirmation float64
}

func (r *PaymentRepository) TotalsForLandlord(ctx context.Context, landlordID int64) (PaymentTotals, error) {
	var row struct {
		Received float64
		Pending  float64
		Awaiting float64
	}
	err := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Select(`COALESCE(SUM(CASE WHEN paid THEN amount ELSE 0 END), 0) AS received,
COALESCE(SUM(CASE WHEN NOT paid THEN amount ELSE 0 END), 0) AS pending,
COALESCE(SUM(CASE WHEN paid AND NOT landlord_confirmed THEN amount ELSE 0 END), 0) AS awaiting`).
		Where("landlord_id = ?", landlordID).
		Scan(&row).Error
	if err != nil {
		return PaymentTotals{}, err
	}
	return PaymentTotals{Received: row.Received, Pending: row.Pending, AwaitingConfirmation: row.Awaiting}, nil
}

// PaidSince returns the landlord's paid payments with paid_at >= since, oldest first.
func (r *PaymentRepository) PaidSince(ctx context.Context, landlordID int64, since time.Time) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("landlord_id = ? AND paid = ? AND paid_at >= ?", landlordID, true, since).
		Order("paid_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
