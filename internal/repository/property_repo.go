package repository

import (
	"context"
	"time"

	"rentalconnect/internal/domain"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetDetail loads the property with its landlord and comments (oldest first).
func (r *PropertyRepository) GetDetail(ctx context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	err := r.db.WithContext(ctx).
		Preload("Landlord").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepository) applyFilter(q *gorm.DB, f domain.PropertyFilter) *gorm.DB {
	if f.LandlordID != nil {
		q = q.Where("landlord_id = ?", *f.LandlordID)
	}
	if f.Area != "" {
		q = q.Where(`LOWER(address) LIKE ? ESCAPE '\'`, likePattern(f.Area))
	}
	if f.Bedrooms != nil {
		q = q.Where("bedrooms = ?", *f.Bedrooms)
	}
	if f.MinRent != nil {
		q = q.Where("rent >= ?", *f.MinRent)
	}
	if f.MaxRent != nil {
		q = q.Where("rent <= ?", *f.MaxRent)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return q
}

// List returns one page of matching properties, newest first, plus the total match count.
// A zero Limit returns every match.
func (r *PropertyRepository) List(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&domain.Property{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.applyFilter(r.db.WithContext(ctx).Model(&domain.Property{}), f).
		Preload("Landlord").
		Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var out []domain.Property
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PropertyRepository) ListByLandlord(ctx context.Context, landlordID int64) ([]domain.Property, error) {
	var out []domain.Property
	err := r.db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the editable listing fields. Status and report fields are left alone.
func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	res := r.db.WithContext(ctx).Model(p).
		Select("title", "description", "address", "rent", "bedrooms", "bathrooms", "available_from", "available_until", "image").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PropertyRepository) UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Property{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// SoftDelete hides the property from listings; history rows still resolve it via Unscoped.
func (r *PropertyRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Property{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Report sets the report fields only when none are present. It returns false when
// the property is missing or already reported.
func (r *PropertyRepository) Report(ctx context.Context, id, reporterID int64, reason string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Property{}).
		Where("id = ? AND reported_by IS NULL", id).
		Updates(map[string]any{
			"reported_by":   reporterID,
			"report_reason": reason,
			"reported_at":   at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PropertyRepository) ClearReport(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Property{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reported_by":   nil,
			"report_reason": nil,
			"reported_at":   nil,
		}).Error
}

func (r *PropertyRepository) ListReported(ctx context.Context) ([]domain.Property, error) {
	var out []domain.Property
	err := r.db.WithContext(ctx).
		Where("reported_by IS NOT NULL").
		Preload("Landlord").
		Preload("Reporter").
		Order("reported_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PropertyRepository) AddComment(ctx context.Context, c *domain.PropertyComment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *PropertyRepository) CountByLandlord(ctx context.Context, landlordID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Property{}).
		Where("landlord_id = ?", landlordID).
		Count(&cnt).Error
	return cnt, err
}

// CountOccupied counts the landlord's live properties holding at least one Confirmed booking.
func (r *PropertyRepository) CountOccupied(ctx context.Context, landlordID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Property{}).
		Where("landlord_id = ?", landlordID).
		Where("EXISTS (SELECT 1 FROM bookings b WHERE b.property_id = properties.id AND b.status = ?)", domain.BookingConfirmed).
		Count(&cnt).Error
	return cnt, err
}
