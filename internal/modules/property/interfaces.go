package property

import (
	"context"
	"time"

	"rentalconnect/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetDetail(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, int64, error)
	ListByLandlord(ctx context.Context, landlordID int64) ([]domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus) error
	SoftDelete(ctx context.Context, id int64) error
	Report(ctx context.Context, id, reporterID int64, reason string, at time.Time) (bool, error)
	AddComment(ctx context.Context, c *domain.PropertyComment) error
}

// ReportRecorder is satisfied by *metrics.Metrics.
type ReportRecorder interface {
	PropertyReported()
}
