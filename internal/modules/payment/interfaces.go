package payment

import (
	"context"
	"time"

	"rentalconnect/internal/domain"
)

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetDetail(ctx context.Context, id int64) (*domain.Payment, error)
	Confirm(ctx context.Context, id, landlordID int64, at time.Time) (bool, error)
	ListByRenter(ctx context.Context, renterID int64) ([]domain.Payment, error)
	ListByLandlord(ctx context.Context, landlordID int64) ([]domain.Payment, error)
}

type propertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// Recorder is satisfied by *metrics.Metrics.
type Recorder interface {
	PaymentCreated()
	PaymentConfirmed()
}
