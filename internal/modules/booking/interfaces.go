package booking

import (
	"context"
	"time"

	"rentalconnect/internal/domain"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetDetail(ctx context.Context, id int64) (*domain.Booking, error)
	ListByRenter(ctx context.Context, renterID int64) ([]domain.Booking, error)
	ListPendingForLandlord(ctx context.Context, landlordID int64) ([]domain.Booking, error)
	SetLandlordDecision(ctx context.Context, id, landlordID int64, status domain.BookingStatus, at time.Time) (bool, error)
	Delete(ctx context.Context, id, renterID int64) (bool, error)
}

type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// TransitionRecorder is satisfied by *metrics.Metrics.
type TransitionRecorder interface {
	BookingTransition(to string)
}
