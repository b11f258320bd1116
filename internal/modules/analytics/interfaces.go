package analytics

import (
	"context"
	"time"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/repository"
)

type PaymentStats interface {
	TotalsForLandlord(ctx context.Context, landlordID int64) (repository.PaymentTotals, error)
	PaidSince(ctx context.Context, landlordID int64, since time.Time) ([]domain.Payment, error)
}

type PropertyStats interface {
	CountByLandlord(ctx context.Context, landlordID int64) (int64, error)
	CountOccupied(ctx context.Context, landlordID int64) (int64, error)
}
