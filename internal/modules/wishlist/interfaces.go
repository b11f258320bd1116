package wishlist

import (
	"context"

	"rentalconnect/internal/domain"
)

type Repository interface {
	Toggle(ctx context.Context, userID, propertyID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]domain.Property, error)
}

type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}
