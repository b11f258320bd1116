package profile

import (
	"context"

	"rentalconnect/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, id int64, name, email, profileImage string) (*domain.User, error)
}
