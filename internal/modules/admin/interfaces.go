package admin

import (
	"context"

	"rentalconnect/internal/domain"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	CountByRole(ctx context.Context) (map[domain.UserRole]int64, error)
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	ListReported(ctx context.Context) ([]domain.Property, error)
	ClearReport(ctx context.Context, id int64) error
	SoftDelete(ctx context.Context, id int64) error
}

// SessionRevoker ends every session a user holds; *session.Manager implements it.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID int64) error
}
