package auth

import (
	"context"
	"net/http"

	"rentalconnect/internal/domain"
)

// UserRepository: only the methods the auth service uses
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

// Sessions is the cookie session lifecycle the handler drives after a successful login.
type Sessions interface {
	Start(ctx context.Context, w http.ResponseWriter, user *domain.User) (*domain.Session, error)
	Destroy(w http.ResponseWriter, r *http.Request) error
}
