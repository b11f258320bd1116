package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/pkg/response"
	"rentalconnect/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type SessionResolver interface {
	Resolve(r *http.Request) (*domain.Session, error)
}

// SessionAuth resolves the session cookie to a user on every request; nothing is cached.
type SessionAuth struct {
	sessions SessionResolver
	users    UserLookup
}

func NewSessionAuth(sessions SessionResolver, users UserLookup) *SessionAuth {
	return &SessionAuth{sessions: sessions, users: users}
}

// AuthRequired rejects requests without a live session for an existing user.
func (a *SessionAuth) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := a.authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// Admin is AuthRequired followed by AdminOnly, as one handler. The role checked is
// the stored user's, not the session's.
func (a *SessionAuth) Admin() gin.HandlerFunc {
	adminOnly := AdminOnly()
	return func(c *gin.Context) {
		if _, ok := a.authenticate(c); !ok {
			return
		}
		adminOnly(c)
	}
}

func (a *SessionAuth) authenticate(c *gin.Context) (*Identity, bool) {
	s, err := a.sessions.Resolve(c.Request)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrExpired) {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
			return nil, false
		}
		_ = c.Error(err)
		response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
		return nil, false
	}

	user, err := a.users.GetByID(c.Request.Context(), s.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not found")
			return nil, false
		}
		_ = c.Error(fmt.Errorf("load session user %d: %w", s.UserID, err))
		response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
		return nil, false
	}

	id := &Identity{UserID: user.ID, Role: user.Role, SessionID: s.ID, User: user}
	SetIdentity(c, id)
	return id, true
}
