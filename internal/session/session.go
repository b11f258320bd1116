// Package session issues and resolves server-side sessions carried by a signed cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/pkg/jwt"
	"rentalconnect/internal/repository"

	"github.com/google/uuid"
)

const DefaultCookieName = "rc_session"

var (
	ErrNoSession = errors.New("no session")
	ErrExpired   = errors.New("session expired")
)

// Store persists sessions. Get returns repository.ErrSessionNotFound for unknown ids.
type Store interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type CookieConfig struct {
	Name     string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

type Manager struct {
	store  Store
	signer *jwt.Service
	ttl    time.Duration
	cookie CookieConfig
	now    func() time.Time
}

func NewManager(store Store, signer *jwt.Service, ttl time.Duration, cookie CookieConfig) *Manager {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	if cookie.Path == "" {
		cookie.Path = "/"
	}
	if cookie.SameSite == 0 {
		cookie.SameSite = http.SameSiteLaxMode
	}
	return &Manager{store: store, signer: signer, ttl: ttl, cookie: cookie, now: time.Now}
}

func (m *Manager) CookieName() string { return m.cookie.Name }

// Start creates a session for the user and writes the cookie.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, user *domain.User) (*domain.Session, error) {
	now := m.now()
	s := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	token, err := m.signer.GenerateToken(s.ID)
	if err != nil {
		return nil, fmt.Errorf("signing session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    token,
		Path:     m.cookie.Path,
		Expires:  s.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: m.cookie.SameSite,
	})
	return s, nil
}

// Resolve maps the request cookie to a live session. Missing, forged and unknown
// cookies all yield ErrNoSession; store failures are returned as-is.
func (m *Manager) Resolve(r *http.Request) (*domain.Session, error) {
	id, ok := m.sessionID(r)
	if !ok {
		return nil, ErrNoSession
	}

	s, err := m.store.Get(r.Context(), id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	if s.Expired(m.now()) {
		if delErr := m.store.Delete(r.Context(), id); delErr != nil {
			return nil, fmt.Errorf("deleting expired session: %w", delErr)
		}
		return nil, ErrExpired
	}
	return s, nil
}

// Destroy removes the current session (if any) and clears the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	if id, ok := m.sessionID(r); ok {
		if err := m.store.Delete(r.Context(), id); err != nil {
			return fmt.Errorf("deleting session: %w", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie.Name,
		Value:    "",
		Path:     m.cookie.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: m.cookie.SameSite,
	})
	return nil
}

func (m *Manager) RevokeUser(ctx context.Context, userID int64) error {
	return m.store.DeleteByUser(ctx, userID)
}

// Cleanup removes expired sessions and returns how many were pruned.
func (m *Manager) Cleanup(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpired(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("cleaning up sessions: %w", err)
	}
	return n, nil
}

func (m *Manager) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.cookie.Name)
	if err != nil || strings.TrimSpace(c.Value) == "" {
		return "", false
	}
	claims, err := m.signer.ValidateToken(c.Value)
	if err != nil {
		return "", false
	}
	return claims.SessionID, true
}

// ParseSameSite maps a config value to http.SameSite, defaulting to Lax.
func ParseSameSite(v string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
