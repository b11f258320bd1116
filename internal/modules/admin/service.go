package admin

import (
	"context"
	"errors"
	"fmt"
	"log"

	"rentalconnect/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	users      UserRepository
	properties PropertyRepository
	sessions   SessionRevoker
}

func NewService(users UserRepository, properties PropertyRepository, sessions SessionRevoker) *Service {
	return &Service{users: users, properties: properties, sessions: sessions}
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// DeleteUser removes a non-admin account with its wishlist and sessions.
// Admin accounts are refused whoever asks.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if u.Role == domain.RoleAdmin {
		return ErrCannotDeleteAdmin
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	// The gate rejects sessions of missing users anyway; revoking just frees the rows.
	if s.sessions != nil {
		if err := s.sessions.RevokeUser(ctx, id); err != nil {
			log.Printf("level=warn msg=session revoke failed user_id=%d err=%v", id, err)
		}
	}
	log.Printf("level=info msg=user deleted user_id=%d role=%s", id, u.Role)
	return nil
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	reported, err := s.properties.ListReported(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reported: %w", err)
	}

	var total int64
	for _, n := range byRole {
		total += n
	}
	return &StatsResponse{Users: byRole, TotalUsers: total, ReportedPending: len(reported)}, nil
}

// -------------------- Properties --------------------

func (s *Service) ReportedProperties(ctx context.Context) ([]ReportedProperty, error) {
	props, err := s.properties.ListReported(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ReportedProperty, 0, len(props))
	for i := range props {
		out = append(out, toReported(&props[i]))
	}
	return out, nil
}

// DismissReport clears the report and leaves the listing live.
func (s *Service) DismissReport(ctx context.Context, id int64) error {
	if _, err := s.properties.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return fmt.Errorf("load property: %w", err)
	}
	if err := s.properties.ClearReport(ctx, id); err != nil {
		return fmt.Errorf("clear report: %w", err)
	}
	return nil
}

// DeleteProperty soft-deletes the listing; bookings and payments still resolve it.
func (s *Service) DeleteProperty(ctx context.Context, id int64) error {
	if err := s.properties.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return fmt.Errorf("delete property: %w", err)
	}
	log.Printf("level=info msg=property removed by admin property_id=%d", id)
	return nil
}
