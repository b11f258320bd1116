package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/pkg/imagedata"
	"rentalconnect/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	users         UserRepository
	maxImageBytes int
}

func NewService(users UserRepository, maxImageBytes int) *Service {
	return &Service{users: users, maxImageBytes: maxImageBytes}
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *Service) Update(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if req.ProfileImage != "" {
		switch err := imagedata.Validate(req.ProfileImage, s.maxImageBytes); {
		case errors.Is(err, imagedata.ErrTooLarge):
			return nil, ErrImageTooLarge
		case err != nil:
			return nil, ErrInvalidImage
		}
	}

	if email != "" {
		taken, err := s.users.ExistsByEmail(ctx, email, userID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, ErrEmailAlreadyExists
		}
	}

	u, err := s.users.UpdateProfile(ctx, userID, req.Name, email, req.ProfileImage)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrUserNotFound
	case repository.IsUniqueViolation(err):
		return nil, ErrEmailAlreadyExists
	case err != nil:
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}
