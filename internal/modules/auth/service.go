package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users         UserRepository
	bcryptCost    int
	noAdminSignup bool
}

func NewService(users UserRepository, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, bcryptCost: bcryptCost}
}

// DisableAdminSignup makes Register refuse role=Admin.
func (s *Service) DisableAdminSignup() *Service {
	s.noAdminSignup = true
	return s
}

// Register creates an account with any of the three roles.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return nil, ErrInvalidRole
	}
	if role == domain.RoleAdmin && s.noAdminSignup {
		return nil, ErrAdminSignup
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost the race against a concurrent signup
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword is also used by rentalctl create-admin.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
