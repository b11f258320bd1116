package profile

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidImage       = errors.New("invalid profile image")
	ErrImageTooLarge      = errors.New("profile image too large")
)
