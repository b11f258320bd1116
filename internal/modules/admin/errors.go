package admin

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrCannotDeleteAdmin = errors.New("cannot delete an admin account")
	ErrPropertyNotFound  = errors.New("property not found")
)
