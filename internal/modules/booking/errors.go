package booking

import "errors"

var (
	ErrNotFound         = errors.New("booking not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrForbidden        = errors.New("not a party to this booking")
)
