package payment

import "errors"

var (
	ErrNotFound         = errors.New("payment not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrForbidden        = errors.New("not the landlord of this payment")
	ErrInvalidPeriod    = errors.New("month must be YYYY-MM")
)
