package property

import "errors"

var (
	ErrNotFound        = errors.New("property not found")
	ErrForbidden       = errors.New("not the owner of this property")
	ErrInvalidStatus   = errors.New("invalid property status")
	ErrInvalidWindow   = errors.New("available_until before available_from")
	ErrInvalidImage    = errors.New("invalid property image")
	ErrReasonRequired  = errors.New("a reason is required")
	ErrAlreadyReported = errors.New("property already reported")
	ErrEmptyComment    = errors.New("comment text is required")
)
