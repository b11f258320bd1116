package message

import "errors"

var (
	ErrMissingFields    = errors.New("receiver and text are required")
	ErrSelfMessage      = errors.New("cannot message yourself")
	ErrReceiverNotFound = errors.New("receiver not found")
)
