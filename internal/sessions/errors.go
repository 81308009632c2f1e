package sessions

import "errors"

var (
	ErrNotFound        = errors.New("session not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidField    = errors.New("invalid field")
	ErrIndexRequired   = errors.New("index required")
	ErrIndexOutOfRange = errors.New("index out of range")
)
