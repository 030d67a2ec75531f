package store

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrInvalidRequest  = errors.New("invalid request")
)
