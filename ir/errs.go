package ir

import (
	"errors"
)

var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrInvalidItemName = errors.New("invalid item name")
)
