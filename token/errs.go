package token

import (
	"errors"
	"fmt"
)

var ErrImbalanced = errors.New("imbalanced nesting")

// ErrImbalancedAt reports where nesting first went wrong in a fragment.
type ErrImbalancedAt struct {
	Offset int
	Byte   byte
}

func (e *ErrImbalancedAt) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: unclosed at end", ErrImbalanced)
	}
	return fmt.Sprintf("%s: unexpected %q at offset %d", ErrImbalanced, e.Byte, e.Offset)
}

func (e *ErrImbalancedAt) Unwrap() error {
	return ErrImbalanced
}
