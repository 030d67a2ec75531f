package parse

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedLiteral = errors.New("malformed literal")
	ErrOddMapping       = fmt.Errorf("%w: unpaired mapping key", ErrMalformedLiteral)
	ErrTooDeep          = fmt.Errorf("%w: nesting too deep", ErrMalformedLiteral)
)
