// Package parse provides filesave literal parsing support.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/filesave/ir"
	"github.com/signadot/filesave/token"
)

// Literal parses the delimited text form of a value.  Delimiter pairs are
// tried in the order of ir.Kinds and the first pair wrapping text decides
// the kind; a payload that does not fit that kind is an error rather than a
// reason to try the next pair.
func Literal(text string, opts ...ParseOption) (*ir.Value, error) {
	pOpts := &parseOpts{maxDepth: defaultMaxDepth}
	for _, f := range opts {
		f(pOpts)
	}
	return parseLiteral(strings.TrimSpace(text), 0, pOpts)
}

// IsLiteral reports whether Literal would accept text.
func IsLiteral(text string) bool {
	_, err := Literal(text)
	return err == nil
}

func parseLiteral(s string, depth int, opts *parseOpts) (*ir.Value, error) {
	for _, k := range ir.Kinds() {
		if !token.Wrapped(s, k) {
			continue
		}
		if k.IsContainer() {
			if depth >= opts.maxDepth {
				return nil, fmt.Errorf("%w: more than %d levels", ErrTooDeep, opts.maxDepth)
			}
			return parseContainer(s, k, depth, opts)
		}
		return parseScalar(s, k)
	}
	return nil, fmt.Errorf("%w: no delimiters match %q", ErrMalformedLiteral, s)
}

func parseScalar(s string, k ir.Kind) (*ir.Value, error) {
	payload := token.Unwrap(s)
	switch k {
	case ir.StringKind:
		return ir.FromString(payload), nil
	case ir.IntKind:
		i, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: integer %q: %w", ErrMalformedLiteral, payload, err)
		}
		return ir.FromInt(i), nil
	case ir.FloatKind:
		f, err := strconv.ParseFloat(strings.TrimSpace(payload), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: float %q: %w", ErrMalformedLiteral, payload, err)
		}
		return ir.FromFloat(f), nil
	case ir.BoolKind:
		b := strings.TrimSpace(payload)
		switch {
		case strings.EqualFold(b, "true"):
			return ir.FromBool(true), nil
		case strings.EqualFold(b, "false"):
			return ir.FromBool(false), nil
		}
		return nil, fmt.Errorf("%w: boolean %q", ErrMalformedLiteral, payload)
	case ir.NullKind:
		if strings.TrimSpace(payload) != "" {
			return nil, fmt.Errorf("%w: null with payload %q", ErrMalformedLiteral, payload)
		}
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("%w: %s is not a scalar", ErrMalformedLiteral, k)
}

func parseContainer(s string, k ir.Kind, depth int, opts *parseOpts) (*ir.Value, error) {
	payload := token.Unwrap(s)
	if err := token.Balanced(payload); err != nil {
		return nil, fmt.Errorf("%w: %s %q: %w", ErrMalformedLiteral, k, s, err)
	}
	var children []string
	// an empty payload is an empty container, not one empty element
	if strings.TrimSpace(payload) != "" {
		children = token.Split(payload)
	}
	vs := make([]*ir.Value, len(children))
	for i, c := range children {
		v, err := parseLiteral(c, depth+1, opts)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	switch k {
	case ir.SequenceKind:
		return ir.FromSlice(vs), nil
	case ir.TupleKind:
		return ir.FromTuple(vs...), nil
	}
	if len(vs)%2 != 0 {
		return nil, fmt.Errorf("%w: %d children in %q", ErrOddMapping, len(vs), s)
	}
	kvs := make([]ir.KeyVal, len(vs)/2)
	for i := range kvs {
		kvs[i] = ir.KeyVal{Key: vs[2*i], Val: vs[2*i+1]}
	}
	return ir.FromKeyVals(kvs), nil
}
