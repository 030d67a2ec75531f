package parse

import "github.com/signadot/filesave/ir"

const defaultMaxDepth = ir.MaxDepth

type parseOpts struct {
	maxDepth int
}

type ParseOption func(*parseOpts)

// ParseMaxDepth bounds container nesting.  Values of n below 1 are ignored.
func ParseMaxDepth(n int) ParseOption {
	return func(o *parseOpts) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}
