package main

import (
	"fmt"
	"strconv"

	"github.com/signadot/filesave/store"

	"github.com/scott-cotton/cli"
)

// pathArgs builds a store path from up to three command line selectors.
// With index set, arguments which parse as integers select by position.
func pathArgs(args []string, index bool) (store.Path, error) {
	if len(args) > 3 {
		return store.Path{}, fmt.Errorf("%w: at most group, subgroup and item, got %d selectors", cli.ErrUsage, len(args))
	}
	sels := make([]store.Selector, len(args))
	for i, a := range args {
		sels[i] = store.Name(a)
		if !index {
			continue
		}
		if n, err := strconv.Atoi(a); err == nil {
			sels[i] = store.Index(n)
		}
	}
	return store.At(sels...), nil
}
