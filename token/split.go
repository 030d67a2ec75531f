package token

import (
	"strings"

	"github.com/signadot/filesave/ir"
)

// Depth tracks nesting of the three container kinds independently.
type Depth struct {
	Seq, Map, Tuple int
}

// Update adjusts d for byte c and reports whether c was a container
// delimiter.
func (d *Depth) Update(c byte) bool {
	switch c {
	case '[':
		d.Seq++
	case ']':
		d.Seq--
	case '{':
		d.Map++
	case '}':
		d.Map--
	case '(':
		d.Tuple++
	case ')':
		d.Tuple--
	default:
		return false
	}
	return true
}

func (d *Depth) Zero() bool {
	return d.Seq == 0 && d.Map == 0 && d.Tuple == 0
}

func (d *Depth) negative() bool {
	return d.Seq < 0 || d.Map < 0 || d.Tuple < 0
}

// Split splits a fragment whose outer delimiters have been stripped into
// its top level comma separated children, each trimmed of surrounding
// whitespace.  A comma is a split point only when no sequence, mapping or
// tuple is open.  An empty fragment yields a single empty child.
//
// No escaping is done: a string payload holding a raw comma or bracket is
// split like any other text.
func Split(fragment string) []string {
	var (
		d     Depth
		start int
		res   []string
	)
	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		if d.Update(c) {
			continue
		}
		if c == ',' && d.Zero() {
			res = append(res, strings.TrimSpace(fragment[start:i]))
			start = i + 1
		}
	}
	return append(res, strings.TrimSpace(fragment[start:]))
}

// Balanced returns an *ErrImbalancedAt if a container closes before it
// opens or is left open at the end of fragment.
func Balanced(fragment string) error {
	var d Depth
	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		if !d.Update(c) {
			continue
		}
		if d.negative() {
			return &ErrImbalancedAt{Offset: i, Byte: c}
		}
	}
	if !d.Zero() {
		return &ErrImbalancedAt{Offset: -1}
	}
	return nil
}

// SplitItem splits the payload of an item line into its name and data
// literals.  The split is made at the first ':' whose left side isLiteral
// accepts, so names containing ':' inside a string literal are kept whole.
func SplitItem(payload string, isLiteral func(string) bool) (name, data string, ok bool) {
	off := 0
	for {
		i := strings.IndexByte(payload[off:], ':')
		if i < 0 {
			return "", "", false
		}
		i += off
		left := strings.TrimSpace(payload[:i])
		if isLiteral(left) {
			return left, strings.TrimSpace(payload[i+1:]), true
		}
		off = i + 1
	}
}

// Wrapped reports whether s starts and ends with the delimiters of k.  The
// two delimiters must be distinct bytes of s except for the null kind,
// which may be written as a single '.'.
func Wrapped(s string, k ir.Kind) bool {
	open, close := ir.Delimiters(k)
	if k == ir.NullKind && s == string(open) {
		return true
	}
	return len(s) >= 2 && s[0] == open && s[len(s)-1] == close
}

// Unwrap strips the delimiters Wrapped accepted.
func Unwrap(s string) string {
	if len(s) < 2 {
		return ""
	}
	return s[1 : len(s)-1]
}
