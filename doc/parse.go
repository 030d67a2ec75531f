// Package doc converts between the lines of a filesave document and a
// Document holding its settings, ignore lines and store.
package doc

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/signadot/filesave/debug"
	"github.com/signadot/filesave/encode"
	"github.com/signadot/filesave/ir"
	"github.com/signadot/filesave/parse"
	"github.com/signadot/filesave/store"
	"github.com/signadot/filesave/token"
)

// Document is a parsed filesave document.
type Document struct {
	Settings *Settings
	// Ignored holds the ignore lines verbatim, in document order.
	Ignored []string
	Store   *store.Store
}

func New(opts ...store.Option) *Document {
	return &Document{
		Settings: NewSettings(),
		Store:    NewStore(opts...),
	}
}

// NewStore returns a store which refuses entries a document cannot hold,
// see CheckEntry.
func NewStore(opts ...store.Option) *store.Store {
	return store.New(append([]store.Option{store.WithCheck(CheckEntry)}, opts...)...)
}

type parseOpts struct {
	log *slog.Logger
}

type ParseOption func(*parseOpts)

func ParseLogger(l *slog.Logger) ParseOption {
	return func(o *parseOpts) { o.log = l }
}

// parseState is the context lines are read in: the group and subgroup
// item lines go into.
type parseState struct {
	group, subgroup     string
	inGroup, inSubgroup bool
	settingsSeen        bool
	log                 *slog.Logger
}

// ParseText parses a whole document held in a string.
func ParseText(text string, opts ...ParseOption) (*Document, error) {
	return Parse(strings.Split(text, "\n"), opts...)
}

// Parse builds a Document from lines.  Blank lines are skipped.  An item or
// subgroup line without its enclosing group or subgroup fails with a
// *LineError wrapping ErrStructure.
func Parse(lines []string, opts ...ParseOption) (*Document, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	if pOpts.log == nil {
		pOpts.log = slog.Default()
	}
	d := New(store.WithLogger(pOpts.log))
	ps := &parseState{log: pOpts.log}
	for i, ln := range lines {
		ln = strings.TrimSuffix(ln, "\r")
		if err := ps.line(d, ln); err != nil {
			return nil, &LineError{Line: i + 1, Text: ln, Err: err}
		}
	}
	return d, nil
}

func (ps *parseState) line(d *Document, raw string) error {
	ln := strings.TrimSpace(raw)
	if debug.Parse() {
		debug.Logf("parse %q group=%q subgroup=%q\n", ln, ps.group, ps.subgroup)
	}
	switch {
	case ln == "":
		return nil
	case wrapped(ln, '!', '!'):
		d.Ignored = append(d.Ignored, raw)
		return nil
	case wrapped(ln, '<', '>'):
		return ps.settings(d, ln[1:len(ln)-1])
	case wrapped(ln, '*', '*'):
		return ps.groupLine(d, ln[1:len(ln)-1])
	case strings.HasSuffix(ln, ":"):
		return ps.subgroupLine(d, strings.TrimSpace(ln[:len(ln)-1]))
	case wrapped(ln, '|', '|'):
		return ps.itemLine(d, ln[1:len(ln)-1])
	}
	return fmt.Errorf("%w: unrecognized line", ErrStructure)
}

func wrapped(s string, open, close byte) bool {
	return len(s) >= 2 && s[0] == open && s[len(s)-1] == close
}

func (ps *parseState) settings(d *Document, payload string) error {
	if ps.settingsSeen {
		ps.log.Debug("ignoring repeated settings line", "settings", payload)
		return nil
	}
	s, err := ParseSettings(payload)
	if err != nil {
		return err
	}
	ps.settingsSeen = true
	d.Settings = s
	return nil
}

func (ps *parseState) groupLine(d *Document, name string) error {
	if err := d.Store.Create(store.Names(name), nil); err != nil {
		return err
	}
	ps.group, ps.inGroup = name, true
	ps.subgroup, ps.inSubgroup = "", false
	return nil
}

func (ps *parseState) subgroupLine(d *Document, name string) error {
	if !ps.inGroup {
		return fmt.Errorf("%w: subgroup %q before any group", ErrStructure, name)
	}
	if err := d.Store.Create(store.Names(ps.group, name), nil); err != nil {
		return err
	}
	ps.subgroup, ps.inSubgroup = name, true
	return nil
}

func (ps *parseState) itemLine(d *Document, payload string) error {
	if !ps.inGroup || !ps.inSubgroup {
		return fmt.Errorf("%w: item outside of a subgroup", ErrStructure)
	}
	nameLit, dataLit, ok := token.SplitItem(payload, parse.IsLiteral)
	if !ok {
		return fmt.Errorf("%w: item is not name:data", ErrStructure)
	}
	nameV, err := parse.Literal(nameLit)
	if err != nil {
		return err
	}
	name, err := ItemName(nameV)
	if err != nil {
		return err
	}
	v, err := parse.Literal(dataLit)
	if err != nil {
		return fmt.Errorf("item %q: %w", name, err)
	}
	return d.Store.Create(store.Names(ps.group, ps.subgroup, name), v)
}

// ItemName returns the store name for a parsed name literal.  Strings name
// themselves; other scalars are named by their payload text, so #5# names
// the item "5".  Containers fail with ir.ErrInvalidItemName.
func ItemName(v *ir.Value) (string, error) {
	switch v.Kind {
	case ir.StringKind:
		return v.String, nil
	case ir.NullKind:
		return "", nil
	}
	if v.IsContainer() {
		return "", fmt.Errorf("%w: %s used as a name", ir.ErrInvalidItemName, v.Kind)
	}
	lit, err := encode.Literal(v)
	if err != nil {
		return "", err
	}
	return token.Unwrap(lit), nil
}
