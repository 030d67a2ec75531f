package doc

import (
	"fmt"
	"strings"

	"github.com/signadot/filesave/debug"
	"github.com/signadot/filesave/encode"
	"github.com/signadot/filesave/ir"
	"github.com/signadot/filesave/parse"
	"github.com/signadot/filesave/store"
	"github.com/signadot/filesave/token"
)

type formatOpts struct {
	settingsLine bool
	colors       *encode.Colors
}

type FormatOption func(*formatOpts)

// WithSettingsLine puts the settings line first in the output.
func WithSettingsLine(v bool) FormatOption {
	return func(o *formatOpts) { o.settingsLine = v }
}

// FormatColors colors the output for display.  Colored lines do not parse.
func FormatColors(c *encode.Colors) FormatOption {
	return func(o *formatOpts) { o.colors = c }
}

func (o *formatOpts) line(a encode.ColorAttr, s string) string {
	if o.colors == nil {
		return s
	}
	return o.colors.LineColor(a, s)
}

// Format renders d as lines: the settings line if requested, then the
// ignore lines as they were read, then each group with its subgroups and
// items in insertion order.
func Format(d *Document, opts ...FormatOption) ([]string, error) {
	fOpts := &formatOpts{}
	for _, f := range opts {
		f(fOpts)
	}
	var res []string
	if fOpts.settingsLine && d.Settings != nil && d.Settings.Len() > 0 {
		res = append(res, fOpts.line(encode.SettingsColor, d.Settings.Line()))
	}
	for _, ln := range d.Ignored {
		res = append(res, fOpts.line(encode.CommentColor, ln))
	}
	err := d.Store.Walk(func(e *store.Entry) error {
		switch e.Level {
		case store.GroupLevel:
			if err := checkName(e.Group); err != nil {
				return err
			}
			res = append(res, fOpts.line(encode.GroupColor, "*"+e.Group+"*"))
		case store.SubgroupLevel:
			if err := checkSubgroup(e.Subgroup); err != nil {
				return err
			}
			res = append(res, fOpts.line(encode.SubgroupColor, e.Subgroup+":"))
		case store.ItemLevel:
			ln, err := formatItem(ir.FromString(e.Item), e.Value, fOpts)
			if err != nil {
				return fmt.Errorf("%q/%q/%q: %w", e.Group, e.Subgroup, e.Item, err)
			}
			res = append(res, ln)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if debug.Format() {
		debug.Logf("formatted %d lines\n", len(res))
	}
	return res, nil
}

// FormatText renders d as newline terminated text.
func FormatText(d *Document, opts ...FormatOption) (string, error) {
	lines, err := Format(d, opts...)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// FormatItem renders one item line.  A container name fails with
// ir.ErrInvalidItemName.
func FormatItem(name, value *ir.Value, opts ...FormatOption) (string, error) {
	fOpts := &formatOpts{}
	for _, f := range opts {
		f(fOpts)
	}
	return formatItem(name, value, fOpts)
}

func formatItem(name, value *ir.Value, o *formatOpts) (string, error) {
	if name.IsContainer() {
		return "", fmt.Errorf("%w: %s used as a name", ir.ErrInvalidItemName, name.Kind)
	}
	nameLit, err := encode.Literal(name)
	if err != nil {
		return "", err
	}
	dataLit, err := encode.Literal(value)
	if err != nil {
		return "", err
	}
	// a name such as `a":"b` would split in the wrong place when read back
	if got, _, ok := token.SplitItem(nameLit+":"+dataLit, parse.IsLiteral); !ok || got != nameLit {
		return "", fmt.Errorf("%w: item name %s does not split back", encode.ErrUnrepresentable, nameLit)
	}
	if o.colors == nil {
		return "|" + nameLit + ":" + dataLit + "|", nil
	}
	var eOpts = []encode.EncodeOption{encode.EncodeColors(o.colors)}
	cName, _ := encode.Literal(name, eOpts...)
	cData, _ := encode.Literal(value, eOpts...)
	bar := o.line(encode.ItemColor, "|")
	return bar + cName + o.line(encode.ItemColor, ":") + cData + bar, nil
}

// CheckEntry fails for an entry Format could not write so that it reads
// back the same.  It is the store.Check of stores made by NewStore.
func CheckEntry(e *store.Entry) error {
	switch e.Level {
	case store.GroupLevel:
		return checkName(e.Group)
	case store.SubgroupLevel:
		return checkSubgroup(e.Subgroup)
	case store.ItemLevel:
		if _, err := formatItem(ir.FromString(e.Item), e.Value, &formatOpts{}); err != nil {
			return fmt.Errorf("%q/%q/%q: %w", e.Group, e.Subgroup, e.Item, err)
		}
	}
	return nil
}

func checkSubgroup(n string) error {
	if err := checkName(n); err != nil {
		return err
	}
	if strings.TrimSpace(n) != n {
		return fmt.Errorf("%w: subgroup %q has surrounding space", encode.ErrUnrepresentable, n)
	}
	return nil
}

func checkName(n string) error {
	if strings.ContainsAny(n, "\n\r") {
		return fmt.Errorf("%w: name %q spans lines", encode.ErrUnrepresentable, n)
	}
	return nil
}
