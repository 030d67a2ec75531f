package encode

import (
	"strings"

	"github.com/signadot/filesave/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind ir.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	DelimColor ColorAttr = iota
	ValueColor
	SepColor
	// document level attributes, looked up with LineColor
	GroupColor
	SubgroupColor
	ItemColor
	CommentColor
	SettingsColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
	Lines   map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
		Lines:   map[ColorAttr]func(string, ...any) string{},
	}
	for _, k := range ir.Kinds() {
		able := Colorable{Kind: k, Attr: DelimColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = ir.IntKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = ir.FloatKind
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
	able.Kind = ir.NullKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Kind = ir.BoolKind
	colors.Map[able] = color.CyanString
	able.Kind = ir.StringKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able = Colorable{Kind: ir.MappingKind, Attr: DelimColor}
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
	able.Kind = ir.TupleKind
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	colors.Lines[GroupColor] = color.New(color.FgYellow, color.Bold).SprintfFunc()
	colors.Lines[SubgroupColor] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Lines[ItemColor] = color.RGB(96, 96, 96).SprintfFunc()
	colors.Lines[CommentColor] = color.BlueString
	colors.Lines[SettingsColor] = color.MagentaString

	escapePercent(colors.Map)
	escapePercent(colors.Lines)
	return colors
}

// escapePercent keeps payload text from being read as a format string.
func escapePercent[K comparable](m map[K]func(string, ...any) string) {
	for k, f := range m {
		m[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k ir.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k ir.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}

// LineColor colors document level text such as group headers.
func (c *Colors) LineColor(a ColorAttr, s string) string {
	f := c.Lines[a]
	if f == nil {
		return c.Default(s)
	}
	return f(s)
}
