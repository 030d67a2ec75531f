package doc

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/filesave/encode"
	"github.com/signadot/filesave/ir"
	"github.com/signadot/filesave/store"
)

func TestCreateThenFormat(t *testing.T) {
	d, err := ParseText("*UserPreferences*\nDisplay:\n|\"Theme\":\"Dark\"|\n")
	if err != nil {
		t.Fatal(err)
	}
	v, err := d.Store.Get(store.Names("UserPreferences", "Display", "Theme"))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(v, ir.FromString("Dark")) {
		t.Fatalf("Theme = %s", encode.MustString(v))
	}
	if err := d.Store.Create(store.Names("UserPreferences", "Display", "Brightness"), 80); err != nil {
		t.Fatal(err)
	}
	got, err := Format(d)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"*UserPreferences*",
		"Display:",
		`|"Theme":"Dark"|`,
		`|"Brightness":#80#|`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format (-want +got):\n%s", diff)
	}
}

func TestParseStructureErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
		want error
	}{
		{name: "lone item", text: `|"a":#1#|`, line: 1, want: ErrStructure},
		{name: "subgroup before group", text: "!c!\nsg:", line: 2, want: ErrStructure},
		{name: "item in group only", text: "*g*\n|\"a\":#1#|", line: 2, want: ErrStructure},
		{name: "unrecognized", text: "*g*\nsg:\nhello", line: 3, want: ErrStructure},
		{name: "no split", text: "*g*\nsg:\n|Theme:\"Dark\"|", line: 3, want: ErrStructure},
		{name: "container name", text: "*g*\nsg:\n|[\"a\"]:#1#|", line: 3, want: ir.ErrInvalidItemName},
		{name: "bad settings", text: "<system_type>", line: 1, want: ErrStructure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseText(tc.text)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			var le *LineError
			if !errors.As(err, &le) {
				t.Fatalf("%v is not a *LineError", err)
			}
			if le.Line != tc.line {
				t.Errorf("line %d, want %d", le.Line, tc.line)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	lines := []string{
		"<system_type:read-only, encoded:false>",
		"!generated, do not edit!",
		"*Game*",
		"Audio:",
		`|"Volume":~0.75~|`,
		`|"Muted":?false?|`,
		"Keys:",
		`|"Jump":["space", "w"]|`,
		`|"Bind":{"fire", #1#, "use", .}|`,
		`|"Origin":(#0#, #0#)|`,
		"*Empty*",
		"!trailing note!",
	}
	d, err := Parse(lines)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Settings.ReadOnly() {
		t.Errorf("expected read-only settings")
	}
	got, err := Format(d, WithSettingsLine(true))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"<system_type:read-only, encoded:false>",
		"!generated, do not edit!",
		"!trailing note!",
		"*Game*",
		"Audio:",
		`|"Volume":~0.75~|`,
		`|"Muted":?false?|`,
		"Keys:",
		`|"Jump":["space", "w"]|`,
		`|"Bind":{"fire", #1#, "use", .}|`,
		`|"Origin":(#0#, #0#)|`,
		"*Empty*",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format (-want +got):\n%s", diff)
	}
	again, err := Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	if !store.Equal(d.Store, again.Store) {
		t.Errorf("store changed across format and parse")
	}
}

func TestParseDetails(t *testing.T) {
	text := strings.Join([]string{
		"<encoded:true>",
		"<encoded:false>",
		"  *g*  \r",
		"",
		"sg:",
		`|"a:b":"c"|`,
		`|#5#:"five"|`,
		`|.:"none"|`,
		`|"a:b":"d"|`,
		"other:",
		"*g*",
		`other:`,
		`|"x":#1#|`,
	}, "\n")
	d, err := ParseText(text)
	if err != nil {
		t.Fatal(err)
	}
	if !d.Settings.Encoded() {
		t.Errorf("first settings line should win")
	}
	c, err := d.Store.Content(store.Names("g", "sg"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a:b", "5", ""}, c.Names); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
	v, _ := d.Store.Get(store.Names("g", "sg", "a:b"))
	if !ir.Equal(v, ir.FromString("d")) {
		t.Errorf("a:b = %s, want overwritten value", encode.MustString(v))
	}
	if ok, _ := d.Store.Contains("x", store.Names("g", "other")); !ok {
		t.Errorf("returning to a group should reuse its subgroups")
	}
}

func TestFormatItem(t *testing.T) {
	tests := []struct {
		name  string
		key   *ir.Value
		value *ir.Value
		want  string
		err   error
	}{
		{name: "string", key: ir.FromString("k"), value: ir.FromInt(3), want: `|"k":#3#|`},
		{name: "int name", key: ir.FromInt(7), value: ir.Null(), want: `|#7#:.|`},
		{name: "container name", key: ir.FromSlice(nil), value: ir.Null(), err: ir.ErrInvalidItemName},
		{name: "split ambiguity", key: ir.FromString(`a":"b`), value: ir.Null(), err: encode.ErrUnrepresentable},
		{name: "nested comma", key: ir.FromString("k"), value: ir.FromSlice([]*ir.Value{ir.FromString("a,b")}), err: encode.ErrUnrepresentable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatItem(tc.key, tc.value)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("got %v, want %v", err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFormatTextEmpty(t *testing.T) {
	got, err := FormatText(New())
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q", got)
	}
	d := New()
	if err := d.Store.Create(store.Names("g", "s"), nil); err != nil {
		t.Fatal(err)
	}
	got, err = FormatText(d, WithSettingsLine(true))
	if err != nil {
		t.Fatal(err)
	}
	if got != "*g*\ns:\n" {
		t.Errorf("got %q", got)
	}
}

func TestSettings(t *testing.T) {
	s, err := ParseSettings(" system_type : read-only ,x:y, ")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{KeySystemType, "x"}, s.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if !s.ReadOnly() || s.Encoded() {
		t.Errorf("read-only %v encoded %v", s.ReadOnly(), s.Encoded())
	}
	c := s.Clone()
	c.Set(KeySystemType, ReadWrite)
	c.Set(KeyEncoded, "true")
	if !s.ReadOnly() {
		t.Errorf("clone shares state")
	}
	if got, want := c.Line(), "<system_type:read-write, x:y, encoded:true>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if NewSettings().SystemType() != ReadWrite {
		t.Errorf("default system type should be %s", ReadWrite)
	}
}

func TestDocumentStoreRefuses(t *testing.T) {
	deep := ir.Null()
	for range ir.MaxDepth + 1 {
		deep = ir.FromSlice([]*ir.Value{deep})
	}
	tests := []struct {
		name string
		op   func(s *store.Store) error
		want error
	}{
		{name: "unknown kind", op: func(s *store.Store) error {
			return s.Create(store.Names("G", "S", "i"), &ir.Value{Kind: 42})
		}, want: ir.ErrUnsupportedType},
		{name: "nested comma", op: func(s *store.Store) error {
			return s.Create(store.Names("G", "S", "i"), []string{"a,b"})
		}, want: encode.ErrUnrepresentable},
		{name: "too deep", op: func(s *store.Store) error {
			return s.Create(store.Names("G", "S", "i"), deep)
		}, want: ir.ErrUnsupportedType},
		{name: "spaced subgroup", op: func(s *store.Store) error {
			return s.Create(store.Names("G", " S"), nil)
		}, want: encode.ErrUnrepresentable},
		{name: "multiline group", op: func(s *store.Store) error {
			return s.Create(store.Names("a\nb"), nil)
		}, want: encode.ErrUnrepresentable},
		{name: "ambiguous item name", op: func(s *store.Store) error {
			return s.Create(store.Names("G", "S", `a":"b`), 1)
		}, want: encode.ErrUnrepresentable},
		{name: "rename to spaced subgroup", op: func(s *store.Store) error {
			return s.Rename(store.Names("G", "S"), "S ")
		}, want: encode.ErrUnrepresentable},
		{name: "replace", op: func(s *store.Store) error {
			return s.Replace(store.Names("G", "S", "ok"), []any{"x\ny"})
		}, want: encode.ErrUnrepresentable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := New()
			if err := d.Store.Create(store.Names("G", "S", "ok"), 1); err != nil {
				t.Fatal(err)
			}
			before := d.Store.Clone()
			if err := tc.op(d.Store); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			if !store.Equal(before, d.Store) {
				t.Errorf("store changed by a refused change")
			}
			if _, err := Format(d); err != nil {
				t.Errorf("store no longer formats: %v", err)
			}
		})
	}
}

func TestParseTrimsSubgroup(t *testing.T) {
	d, err := ParseText("*g*\n  sg  :  \n|\"a\":#1#|\n")
	if err != nil {
		t.Fatal(err)
	}
	c, err := d.Store.Content(store.Names("g"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"sg"}, c.Names); diff != "" {
		t.Errorf("subgroups (-want +got):\n%s", diff)
	}
}
