package store

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/filesave/ir"
)

func mustCreate(t *testing.T, s *Store, p Path, v any) {
	t.Helper()
	if err := s.Create(p, v); err != nil {
		t.Fatalf("Create(%s): %v", p, err)
	}
}

func names(t *testing.T, s *Store, p Path) []string {
	t.Helper()
	c, err := s.Content(p)
	if err != nil {
		t.Fatalf("Content(%s): %v", p, err)
	}
	return c.Names
}

func abc(t *testing.T) *Store {
	s := New()
	for _, g := range []string{"A", "B", "C"} {
		mustCreate(t, s, Names(g, g+"1"), nil)
		mustCreate(t, s, Names(g, g+"2"), nil)
	}
	mustCreate(t, s, Names("B", "B1", "x"), int64(1))
	mustCreate(t, s, Names("B", "B1", "y"), "why")
	return s
}

func TestContentIndex(t *testing.T) {
	s := abc(t)
	if diff := cmp.Diff([]string{"A", "B", "C"}, names(t, s, Path{})); diff != "" {
		t.Errorf("groups (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"B1", "B2"}, names(t, s, At(Index(1)))); diff != "" {
		t.Errorf("content(1) (-want +got):\n%s", diff)
	}
	if _, err := s.Content(At(Index(5))); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("content(5) = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := s.Content(At(Index(-1))); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("content(-1) = %v, want ErrIndexOutOfRange", err)
	}
	c, err := s.Content(At(Name("B"), Index(0), Index(1)))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(c.Value, ir.FromString("why")) {
		t.Errorf("got %+v", c.Value)
	}
	if _, err := s.Content(Names("Z")); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing group: %v, want ErrNotFound", err)
	}
	if _, err := s.Content(Names("B", "B1", "zz")); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing item: %v, want ErrNotFound", err)
	}
}

func TestContains(t *testing.T) {
	s := abc(t)
	tests := []struct {
		name string
		p    Path
		want bool
	}{
		{name: "B", p: Path{}, want: true},
		{name: "D", p: Path{}, want: false},
		{name: "B2", p: Names("B"), want: true},
		{name: "A1", p: Names("B"), want: false},
		{name: "y", p: At(Index(1), Index(0)), want: true},
	}
	for _, tt := range tests {
		got, err := s.Contains(tt.name, tt.p)
		if err != nil {
			t.Errorf("Contains(%q, %s): %v", tt.name, tt.p, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Contains(%q, %s) = %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
	if _, err := s.Contains("x", Names("B", "B1", "x")); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("contains at item level: %v, want ErrInvalidRequest", err)
	}
}

func TestCreate(t *testing.T) {
	s := New()
	mustCreate(t, s, Names("UserPreferences", "Display", "Theme"), "Dark")
	mustCreate(t, s, Names("UserPreferences", "Display", "Brightness"), 80)
	mustCreate(t, s, Names("UserPreferences", "Sound"), nil)
	mustCreate(t, s, Names("UserPreferences", "Display", "Theme"), "Light")

	if diff := cmp.Diff([]string{"Theme", "Brightness"}, names(t, s, Names("UserPreferences", "Display"))); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
	v, err := s.Get(Names("UserPreferences", "Display", "Theme"))
	if err != nil {
		t.Fatal(err)
	}
	if v.String != "Light" {
		t.Errorf("overwrite: got %q", v.String)
	}
	v, err = s.Get(Names("UserPreferences", "Display", "Brightness"))
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind != ir.IntKind || v.Int != 80 {
		t.Errorf("brightness: got %+v", v)
	}
}

func TestCreateRejects(t *testing.T) {
	tests := []struct {
		name string
		p    Path
		v    any
		want error
	}{
		{name: "no group", p: Path{}, want: ErrInvalidRequest},
		{name: "item without subgroup", p: Path{Group: Name("G"), Item: Name("i")}, v: 1, want: ErrInvalidRequest},
		{name: "subgroup without group", p: Path{Subgroup: Name("S")}, want: ErrInvalidRequest},
		{name: "value without item", p: Names("G", "S"), v: 1, want: ErrInvalidRequest},
		{name: "unsupported type", p: Names("G", "S", "i"), v: struct{}{}, want: ir.ErrUnsupportedType},
		{name: "uint64", p: Names("G", "S", "i"), v: uint64(1), want: ir.ErrUnsupportedType},
		{name: "unknown kind", p: Names("G", "S", "i"), v: &ir.Value{Kind: 42}, want: ir.ErrUnsupportedType},
		{name: "nil element", p: Names("G", "S", "i"), v: ir.FromSlice([]*ir.Value{nil}), want: ir.ErrUnsupportedType},
		{name: "index in new group", p: At(Name("N"), Index(0)), want: ErrIndexOutOfRange},
		{name: "missing group index", p: At(Index(3)), want: ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			mustCreate(t, s, Names("G", "S", "kept"), true)
			before := s.Clone()
			err := s.Create(tt.p, tt.v)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Create(%s) = %v, want %v", tt.p, err, tt.want)
			}
			if !Equal(before, s) {
				t.Errorf("store changed by failed create")
			}
		})
	}
}

func TestRenameDuplicate(t *testing.T) {
	s := New()
	mustCreate(t, s, Names("A", "s"), nil)
	mustCreate(t, s, Names("B"), nil)
	before := s.Clone()
	if err := s.Rename(Names("A"), "B"); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("Rename A->B = %v, want ErrDuplicateName", err)
	}
	if !Equal(before, s) {
		t.Errorf("store changed by failed rename")
	}
	if err := s.Rename(Names("Q"), "R"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Rename missing = %v, want ErrNotFound", err)
	}
}

func TestRenameAppends(t *testing.T) {
	s := abc(t)
	if err := s.Rename(Names("A"), "Z"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"B", "C", "Z"}, names(t, s, Path{})); diff != "" {
		t.Errorf("groups after rename (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A1", "A2"}, names(t, s, Names("Z"))); diff != "" {
		t.Errorf("subtree after rename (-want +got):\n%s", diff)
	}
	if err := s.Rename(Names("B", "B1", "x"), "w"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"y", "w"}, names(t, s, Names("B", "B1"))); diff != "" {
		t.Errorf("items after rename (-want +got):\n%s", diff)
	}
	if err := s.Rename(At(Name("B"), Index(0)), "B0"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"B2", "B0"}, names(t, s, Names("B"))); diff != "" {
		t.Errorf("subgroups after rename (-want +got):\n%s", diff)
	}
}

func TestReplace(t *testing.T) {
	s := abc(t)
	if err := s.Replace(Names("B", "B1", "x"), []any{"a", int64(2)}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, names(t, s, Names("B", "B1"))); diff != "" {
		t.Errorf("replace moved the item (-want +got):\n%s", diff)
	}
	v, _ := s.Get(Names("B", "B1", "x"))
	if v.Kind != ir.SequenceKind || len(v.Values) != 2 {
		t.Errorf("got %+v", v)
	}
	if err := s.Replace(Names("B", "B1", "nope"), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("replace missing = %v, want ErrNotFound", err)
	}
	if err := s.Replace(Names("B", "B1"), 1); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("replace subgroup = %v, want ErrInvalidRequest", err)
	}
}

func TestDeleteAndMove(t *testing.T) {
	s := abc(t)
	if err := s.Move(Names("B", "B1", "x"), Names("C", "C2")); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"y"}, names(t, s, Names("B", "B1"))); diff != "" {
		t.Errorf("source (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x"}, names(t, s, Names("C", "C2"))); diff != "" {
		t.Errorf("destination (-want +got):\n%s", diff)
	}
	if err := s.Move(Names("B", "B1"), Names("A")); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"A1", "A2", "B1"}, names(t, s, Names("A"))); diff != "" {
		t.Errorf("moved subgroup (-want +got):\n%s", diff)
	}
	if err := s.Move(Names("A", "A1"), Names("A")); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("move onto itself = %v, want ErrDuplicateName", err)
	}
	if err := s.Move(Names("A"), Names("C")); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("move group = %v, want ErrInvalidRequest", err)
	}
	if err := s.Delete(Names("A", "B1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(At(Index(0))); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"B", "C"}, names(t, s, Path{})); diff != "" {
		t.Errorf("after delete (-want +got):\n%s", diff)
	}
	if err := s.Delete(Path{}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("delete store = %v, want ErrInvalidRequest", err)
	}
}

func TestCreateOwnsValue(t *testing.T) {
	s := New()
	v := ir.FromSlice([]*ir.Value{ir.FromInt(1)})
	mustCreate(t, s, Names("G", "S", "i"), v)
	v.Values[0].Int = 2
	got, _ := s.Get(Names("G", "S", "i"))
	if got.Values[0].Int != 1 {
		t.Errorf("stored value aliased the caller's")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := abc(t)
	mustCreate(t, s, Names("C", "C1", "m"), map[string]any{"k": []any{1.5, nil, true}})
	d, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	got := New()
	if err := json.Unmarshal(d, got); err != nil {
		t.Fatal(err)
	}
	if !Equal(s, got) {
		t.Errorf("round trip mismatch:\n%s", d)
	}
	dup := `{"groups":[{"name":"a","subgroups":[]},{"name":"a","subgroups":[]}]}`
	if err := json.Unmarshal([]byte(dup), New()); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate groups = %v, want ErrDuplicateName", err)
	}
}

var errRefused = errors.New("refused")

// refuseBad refuses any name "bad" and any string value "bad".
func refuseBad(e *Entry) error {
	if e.Group == "bad" || e.Subgroup == "bad" || e.Item == "bad" {
		return errRefused
	}
	if e.Value != nil && e.Value.Kind == ir.StringKind && e.Value.String == "bad" {
		return errRefused
	}
	return nil
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		op   func(s *Store) error
	}{
		{name: "create group", op: func(s *Store) error { return s.Create(Names("bad", "S"), nil) }},
		{name: "create subgroup", op: func(s *Store) error { return s.Create(Names("N", "bad"), nil) }},
		{name: "create item", op: func(s *Store) error { return s.Create(Names("N", "S", "bad"), 1) }},
		{name: "create value", op: func(s *Store) error { return s.Create(Names("G", "S", "j"), "bad") }},
		{name: "rename", op: func(s *Store) error { return s.Rename(Names("G", "S"), "bad") }},
		{name: "replace", op: func(s *Store) error { return s.Replace(Names("G", "S", "i"), "bad") }},
		{name: "unmarshal", op: func(s *Store) error {
			return json.Unmarshal([]byte(`{"groups":[{"name":"bad","subgroups":[]}]}`), s)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithCheck(refuseBad))
			mustCreate(t, s, Names("G", "S", "i"), "good")
			before := s.Clone()
			if err := tt.op(s); !errors.Is(err, errRefused) {
				t.Fatalf("got %v, want errRefused", err)
			}
			if !Equal(before, s) {
				t.Errorf("store changed by a refused change")
			}
		})
	}
	s := New(WithCheck(refuseBad))
	if err := s.Clone().Create(Names("bad"), nil); !errors.Is(err, errRefused) {
		t.Errorf("clone lost the check: %v", err)
	}
}
