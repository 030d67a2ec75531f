package libdiff

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/filesave/ir"
	"github.com/signadot/filesave/store"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func build(t *testing.T, items map[string]any, order ...string) *store.Store {
	t.Helper()
	s := store.New()
	for _, p := range order {
		path := store.Names(splitPath(p)...)
		if err := s.Create(path, items[p]); err != nil {
			t.Fatalf("create %s: %v", p, err)
		}
	}
	return s
}

func splitPath(p string) []string {
	var res []string
	start := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			res = append(res, p[start:i])
			start = i + 1
		}
	}
	return append(res, p[start:])
}

func TestDiff(t *testing.T) {
	vals := map[string]any{
		"g/s/a": int64(1),
		"g/s/b": "old",
		"g/s/c": true,
		"x/y/z": 1.5,
	}
	a := build(t, vals, "g/s/a", "g/s/b", "g/s/c", "x/y/z", "gone")
	vals["g/s/b"] = "new"
	vals["g/s/d"] = nil
	b := build(t, vals, "g/s/d", "g/s/a", "g/s/b", "fresh/sub")

	got := Diff(a, b)
	var lines []string
	for i := range got {
		lines = append(lines, got[i].String())
	}
	want := []string{
		`~ g/s/b "old" -> "new"`,
		`- g/s/c ?true?`,
		`- group x`,
		`- group gone`,
		`+ g/s/d .`,
		`+ group fresh`,
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("Diff (-want +got):\n%s", diff)
	}
	if got := Diff(a, a.Clone()); len(got) != 0 {
		t.Errorf("clone differs: %v", got)
	}
	if !ir.Equal(Diff(a, b)[0].To, ir.FromString("new")) {
		t.Errorf("changed value")
	}
}

func TestLineDiff(t *testing.T) {
	from := []string{"*g*", "s:", `|"a":#1#|`, `|"b":#2#|`}
	to := []string{"*g*", "s:", `|"a":#1#|`, `|"b":#3#|`, `|"c":.|`}
	diffs := LineDiff(from, to)
	if !Changed(diffs) {
		t.Fatal("expected changes")
	}
	buf := &bytes.Buffer{}
	if err := Render(buf, diffs, false); err != nil {
		t.Fatal(err)
	}
	want := "  *g*\n  s:\n  |\"a\":#1#|\n- |\"b\":#2#|\n+ |\"b\":#3#|\n+ |\"c\":.|\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Render (-want +got):\n%s", diff)
	}
	if Changed(LineDiff(from, from)) {
		t.Errorf("identical documents reported as changed")
	}
	if Changed([]diffpatch.Diff{{Type: diffpatch.DiffEqual, Text: "x\n"}}) {
		t.Errorf("equal diff reported as changed")
	}
}

func TestWriteChanges(t *testing.T) {
	changes := []Change{
		{Op: Added, Level: store.ItemLevel, Group: "g", Subgroup: "s", Item: "i", To: ir.FromInt(4)},
		{Op: Removed, Level: store.SubgroupLevel, Group: "g", Subgroup: "t"},
		{Op: Modified, Level: store.ItemLevel, Group: "g", Subgroup: "s", Item: "j",
			From: ir.FromBool(true), To: ir.FromBool(false)},
	}
	buf := &bytes.Buffer{}
	if err := WriteChanges(buf, changes, false); err != nil {
		t.Fatal(err)
	}
	if want := "+ g/s/i #4#\n- subgroup g/t\n~ g/s/j ?true? -> ?false?\n"; buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
