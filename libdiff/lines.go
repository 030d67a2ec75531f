package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff diffs two documents given as lines, treating each line as a
// unit.
func LineDiff(from, to []string) []diffpatch.Diff {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(joinLines(from), joinLines(to))
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Changed reports whether diffs holds anything but equal text.
func Changed(diffs []diffpatch.Diff) bool {
	for i := range diffs {
		if diffs[i].Type != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

// Render writes diffs one line at a time, prefixed by "- ", "+ " or two
// spaces.
func Render(w io.Writer, diffs []diffpatch.Diff, colored bool) error {
	del, ins := color.New(color.FgRed), color.New(color.FgGreen)
	if colored {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}
	for i := range diffs {
		diff := &diffs[i]
		prefix, c := "  ", (*color.Color)(nil)
		switch diff.Type {
		case diffpatch.DiffDelete:
			prefix, c = "- ", del
		case diffpatch.DiffInsert:
			prefix, c = "+ ", ins
		}
		for _, ln := range strings.SplitAfter(diff.Text, "\n") {
			if ln == "" {
				continue
			}
			ln = prefix + strings.TrimSuffix(ln, "\n")
			if c != nil {
				ln = c.Sprint(ln)
			}
			if _, err := fmt.Fprintln(w, ln); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteChanges writes one line per change.
func WriteChanges(w io.Writer, changes []Change, colored bool) error {
	cols := map[Op]*color.Color{
		Removed:  color.New(color.FgRed),
		Added:    color.New(color.FgGreen),
		Modified: color.New(color.FgYellow),
	}
	for _, c := range cols {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	for i := range changes {
		if _, err := fmt.Fprintln(w, cols[changes[i].Op].Sprint(changes[i].String())); err != nil {
			return err
		}
	}
	return nil
}
