package libdiff

import (
	"fmt"
	"strings"

	"github.com/signadot/filesave/encode"
	"github.com/signadot/filesave/ir"
	"github.com/signadot/filesave/store"
)

type Op int

const (
	Removed Op = iota
	Added
	Modified
)

func (op Op) String() string {
	switch op {
	case Removed:
		return "-"
	case Added:
		return "+"
	case Modified:
		return "~"
	default:
		return "?"
	}
}

// Change is one difference between two stores.  A group or subgroup
// present on one side only is reported once, without its content.  From
// and To are set for items: From unless Added, To unless Removed.
type Change struct {
	Op       Op
	Level    store.Level
	Group    string
	Subgroup string
	Item     string
	From, To *ir.Value
}

func (c *Change) Path() string {
	parts := []string{c.Group}
	if c.Level >= store.SubgroupLevel {
		parts = append(parts, c.Subgroup)
	}
	if c.Level == store.ItemLevel {
		parts = append(parts, c.Item)
	}
	return strings.Join(parts, "/")
}

func (c *Change) String() string {
	if c.Level != store.ItemLevel {
		return fmt.Sprintf("%s %s %s", c.Op, c.Level, c.Path())
	}
	switch c.Op {
	case Removed:
		return fmt.Sprintf("%s %s %s", c.Op, c.Path(), literal(c.From))
	case Added:
		return fmt.Sprintf("%s %s %s", c.Op, c.Path(), literal(c.To))
	}
	return fmt.Sprintf("%s %s %s -> %s", c.Op, c.Path(), literal(c.From), literal(c.To))
}

func literal(v *ir.Value) string {
	s, err := encode.Literal(v)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return s
}

type entryKey struct {
	level                 store.Level
	group, subgroup, item string
}

func keyOf(e *store.Entry) entryKey {
	return entryKey{level: e.Level, group: e.Group, subgroup: e.Subgroup, item: e.Item}
}

// parentKey is the key of the level above e.
func parentKey(e *store.Entry) (entryKey, bool) {
	switch e.Level {
	case store.SubgroupLevel:
		return entryKey{level: store.GroupLevel, group: e.Group}, true
	case store.ItemLevel:
		return entryKey{level: store.SubgroupLevel, group: e.Group, subgroup: e.Subgroup}, true
	}
	return entryKey{}, false
}

func index(s *store.Store) map[entryKey]*ir.Value {
	res := map[entryKey]*ir.Value{}
	_ = s.Walk(func(e *store.Entry) error {
		res[keyOf(e)] = e.Value
		return nil
	})
	return res
}

// Diff lists what changes from a to b: removals and changes in the order
// of a, then additions in the order of b.  Order within a level is not
// compared.
func Diff(a, b *store.Store) []Change {
	ia, ib := index(a), index(b)
	var res []Change
	collect := func(s *store.Store, other map[entryKey]*ir.Value, op Op) {
		missing := map[entryKey]bool{}
		_ = s.Walk(func(e *store.Entry) error {
			k := keyOf(e)
			if pk, ok := parentKey(e); ok && missing[pk] {
				missing[k] = true
				return nil
			}
			ov, ok := other[k]
			switch {
			case !ok:
				missing[k] = true
				c := Change{Op: op, Level: e.Level, Group: e.Group, Subgroup: e.Subgroup, Item: e.Item}
				if op == Removed {
					c.From = e.Value
				} else {
					c.To = e.Value
				}
				res = append(res, c)
			case op == Removed && e.Level == store.ItemLevel && !ir.Equal(e.Value, ov):
				res = append(res, Change{Op: Modified, Level: e.Level, Group: e.Group,
					Subgroup: e.Subgroup, Item: e.Item, From: e.Value, To: ov})
			}
			return nil
		})
	}
	collect(a, ib, Removed)
	collect(b, ia, Added)
	return res
}
