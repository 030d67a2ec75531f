package store

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/signadot/filesave/ir"
)

type items = omap[*ir.Value]
type subgroups = omap[*items]

// Store is an ordered tree of groups, subgroups and items.  Each level
// keeps insertion order, which is both the order documents are written in
// and the order Index selectors count in.
//
// A Store is not safe for concurrent use.
type Store struct {
	groups *omap[*subgroups]
	log    *slog.Logger
	check  Check
}

type Option func(*Store)

// Check vets an entry about to enter the store.  For items, Value is the
// value about to be stored.
type Check func(e *Entry) error

// WithCheck makes Create, Rename, Replace and UnmarshalJSON run c on every
// entry they would add or change, failing without a change if c does.
func WithCheck(c Check) Option {
	return func(s *Store) { s.check = c }
}

// WithLogger sets the logger mutations are reported to at debug level.  If
// unset, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(opts ...Option) *Store {
	s := &Store{groups: newOMap[*subgroups]()}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

func (s *Store) vet(e *Entry) error {
	if s.check == nil {
		return nil
	}
	return s.check(e)
}

// Content holds either the ordered names at the first unselected level of a
// path or, for a path down to an item, the item's value.
type Content struct {
	Names []string
	Value *ir.Value
}

// located is a path resolved against the tree.
type located struct {
	lvl                   Level
	group, subgroup, item string
	sgs                   *subgroups
	its                   *items
}

func (s *Store) locate(p Path) (*located, error) {
	lvl, err := p.Level()
	if err != nil {
		return nil, err
	}
	loc := &located{lvl: lvl}
	if lvl == StoreLevel {
		return loc, nil
	}
	if loc.group, err = s.groups.resolve(p.Group, "group"); err != nil {
		return nil, err
	}
	loc.sgs = s.groups.get(loc.group)
	if lvl == GroupLevel {
		return loc, nil
	}
	if loc.subgroup, err = loc.sgs.resolve(p.Subgroup, "subgroup"); err != nil {
		return nil, fmt.Errorf("in group %q: %w", loc.group, err)
	}
	loc.its = loc.sgs.get(loc.subgroup)
	if lvl == SubgroupLevel {
		return loc, nil
	}
	if loc.item, err = loc.its.resolve(p.Item, "item"); err != nil {
		return nil, fmt.Errorf("in %q/%q: %w", loc.group, loc.subgroup, err)
	}
	return loc, nil
}

// Content resolves p.  With no selector it lists groups, with a group the
// group's subgroups, with a subgroup its items and with an item it returns
// the item's value.  The returned value is the stored one, not a copy.
func (s *Store) Content(p Path) (Content, error) {
	loc, err := s.locate(p)
	if err != nil {
		return Content{}, err
	}
	switch loc.lvl {
	case StoreLevel:
		return Content{Names: s.groups.names()}, nil
	case GroupLevel:
		return Content{Names: loc.sgs.names()}, nil
	case SubgroupLevel:
		return Content{Names: loc.its.names()}, nil
	}
	return Content{Value: loc.its.get(loc.item)}, nil
}

// Contains reports whether name is among the names Content(p) lists.
func (s *Store) Contains(name string, p Path) (bool, error) {
	c, err := s.Content(p)
	if err != nil {
		return false, err
	}
	if c.Value != nil {
		return false, fmt.Errorf("%w: %s addresses an item, not a level", ErrInvalidRequest, p)
	}
	return slices.Contains(c.Names, name), nil
}

// Get returns the value of the item p addresses.
func (s *Store) Get(p Path) (*ir.Value, error) {
	lvl, err := p.Level()
	if err != nil {
		return nil, err
	}
	if lvl != ItemLevel {
		return nil, fmt.Errorf("%w: %s does not address an item", ErrInvalidRequest, p)
	}
	c, err := s.Content(p)
	if err != nil {
		return nil, err
	}
	return c.Value, nil
}

// Groups returns the group names in order.
func (s *Store) Groups() []string {
	return s.groups.names()
}

// Len returns the number of groups.
func (s *Store) Len() int {
	return s.groups.len()
}

func resolveOrNew[V any](m *omap[V], sel Selector, level string) (string, bool, error) {
	if sel.kind == selName && !m.has(sel.name) {
		return sel.name, true, nil
	}
	k, err := m.resolve(sel, level)
	return k, false, err
}

// Create makes sure every level p names exists, creating missing groups
// and subgroups empty.  When p reaches an item, value is converted with
// ir.FromGo and stored under it, replacing any previous value.  Index
// selectors must refer to existing entries.
//
// Everything is checked before anything is created, so on error the store
// is unchanged.
func (s *Store) Create(p Path, value any) error {
	lvl, err := p.Level()
	if err != nil {
		return err
	}
	if lvl == StoreLevel {
		return fmt.Errorf("%w: create needs a group", ErrInvalidRequest)
	}
	var val *ir.Value
	if lvl == ItemLevel {
		if val, err = ir.FromGo(value); err != nil {
			return fmt.Errorf("item %s: %w", p, err)
		}
		val = val.Clone()
	} else if value != nil {
		return fmt.Errorf("%w: value given for %s without an item", ErrInvalidRequest, p)
	}

	group, gNew, err := resolveOrNew(s.groups, p.Group, "group")
	if err != nil {
		return err
	}
	sgs := newOMap[*items]()
	if !gNew {
		sgs = s.groups.get(group)
	}
	var (
		sub  string
		sNew bool
		its  = newOMap[*ir.Value]()
		item string
	)
	if lvl >= SubgroupLevel {
		if sub, sNew, err = resolveOrNew(sgs, p.Subgroup, "subgroup"); err != nil {
			return fmt.Errorf("in group %q: %w", group, err)
		}
		if !sNew {
			its = sgs.get(sub)
		}
	}
	if lvl == ItemLevel {
		if item, _, err = resolveOrNew(its, p.Item, "item"); err != nil {
			return fmt.Errorf("in %q/%q: %w", group, sub, err)
		}
	}
	if gNew {
		if err := s.vet(&Entry{Level: GroupLevel, Group: group}); err != nil {
			return err
		}
	}
	if sNew {
		if err := s.vet(&Entry{Level: SubgroupLevel, Group: group, Subgroup: sub}); err != nil {
			return err
		}
	}
	if lvl == ItemLevel {
		e := &Entry{Level: ItemLevel, Group: group, Subgroup: sub, Item: item, Value: val}
		if err := s.vet(e); err != nil {
			return err
		}
	}

	if gNew {
		s.groups.set(group, sgs)
	}
	if sNew {
		sgs.set(sub, its)
	}
	if lvl == ItemLevel {
		its.set(item, val)
	}
	s.log.Debug("create", "path", p.String(), "level", lvl.String())
	return nil
}

// Rename gives the group, subgroup or item p addresses the name nn.  The
// entity keeps its content but moves to the end of its level, as if it had
// been created last.
func (s *Store) Rename(p Path, nn string) error {
	loc, err := s.locate(p)
	if err != nil {
		return err
	}
	if loc.lvl != StoreLevel {
		e := &Entry{Level: loc.lvl, Group: loc.group, Subgroup: loc.subgroup, Item: loc.item}
		switch loc.lvl {
		case GroupLevel:
			e.Group = nn
		case SubgroupLevel:
			e.Subgroup = nn
		case ItemLevel:
			e.Item, e.Value = nn, loc.its.get(loc.item)
		}
		if err := s.vet(e); err != nil {
			return err
		}
	}
	switch loc.lvl {
	case GroupLevel:
		if s.groups.has(nn) {
			return fmt.Errorf("%w: group %q", ErrDuplicateName, nn)
		}
		s.groups.rename(loc.group, nn)
	case SubgroupLevel:
		if loc.sgs.has(nn) {
			return fmt.Errorf("%w: subgroup %q in group %q", ErrDuplicateName, nn, loc.group)
		}
		loc.sgs.rename(loc.subgroup, nn)
	case ItemLevel:
		if loc.its.has(nn) {
			return fmt.Errorf("%w: item %q in %q/%q", ErrDuplicateName, nn, loc.group, loc.subgroup)
		}
		loc.its.rename(loc.item, nn)
	default:
		return fmt.Errorf("%w: nothing selected to rename", ErrInvalidRequest)
	}
	s.log.Debug("rename", "path", p.String(), "to", nn)
	return nil
}

// Replace stores value under the existing item p addresses, keeping the
// item's position.
func (s *Store) Replace(p Path, value any) error {
	lvl, err := p.Level()
	if err != nil {
		return err
	}
	if lvl != ItemLevel {
		return fmt.Errorf("%w: replace needs an item, got %s", ErrInvalidRequest, lvl)
	}
	val, err := ir.FromGo(value)
	if err != nil {
		return fmt.Errorf("item %s: %w", p, err)
	}
	loc, err := s.locate(p)
	if err != nil {
		return err
	}
	val = val.Clone()
	e := &Entry{Level: ItemLevel, Group: loc.group, Subgroup: loc.subgroup, Item: loc.item, Value: val}
	if err := s.vet(e); err != nil {
		return err
	}
	loc.its.set(loc.item, val)
	s.log.Debug("replace", "path", p.String())
	return nil
}

// Delete removes the group, subgroup or item p addresses along with
// everything below it.
func (s *Store) Delete(p Path) error {
	loc, err := s.locate(p)
	if err != nil {
		return err
	}
	switch loc.lvl {
	case GroupLevel:
		s.groups.del(loc.group)
	case SubgroupLevel:
		loc.sgs.del(loc.subgroup)
	case ItemLevel:
		loc.its.del(loc.item)
	default:
		return fmt.Errorf("%w: nothing selected to delete", ErrInvalidRequest)
	}
	s.log.Debug("delete", "path", p.String())
	return nil
}

// Move moves a subgroup into another existing group, or an item into
// another existing subgroup, appending it there under its current name.
func (s *Store) Move(from, to Path) error {
	floc, err := s.locate(from)
	if err != nil {
		return err
	}
	tloc, err := s.locate(to)
	if err != nil {
		return err
	}
	switch {
	case floc.lvl == SubgroupLevel && tloc.lvl == GroupLevel:
		if tloc.sgs.has(floc.subgroup) {
			return fmt.Errorf("%w: subgroup %q in group %q", ErrDuplicateName, floc.subgroup, tloc.group)
		}
		floc.sgs.del(floc.subgroup)
		tloc.sgs.set(floc.subgroup, floc.its)
	case floc.lvl == ItemLevel && tloc.lvl == SubgroupLevel:
		if tloc.its.has(floc.item) {
			return fmt.Errorf("%w: item %q in %q/%q", ErrDuplicateName, floc.item, tloc.group, tloc.subgroup)
		}
		v := floc.its.get(floc.item)
		floc.its.del(floc.item)
		tloc.its.set(floc.item, v)
	default:
		return fmt.Errorf("%w: cannot move a %s into a %s", ErrInvalidRequest, floc.lvl, tloc.lvl)
	}
	s.log.Debug("move", "from", from.String(), "to", to.String())
	return nil
}

// Entry is one node of the tree as visited by Walk.  Value is set only for
// items.
type Entry struct {
	Level    Level
	Group    string
	Subgroup string
	Item     string
	Value    *ir.Value
}

// Walk calls fn for every group, subgroup and item in document order,
// parents before children.  It stops at the first error fn returns.
func (s *Store) Walk(fn func(e *Entry) error) error {
	for _, g := range s.groups.keys {
		if err := fn(&Entry{Level: GroupLevel, Group: g}); err != nil {
			return err
		}
		sgs := s.groups.get(g)
		for _, sg := range sgs.keys {
			if err := fn(&Entry{Level: SubgroupLevel, Group: g, Subgroup: sg}); err != nil {
				return err
			}
			its := sgs.get(sg)
			for _, it := range its.keys {
				e := &Entry{Level: ItemLevel, Group: g, Subgroup: sg, Item: it, Value: its.get(it)}
				if err := fn(e); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Entries returns what Walk visits, as a slice.
func (s *Store) Entries() []Entry {
	var res []Entry
	_ = s.Walk(func(e *Entry) error {
		res = append(res, *e)
		return nil
	})
	return res
}

// Clone returns a deep copy of s sharing its logger and check.
func (s *Store) Clone() *Store {
	res := New(WithLogger(s.log), WithCheck(s.check))
	_ = s.Walk(func(e *Entry) error {
		switch e.Level {
		case GroupLevel:
			res.groups.set(e.Group, newOMap[*items]())
		case SubgroupLevel:
			res.groups.get(e.Group).set(e.Subgroup, newOMap[*ir.Value]())
		case ItemLevel:
			res.groups.get(e.Group).get(e.Subgroup).set(e.Item, e.Value.Clone())
		}
		return nil
	})
	return res
}

// Equal reports whether a and b hold the same tree in the same order.
func Equal(a, b *Store) bool {
	ea, eb := a.Entries(), b.Entries()
	return slices.EqualFunc(ea, eb, func(x, y Entry) bool {
		return x.Level == y.Level && x.Group == y.Group && x.Subgroup == y.Subgroup &&
			x.Item == y.Item && (x.Level != ItemLevel || ir.Equal(x.Value, y.Value))
	})
}
