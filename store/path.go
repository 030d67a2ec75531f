package store

import (
	"fmt"
	"strconv"
	"strings"
)

type selKind int

const (
	selNone selKind = iota
	selName
	selIndex
)

// Selector picks one entry of a level either by name or by its 0 based
// position in insertion order.  The zero Selector selects nothing.
type Selector struct {
	kind  selKind
	name  string
	index int
}

func Name(n string) Selector {
	return Selector{kind: selName, name: n}
}

func Index(i int) Selector {
	return Selector{kind: selIndex, index: i}
}

func (s Selector) IsSet() bool {
	return s.kind != selNone
}

func (s Selector) IsIndex() bool {
	return s.kind == selIndex
}

func (s Selector) String() string {
	switch s.kind {
	case selName:
		return strconv.Quote(s.name)
	case selIndex:
		return "#" + strconv.Itoa(s.index)
	}
	return "-"
}

// Level names the depth a Path addresses.
type Level int

const (
	StoreLevel Level = iota
	GroupLevel
	SubgroupLevel
	ItemLevel
)

func (l Level) String() string {
	switch l {
	case StoreLevel:
		return "store"
	case GroupLevel:
		return "group"
	case SubgroupLevel:
		return "subgroup"
	case ItemLevel:
		return "item"
	}
	return "<unknown level>"
}

// Path addresses a group, a subgroup within it or an item within that.
// Selectors are filled from the top; a set selector below an unset one makes
// the path invalid.
type Path struct {
	Group, Subgroup, Item Selector
}

// At builds a path from up to three selectors.
func At(sels ...Selector) Path {
	var p Path
	dst := []*Selector{&p.Group, &p.Subgroup, &p.Item}
	if len(sels) > len(dst) {
		panic(fmt.Sprintf("store.At: %d selectors", len(sels)))
	}
	for i := range sels {
		*dst[i] = sels[i]
	}
	return p
}

// Names builds a path of name selectors.
func Names(names ...string) Path {
	sels := make([]Selector, len(names))
	for i, n := range names {
		sels[i] = Name(n)
	}
	return At(sels...)
}

// Level reports how deep p addresses.
func (p Path) Level() (Level, error) {
	sels := p.selectors()
	lvl := StoreLevel
	for i, s := range sels {
		if !s.IsSet() {
			continue
		}
		if int(lvl) != i {
			return 0, fmt.Errorf("%w: %s selected without its %s", ErrInvalidRequest, Level(i+1), Level(i))
		}
		lvl = Level(i + 1)
	}
	return lvl, nil
}

func (p Path) selectors() []Selector {
	return []Selector{p.Group, p.Subgroup, p.Item}
}

func (p Path) String() string {
	parts := []string{}
	for _, s := range p.selectors() {
		if !s.IsSet() {
			break
		}
		parts = append(parts, s.String())
	}
	return "/" + strings.Join(parts, "/")
}
