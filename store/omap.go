package store

import (
	"fmt"
	"slices"
)

// omap is a string keyed map which remembers insertion order.
type omap[V any] struct {
	keys []string
	vals map[string]V
}

func newOMap[V any]() *omap[V] {
	return &omap[V]{vals: map[string]V{}}
}

func (m *omap[V]) len() int {
	return len(m.keys)
}

func (m *omap[V]) has(k string) bool {
	_, ok := m.vals[k]
	return ok
}

func (m *omap[V]) get(k string) V {
	return m.vals[k]
}

// set replaces the value of an existing key in place or appends a new key.
func (m *omap[V]) set(k string, v V) {
	if _, ok := m.vals[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.vals[k] = v
}

func (m *omap[V]) del(k string) {
	if _, ok := m.vals[k]; !ok {
		return
	}
	delete(m.vals, k)
	m.keys = slices.DeleteFunc(m.keys, func(x string) bool { return x == k })
}

// rename moves the value of old to nk, which is appended at the end.
func (m *omap[V]) rename(old, nk string) {
	v := m.vals[old]
	m.del(old)
	m.set(nk, v)
}

func (m *omap[V]) names() []string {
	return slices.Clone(m.keys)
}

// resolve maps a selector to an existing key.
func (m *omap[V]) resolve(sel Selector, level string) (string, error) {
	switch sel.kind {
	case selName:
		if !m.has(sel.name) {
			return "", fmt.Errorf("%w: %s %q", ErrNotFound, level, sel.name)
		}
		return sel.name, nil
	case selIndex:
		if sel.index < 0 || sel.index >= len(m.keys) {
			return "", fmt.Errorf("%w: %s index %d of %d", ErrIndexOutOfRange, level, sel.index, len(m.keys))
		}
		return m.keys[sel.index], nil
	}
	return "", fmt.Errorf("%w: no %s selected", ErrInvalidRequest, level)
}
