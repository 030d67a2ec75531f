package doc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	KeySystemType = "system_type"
	KeyEncoded    = "encoded"

	ReadWrite = "read-write"
	ReadOnly  = "read-only"
)

// Settings is the ordered key/value metadata held on a document's settings
// line.  Unknown keys are kept as they are.
type Settings struct {
	keys []string
	vals map[string]string
}

func NewSettings() *Settings {
	return &Settings{vals: map[string]string{}}
}

func (s *Settings) Get(k string) (string, bool) {
	v, ok := s.vals[k]
	return v, ok
}

// Set replaces the value of k in place or appends k.
func (s *Settings) Set(k, v string) {
	if _, ok := s.vals[k]; !ok {
		s.keys = append(s.keys, k)
	}
	s.vals[k] = v
}

func (s *Settings) Keys() []string {
	return slices.Clone(s.keys)
}

func (s *Settings) Len() int {
	return len(s.keys)
}

// SystemType returns the system_type setting, read-write if unset.
func (s *Settings) SystemType() string {
	if v, ok := s.vals[KeySystemType]; ok && v != "" {
		return v
	}
	return ReadWrite
}

func (s *Settings) ReadOnly() bool {
	return s.SystemType() == ReadOnly
}

// Encoded reports the encoded setting; anything strconv.ParseBool rejects
// counts as false.
func (s *Settings) Encoded() bool {
	b, _ := strconv.ParseBool(s.vals[KeyEncoded])
	return b
}

func (s *Settings) Clone() *Settings {
	res := NewSettings()
	for _, k := range s.keys {
		res.Set(k, s.vals[k])
	}
	return res
}

// Line renders s as a settings line.
func (s *Settings) Line() string {
	parts := make([]string, len(s.keys))
	for i, k := range s.keys {
		parts[i] = k + ":" + s.vals[k]
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// ParseSettings parses the payload of a settings line, the text between
// '<' and '>'.
func ParseSettings(payload string) (*Settings, error) {
	res := NewSettings()
	for _, part := range strings.Split(payload, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: setting %q is not key:value", ErrStructure, part)
		}
		res.Set(strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return res, nil
}
