package store

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/signadot/filesave/ir"
)

type jsonItem struct {
	Name  string    `json:"name"`
	Value *ir.Value `json:"value"`
}

type jsonSubgroup struct {
	Name  string     `json:"name"`
	Items []jsonItem `json:"items"`
}

type jsonGroup struct {
	Name      string         `json:"name"`
	Subgroups []jsonSubgroup `json:"subgroups"`
}

type jsonStore struct {
	Groups []jsonGroup `json:"groups"`
}

// MarshalJSON encodes s with every level as an array, so order survives.
func (s *Store) MarshalJSON() ([]byte, error) {
	res := jsonStore{Groups: []jsonGroup{}}
	_ = s.Walk(func(e *Entry) error {
		switch e.Level {
		case GroupLevel:
			res.Groups = append(res.Groups, jsonGroup{Name: e.Group, Subgroups: []jsonSubgroup{}})
		case SubgroupLevel:
			g := &res.Groups[len(res.Groups)-1]
			g.Subgroups = append(g.Subgroups, jsonSubgroup{Name: e.Subgroup, Items: []jsonItem{}})
		case ItemLevel:
			g := &res.Groups[len(res.Groups)-1]
			sg := &g.Subgroups[len(g.Subgroups)-1]
			sg.Items = append(sg.Items, jsonItem{Name: e.Item, Value: e.Value})
		}
		return nil
	})
	return json.Marshal(res)
}

// UnmarshalJSON replaces the content of s.  Repeated names at any level
// fail with ErrDuplicateName.  On error s is unchanged.
func (s *Store) UnmarshalJSON(d []byte) error {
	var in jsonStore
	if err := json.Unmarshal(d, &in); err != nil {
		return err
	}
	groups := newOMap[*subgroups]()
	for _, g := range in.Groups {
		if groups.has(g.Name) {
			return fmt.Errorf("%w: group %q", ErrDuplicateName, g.Name)
		}
		if err := s.vet(&Entry{Level: GroupLevel, Group: g.Name}); err != nil {
			return err
		}
		sgs := newOMap[*items]()
		for _, sg := range g.Subgroups {
			if sgs.has(sg.Name) {
				return fmt.Errorf("%w: subgroup %q in group %q", ErrDuplicateName, sg.Name, g.Name)
			}
			if err := s.vet(&Entry{Level: SubgroupLevel, Group: g.Name, Subgroup: sg.Name}); err != nil {
				return err
			}
			its := newOMap[*ir.Value]()
			for _, it := range sg.Items {
				if its.has(it.Name) {
					return fmt.Errorf("%w: item %q in %q/%q", ErrDuplicateName, it.Name, g.Name, sg.Name)
				}
				v := it.Value
				if v == nil {
					v = ir.Null()
				}
				e := &Entry{Level: ItemLevel, Group: g.Name, Subgroup: sg.Name, Item: it.Name, Value: v}
				if err := s.vet(e); err != nil {
					return err
				}
				its.set(it.Name, v)
			}
			sgs.set(sg.Name, its)
		}
		groups.set(g.Name, sgs)
	}
	s.groups = groups
	if s.log == nil {
		s.log = slog.Default()
	}
	return nil
}
