package encode

import (
	"github.com/goccy/go-yaml"
	"github.com/signadot/filesave/ir"
	"github.com/signadot/filesave/store"
)

// YAML renders v as a YAML document.  Mappings keep their key order;
// tuples are written as sequences.
func YAML(v *ir.Value) ([]byte, error) {
	return yaml.Marshal(yamlValue(v))
}

// StoreYAML renders s as nested YAML mappings, group to subgroup to item,
// in insertion order.
func StoreYAML(s *store.Store) ([]byte, error) {
	groups := yaml.MapSlice{}
	err := s.Walk(func(e *store.Entry) error {
		switch e.Level {
		case store.GroupLevel:
			groups = append(groups, yaml.MapItem{Key: e.Group, Value: yaml.MapSlice{}})
		case store.SubgroupLevel:
			g := &groups[len(groups)-1]
			g.Value = append(g.Value.(yaml.MapSlice), yaml.MapItem{Key: e.Subgroup, Value: yaml.MapSlice{}})
		case store.ItemLevel:
			sgs := groups[len(groups)-1].Value.(yaml.MapSlice)
			sg := &sgs[len(sgs)-1]
			sg.Value = append(sg.Value.(yaml.MapSlice), yaml.MapItem{Key: e.Item, Value: yamlValue(e.Value)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(groups)
}

func yamlValue(v *ir.Value) any {
	switch v.Kind {
	case ir.SequenceKind, ir.TupleKind:
		res := make([]any, len(v.Values))
		for i, e := range v.Values {
			res[i] = yamlValue(e)
		}
		return res
	case ir.MappingKind:
		res := make(yaml.MapSlice, len(v.Fields))
		for i := range v.Fields {
			res[i] = yaml.MapItem{Key: yamlValue(v.Fields[i]), Value: yamlValue(v.Values[i])}
		}
		return res
	}
	return v.ToGo()
}
