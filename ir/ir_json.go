package ir

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type irBase struct {
	Kind   Kind     `json:"kind"`
	Fields []*Value `json:"fields,omitempty"`
	Values []*Value `json:"values,omitempty"`
}

func (v *Value) MarshalJSON() ([]byte, error) {
	base := irBase{Kind: v.Kind}
	switch v.Kind {
	case StringKind:
		type C struct {
			irBase
			String string `json:"string"`
		}
		return json.Marshal(C{irBase: base, String: v.String})
	case IntKind:
		type C struct {
			irBase
			Int int64 `json:"int"`
		}
		return json.Marshal(C{irBase: base, Int: v.Int})
	case FloatKind:
		// NaN and infinities have no JSON number form.
		type C struct {
			irBase
			Float string `json:"float"`
		}
		return json.Marshal(C{irBase: base, Float: strconv.FormatFloat(v.Float, 'g', -1, 64)})
	case BoolKind:
		type C struct {
			irBase
			Bool bool `json:"bool"`
		}
		return json.Marshal(C{irBase: base, Bool: v.Bool})
	case SequenceKind, TupleKind:
		base.Values = nonNil(v.Values)
		type C struct {
			irBase
			Values []*Value `json:"values"`
		}
		return json.Marshal(C{irBase: base, Values: base.Values})
	case MappingKind:
		type C struct {
			Kind   Kind     `json:"kind"`
			Fields []*Value `json:"fields"`
			Values []*Value `json:"values"`
		}
		return json.Marshal(C{Kind: v.Kind, Fields: nonNil(v.Fields), Values: nonNil(v.Values)})
	default:
		return json.Marshal(base)
	}
}

func nonNil(vs []*Value) []*Value {
	if vs == nil {
		return []*Value{}
	}
	return vs
}

func (v *Value) UnmarshalJSON(d []byte) error {
	type C struct {
		irBase
		String string `json:"string"`
		Int    int64  `json:"int"`
		Float  string `json:"float"`
		Bool   bool   `json:"bool"`
	}
	tmp := &C{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	*v = Value{Kind: tmp.Kind}
	switch tmp.Kind {
	case StringKind:
		v.String = tmp.String
	case IntKind:
		v.Int = tmp.Int
	case FloatKind:
		f, err := strconv.ParseFloat(tmp.Float, 64)
		if err != nil {
			return fmt.Errorf("%w: float %q", ErrUnsupportedType, tmp.Float)
		}
		v.Float = f
	case BoolKind:
		v.Bool = tmp.Bool
	case SequenceKind, TupleKind:
		v.Values = tmp.Values
	case MappingKind:
		if len(tmp.Fields) != len(tmp.Values) {
			return fmt.Errorf("%w: mapping with %d keys and %d values", ErrUnsupportedType, len(tmp.Fields), len(tmp.Values))
		}
		m := FromKeyVals(nil)
		for i := range tmp.Fields {
			m.Set(tmp.Fields[i], tmp.Values[i])
		}
		v.Fields, v.Values = m.Fields, m.Values
	}
	for _, e := range v.Values {
		if e == nil {
			return fmt.Errorf("%w: null element in %s", ErrUnsupportedType, v.Kind)
		}
	}
	return nil
}
