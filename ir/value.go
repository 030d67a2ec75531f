package ir

import (
	"fmt"
)

// Value is a typed literal.  Payload fields are used according to Kind;
// the others are left zero.
type Value struct {
	Kind Kind

	String string
	Int    int64
	Float  float64
	Bool   bool

	// Fields holds mapping keys, parallel to Values.
	Fields []*Value
	// Values holds sequence, tuple and mapping elements.
	Values []*Value
}

type KeyVal struct {
	Key *Value
	Val *Value
}

func FromString(v string) *Value {
	return &Value{Kind: StringKind, String: v}
}

func FromInt(v int64) *Value {
	return &Value{Kind: IntKind, Int: v}
}

func FromFloat(f float64) *Value {
	return &Value{Kind: FloatKind, Float: f}
}

func FromBool(v bool) *Value {
	return &Value{Kind: BoolKind, Bool: v}
}

func Null() *Value {
	return &Value{Kind: NullKind}
}

func FromSlice(vs []*Value) *Value {
	res := &Value{Kind: SequenceKind, Values: make([]*Value, len(vs))}
	copy(res.Values, vs)
	return res
}

func FromTuple(vs ...*Value) *Value {
	res := &Value{Kind: TupleKind, Values: make([]*Value, len(vs))}
	copy(res.Values, vs)
	return res
}

// FromKeyVals builds a mapping in the order given.  A key equal to an
// earlier one replaces the earlier value and keeps the earlier position.
func FromKeyVals(kvs []KeyVal) *Value {
	res := &Value{Kind: MappingKind}
	for i := range kvs {
		res.Set(kvs[i].Key, kvs[i].Val)
	}
	return res
}

// Set inserts or replaces key in a mapping.
func (v *Value) Set(key, val *Value) {
	if key == nil {
		key = Null()
	}
	if val == nil {
		val = Null()
	}
	for i, f := range v.Fields {
		if Equal(f, key) {
			v.Values[i] = val
			return
		}
	}
	v.Fields = append(v.Fields, key)
	v.Values = append(v.Values, val)
}

// Get returns the mapping value under key, or nil.
func (v *Value) Get(key *Value) *Value {
	for i, f := range v.Fields {
		if Equal(f, key) {
			return v.Values[i]
		}
	}
	return nil
}

// Append adds elements to a sequence.
func (v *Value) Append(vs ...*Value) error {
	if v.Kind != SequenceKind {
		return fmt.Errorf("%w: cannot append to %s", ErrUnsupportedType, v.Kind)
	}
	v.Values = append(v.Values, vs...)
	return nil
}

func (v *Value) KeyVals() []KeyVal {
	res := make([]KeyVal, len(v.Fields))
	for i := range v.Fields {
		res[i] = KeyVal{Key: v.Fields[i], Val: v.Values[i]}
	}
	return res
}

func (v *Value) IsContainer() bool {
	return v.Kind.IsContainer()
}

func (v *Value) Clone() *Value {
	res := &Value{}
	return v.CloneTo(res)
}

func (v *Value) CloneTo(dst *Value) *Value {
	*dst = Value{
		Kind:   v.Kind,
		String: v.String,
		Int:    v.Int,
		Float:  v.Float,
		Bool:   v.Bool,
	}
	if v.Fields != nil {
		dst.Fields = make([]*Value, len(v.Fields))
		for i, f := range v.Fields {
			dst.Fields[i] = f.Clone()
		}
	}
	if v.Values != nil {
		dst.Values = make([]*Value, len(v.Values))
		for i, e := range v.Values {
			dst.Values[i] = e.Clone()
		}
	}
	return dst
}

func (v *Value) Visit(f func(v *Value, isPost bool) (bool, error)) error {
	dive, err := f(v, false)
	if err != nil {
		return err
	}
	if dive {
		for i, e := range v.Values {
			if v.Kind == MappingKind {
				if err := v.Fields[i].Visit(f); err != nil {
					return err
				}
			}
			if err := e.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(v, true); err != nil {
		return err
	}
	return nil
}

// ToGo converts v to plain Go values: string, int64, float64, bool, nil,
// []any for sequences and tuples, and map[string]any for mappings.  Mapping
// keys are rendered with fmt's %v of their own Go form, so distinct keys
// such as "1" and #1# collide.
func (v *Value) ToGo() any {
	switch v.Kind {
	case StringKind:
		return v.String
	case IntKind:
		return v.Int
	case FloatKind:
		return v.Float
	case BoolKind:
		return v.Bool
	case SequenceKind, TupleKind:
		res := make([]any, len(v.Values))
		for i, e := range v.Values {
			res[i] = e.ToGo()
		}
		return res
	case MappingKind:
		res := make(map[string]any, len(v.Fields))
		for i, f := range v.Fields {
			res[fmt.Sprintf("%v", f.ToGo())] = v.Values[i].ToGo()
		}
		return res
	default:
		return nil
	}
}
