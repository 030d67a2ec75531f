package ir

import "fmt"

// MaxDepth is the deepest container nesting a value may have.  Literals
// nested deeper neither parse nor encode.
const MaxDepth = 64

// Check reports whether v is a well formed value: every kind known, no nil
// elements, mapping keys paired with values and nesting within MaxDepth.
func Check(v *Value) error {
	return check(v, 0)
}

func check(v *Value, depth int) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ErrUnsupportedType)
	}
	switch v.Kind {
	case StringKind, IntKind, FloatKind, BoolKind, NullKind:
		return nil
	case SequenceKind, TupleKind, MappingKind:
	default:
		return fmt.Errorf("%w: kind %d", ErrUnsupportedType, v.Kind)
	}
	if depth >= MaxDepth {
		return fmt.Errorf("%w: nested more than %d levels", ErrUnsupportedType, MaxDepth)
	}
	if v.Kind == MappingKind && len(v.Fields) != len(v.Values) {
		return fmt.Errorf("%w: mapping with %d keys and %d values", ErrUnsupportedType, len(v.Fields), len(v.Values))
	}
	for _, f := range v.Fields {
		if err := check(f, depth+1); err != nil {
			return err
		}
	}
	for _, e := range v.Values {
		if err := check(e, depth+1); err != nil {
			return err
		}
	}
	return nil
}
