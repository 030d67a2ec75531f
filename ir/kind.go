package ir

import "fmt"

type Kind int

const (
	StringKind Kind = iota
	IntKind
	FloatKind
	BoolKind
	NullKind
	SequenceKind
	MappingKind
	TupleKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		StringKind:   "string",
		IntKind:      "int",
		FloatKind:    "float",
		BoolKind:     "bool",
		NullKind:     "null",
		SequenceKind: "sequence",
		MappingKind:  "mapping",
		TupleKind:    "tuple",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"string":   StringKind,
		"int":      IntKind,
		"float":    FloatKind,
		"bool":     BoolKind,
		"null":     NullKind,
		"sequence": SequenceKind,
		"mapping":  MappingKind,
		"tuple":    TupleKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("%w: unrecognized kind %q", ErrUnsupportedType, d)
	}
	*k = kk
	return nil
}

// Kinds returns every kind in literal parse priority order.
func Kinds() []Kind {
	return []Kind{
		StringKind,
		IntKind,
		FloatKind,
		BoolKind,
		NullKind,
		SequenceKind,
		MappingKind,
		TupleKind,
	}
}

func (k Kind) IsContainer() bool {
	switch k {
	case SequenceKind, MappingKind, TupleKind:
		return true
	default:
		return false
	}
}
