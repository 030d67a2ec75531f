// Package ir provides the value model for filesave documents.
//
// # Overview
//
// Every item stored in a filesave document holds a Value: a small recursive
// tagged union whose Kind says which payload field is in use.
//
//   - Scalar kinds: StringKind, IntKind, FloatKind, BoolKind, NullKind
//   - Container kinds: SequenceKind, MappingKind, TupleKind
//
// Sequences and tuples keep their elements in Values.  Mappings keep keys in
// Fields and values in Values, in parallel and in insertion order; keys are
// unique under Equal.
//
// # Delimiters
//
// Each kind has its own pair of delimiters in the literal text form:
//
//	"text"  #12#  ~1.5~  ?true?  .  [a, b]  {k, v}  (a, b)
//
// Delimiters and KindFor map between kinds and delimiter pairs.
//
// # Creating Values
//
//	s := ir.FromString("Dark")
//	n := ir.FromInt(80)
//	seq := ir.FromSlice([]*ir.Value{n, s})
//	m := ir.FromKeyVals([]ir.KeyVal{{Key: s, Val: n}})
//
// FromGo converts plain Go values, failing with ErrUnsupportedType for
// anything outside the model.
//
// # Related Packages
//
//   - github.com/signadot/filesave/parse - literal text to Value
//   - github.com/signadot/filesave/encode - Value to literal text
package ir
