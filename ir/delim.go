package ir

var delimiters = [...][2]byte{
	StringKind:   {'"', '"'},
	IntKind:      {'#', '#'},
	FloatKind:    {'~', '~'},
	BoolKind:     {'?', '?'},
	NullKind:     {'.', '.'},
	SequenceKind: {'[', ']'},
	MappingKind:  {'{', '}'},
	TupleKind:    {'(', ')'},
}

// Delimiters returns the opening and closing delimiter of k.  It panics on a
// kind outside the closed set.
func Delimiters(k Kind) (open, close byte) {
	d := delimiters[k]
	return d[0], d[1]
}

// KindFor is the inverse of Delimiters.
func KindFor(open, close byte) (Kind, bool) {
	for _, k := range Kinds() {
		d := delimiters[k]
		if d[0] == open && d[1] == close {
			return k, true
		}
	}
	return 0, false
}
