package encode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/filesave/ir"
)

var ErrUnrepresentable = errors.New("unrepresentable value")

// nestedForbidden are the bytes which would mis-split a string nested in a
// container, since literal payloads are not escaped.
const nestedForbidden = `,[]{}()"`

type EncState struct {
	depth int

	Color func(ir.Kind, ColorAttr, string) string
}

// Literal returns the delimited text form of v.  Parsing the result with
// parse.Literal yields a value equal to v.
func Literal(v *ir.Value, opts ...EncodeOption) (string, error) {
	buf := &strings.Builder{}
	if err := Encode(v, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Go formats a host value, see ir.FromGo.
func Go(x any, opts ...EncodeOption) (string, error) {
	v, err := ir.FromGo(x)
	if err != nil {
		return "", err
	}
	return Literal(v, opts...)
}

func Encode(v *ir.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return encode(v, w, es)
}

func encode(v *ir.Value, w io.Writer, es *EncState) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ir.ErrUnsupportedType)
	}
	switch v.Kind {
	case ir.SequenceKind, ir.TupleKind:
		return encodeList(v.Kind, v.Values, nil, w, es)
	case ir.MappingKind:
		if len(v.Fields) != len(v.Values) {
			return fmt.Errorf("%w: mapping with %d keys and %d values",
				ErrUnrepresentable, len(v.Fields), len(v.Values))
		}
		return encodeList(v.Kind, v.Values, v.Fields, w, es)
	case ir.NullKind:
		open, _ := ir.Delimiters(ir.NullKind)
		return writeString(w, es.color(v.Kind, DelimColor, string(open)))
	}
	payload, err := scalarPayload(v, es)
	if err != nil {
		return err
	}
	open, close := ir.Delimiters(v.Kind)
	if err := writeString(w, es.color(v.Kind, DelimColor, string(open))); err != nil {
		return err
	}
	if err := writeString(w, es.color(v.Kind, ValueColor, payload)); err != nil {
		return err
	}
	return writeString(w, es.color(v.Kind, DelimColor, string(close)))
}

func scalarPayload(v *ir.Value, es *EncState) (string, error) {
	switch v.Kind {
	case ir.StringKind:
		if strings.ContainsAny(v.String, "\n\r") {
			return "", fmt.Errorf("%w: string %q spans lines", ErrUnrepresentable, v.String)
		}
		if es.depth > 0 && strings.ContainsAny(v.String, nestedForbidden) {
			return "", fmt.Errorf("%w: string %q inside a container holds one of %s",
				ErrUnrepresentable, v.String, nestedForbidden)
		}
		return v.String, nil
	case ir.IntKind:
		return strconv.FormatInt(v.Int, 10), nil
	case ir.FloatKind:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), nil
	case ir.BoolKind:
		return strconv.FormatBool(v.Bool), nil
	}
	return "", fmt.Errorf("%w: kind %d", ir.ErrUnsupportedType, v.Kind)
}

func encodeList(k ir.Kind, vals, keys []*ir.Value, w io.Writer, es *EncState) error {
	if es.depth >= ir.MaxDepth {
		return fmt.Errorf("%w: nested more than %d levels", ErrUnrepresentable, ir.MaxDepth)
	}
	open, close := ir.Delimiters(k)
	if err := writeString(w, es.color(k, DelimColor, string(open))); err != nil {
		return err
	}
	es.depth++
	defer func() { es.depth-- }()
	for i, e := range vals {
		if i > 0 {
			if err := writeString(w, es.color(k, SepColor, ", ")); err != nil {
				return err
			}
		}
		if keys != nil {
			if err := encode(keys[i], w, es); err != nil {
				return err
			}
			if err := writeString(w, es.color(k, SepColor, ", ")); err != nil {
				return err
			}
		}
		if err := encode(e, w, es); err != nil {
			return err
		}
	}
	return writeString(w, es.color(k, DelimColor, string(close)))
}

func (es *EncState) color(k ir.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}
