package encode

import (
	"github.com/signadot/filesave/ir"
)

func MustString(v *ir.Value) string {
	s, err := Literal(v)
	if err != nil {
		panic(err)
	}
	return s
}
