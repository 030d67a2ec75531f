package debug

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/filesave/encode"
	"github.com/signadot/filesave/ir"
)

// Out is where Logf writes.
var Out io.Writer = os.Stderr

// Logf prints to Out, rendering *ir.Value arguments as literals.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Value:
			s, err := encode.Literal(x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Value] %+v", x)
				continue
			}
			args[i] = s
		default:
		}
	}
	fmt.Fprintf(Out, msg, args...)
}
