package doc

import (
	"errors"
	"fmt"
)

var ErrStructure = errors.New("structure error")

// LineError locates a failure on a 1 based line of a document.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
