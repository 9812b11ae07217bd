// Package format renders parse results for output: the trace record handed
// to presentation layers, a JSON view of the syntax tree, and s-expressions.
package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/tinyjs/js/parser"
)

// Encoder writes the outcome of parsing source: either prog or err is set.
type Encoder interface {
	Encode(source string, prog *parser.Program, err error) error
}

// NewEncoder returns the encoder registered under name: "trace", "json"
// or "sexp".
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "trace":
		return NewTraceEncoder(w), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	case "sexp":
		return NewSexpEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", name)
	}
}

type SexpEncoder struct {
	w io.Writer
}

func NewSexpEncoder(w io.Writer) *SexpEncoder {
	return &SexpEncoder{w: w}
}

func (e *SexpEncoder) Encode(source string, prog *parser.Program, err error) error {
	if err != nil {
		_, werr := fmt.Fprintln(e.w, err)
		return werr
	}
	_, werr := fmt.Fprintln(e.w, parser.Sprint(prog))
	return werr
}
