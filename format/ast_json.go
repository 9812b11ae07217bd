package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/tinyjs/js/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

// Encode writes the tree, or {"error": ...} when parsing failed.
func (e *ASTJSONEncoder) Encode(source string, prog *parser.Program, err error) error {
	var text []byte
	if err != nil {
		text, err = json.MarshalIndent(map[string]*Diagnostic{"error": NewDiagnostic(err)}, "", "  ")
	} else {
		text, err = e.MarshalText(prog)
	}
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node parser.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONNode struct {
	Kind     string          `json:"kind"`
	Pos      astJSONPosition `json:"pos"`
	Name     string          `json:"name,omitempty"`
	Op       string          `json:"op,omitempty"`
	Text     *string         `json:"text,omitempty"`
	Value    *bool           `json:"value,omitempty"`
	Children []*astJSONNode  `json:"children,omitempty"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

func nodeToJSON(n parser.Node) *astJSONNode {
	pos := n.Pos()
	jn := &astJSONNode{
		Kind: n.Kind().String(),
		Pos:  astJSONPosition{Line: pos.Line, Column: pos.Column, Offset: pos.Offset},
	}

	switch n := n.(type) {
	case *parser.Ident:
		jn.Name = n.Name
	case *parser.NumberLit:
		jn.Text = &n.Text
	case *parser.StringLit:
		jn.Text = &n.Text
	case *parser.BoolLit:
		jn.Value = &n.Value
	case *parser.BinOp:
		jn.Op = n.Op.String()
	}

	for _, child := range parser.Children(n) {
		jn.Children = append(jn.Children, nodeToJSON(child))
	}
	return jn
}

// Diagnostic is the JSON shape of a lexical or syntax error.
type Diagnostic struct {
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`
	Value    string   `json:"value,omitempty"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Offset   int      `json:"offset"`
	Expected []string `json:"expected,omitempty"`
}

// NewDiagnostic describes err. Errors that are not parser diagnostics keep
// only their message.
func NewDiagnostic(err error) *Diagnostic {
	diag, ok := parser.AsDiagnostic(err)
	if !ok {
		return &Diagnostic{Kind: "Error", Message: err.Error()}
	}
	pos := diag.Position()
	d := &Diagnostic{
		Message: diag.Error(),
		Value:   diag.Value(),
		Line:    pos.Line,
		Column:  pos.Column,
		Offset:  pos.Offset,
	}
	switch diag := diag.(type) {
	case *parser.LexError:
		d.Kind = "LexError"
	case *parser.ParseError:
		d.Kind = "ParseError"
		for _, kind := range diag.Expected {
			d.Expected = append(d.Expected, kind.String())
		}
	default:
		d.Kind = fmt.Sprintf("%T", diag)
	}
	return d
}
