package format

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/tinyjs/js/parser"
)

// GlobalEnvPlaceholder fills the environment slot of a trace. Nothing is
// evaluated, so there is never a real environment to show.
const GlobalEnvPlaceholder = "currently not available"

// TraceRecord pairs source text with the outcome of parsing it.
// It serializes as
//
//	{"code": [...lines], "trace": [{"global_env": ...}, {"expression_trace": ...}]}
type TraceRecord struct {
	Code   []string
	Env    GlobalEnv
	Result ExpressionTrace
}

type GlobalEnv struct {
	GlobalEnv string `json:"global_env"`
}

// ExpressionTrace holds the tree in its nested-array form, or nil and an
// Error when parsing failed.
type ExpressionTrace struct {
	ExpressionTrace any         `json:"expression_trace"`
	Error           *Diagnostic `json:"error,omitempty"`
}

func (r *TraceRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code  []string `json:"code"`
		Trace []any    `json:"trace"`
	}{
		Code:  r.Code,
		Trace: []any{r.Env, r.Result},
	})
}

// Trace wraps an already computed parse outcome. It does no parsing.
func Trace(source string, prog *parser.Program, err error) *TraceRecord {
	rec := &TraceRecord{
		Code: SplitLines(source),
		Env:  GlobalEnv{GlobalEnv: GlobalEnvPlaceholder},
	}
	if err != nil {
		rec.Result.Error = NewDiagnostic(err)
	} else if prog != nil {
		rec.Result.ExpressionTrace = Tree(prog)
	}
	return rec
}

// ParseTrace parses source and wraps the outcome.
func ParseTrace(source string, opts ...parser.Option) *TraceRecord {
	prog, err := parser.Parse(source, opts...)
	return Trace(source, prog, err)
}

// SplitLines splits source into lines without their terminators.
func SplitLines(source string) []string {
	if source == "" {
		return []string{}
	}
	lines := strings.Split(strings.TrimSuffix(source, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

type TraceEncoder struct {
	w      io.Writer
	indent string
}

// NewTraceEncoder writes trace records indented by five spaces.
func NewTraceEncoder(w io.Writer) *TraceEncoder {
	return &TraceEncoder{w: w, indent: strings.Repeat(" ", 5)}
}

func (e *TraceEncoder) Encode(source string, prog *parser.Program, err error) error {
	return e.EncodeRecord(Trace(source, prog, err))
}

func (e *TraceEncoder) EncodeRecord(rec *TraceRecord) error {
	text, err := json.MarshalIndent(rec, "", e.indent)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

// Tree converts n into nested arrays tagged by their first element:
//
//	["binop", "+", ["number", 1], ["identifier", "x"]]
//
// A program becomes the list of its elements.
func Tree(n parser.Node) any {
	switch n := n.(type) {
	case *parser.Program:
		elements := make([]any, 0, len(n.Elements))
		for _, el := range n.Elements {
			elements = append(elements, elementTree(el))
		}
		return elements
	case *parser.Block:
		stmts := make([]any, 0, len(n.Stmts))
		for _, s := range n.Stmts {
			stmts = append(stmts, Tree(s))
		}
		return []any{"compound statement", stmts}
	case *parser.FunctionDecl:
		return elementTree(n)
	case *parser.IfThen:
		return []any{"if-then", Tree(n.Cond), Tree(n.Then)}
	case *parser.IfThenElse:
		return []any{"if-then-else", Tree(n.Cond), Tree(n.Then), Tree(n.Else)}
	case *parser.Assign:
		return []any{"assign", n.Name.Name, Tree(n.Value)}
	case *parser.VarDecl:
		return []any{"var", n.Name.Name, Tree(n.Value)}
	case *parser.Return:
		return []any{"return", Tree(n.Value)}
	case *parser.ExprStmt:
		return []any{"exp", Tree(n.X)}
	case *parser.Ident:
		return []any{"identifier", n.Name}
	case *parser.NumberLit:
		return []any{"number", numberValue(n.Text)}
	case *parser.StringLit:
		return []any{"string", n.Text}
	case *parser.BoolLit:
		if n.Value {
			return []any{"true", "true"}
		}
		return []any{"false", "false"}
	case *parser.Not:
		return []any{"not", Tree(n.Operand)}
	case *parser.BinOp:
		return []any{"binop", n.Op.String(), Tree(n.Left), Tree(n.Right)}
	case *parser.Call:
		args := make([]any, 0, len(n.Args))
		for _, a := range n.Args {
			args = append(args, Tree(a))
		}
		return []any{"call", n.Callee.Name, args}
	}
	return nil
}

// numberValue turns a number literal into a JSON number. Leading zeros are
// dropped and a fraction is rendered in its shortest form, so "007" is 7 and
// "1.50" is 1.5. A literal too large for a float64 stays a string.
func numberValue(text string) any {
	if !strings.Contains(text, ".") {
		digits := strings.TrimLeft(text, "0")
		if digits == "" {
			digits = "0"
		}
		return json.Number(digits)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}

func elementTree(el parser.Element) any {
	fn, ok := el.(*parser.FunctionDecl)
	if !ok {
		return []any{"stmt", Tree(el)}
	}
	// An empty parameter list is a bare [] rather than ["parameters", []].
	params := []any{}
	if len(fn.Params) > 0 {
		names := make([]any, 0, len(fn.Params))
		for _, p := range fn.Params {
			names = append(names, p.Name)
		}
		params = []any{"parameters", names}
	}
	return []any{"function", []any{"identifier", fn.Name.Name, params, Tree(fn.Body)}}
}
