package parser

import "strings"

// Sprint renders n as an s-expression, e.g. "(+ 1 (* 2 3))".
func Sprint(n Node) string {
	var b strings.Builder
	sprint(&b, n)
	return b.String()
}

func sprint(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		b.WriteString("(program")
		for _, e := range n.Elements {
			b.WriteByte(' ')
			sprint(b, e)
		}
		b.WriteByte(')')
	case *FunctionDecl:
		b.WriteString("(function ")
		b.WriteString(n.Name.Name)
		b.WriteString(" (")
		for i, p := range n.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(p.Name)
		}
		b.WriteString(") ")
		sprint(b, n.Body)
		b.WriteByte(')')
	case *Block:
		b.WriteString("(block")
		for _, s := range n.Stmts {
			b.WriteByte(' ')
			sprint(b, s)
		}
		b.WriteByte(')')
	case *IfThen:
		list(b, "if", n.Cond, n.Then)
	case *IfThenElse:
		list(b, "if", n.Cond, n.Then, n.Else)
	case *Assign:
		list(b, "=", n.Name, n.Value)
	case *VarDecl:
		list(b, "var", n.Name, n.Value)
	case *Return:
		list(b, "return", n.Value)
	case *ExprStmt:
		list(b, "expr", n.X)
	case *Ident:
		b.WriteString(n.Name)
	case *NumberLit:
		b.WriteString(n.Text)
	case *StringLit:
		b.WriteByte('\'')
		b.WriteString(n.Text)
		b.WriteByte('\'')
	case *BoolLit:
		if n.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case *Not:
		list(b, "!", n.Operand)
	case *BinOp:
		list(b, n.Op.String(), n.Left, n.Right)
	case *Call:
		args := make([]Node, 0, len(n.Args)+1)
		args = append(args, n.Callee)
		for _, a := range n.Args {
			args = append(args, a)
		}
		list(b, "call", args...)
	}
}

func list(b *strings.Builder, head string, nodes ...Node) {
	b.WriteByte('(')
	b.WriteString(head)
	for _, n := range nodes {
		b.WriteByte(' ')
		sprint(b, n)
	}
	b.WriteByte(')')
}
