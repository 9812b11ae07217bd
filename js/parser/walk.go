package parser

// Children returns the direct children of n in source order.
func Children(n Node) []Node {
	var out []Node
	switch n := n.(type) {
	case *Program:
		for _, e := range n.Elements {
			out = append(out, e)
		}
	case *FunctionDecl:
		out = append(out, n.Name)
		for _, p := range n.Params {
			out = append(out, p)
		}
		out = append(out, n.Body)
	case *Block:
		for _, s := range n.Stmts {
			out = append(out, s)
		}
	case *IfThen:
		out = append(out, n.Cond, n.Then)
	case *IfThenElse:
		out = append(out, n.Cond, n.Then, n.Else)
	case *Assign:
		out = append(out, n.Name, n.Value)
	case *VarDecl:
		out = append(out, n.Name, n.Value)
	case *Return:
		out = append(out, n.Value)
	case *ExprStmt:
		out = append(out, n.X)
	case *Not:
		out = append(out, n.Operand)
	case *BinOp:
		out = append(out, n.Left, n.Right)
	case *Call:
		out = append(out, n.Callee)
		for _, a := range n.Args {
			out = append(out, a)
		}
	}
	return out
}

// Walk visits n and its descendants depth-first in pre-order. If fn
// returns false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, fn)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	count := 0
	Walk(n, func(Node) bool {
		count++
		return true
	})
	return count
}
