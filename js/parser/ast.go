package parser

type NodeKind int

const (
	KindProgram NodeKind = iota
	KindFunctionDecl
	KindBlock

	// Statements
	KindIfThen
	KindIfThenElse
	KindAssign
	KindVarDecl
	KindReturn
	KindExprStmt

	// Expressions
	KindIdent
	KindNumberLit
	KindStringLit
	KindBoolLit
	KindNot
	KindBinOp
	KindCall
)

var nodeKindNames = map[NodeKind]string{
	KindProgram:      "Program",
	KindFunctionDecl: "FunctionDecl",
	KindBlock:        "Block",
	KindIfThen:       "IfThen",
	KindIfThenElse:   "IfThenElse",
	KindAssign:       "Assign",
	KindVarDecl:      "VarDecl",
	KindReturn:       "Return",
	KindExprStmt:     "ExprStmt",
	KindIdent:        "Identifier",
	KindNumberLit:    "NumberLit",
	KindStringLit:    "StringLit",
	KindBoolLit:      "BoolLit",
	KindNot:          "Not",
	KindBinOp:        "BinOp",
	KindCall:         "Call",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is implemented by every syntax tree node. Pos is the position of
// the node's first token.
type Node interface {
	Kind() NodeKind
	Pos() Position
}

// Element is a top-level program unit: a *FunctionDecl or a Stmt.
type Element interface {
	Node
	elementNode()
}

type Stmt interface {
	Element
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type Program struct {
	Start    Position
	Elements []Element
}

type FunctionDecl struct {
	Start  Position
	Name   *Ident
	Params []*Ident
	Body   *Block
}

type Block struct {
	Start Position
	Stmts []Stmt
}

type IfThen struct {
	Start Position
	Cond  Expr
	Then  *Block
}

type IfThenElse struct {
	Start Position
	Cond  Expr
	Then  *Block
	Else  *Block
}

type Assign struct {
	Name  *Ident
	Value Expr
}

type VarDecl struct {
	Start Position
	Name  *Ident
	Value Expr
}

type Return struct {
	Start Position
	Value Expr
}

type ExprStmt struct {
	X Expr
}

type Ident struct {
	Start Position
	Name  string
}

// NumberLit keeps the literal text exactly as written.
type NumberLit struct {
	Start Position
	Text  string
}

// StringLit holds the text between the quotes.
type StringLit struct {
	Start Position
	Text  string
}

type BoolLit struct {
	Start Position
	Value bool
}

type Not struct {
	Start   Position
	Operand Expr
}

type BinOp struct {
	Op    TokenKind
	Left  Expr
	Right Expr
}

type Call struct {
	Callee *Ident
	Args   []Expr
}

func (n *Program) Kind() NodeKind      { return KindProgram }
func (n *FunctionDecl) Kind() NodeKind { return KindFunctionDecl }
func (n *Block) Kind() NodeKind        { return KindBlock }
func (n *IfThen) Kind() NodeKind       { return KindIfThen }
func (n *IfThenElse) Kind() NodeKind   { return KindIfThenElse }
func (n *Assign) Kind() NodeKind       { return KindAssign }
func (n *VarDecl) Kind() NodeKind      { return KindVarDecl }
func (n *Return) Kind() NodeKind       { return KindReturn }
func (n *ExprStmt) Kind() NodeKind     { return KindExprStmt }
func (n *Ident) Kind() NodeKind        { return KindIdent }
func (n *NumberLit) Kind() NodeKind    { return KindNumberLit }
func (n *StringLit) Kind() NodeKind    { return KindStringLit }
func (n *BoolLit) Kind() NodeKind      { return KindBoolLit }
func (n *Not) Kind() NodeKind          { return KindNot }
func (n *BinOp) Kind() NodeKind        { return KindBinOp }
func (n *Call) Kind() NodeKind         { return KindCall }

func (n *Program) Pos() Position      { return n.Start }
func (n *FunctionDecl) Pos() Position { return n.Start }
func (n *Block) Pos() Position        { return n.Start }
func (n *IfThen) Pos() Position       { return n.Start }
func (n *IfThenElse) Pos() Position   { return n.Start }
func (n *Assign) Pos() Position       { return n.Name.Pos() }
func (n *VarDecl) Pos() Position      { return n.Start }
func (n *Return) Pos() Position       { return n.Start }
func (n *ExprStmt) Pos() Position     { return n.X.Pos() }
func (n *Ident) Pos() Position        { return n.Start }
func (n *NumberLit) Pos() Position    { return n.Start }
func (n *StringLit) Pos() Position    { return n.Start }
func (n *BoolLit) Pos() Position      { return n.Start }
func (n *Not) Pos() Position          { return n.Start }
func (n *BinOp) Pos() Position        { return n.Left.Pos() }
func (n *Call) Pos() Position         { return n.Callee.Pos() }

func (*FunctionDecl) elementNode() {}
func (*IfThen) elementNode()       {}
func (*IfThenElse) elementNode()   {}
func (*Assign) elementNode()       {}
func (*VarDecl) elementNode()      {}
func (*Return) elementNode()       {}
func (*ExprStmt) elementNode()     {}

func (*IfThen) stmtNode()     {}
func (*IfThenElse) stmtNode() {}
func (*Assign) stmtNode()     {}
func (*VarDecl) stmtNode()    {}
func (*Return) stmtNode()     {}
func (*ExprStmt) stmtNode()   {}

func (*Ident) exprNode()     {}
func (*NumberLit) exprNode() {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*Not) exprNode()       {}
func (*BinOp) exprNode()     {}
func (*Call) exprNode()      {}
