package parser

type Option func(*options)

type options struct {
	file string
}

// WithFile records path in every token and node position.
func WithFile(path string) Option {
	return func(o *options) {
		o.file = path
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Parser pulls tokens from a source and keeps a small lookahead buffer.
// A Parser is used for a single parse; independent parses share nothing
// except the read-only keyword and precedence tables.
type Parser struct {
	next func() Token
	buf  []Token
}

func newParser(next func() Token) *Parser {
	return &Parser{next: next}
}

// Parse parses a complete program. The whole input is scanned first, so an
// illegal character anywhere is a *LexError even when a syntax error comes
// before it; otherwise the first syntax error is returned as a *ParseError.
func Parse(src string, opts ...Option) (*Program, error) {
	tokens, err := Tokenize(src, opts...)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses a program from an already scanned token sequence,
// as returned by Tokenize. A missing trailing TokenEOF is implied.
func ParseTokens(tokens []Token) (*Program, error) {
	return newParser(sliceSource(tokens)).parseProgram()
}

// ParseExpression parses src as a single expression that must span the
// whole input.
func ParseExpression(src string, opts ...Option) (Expr, error) {
	tokens, err := Tokenize(src, opts...)
	if err != nil {
		return nil, err
	}
	p := newParser(sliceSource(tokens))
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return x, nil
}

func sliceSource(tokens []Token) func() Token {
	i := 0
	var end Position
	return func() Token {
		if i < len(tokens) {
			tok := tokens[i]
			i++
			end = tok.Pos
			return tok
		}
		return Token{Kind: TokenEOF, Pos: end}
	}
}

func (p *Parser) peekN(n int) Token {
	for len(p.buf) <= n {
		if k := len(p.buf); k > 0 && p.buf[k-1].Kind == TokenEOF {
			return p.buf[k-1]
		}
		p.buf = append(p.buf, p.next())
	}
	return p.buf[n]
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.buf = p.buf[1:]
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, p.unexpected(kind)
}

func (p *Parser) expectIdent() (*Ident, error) {
	tok, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	return &Ident{Start: tok.Pos, Name: tok.Literal}, nil
}

// unexpected builds the error for the current token. A TokenError handed to
// ParseTokens surfaces as a *LexError.
func (p *Parser) unexpected(expected ...TokenKind) error {
	tok := p.peek()
	if tok.Kind == TokenError {
		return newLexError(tok)
	}
	return &ParseError{Token: tok, Expected: expected}
}

var statementStarts = []TokenKind{
	TokenIf, TokenReturn, TokenVar,
	TokenIdent, TokenNumber, TokenString, TokenTrue, TokenFalse, TokenNot, TokenLParen,
}

func (p *Parser) parseProgram() (*Program, error) {
	prog := &Program{Start: p.peek().Pos}
	for !p.check(TokenEOF) {
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		prog.Elements = append(prog.Elements, el)
	}
	return prog, nil
}

// parseElement parses a function declaration or a statement. Only here
// may a statement be followed by an optional semicolon.
func (p *Parser) parseElement() (Element, error) {
	if p.check(TokenFunction) {
		fn, err := p.parseFunctionDecl()
		if err != nil {
			return nil, err
		}
		return fn, nil
	}
	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	if p.check(TokenSemicolon) {
		p.advance()
	}
	return stmt, nil
}

func (p *Parser) parseFunctionDecl() (*FunctionDecl, error) {
	start := p.advance()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	var params []*Ident
	if !p.check(TokenRParen) {
		for {
			param, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FunctionDecl{Start: start.Pos, Name: name, Params: params, Body: body}, nil
}

// parseBlock parses "{ (stmt ;)* }". Unlike top-level elements, every
// statement in a block must be terminated by a semicolon, the last one
// included.
func (p *Parser) parseBlock() (*Block, error) {
	start, err := p.expect(TokenLBrace)
	if err != nil {
		return nil, err
	}
	block := &Block{Start: start.Pos}
	for !p.check(TokenRBrace) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	p.advance()
	return block, nil
}

func (p *Parser) parseStmt() (Stmt, error) {
	switch p.peek().Kind {
	case TokenIf:
		return p.parseIf()

	case TokenReturn:
		start := p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &Return{Start: start.Pos, Value: value}, nil

	case TokenVar:
		start := p.advance()
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenAssign); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &VarDecl{Start: start.Pos, Name: name, Value: value}, nil

	case TokenIdent:
		if p.peekN(1).Kind == TokenAssign {
			name, _ := p.expectIdent()
			p.advance()
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return &Assign{Name: name, Value: value}, nil
		}
	}

	if !startsExpr(p.peek().Kind) {
		return nil, p.unexpected(statementStarts...)
	}
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{X: x}, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	start := p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenElse) {
		return &IfThen{Start: start.Pos, Cond: cond, Then: then}, nil
	}
	p.advance()
	els, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &IfThenElse{Start: start.Pos, Cond: cond, Then: then, Else: els}, nil
}
