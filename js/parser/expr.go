package parser

// Binary operator precedence, lowest first. All binary operators are
// left-associative. Prefix "!" binds tighter than any of them.
var binaryPrecedence = map[TokenKind]int{
	TokenOr:      1,
	TokenAnd:     2,
	TokenEQ:      3,
	TokenLT:      4,
	TokenLE:      4,
	TokenGT:      4,
	TokenGE:      4,
	TokenPlus:    5,
	TokenMinus:   5,
	TokenStar:    6,
	TokenSlash:   6,
	TokenPercent: 6,
}

// Precedence returns the binding power of a binary operator, or 0 if kind
// is not one.
func Precedence(kind TokenKind) int {
	return binaryPrecedence[kind]
}

var expressionStarts = []TokenKind{
	TokenIdent, TokenNumber, TokenString, TokenTrue, TokenFalse, TokenNot, TokenLParen,
}

func startsExpr(kind TokenKind) bool {
	for _, k := range expressionStarts {
		if k == kind {
			return true
		}
	}
	return false
}

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseBinary(1)
}

// parseBinary is a precedence-climbing loop: it folds operators of at
// least minPrec to the left, parsing each right operand one level higher.
func (p *Parser) parseBinary(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek().Kind
		prec := Precedence(op)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinOp{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (Expr, error) {
	if !p.check(TokenNot) {
		return p.parsePrimary()
	}
	start := p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Not{Start: start.Pos, Operand: operand}, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	switch p.peek().Kind {
	case TokenNumber:
		tok := p.advance()
		return &NumberLit{Start: tok.Pos, Text: tok.Literal}, nil

	case TokenString:
		tok := p.advance()
		return &StringLit{Start: tok.Pos, Text: tok.Literal[1 : len(tok.Literal)-1]}, nil

	case TokenTrue, TokenFalse:
		tok := p.advance()
		return &BoolLit{Start: tok.Pos, Value: tok.Kind == TokenTrue}, nil

	case TokenLParen:
		// Parentheses only group; they leave no node behind.
		p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return x, nil

	case TokenIdent:
		ident, _ := p.expectIdent()
		if p.check(TokenLParen) {
			return p.parseCall(ident)
		}
		return ident, nil
	}

	return nil, p.unexpected(expressionStarts...)
}

func (p *Parser) parseCall(callee *Ident) (Expr, error) {
	p.advance()
	call := &Call{Callee: callee}
	if !p.check(TokenRParen) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return call, nil
}
