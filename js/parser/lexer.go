package parser

import "unicode/utf8"

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\v' || ch == '\f' {
			l.advance()
		} else {
			return
		}
	}
}

// NextToken returns the next significant token. Whitespace is skipped.
// An unrecognized character yields a TokenError whose literal is that
// character; the lexer keeps going if asked, but Tokenize and the parser
// stop at the first one.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Pos: startPos}
	}

	ch := l.peek()

	if isLetter(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' {
		return l.scanString(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isLetterOrDigit(l.peek()) {
		l.advance()
	}
	literal := string(l.input[start.Offset:l.pos])
	return Token{
		Kind:    LookupKeyword(literal),
		Pos:     start,
		Literal: literal,
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	return l.token(TokenNumber, start)
}

func (l *Lexer) scanString(start Position) Token {
	l.advance()
	for {
		ch := l.peek()
		if l.pos >= len(l.input) {
			// Unterminated: report the opening quote and resume after it.
			l.pos, l.line, l.column = start.Offset+1, start.Line, start.Column+1
			return Token{Kind: TokenError, Pos: start, Literal: "'"}
		}
		l.advance()
		if ch == '\'' {
			return l.token(TokenString, start)
		}
	}
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		return l.token(TokenRBrace, start)
	case ';':
		l.advance()
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		return l.token(TokenComma, start)

	case '=':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenEQ, start)
		}
		l.advance()
		return l.token(TokenAssign, start)

	case '!':
		l.advance()
		return l.token(TokenNot, start)

	case '<':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenLE, start)
		}
		l.advance()
		return l.token(TokenLT, start)

	case '>':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.token(TokenGE, start)
		}
		l.advance()
		return l.token(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			l.advanceN(2)
			return l.token(TokenAnd, start)
		}

	case '|':
		if l.peekN(1) == '|' {
			l.advanceN(2)
			return l.token(TokenOr, start)
		}

	case '+':
		l.advance()
		return l.token(TokenPlus, start)
	case '-':
		l.advance()
		return l.token(TokenMinus, start)
	case '*':
		l.advance()
		return l.token(TokenStar, start)
	case '/':
		l.advance()
		return l.token(TokenSlash, start)
	case '%':
		l.advance()
		return l.token(TokenPercent, start)
	}

	// Consume the whole rune so the literal is a readable character.
	_, size := utf8.DecodeRune(l.input[l.pos:])
	l.advanceN(size)
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	return Token{
		Kind:    kind,
		Pos:     start,
		Literal: string(l.input[start.Offset:l.pos]),
	}
}

// Tokenize scans src eagerly. The result always ends with a TokenEOF token.
// The first illegal character aborts the scan with a *LexError.
func Tokenize(src string, opts ...Option) ([]Token, error) {
	o := newOptions(opts)
	lexer := NewLexer([]byte(src), o.file)
	var tokens []Token
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenError {
			return nil, newLexError(tok)
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isLetterOrDigit(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}
