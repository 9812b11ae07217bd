package parser

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Diagnostic is implemented by the two error kinds the front-end reports.
// It carries enough to render "Illegal input {value} at ({line}, {offset})".
type Diagnostic interface {
	error
	Position() Position
	Value() string
}

// LexError reports a character that does not start any token.
type LexError struct {
	Char rune
	Pos  Position
}

func newLexError(tok Token) *LexError {
	r, _ := utf8.DecodeRuneInString(tok.Literal)
	return &LexError{Char: r, Pos: tok.Pos}
}

func (e *LexError) Error() string {
	return illegalInput(e.Value(), e.Pos)
}

func (e *LexError) Position() Position { return e.Pos }

func (e *LexError) Value() string { return string(e.Char) }

// ParseError reports a token that no production accepts at the point
// where it was found.
type ParseError struct {
	Token    Token
	Expected []TokenKind
}

func (e *ParseError) Error() string {
	return illegalInput(e.Value(), e.Token.Pos)
}

func (e *ParseError) Position() Position { return e.Token.Pos }

func (e *ParseError) Value() string { return e.Token.String() }

// ExpectedString lists the expected token kinds, e.g. `";" or "}"`.
func (e *ParseError) ExpectedString() string {
	s := ""
	for i, kind := range e.Expected {
		switch {
		case i == 0:
		case i == len(e.Expected)-1:
			s += " or "
		default:
			s += ", "
		}
		s += fmt.Sprintf("%q", kind.String())
	}
	return s
}

func illegalInput(value string, pos Position) string {
	return fmt.Sprintf("Illegal input %s at (%d, %d)", value, pos.Line, pos.Offset)
}

// AsDiagnostic extracts a LexError or ParseError from err's chain.
func AsDiagnostic(err error) (Diagnostic, bool) {
	var lexErr *LexError
	if errors.As(err, &lexErr) {
		return lexErr, true
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	return nil, false
}
