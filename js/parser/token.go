package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenNumber
	TokenString

	// Keywords
	TokenFunction
	TokenIf
	TokenElse
	TokenVar
	TokenReturn
	TokenTrue
	TokenFalse

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenSemicolon

	TokenAssign
	TokenEQ
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:       "EOF",
	TokenError:     "Error",
	TokenIdent:     "Identifier",
	TokenNumber:    "Number",
	TokenString:    "String",
	TokenFunction:  "function",
	TokenIf:        "if",
	TokenElse:      "else",
	TokenVar:       "var",
	TokenReturn:    "return",
	TokenTrue:      "true",
	TokenFalse:     "false",
	TokenLParen:    "(",
	TokenRParen:    ")",
	TokenLBrace:    "{",
	TokenRBrace:    "}",
	TokenComma:     ",",
	TokenSemicolon: ";",
	TokenAssign:    "=",
	TokenEQ:        "==",
	TokenLT:        "<",
	TokenLE:        "<=",
	TokenGT:        ">",
	TokenGE:        ">=",
	TokenAnd:       "&&",
	TokenOr:        "||",
	TokenNot:       "!",
	TokenPlus:      "+",
	TokenMinus:     "-",
	TokenStar:      "*",
	TokenSlash:     "/",
	TokenPercent:   "%",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsKeyword reports whether k is one of the reserved words.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenFunction && k <= TokenFalse
}

type Token struct {
	Kind    TokenKind
	Pos     Position
	Literal string
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "<EOF>"
	}
	return t.Literal
}

var keywords = map[string]TokenKind{
	"function": TokenFunction,
	"if":       TokenIf,
	"else":     TokenElse,
	"var":      TokenVar,
	"return":   TokenReturn,
	"true":     TokenTrue,
	"false":    TokenFalse,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
