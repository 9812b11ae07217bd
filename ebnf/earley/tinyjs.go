package earley

import (
	"strings"
	"sync"

	"github.com/dhamidi/tinyjs/js/parser"
	"golang.org/x/exp/ebnf"
)

var (
	sourceOnce       sync.Once
	sourceRecognizer *Recognizer
	sourceErr        error
)

// SourceGrammar returns the recognizer for the language's published
// grammar, starting at Program.
func SourceGrammar() (*Recognizer, error) {
	sourceOnce.Do(func() {
		g, err := ebnf.Parse("grammar.ebnf", strings.NewReader(parser.Grammar()))
		if err != nil {
			sourceErr = err
			return
		}
		sourceRecognizer, sourceErr = New(g, "Program")
	})
	return sourceRecognizer, sourceErr
}

// FromTokens maps lexer tokens onto the grammar's terminals: identifiers,
// numbers and strings by their lexical production, everything else by
// literal. The EOF token is dropped.
func FromTokens(tokens []parser.Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		var kind string
		switch tok.Kind {
		case parser.TokenEOF:
			continue
		case parser.TokenIdent:
			kind = "identifier"
		case parser.TokenNumber:
			kind = "number"
		case parser.TokenString:
			kind = "string"
		default:
			kind = tok.Kind.String()
		}
		out = append(out, Token{Kind: kind, Literal: tok.Literal, Offset: tok.Pos.Offset})
	}
	return out
}

// CheckSource lexes src and recognizes it against the grammar, without
// going through the parser. Lexical errors are returned as *parser.LexError.
func CheckSource(src string) error {
	rec, err := SourceGrammar()
	if err != nil {
		return err
	}
	tokens, err := parser.Tokenize(src)
	if err != nil {
		return err
	}
	return rec.Recognize(FromTokens(tokens))
}
