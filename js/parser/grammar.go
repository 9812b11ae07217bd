package parser

import (
	_ "embed"
)

//go:embed grammar.ebnf
var grammar string

// Grammar returns the accepted language in Go EBNF notation, starting at
// the production "Program". Lowercase productions are lexical.
func Grammar() string {
	return grammar
}
