package earley

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/tinyjs/js/parser"
	"golang.org/x/exp/ebnf"
)

func mustRecognizer(t *testing.T, src, start string) *Recognizer {
	t.Helper()
	g, err := ebnf.Parse("test", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	r, err := New(g, start)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func literals(s string) []Token {
	var toks []Token
	offset := 0
	for _, f := range strings.Fields(s) {
		kind := f
		if f[0] >= 'a' && f[0] <= 'z' {
			kind = "name"
		}
		toks = append(toks, Token{Kind: kind, Literal: f, Offset: offset})
		offset += len(f) + 1
	}
	return toks
}

func TestRecognize(t *testing.T) {
	r := mustRecognizer(t, `
		List  = "[" [ Items ] "]" .
		Items = Item { "," Item } .
		Item  = name | List | ( "+" | "-" ) Item .
		name  = "a" … "z" { "a" … "z" } .
	`, "List")

	tests := []struct {
		input string
		ok    bool
	}{
		{"[ ]", true},
		{"[ x ]", true},
		{"[ x , y , z ]", true},
		{"[ [ x ] , [ ] ]", true},
		{"[ - + x ]", true},
		{"[ x , ]", false},
		{"[ x y ]", false},
		{"[", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := r.Recognize(literals(tt.input))
			if (err == nil) != tt.ok {
				t.Errorf("Recognize(%q) = %v, want ok=%v", tt.input, err, tt.ok)
			}
		})
	}
}

func TestRecognizeError(t *testing.T) {
	r := mustRecognizer(t, `
		Pair = "(" name "," name ")" .
		name = "a" … "z" .
	`, "Pair")

	err := r.Recognize(literals("( a b )"))
	var rerr *Error
	if !errors.As(err, &rerr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if rerr.Index != 2 || rerr.Token == nil || rerr.Token.Literal != "b" {
		t.Errorf("error at %d (%v), want index 2 at b", rerr.Index, rerr.Token)
	}
	if len(rerr.Expected) != 1 || rerr.Expected[0] != `","` {
		t.Errorf("Expected = %v", rerr.Expected)
	}

	err = r.Recognize(literals("( a ,"))
	if !errors.As(err, &rerr) || rerr.Token != nil || rerr.Index != 3 {
		t.Errorf("end of input error = %v", err)
	}
}

func TestNewErrors(t *testing.T) {
	g, err := ebnf.Parse("test", strings.NewReader(`A = B . B = "x" .`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(g, "C"); err == nil {
		t.Error("missing start production should fail")
	}

	g, err = ebnf.Parse("test", strings.NewReader(`A = "a" … "z" .`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(g, "A"); err == nil {
		t.Error("range in a syntactic production should fail")
	}
}

// The grammar and the hand-written parser must accept the same programs.
func TestSourceGrammarAgreesWithParser(t *testing.T) {
	sources := []string{
		"",
		"x",
		"x;",
		"x = 1; y = x",
		"var x = 1 + 2 * 3;",
		"function f() { }",
		"function add(a, b) { return a + b; }",
		"function f() { return 1 }",
		"function f(a,) { }",
		"function f() { };",
		"if (x) { y = 1; } else { y = 2; }",
		"if x < 1 { return x; }",
		"if x { } else",
		"f(1, 'two', g(three), !four)",
		"f(1,)",
		"!!a && b || c == d",
		"a < b < c",
		"(1 + 2",
		"1 +",
		"- 1",
		"var = 1",
		"var x 1",
		"return",
		"x = = 1",
		"f() g()",
		"{ }",
		"'s' + 1.5",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			_, parseErr := parser.Parse(src)
			checkErr := CheckSource(src)
			if (parseErr == nil) != (checkErr == nil) {
				t.Errorf("parser: %v, grammar: %v", parseErr, checkErr)
			}
		})
	}
}

func TestCheckSourceLexError(t *testing.T) {
	err := CheckSource("x @")
	var lexErr *parser.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("err = %v, want *parser.LexError", err)
	}
}

func TestFromTokens(t *testing.T) {
	tokens, err := parser.Tokenize("var n = 'a';")
	if err != nil {
		t.Fatal(err)
	}
	got := FromTokens(tokens)
	want := []Token{
		{Kind: "var", Literal: "var", Offset: 0},
		{Kind: "identifier", Literal: "n", Offset: 4},
		{Kind: "=", Literal: "=", Offset: 6},
		{Kind: "string", Literal: "'a'", Offset: 8},
		{Kind: ";", Literal: ";", Offset: 11},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
