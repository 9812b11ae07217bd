// Package earley recognizes token streams against an EBNF grammar.
//
// The grammar is lowered to plain rules first: every group, option and
// repetition becomes a synthetic nonterminal. Productions whose names start
// with a lowercase letter are lexical and are matched against a token's
// Kind; quoted tokens are matched against its Literal.
package earley

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/exp/ebnf"
)

// Token is a terminal as the recognizer sees it.
type Token struct {
	Kind    string
	Literal string
	Offset  int
}

type symbol struct {
	name     string
	terminal bool
	literal  bool
}

func (s symbol) String() string {
	if s.literal {
		return fmt.Sprintf("%q", s.name)
	}
	return s.name
}

type rule struct {
	lhs string
	rhs []symbol
}

// Recognizer holds a lowered grammar. It is immutable after New and safe
// for concurrent use.
type Recognizer struct {
	start    string
	rules    []rule
	byLHS    map[string][]int
	nullable map[string]bool
}

// New lowers the productions reachable from start.
func New(g ebnf.Grammar, start string) (*Recognizer, error) {
	if g[start] == nil {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}
	c := &compiler{
		grammar: g,
		rec: &Recognizer{
			start: start,
			byLHS: make(map[string][]int),
		},
		done: make(map[string]bool),
	}
	if err := c.production(start); err != nil {
		return nil, err
	}
	c.rec.nullable = nullables(c.rec.rules)
	return c.rec, nil
}

type compiler struct {
	grammar ebnf.Grammar
	rec     *Recognizer
	done    map[string]bool
	fresh   int
}

func isLexical(name string) bool {
	r := []rune(name)
	return len(r) > 0 && unicode.IsLower(r[0])
}

func (c *compiler) production(name string) error {
	if c.done[name] {
		return nil
	}
	c.done[name] = true
	prod := c.grammar[name]
	if prod == nil {
		return fmt.Errorf("production %q not found in grammar", name)
	}
	alts, err := c.alternatives(prod.Expr)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	for _, alt := range alts {
		c.add(name, alt)
	}
	return nil
}

func (c *compiler) add(lhs string, rhs []symbol) {
	c.rec.byLHS[lhs] = append(c.rec.byLHS[lhs], len(c.rec.rules))
	c.rec.rules = append(c.rec.rules, rule{lhs: lhs, rhs: rhs})
}

func (c *compiler) synthetic(kind string) string {
	c.fresh++
	return fmt.Sprintf("%s#%d", kind, c.fresh)
}

// alternatives returns the right-hand sides expr stands for.
func (c *compiler) alternatives(expr ebnf.Expression) ([][]symbol, error) {
	switch e := expr.(type) {
	case nil:
		return [][]symbol{{}}, nil
	case ebnf.Alternative:
		var alts [][]symbol
		for _, x := range e {
			sub, err := c.alternatives(x)
			if err != nil {
				return nil, err
			}
			alts = append(alts, sub...)
		}
		return alts, nil
	case ebnf.Sequence:
		seq := make([]symbol, 0, len(e))
		for _, x := range e {
			sym, err := c.symbol(x)
			if err != nil {
				return nil, err
			}
			seq = append(seq, sym)
		}
		return [][]symbol{seq}, nil
	default:
		sym, err := c.symbol(e)
		if err != nil {
			return nil, err
		}
		return [][]symbol{{sym}}, nil
	}
}

func (c *compiler) symbol(expr ebnf.Expression) (symbol, error) {
	switch e := expr.(type) {
	case *ebnf.Name:
		if isLexical(e.String) {
			return symbol{name: e.String, terminal: true}, nil
		}
		if err := c.production(e.String); err != nil {
			return symbol{}, err
		}
		return symbol{name: e.String}, nil

	case *ebnf.Token:
		return symbol{name: e.String, terminal: true, literal: true}, nil

	case *ebnf.Group:
		return c.inline("group", e.Body, false, false)

	case *ebnf.Option:
		return c.inline("option", e.Body, true, false)

	case *ebnf.Repetition:
		return c.inline("repeat", e.Body, true, true)

	case ebnf.Alternative, ebnf.Sequence:
		return c.inline("group", e, false, false)

	case *ebnf.Range:
		return symbol{}, fmt.Errorf("%s: character range outside a lexical production", e.Begin.Pos())
	}
	return symbol{}, fmt.Errorf("unsupported expression %T", expr)
}

// inline introduces a nonterminal for body. An optional one also derives
// the empty string; a repeated one derives body followed by itself.
func (c *compiler) inline(kind string, body ebnf.Expression, optional, repeated bool) (symbol, error) {
	name := c.synthetic(kind)
	alts, err := c.alternatives(body)
	if err != nil {
		return symbol{}, err
	}
	if optional {
		c.add(name, nil)
	}
	self := symbol{name: name}
	for _, alt := range alts {
		if repeated {
			alt = append(alt[:len(alt):len(alt)], self)
		}
		c.add(name, alt)
	}
	return self, nil
}

func nullables(rules []rule) map[string]bool {
	nullable := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, r := range rules {
			if nullable[r.lhs] {
				continue
			}
			all := true
			for _, s := range r.rhs {
				if s.terminal || !nullable[s.name] {
					all = false
					break
				}
			}
			if all {
				nullable[r.lhs] = true
				changed = true
			}
		}
	}
	return nullable
}

type item struct {
	rule   int
	dot    int
	origin int
}

type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

// Error reports the first token at which no rule could continue, or the
// end of input when the stream stopped early.
type Error struct {
	// Index of the offending token; len(tokens) at end of input.
	Index    int
	Token    *Token
	Expected []string
}

func (e *Error) Error() string {
	expected := ""
	if len(e.Expected) > 0 {
		expected = ", expected " + strings.Join(e.Expected, " or ")
	}
	if e.Token == nil {
		return "unexpected end of input" + expected
	}
	return fmt.Sprintf("unexpected %q at offset %d%s", e.Token.Literal, e.Token.Offset, expected)
}

// Recognize reports whether tokens derive from the start production. It
// returns an *Error otherwise.
func (r *Recognizer) Recognize(tokens []Token) error {
	n := len(tokens)
	chart := make([]itemSet, n+1)
	for i := range chart {
		chart[i].seen = make(map[item]bool)
	}
	for _, ri := range r.byLHS[r.start] {
		chart[0].add(item{rule: ri, origin: 0})
	}

	furthest := 0
	for i := 0; i <= n; i++ {
		set := &chart[i]
		if len(set.items) > 0 {
			furthest = i
		}
		for j := 0; j < len(set.items); j++ {
			it := set.items[j]
			rl := r.rules[it.rule]

			if it.dot == len(rl.rhs) {
				r.complete(chart, i, it)
				continue
			}

			next := rl.rhs[it.dot]
			advanced := item{rule: it.rule, dot: it.dot + 1, origin: it.origin}
			if next.terminal {
				if i < n && matches(next, tokens[i]) {
					chart[i+1].add(advanced)
				}
				continue
			}
			for _, ri := range r.byLHS[next.name] {
				set.add(item{rule: ri, origin: i})
			}
			if r.nullable[next.name] {
				set.add(advanced)
			}
		}
	}

	for _, it := range chart[n].items {
		rl := r.rules[it.rule]
		if rl.lhs == r.start && it.origin == 0 && it.dot == len(rl.rhs) {
			return nil
		}
	}

	err := &Error{Index: furthest, Expected: r.expected(chart[furthest])}
	if furthest < n {
		err.Token = &tokens[furthest]
	}
	return err
}

func (r *Recognizer) complete(chart []itemSet, i int, done item) {
	lhs := r.rules[done.rule].lhs
	origin := &chart[done.origin]
	for k := 0; k < len(origin.items); k++ {
		it := origin.items[k]
		rl := r.rules[it.rule]
		if it.dot < len(rl.rhs) && !rl.rhs[it.dot].terminal && rl.rhs[it.dot].name == lhs {
			chart[i].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
		}
	}
}

// expected lists the terminals the items of set are waiting for.
func (r *Recognizer) expected(set itemSet) []string {
	uniq := make(map[string]bool)
	for _, it := range set.items {
		rl := r.rules[it.rule]
		if it.dot < len(rl.rhs) && rl.rhs[it.dot].terminal {
			uniq[rl.rhs[it.dot].String()] = true
		}
	}
	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func matches(s symbol, tok Token) bool {
	if s.literal {
		return tok.Literal == s.name
	}
	return tok.Kind == s.name
}
