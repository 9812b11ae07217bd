// Package parser turns source text of a small JavaScript-like language into
// a syntax tree.
//
// # Overview
//
// The language has function declarations, if/else, var declarations,
// assignment, return, calls and the binary operators || && == < <= > >=
// + - * / % plus prefix !. There are no comments, no loops and no object
// or array literals. Parsing only recognizes syntax: nothing is evaluated
// or resolved.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (string)   │     │  (tokens)   │     │   (AST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                  *LexError / *ParseError
//
// Parse scans the whole input before parsing, so an illegal character is
// reported as a *LexError wherever it occurs. The parser needs at most two
// tokens of lookahead (to tell "x = 1" from "x + 1"). Statements are parsed
// by recursive descent; binary expressions by precedence climbing:
//
//	1  ||
//	2  &&
//	3  ==
//	4  <  <=  >  >=
//	5  +  -
//	6  *  /  %
//	7  !          (prefix, right-associative)
//
// # Semicolons
//
// A statement at the top level may be followed by a semicolon. Inside a
// block every statement must be followed by one, including the last:
//
//	function f() { var x = 1; return x; }   // ok
//	function f() { var x = 1; return x }    // error at "}"
//
// # The if condition
//
// The condition of an if statement is a plain expression and is not
// wrapped in parentheses. "if (x) { ... }" is still accepted because a
// parenthesized expression is an expression; the parentheses leave no
// trace in the tree.
//
// # Errors
//
// Parsing stops at the first problem. An unknown character yields a
// *LexError, an unexpected token a *ParseError. Both implement
// Diagnostic and render as
//
//	Illegal input {value} at ({line}, {offset})
//
// where offset is the 0-based byte offset into the source.
//
// # Concurrency
//
// Parse, ParseTokens, ParseExpression and Tokenize keep all state per call
// and may run concurrently.
package parser
