package workspace

import (
	"strings"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params any
}

func testContext(sent *[]notification) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			*sent = append(*sent, notification{method, params})
		},
	}
}

func lastDiagnostics(t *testing.T, sent []notification) protocol.PublishDiagnosticsParams {
	t.Helper()
	if len(sent) == 0 {
		t.Fatal("no notification sent")
	}
	n := sent[len(sent)-1]
	if n.method != protocol.ServerTextDocumentPublishDiagnostics {
		t.Fatalf("method = %q", n.method)
	}
	params, ok := n.params.(protocol.PublishDiagnosticsParams)
	if !ok {
		t.Fatalf("params = %T", n.params)
	}
	return params
}

func TestDiagnostics(t *testing.T) {
	w := New(".")

	file := w.UpdateFile("a.js", []byte("function f() { return 1 }"))
	diags := Diagnostics(file)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if !strings.HasPrefix(d.Message, "Illegal input } at (1, 24)") {
		t.Errorf("message = %q", d.Message)
	}
	if d.Range.Start.Line != 0 || d.Range.Start.Character != 24 || d.Range.End.Character != 25 {
		t.Errorf("range = %+v", d.Range)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Error("severity should be error")
	}

	file = w.UpdateFile("b.js", []byte("var x = 1;\nvar y = @;"))
	diags = Diagnostics(file)
	if len(diags) != 1 || diags[0].Range.Start.Line != 1 || diags[0].Range.Start.Character != 8 {
		t.Errorf("lex error diagnostics = %+v", diags)
	}

	file = w.UpdateFile("c.js", []byte("var x = 1;"))
	if diags := Diagnostics(file); diags == nil || len(diags) != 0 {
		t.Errorf("clean file diagnostics = %#v", diags)
	}
}

func TestDocumentSymbols(t *testing.T) {
	w := New(".")
	file := w.UpdateFile("a.js", []byte("var n = 1;\nfunction add(a, b) { return a + b; }\nadd(n, 2);"))

	symbols := DocumentSymbols(file)
	if len(symbols) != 2 {
		t.Fatalf("got %d symbols, want 2", len(symbols))
	}
	if symbols[0].Name != "n" || symbols[0].Kind != protocol.SymbolKindVariable {
		t.Errorf("symbol 0 = %+v", symbols[0])
	}
	fn := symbols[1]
	if fn.Name != "add" || fn.Kind != protocol.SymbolKindFunction {
		t.Errorf("symbol 1 = %+v", fn)
	}
	if fn.Detail == nil || *fn.Detail != "(a, b)" {
		t.Errorf("detail = %v", fn.Detail)
	}
	if fn.SelectionRange.Start.Line != 1 || fn.SelectionRange.Start.Character != 9 || fn.SelectionRange.End.Character != 12 {
		t.Errorf("selection range = %+v", fn.SelectionRange)
	}
	if fn.Range.Start.Character != 0 {
		t.Errorf("range = %+v", fn.Range)
	}
}

func TestLSPDocumentLifecycle(t *testing.T) {
	ls := NewLSPServer("test")
	var sent []notification
	ctx := testContext(&sent)
	uri := "file:///tmp/project/main.js"

	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "javascript", Version: 1, Text: "var x = ;"},
	})
	if err != nil {
		t.Fatal(err)
	}
	params := lastDiagnostics(t, sent)
	if params.URI != uri || len(params.Diagnostics) != 1 {
		t.Fatalf("after open: %+v", params)
	}

	err = ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "function main() { return 0; }"}},
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if params := lastDiagnostics(t, sent); len(params.Diagnostics) != 0 {
		t.Fatalf("after change: %+v", params.Diagnostics)
	}

	result, err := ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatal(err)
	}
	symbols, ok := result.([]protocol.DocumentSymbol)
	if !ok || len(symbols) != 1 || symbols[0].Name != "main" {
		t.Fatalf("symbols = %#v", result)
	}

	text := "main("
	if err := ls.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Text:         &text,
	}); err != nil {
		t.Fatal(err)
	}
	params = lastDiagnostics(t, sent)
	if len(params.Diagnostics) != 1 || !strings.Contains(params.Diagnostics[0].Message, "<EOF>") {
		t.Fatalf("after save: %+v", params.Diagnostics)
	}
	if r := params.Diagnostics[0].Range; r.Start != r.End {
		t.Errorf("EOF diagnostic should be empty, got %+v", r)
	}
}

func TestURIConversion(t *testing.T) {
	path, err := uriToPath("file:///tmp/a%20b/main.js")
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/a b/main.js" {
		t.Errorf("uriToPath = %q", path)
	}
	if got := pathToURI("/tmp/a b/main.js"); got != "file:///tmp/a%20b/main.js" {
		t.Errorf("pathToURI = %q", got)
	}
	if path, _ := uriToPath("untitled:1"); path != "untitled:1" {
		t.Errorf("non-file URI = %q", path)
	}
}
