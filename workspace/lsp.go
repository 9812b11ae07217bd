package workspace

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/tinyjs/js/parser"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "tinyjs"

// LSPServer reports parse diagnostics and outline symbols for the
// documents an editor opens.
type LSPServer struct {
	workspace  *Workspace
	extensions []string
	handler    protocol.Handler
	server     *server.Server
	version    string
}

func NewLSPServer(version string, extensions ...string) *LSPServer {
	ls := &LSPServer{
		version:    version,
		extensions: extensions,
		workspace:  New(".", extensions...),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = New(rootDir, ls.extensions...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

// initialized parses the whole workspace and reports every file that
// does not parse.
func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.ScanAll(); err != nil {
		log.Warningf("scan %s: %s", ls.workspace.RootDir(), err)
	}
	for _, file := range ls.workspace.Errors() {
		ls.publish(ctx, pathToURI(file.Path), file)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
		return nil
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	file, err := ls.workspace.ScanFile(path)
	if err != nil {
		log.Warningf("save %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, file)
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	file := ls.workspace.GetFile(path)
	if file == nil {
		return nil, nil
	}
	return DocumentSymbols(file), nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) {
	path, err := uriToPath(uri)
	if err != nil {
		return
	}
	ls.publish(ctx, uri, ls.workspace.UpdateFile(path, content))
}

// publish always sends a notification so that a fixed file clears the
// diagnostics of its previous version.
func (ls *LSPServer) publish(ctx *glsp.Context, uri protocol.DocumentUri, file *File) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnostics(file),
	})
}

// Diagnostics converts a file's parse error into LSP diagnostics. A file
// that parsed yields an empty, non-nil slice.
func Diagnostics(file *File) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if file == nil || file.Err == nil {
		return diagnostics
	}

	d, ok := parser.AsDiagnostic(file.Err)
	if !ok {
		return append(diagnostics, protocol.Diagnostic{
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   stringPtr(lsName),
			Message:  file.Err.Error(),
		})
	}

	width := len(d.Value())
	message := d.Error()
	if pe, ok := d.(*parser.ParseError); ok {
		if pe.Token.Kind == parser.TokenEOF {
			width = 0
		}
		if len(pe.Expected) > 0 {
			message += ", expected " + pe.ExpectedString()
		}
	}
	return append(diagnostics, protocol.Diagnostic{
		Range:    spanRange(d.Position(), width),
		Severity: severityPtr(protocol.DiagnosticSeverityError),
		Source:   stringPtr(lsName),
		Message:  message,
	})
}

// DocumentSymbols lists the top-level functions and variables of a file.
func DocumentSymbols(file *File) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	if file == nil || file.Program == nil {
		return symbols
	}
	for _, el := range file.Program.Elements {
		switch el := el.(type) {
		case *parser.FunctionDecl:
			params := make([]string, len(el.Params))
			for i, p := range el.Params {
				params[i] = p.Name
			}
			detail := "(" + strings.Join(params, ", ") + ")"
			selection := spanRange(el.Name.Start, len(el.Name.Name))
			symbols = append(symbols, protocol.DocumentSymbol{
				Name:           el.Name.Name,
				Detail:         &detail,
				Kind:           protocol.SymbolKindFunction,
				Range:          protocol.Range{Start: lspPosition(el.Start), End: selection.End},
				SelectionRange: selection,
			})
		case *parser.VarDecl:
			selection := spanRange(el.Name.Start, len(el.Name.Name))
			symbols = append(symbols, protocol.DocumentSymbol{
				Name:           el.Name.Name,
				Kind:           protocol.SymbolKindVariable,
				Range:          protocol.Range{Start: lspPosition(el.Start), End: selection.End},
				SelectionRange: selection,
			})
		}
	}
	return symbols
}

func lspPosition(pos parser.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(pos.Column - 1),
	}
}

func spanRange(pos parser.Position, width int) protocol.Range {
	start := lspPosition(pos)
	end := start
	end.Character += protocol.UInteger(width)
	return protocol.Range{Start: start, End: end}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func stringPtr(s string) *string {
	return &s
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
