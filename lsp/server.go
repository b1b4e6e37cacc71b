// Package lsp serves C++ header outlines over the language server
// protocol. It answers textDocument/documentSymbol requests with the
// declaration tree of the open header.
package lsp

import (
	"bytes"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/cxxtool/cxxhdr"
	"github.com/cxxtool/cxxhdr/config"
	"github.com/cxxtool/cxxhdr/cxx"
)

const lsName = "cxxhdr"

type Server struct {
	cfg     *config.Config
	handler protocol.Handler
	server  *server.Server
	version string

	docs map[string]*document
}

type document struct {
	content []byte
	header  *cxx.Header
}

func NewServer(cfg *config.Config, version string) *Server {
	s := &Server{
		cfg:     cfg,
		version: version,
		docs:    make(map[string]*document),
	}

	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentDidSave:        s.textDocumentDidSave,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) servesPath(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range s.cfg.LSP.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (s *Server) updateDocument(path string, content []byte) {
	doc := &document{content: content}
	header, err := cxxhdr.Parse(bytes.NewReader(content))
	if err == nil {
		doc.header = header
	}
	s.docs[path] = doc
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil || !s.servesPath(path) {
		return nil
	}
	s.updateDocument(path, []byte(params.TextDocument.Text))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil || !s.servesPath(path) {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.updateDocument(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	delete(s.docs, path)
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil || !s.servesPath(path) {
		return nil
	}
	if params.Text != nil {
		s.updateDocument(path, []byte(*params.Text))
	} else if content, err := os.ReadFile(path); err == nil {
		s.updateDocument(path, content)
	}
	return nil
}

func (s *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	doc, ok := s.docs[path]
	if !ok || doc.header == nil {
		return nil, nil
	}

	loc := newLocator(doc.content)
	return headerSymbols(doc.header, loc), nil
}

// locator finds declaration names in the document text so that
// symbols can be reported with a usable range. The declaration model
// carries no positions; a forward line scan recovers them, relying on
// declarations appearing in source order.
type locator struct {
	lines    []string
	nextLine int
}

func newLocator(content []byte) *locator {
	return &locator{lines: strings.Split(string(content), "\n")}
}

func (l *locator) rangeOf(name string) protocol.Range {
	if short := name[strings.LastIndex(name, ":")+1:]; short != "" {
		name = short
	}
	for i := l.nextLine; i < len(l.lines); i++ {
		col := strings.Index(l.lines[i], name)
		if col < 0 {
			continue
		}
		l.nextLine = i
		return protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(i), Character: protocol.UInteger(col)},
			End:   protocol.Position{Line: protocol.UInteger(i), Character: protocol.UInteger(col + len(name))},
		}
	}
	return protocol.Range{}
}

func headerSymbols(header *cxx.Header, loc *locator) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	for _, e := range header.Enums {
		symbols = append(symbols, enumSymbol(e, loc))
	}
	for _, c := range header.Classes {
		symbols = append(symbols, classSymbol(c, loc))
	}
	for _, t := range header.Typedefs {
		symbols = append(symbols, newSymbol(t.Name, t.Type, protocol.SymbolKindClass, loc))
	}
	for _, u := range header.Usings {
		symbols = append(symbols, newSymbol(u.Name, u.Type, protocol.SymbolKindClass, loc))
	}
	for _, f := range header.Functions {
		symbols = append(symbols, newSymbol(f.Name, functionDetail(f.ReturnType, f.Parameters), protocol.SymbolKindFunction, loc))
	}
	for _, v := range header.Variables {
		symbols = append(symbols, newSymbol(v.Name, v.Type, protocol.SymbolKindVariable, loc))
	}
	return symbols
}

func classSymbol(c *cxx.ClassDecl, loc *locator) protocol.DocumentSymbol {
	kind := protocol.SymbolKindClass
	if c.Kind == cxx.ClassKindStruct || c.Kind == cxx.ClassKindUnion {
		kind = protocol.SymbolKindStruct
	}
	sym := newSymbol(c.Name, string(c.Kind), kind, loc)

	for _, e := range c.Enums {
		sym.Children = append(sym.Children, enumSymbol(e, loc))
	}
	for _, nested := range c.Classes {
		sym.Children = append(sym.Children, classSymbol(nested, loc))
	}
	for _, f := range c.Fields {
		sym.Children = append(sym.Children, newSymbol(f.Name, f.Type, protocol.SymbolKindField, loc))
	}
	for _, m := range c.Methods {
		kind := protocol.SymbolKindMethod
		if m.Constructor || m.Destructor {
			kind = protocol.SymbolKindConstructor
		}
		sym.Children = append(sym.Children, newSymbol(m.Name, functionDetail(m.ReturnType, m.Parameters), kind, loc))
	}
	return sym
}

func enumSymbol(e cxx.EnumDecl, loc *locator) protocol.DocumentSymbol {
	sym := newSymbol(e.Name, e.Base, protocol.SymbolKindEnum, loc)
	for _, v := range e.Values {
		sym.Children = append(sym.Children, newSymbol(v.Name, v.Value, protocol.SymbolKindEnumMember, loc))
	}
	return sym
}

func newSymbol(name, detail string, kind protocol.SymbolKind, loc *locator) protocol.DocumentSymbol {
	if name == "" {
		name = "(anonymous)"
	}
	r := loc.rangeOf(name)
	sym := protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
	}
	if detail != "" {
		sym.Detail = &detail
	}
	return sym
}

func functionDetail(returnType string, params []cxx.Parameter) string {
	var b strings.Builder
	b.WriteString("(")
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type)
	}
	b.WriteString(")")
	if returnType != "" {
		b.WriteString(" ")
		b.WriteString(returnType)
	}
	return b.String()
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

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
