// Package lsp serves search recipe results as diagnostics over the Language
// Server Protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/recast/java"
	"github.com/dhamidi/recast/java/parser"
	"github.com/dhamidi/recast/project"
	"github.com/dhamidi/recast/rewrite"
)

const lsName = "recast"

// Server runs a fixed list of recipes over every opened document and
// publishes one diagnostic per node they find. Documents are never edited.
type Server struct {
	handler  protocol.Handler
	server   *server.Server
	version  string
	recipes  []rewrite.Recipe
	pipeline *rewrite.Pipeline
	classes  java.ClassSource

	mu   sync.Mutex
	docs map[protocol.DocumentUri]string
}

type Option func(*Server)

// WithClasses resolves library types in Java documents from classes.
func WithClasses(classes java.ClassSource) Option {
	return func(s *Server) {
		s.classes = classes
	}
}

func NewServer(version string, recipes []rewrite.Recipe, pipeline *rewrite.Pipeline, opts ...Option) *Server {
	if pipeline == nil {
		pipeline = rewrite.NewPipeline()
	}
	s := &Server{
		version:  version,
		recipes:  recipes,
		pipeline: pipeline,
		docs:     make(map[protocol.DocumentUri]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
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
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
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
	log.Infof("serving %d recipes", len(s.recipes))
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	publish(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	s.mu.Lock()
	text, ok := s.docs[params.TextDocument.URI]
	s.mu.Unlock()
	if ok {
		s.update(ctx, params.TextDocument.URI, text)
	}
	return nil
}

func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()

	path, err := uriToPath(uri)
	if err != nil {
		log.Warning("unusable document uri", "uri", uri, "error", err.Error())
		return
	}
	if project.KindOf(path) == project.KindUnknown {
		return
	}
	publish(ctx, uri, s.Diagnostics(path, text))
}

// Diagnostics runs the server's recipes over text and describes what they
// found. A document that does not parse yields a single error diagnostic.
func (s *Server) Diagnostics(path, text string) []protocol.Diagnostic {
	unit := project.ParseWith(s.classes, []parser.Source{{Path: path, Text: text}})[0]
	if unit.Err != nil {
		return []protocol.Diagnostic{parseDiagnostic(text, unit.Err)}
	}

	res := s.pipeline.Run(unit.Source, s.recipes...)
	if res.Err != nil {
		log.Error("recipes failed", "path", path, "error", res.Err.Error())
		return []protocol.Diagnostic{}
	}

	diagnostics := []protocol.Diagnostic{}
	for _, loc := range rewrite.Locate(res.Fixed) {
		message := loc.Description
		if message == "" {
			message = "found by " + recipeNames(res)
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(text, loc.Line, loc.Column),
			Severity: severityPtr(protocol.DiagnosticSeverityInformation),
			Source:   strPtr(lsName),
			Message:  message,
		})
	}
	return diagnostics
}

func recipeNames(res *rewrite.Result) string {
	var names []string
	for _, o := range res.Outcomes {
		if len(o.Found) > 0 {
			names = append(names, o.Recipe)
		}
	}
	return strings.Join(names, ", ")
}

func parseDiagnostic(text string, err error) protocol.Diagnostic {
	line, col := 1, 1
	if pe, ok := err.(*rewrite.ParseError); ok && pe.Line > 0 {
		line, col = pe.Line, max(pe.Column, 1)
	}
	return protocol.Diagnostic{
		Range:    lineRange(text, line, col),
		Severity: severityPtr(protocol.DiagnosticSeverityError),
		Source:   strPtr(lsName),
		Message:  err.Error(),
	}
}

// lineRange spans from the 1-based byte column on line to the end of that
// line, in UTF-16 code units.
func lineRange(text string, line, col int) protocol.Range {
	lines := strings.Split(text, "\n")
	content := ""
	if line-1 < len(lines) {
		content = strings.TrimSuffix(lines[line-1], "\r")
	}
	start := min(col-1, len(content))
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line - 1), Character: utf16Len(content[:start])},
		End:   protocol.Position{Line: protocol.UInteger(line - 1), Character: utf16Len(content)},
	}
}

func utf16Len(s string) protocol.UInteger {
	return protocol.UInteger(len(utf16.Encode([]rune(s))))
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
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

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
