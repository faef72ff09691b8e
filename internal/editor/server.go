// Package editor exposes probe registration to editors over the Language
// Server Protocol.
package editor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"streamlens.dev/pkg/streamlens/internal/adapter"
	"streamlens.dev/pkg/streamlens/internal/domain"
	m "streamlens.dev/pkg/streamlens/internal/model"
	"streamlens.dev/pkg/streamlens/internal/position"

	_ "github.com/tliron/commonlog/simple"
)

const serverName = "streamlens-lsp"

// CommandRegister registers a probe point. Arguments: file, line, column
// in the static encoding.
const CommandRegister = "streamlens.register"

// ErrBadArguments is returned for malformed executeCommand arguments.
var ErrBadArguments = errors.New("bad command arguments")

var log = commonlog.GetLogger("streamlens.lsp")

// Server bridges LSP requests to the locator and the probe store.
type Server struct {
	syntax  adapter.SyntaxAdapter
	locator domain.Locator
	store   adapter.ProbeStore
	probes  m.Path

	mu   sync.Mutex
	docs map[string]string // URI -> full document content

	// publishMu keeps diagnostics in the order the document changed.
	publishMu sync.Mutex

	handler protocol.Handler
	server  *glspserver.Server
	version string
}

// NewServer creates a language server that registers probes into the
// probe store at probes.
func NewServer(
	syntax adapter.SyntaxAdapter,
	locator domain.Locator,
	store adapter.ProbeStore,
	probes m.Path,
	version string,
) *Server {
	s := &Server{
		syntax:  syntax,
		locator: locator,
		store:   store,
		probes:  probes,
		docs:    make(map[string]string),
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentCodeAction:  s.textDocumentCodeAction,
		TextDocumentCodeLens:    s.textDocumentCodeLens,
		TextDocumentHover:       s.textDocumentHover,
		WorkspaceExecuteCommand: s.workspaceExecuteCommand,
	}

	s.server = glspserver.NewServer(&s.handler, serverName, false)

	return s
}

// RunStdio serves on stdin/stdout until the client disconnects.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	log.Infof("%s %s initializing", serverName, s.version)

	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.CodeActionProvider = &protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindRefactor},
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{CommandRegister},
	}
	capabilities.CodeLensProvider = &protocol.CodeLensOptions{ResolveProvider: boolPtr(false)}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.setDocument(params.TextDocument.URI, params.TextDocument.Text)
	s.publishProbes(ctx, params.TextDocument.URI)

	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	// Full sync: the last change carries the whole text.
	last := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := last.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.setDocument(params.TextDocument.URI, whole.Text)
		s.publishProbes(ctx, params.TextDocument.URI)
	}

	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	delete(s.docs, string(params.TextDocument.URI))
	s.mu.Unlock()

	notify(ctx, protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})

	return nil
}

func (s *Server) textDocumentCodeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	candidate, ok := s.candidateAt(params.TextDocument.URI, params.Range.Start, &params.Range.End)
	if !ok {
		return nil, nil
	}

	kind := protocol.CodeActionKindRefactor
	loc := candidate.Location

	return []protocol.CodeAction{{
		Title: fmt.Sprintf("Probe %s", candidate.Name),
		Kind:  &kind,
		Command: &protocol.Command{
			Title:     fmt.Sprintf("Probe %s", candidate.Name),
			Command:   CommandRegister,
			Arguments: []any{loc.File, loc.Line, loc.Column},
		},
	}}, nil
}

// textDocumentCodeLens puts a lens above every allowed operator call.
func (s *Server) textDocumentCodeLens(_ *glsp.Context, params *protocol.CodeLensParams) ([]protocol.CodeLens, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	file := uriToPath(string(params.TextDocument.URI))

	root, err := s.syntax.Parse(context.Background(), file, []byte(text))
	if err != nil {
		log.Debugf("parse %s: %s", file, err)
		return nil, nil
	}

	registered, err := s.registered()
	if err != nil {
		log.Warningf("code lens: %s", err)
		return nil, nil
	}

	candidates := s.locator.Candidates(file, text, root)
	lenses := make([]protocol.CodeLens, 0, len(candidates))

	for _, candidate := range candidates {
		title := fmt.Sprintf("Probe %s", candidate.Name)
		if registered.Contains(candidate.Location) {
			title = fmt.Sprintf("%s probed", candidate.Name)
		}

		loc := candidate.Location
		lenses = append(lenses, protocol.CodeLens{
			Range: protocol.Range{Start: lspPosition(text, candidate.Start), End: lspPosition(text, candidate.End)},
			Command: &protocol.Command{
				Title:     title,
				Command:   CommandRegister,
				Arguments: []any{loc.File, loc.Line, loc.Column},
			},
		})
	}

	return lenses, nil
}

func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	candidate, ok := s.candidateAt(params.TextDocument.URI, params.Position, nil)
	if !ok {
		return nil, nil
	}

	registered, err := s.registered()
	if err != nil {
		log.Warningf("hover: %s", err)
		return nil, nil
	}

	status := "not probed"
	if registered.Contains(candidate.Location) {
		status = "probed"
	}

	text, _ := s.document(params.TextDocument.URI)
	start := lspPosition(text, candidate.Start)
	end := lspPosition(text, candidate.End)

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("**%s** is %s at `%s`", candidate.Name, status, candidate.Location),
		},
		Range: &protocol.Range{Start: start, End: end},
	}, nil
}

func (s *Server) workspaceExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	if params.Command != CommandRegister {
		return nil, fmt.Errorf("unknown command %q", params.Command)
	}

	point, err := registerArguments(params.Arguments)
	if err != nil {
		return nil, err
	}

	added, err := domain.RegisterPoint(context.Background(), s.store, s.probes, point)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Registered probe %s", point)
	if !added {
		message = fmt.Sprintf("Probe %s is already registered", point)
	}

	notify(ctx, protocol.ServerWindowShowMessage, protocol.ShowMessageParams{
		Type:    protocol.MessageTypeInfo,
		Message: message,
	})

	if uri, ok := s.documentFor(point.File); ok {
		s.publishProbes(ctx, uri)
	}

	return added, nil
}

// candidateAt locates the operator at start. end is the selection end, if any.
func (s *Server) candidateAt(uri protocol.DocumentUri, start protocol.Position, end *protocol.Position) (m.Candidate, bool) {
	text, ok := s.document(uri)
	if !ok {
		return m.Candidate{}, false
	}

	file := uriToPath(string(uri))

	root, err := s.syntax.Parse(context.Background(), file, []byte(text))
	if err != nil {
		log.Debugf("parse %s: %s", file, err)
		return m.Candidate{}, false
	}

	from, err := byteOffset(text, start)
	if err != nil {
		return m.Candidate{}, false
	}

	if end == nil {
		return s.locator.Locate(file, text, root, from)
	}

	to, err := byteOffset(text, *end)
	if err != nil {
		to = from
	}

	return s.locator.LocateRange(file, text, root, from, to)
}

// publishProbes marks the registered probe points of a document with hints.
func (s *Server) publishProbes(ctx *glsp.Context, uri protocol.DocumentUri) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	text, ok := s.document(uri)
	if !ok {
		return
	}

	registered, err := s.registered()
	if err != nil {
		log.Warningf("load probes: %s", err)
		return
	}

	file := uriToPath(string(uri))
	severity := protocol.DiagnosticSeverityHint
	source := serverName
	diagnostics := []protocol.Diagnostic{}

	for _, point := range registered.Points() {
		if point.File != file {
			continue
		}

		offset, err := position.PositionToOffset(text, point.Line, point.Column)
		if err != nil {
			continue
		}

		at := lspPosition(text, offset)
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: at, End: at},
			Severity: &severity,
			Source:   &source,
			Message:  "probe registered",
		})
	}

	notify(ctx, protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (s *Server) registered() (*domain.Registry, error) {
	points, err := s.store.LoadProbes(s.probes)
	if err != nil {
		return nil, err
	}

	return domain.NewRegistry(points...), nil
}

func (s *Server) setDocument(uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[string(uri)] = text
}

func (s *Server) document(uri protocol.DocumentUri) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, ok := s.docs[string(uri)]

	return text, ok
}

func (s *Server) documentFor(file string) (protocol.DocumentUri, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for uri := range s.docs {
		if uriToPath(uri) == file {
			return protocol.DocumentUri(uri), true
		}
	}

	return "", false
}

// registerArguments decodes [file, line, column]. JSON numbers arrive as
// float64.
func registerArguments(args []any) (m.Location, error) {
	if len(args) != 3 {
		return m.Location{}, fmt.Errorf("%w: want [file, line, column], got %d values", ErrBadArguments, len(args))
	}

	file, ok := args[0].(string)
	if !ok || file == "" {
		return m.Location{}, fmt.Errorf("%w: file must be a non-empty string", ErrBadArguments)
	}

	line, err := intArgument("line", args[1])
	if err != nil {
		return m.Location{}, err
	}

	column, err := intArgument("column", args[2])
	if err != nil {
		return m.Location{}, err
	}

	return m.Location{File: uriToPath(file), Line: line, Column: column}, nil
}

func intArgument(name string, value any) (int, error) {
	var n float64

	switch v := value.(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrBadArguments, name, value)
	}

	if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %v", ErrBadArguments, name, value)
	}

	return int(n), nil
}

// uriToPath turns a file:// URI into a path. Other strings are returned
// unchanged.
func uriToPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	return filepath.FromSlash(parsed.Path)
}

// byteOffset converts an LSP position (UTF-16 columns) to a byte offset.
func byteOffset(text string, pos protocol.Position) (int, error) {
	lineStart, err := position.PositionToOffset(text, int(pos.Line), 0)
	if err != nil {
		return 0, err
	}

	offset := lineStart
	units := 0

	for offset < len(text) && units < int(pos.Character) {
		r, size := utf8.DecodeRuneInString(text[offset:])
		if r == '\n' || r == '\r' {
			break
		}

		units += utf16.RuneLen(r)
		offset += size
	}

	return offset, nil
}

// lspPosition converts a byte offset to an LSP position.
func lspPosition(text string, offset int) protocol.Position {
	pos, err := position.OffsetToPosition(text, offset)
	if err != nil {
		return protocol.Position{}
	}

	lineStart := offset - pos.Column
	units := 0

	for _, r := range text[lineStart:offset] {
		units += utf16.RuneLen(r)
	}

	return protocol.Position{
		Line:      protocol.UInteger(pos.Line), //nolint:gosec
		Character: protocol.UInteger(units),
	}
}

// notify sends a notification before the handler returns, so the client
// sees notifications in the order the handlers produced them.
func notify(ctx *glsp.Context, method string, params any) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	ctx.Notify(method, params)
}

func boolPtr(b bool) *bool {
	return &b
}
