package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"hilite/internal/langdef"
	"hilite/internal/registry"
	"hilite/internal/trace"
	"hilite/internal/version"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	// Registry provides definitions; registry.Default() when nil.
	Registry *registry.Registry
	Tracer   trace.Tracer
	// NoCompletion starts the server with completion switched off. Clients
	// can turn it back on with the hilite.autocompletion setting.
	NoCompletion bool
	// Log receives human-readable server logs; stderr when nil.
	Log io.Writer
}

type document struct {
	text    string
	version int
	// lang is the definition id chosen when the document was opened.
	lang string
}

// Server handles stdio JSON-RPC for the hilite language server.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex
	mu     sync.Mutex
	docs   map[string]*document

	reg               *registry.Registry
	tracer            trace.Tracer
	log               io.Writer
	legend            *legend
	completion        bool
	traceLSP          bool
	shutdownRequested bool
	requestSeq        atomic.Int64
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	logOut := opts.Log
	if logOut == nil {
		logOut = os.Stderr
	}
	return &Server{
		in:         bufio.NewReader(in),
		out:        bufio.NewWriter(out),
		docs:       make(map[string]*document),
		reg:        reg,
		tracer:     tracer,
		log:        logOut,
		completion: !opts.NoCompletion,
	}
}

// Run serves LSP requests until the client exits. A clean end of input is
// not an error. ctx is checked between messages.
func (s *Server) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			// ответы клиента на наши запросы (semanticTokens/refresh)
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	span := trace.Begin(s.tracer, trace.ScopeCommand, "lsp:"+msg.Method, 0)
	defer span.End("")

	s.mu.Lock()
	down := s.shutdownRequested
	s.mu.Unlock()
	if down && msg.Method != "exit" {
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeInvalidRequest, "server is shutting down")
		}
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		if down {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/semanticTokens/full":
		return s.handleSemanticTokens(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	if params.ClientInfo != nil {
		trace.Point(s.tracer, trace.ScopeCommand, "client", params.ClientInfo.Name+" "+params.ClientInfo.Version)
	}
	// настройки могут прийти сразу в initializationOptions
	s.applySettings(params.InitializationOptions)

	lg := buildLegend(s.reg)
	s.mu.Lock()
	s.legend = lg
	s.mu.Unlock()

	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    2,
			},
			CompletionProvider: &completionOptions{
				TriggerCharacters: []string{"."},
			},
			SemanticTokensProvider: &semanticTokensOptions{
				Legend: lg.wire(),
				Full:   true,
			},
		},
		ServerInfo: serverInfo{Name: "hilite", Version: version.Version},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	clear(s.docs)
	s.mu.Unlock()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return fmt.Errorf("didOpen: %w", err)
	}
	uri := params.TextDocument.URI
	if uri == "" {
		return nil
	}
	def := s.pickDefinition(params.TextDocument.LanguageID, uri)
	doc := &document{
		text:    params.TextDocument.Text,
		version: params.TextDocument.Version,
	}
	if def != nil {
		doc.lang = def.ID()
	}
	s.mu.Lock()
	s.docs[uri] = doc
	verbose := s.traceLSP
	s.mu.Unlock()
	if verbose {
		s.logf("didOpen: uri=%s lang=%s version=%d", uri, doc.lang, doc.version)
	}
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return fmt.Errorf("didChange: %w", err)
	}
	uri := params.TextDocument.URI
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if ok {
		doc.text = applyChanges(doc.text, params.ContentChanges)
		doc.version = params.TextDocument.Version
	}
	verbose := s.traceLSP
	s.mu.Unlock()
	if !ok {
		s.logf("didChange for unknown document %s", uri)
		return nil
	}
	if verbose {
		s.logf("didChange: uri=%s version=%d changes=%d", uri, params.TextDocument.Version, len(params.ContentChanges))
	}
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return fmt.Errorf("didClose: %w", err)
	}
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

// pickDefinition prefers a definition whose id equals the client's language
// id and otherwise detects one from the document path.
func (s *Server) pickDefinition(languageID, uri string) *langdef.Definition {
	if languageID != "" {
		if def, ok := s.reg.Get(languageID); ok {
			return def
		}
	}
	path := uriToPath(uri)
	if path == "" {
		path = uri
	}
	def, _ := s.reg.Detect(path)
	return def
}

// snapshot returns a copy of the document together with its current
// definition. Definitions are looked up per request so hot reloads apply to
// open documents.
func (s *Server) snapshot(uri string) (document, *langdef.Definition, bool) {
	s.mu.Lock()
	doc, ok := s.docs[uri]
	var cp document
	if ok {
		cp = *doc
	}
	s.mu.Unlock()
	if !ok {
		return document{}, nil, false
	}
	def, found := s.reg.Get(cp.lang)
	if !found {
		def = s.pickDefinition("", uri)
	}
	return cp, def, def != nil
}

// Refresh asks the client to re-request semantic tokens, e.g. after
// definitions were reloaded from disk.
func (s *Server) Refresh() error {
	id := s.requestSeq.Add(1)
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  "workspace/semanticTokens/refresh",
	}
	return s.send(msg)
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.log, "lsp: "+format+"\n", args...)
}
