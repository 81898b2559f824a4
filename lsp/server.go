package lsp

import (
	"context"
	"sync"
	"time"

	"bennypowers.dev/tickify/internal/documents"
	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/internal/pipeline"
	"bennypowers.dev/tickify/lsp/methods/lifecycle"
	"bennypowers.dev/tickify/lsp/methods/textDocument"
	codeaction "bennypowers.dev/tickify/lsp/methods/textDocument/codeAction"
	"bennypowers.dev/tickify/lsp/methods/workspace"
	"bennypowers.dev/tickify/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Name is the server name reported to clients
const Name = "tickify"

// closeTimeout bounds how long Close waits for queued conversions
const closeTimeout = 2 * time.Second

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server is the tickify language server. It keeps open documents in sync and
// rewrites quoted literals into template literals as placeholders are typed.
type Server struct {
	documents  *documents.Manager
	processor  *pipeline.Processor
	sink       log.Sink
	handler    *CustomHandler
	glspServer *server.Server

	context        *glsp.Context
	rootURI        string                 // Workspace root URI
	rootPath       string                 // Workspace root path (file system)
	clientName     string                 // Client name from initialize
	config         types.ServerConfig     // Effective configuration
	commandLine    *types.ConfigOverlay   // CLI flags, below the workspace files
	fileLayers     []*types.ConfigOverlay // package.json and .tickify.yaml, lowest first
	clientSettings *types.ConfigOverlay   // initializationOptions / didChangeConfiguration
	configMu       sync.RWMutex           // Protects the fields above

	queue   *pipeline.Queue
	queueMu sync.Mutex
}

// NewServer creates a new tickify LSP server
func NewServer() (*Server, error) {
	s := &Server{
		documents: documents.NewManager(),
		config:    types.DefaultConfig(),
	}
	s.sink = log.Tee(
		log.StderrSink{Level: log.LevelInfo},
		workspace.ClientSink(s.GLSPContext),
	)
	s.processor = pipeline.NewProcessor(editorHost{s}, s.sink, s.config.ParsedStrategy())

	// Create the GLSP server with our handlers wrapped with middleware
	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceExecuteCommand:         method(s, "workspace/executeCommand", workspace.ExecuteCommand),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentCodeAction:          method(s, "textDocument/codeAction", codeaction.CodeAction),
	}

	// CustomHandler adds the tickify/convert request, which protocol.Handler
	// has no field for
	s.handler = &CustomHandler{
		Handler: &protocolHandler,
		server:  s,
	}

	s.glspServer = server.NewServer(s.handler, Name, false)

	return s, nil
}

// Handler returns the message dispatcher the transport feeds, for driving
// the server without a connection
func (s *Server) Handler() glsp.Handler {
	return s.handler
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// RunTCP starts the LSP server listening on address
func (s *Server) RunTCP(address string) error {
	return s.glspServer.RunTCP(address)
}

// Close drains the conversion queue. It is safe to call Close multiple times.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return s.CloseQueue(ctx)
}

// ServerContext interface implementation

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// ClientName returns the name the client reported at initialize
func (s *Server) ClientName() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.clientName
}

// SetClientName records the client's name
func (s *Server) SetClientName(name string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.clientName = name
}

// GLSPContext returns the GLSP context.
// Access is protected by configMu; the queue worker reads it concurrently.
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}

// Processor returns the conversion processor
func (s *Server) Processor() *pipeline.Processor {
	return s.processor
}

// Sink returns the diagnostic sink shared by the processor and handlers
func (s *Server) Sink() log.Sink {
	return s.sink
}

// StartQueue starts the conversion worker, sized from the current
// configuration. Later calls are no-ops.
func (s *Server) StartQueue() {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	if s.queue != nil {
		return
	}
	s.queue = pipeline.NewQueue(s.processor, s.GetConfig().QueueSize)
	s.queue.OnOutcome = logOutcome
	s.queue.Start()
}

// Submit queues a conversion. It returns false if the queue is not running
// or is full.
func (s *Server) Submit(ev pipeline.Event) bool {
	s.queueMu.Lock()
	queue := s.queue
	s.queueMu.Unlock()
	if queue == nil {
		log.Debug("Conversion queue not started, ignoring edit at %s:%d", ev.URI, ev.Line)
		return false
	}
	return queue.Submit(ev)
}

// CloseQueue stops the conversion worker after queued events finish
func (s *Server) CloseQueue(ctx context.Context) error {
	s.queueMu.Lock()
	queue := s.queue
	s.queueMu.Unlock()
	if queue == nil {
		return nil
	}
	return queue.Close(ctx)
}

func logOutcome(outcome pipeline.Outcome, err error) {
	switch {
	case err != nil:
		// already logged by the queue
	case outcome.Skipped != "":
		log.Debug("Skipped %s:%d: %s", outcome.Event.URI, outcome.Event.Line, outcome.Skipped)
	case outcome.Applied:
		log.Debug("Converted %s:%d", outcome.Event.URI, outcome.Event.Line)
	}
}
