package testutil

import (
	"context"
	"sync"

	"bennypowers.dev/tickify/internal/documents"
	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/internal/pipeline"
	"bennypowers.dev/tickify/lsp/types"
	"github.com/tliron/glsp"
)

// MockServerContext implements types.ServerContext for testing.
// It provides a minimal implementation with configurable behavior via callback functions.
// Submitted events are recorded instead of queued.
type MockServerContext struct {
	docs           *documents.Manager
	processor      *pipeline.Processor
	sink           *log.Lines
	rootURI        string
	rootPath       string
	clientName     string
	config         types.ServerConfig
	clientSettings *types.ConfigOverlay
	glspContext    *glsp.Context

	mu        sync.Mutex
	submitted []pipeline.Event

	// Optional callbacks for custom behavior in tests
	LoadWorkspaceConfigFunc func() error
	ShouldProcessFunc       func(uri, languageID string) bool
	SubmitFunc              func(pipeline.Event) bool

	// Tracking flags for tests that need to verify methods were called
	LoadWorkspaceConfigCalled bool
	QueueStarted              bool
	QueueClosed               bool
}

// NewMockServerContext creates a new mock server context with default behavior
func NewMockServerContext() *MockServerContext {
	m := &MockServerContext{
		docs:   documents.NewManager(),
		sink:   &log.Lines{},
		config: types.DefaultConfig(),
	}
	m.processor = pipeline.NewProcessor(documentHost{m.docs}, m.sink, pipeline.DefaultStrategy)
	return m
}

// documentHost reads lines from the mock's documents and never applies edits
type documentHost struct {
	docs *documents.Manager
}

func (h documentHost) LineText(uri string, line int) (string, int, error) {
	return h.docs.LineText(uri, line)
}

func (h documentHost) ApplyEdit(context.Context, pipeline.Edit) (bool, error) {
	return false, nil
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

// ClientName returns the client name recorded at initialize
func (m *MockServerContext) ClientName() string {
	return m.clientName
}

// SetClientName records the client name
func (m *MockServerContext) SetClientName(name string) {
	m.clientName = name
}

// GetConfig returns the server configuration
func (m *MockServerContext) GetConfig() types.ServerConfig {
	return m.config
}

// SetConfig sets the server configuration
func (m *MockServerContext) SetConfig(config types.ServerConfig) {
	m.config = config
	m.processor.SetStrategy(config.ParsedStrategy())
}

// SetClientSettings merges overlay onto the defaults
func (m *MockServerContext) SetClientSettings(overlay *types.ConfigOverlay) {
	m.clientSettings = overlay
	m.SetConfig(types.DefaultConfig().Merge(overlay))
}

// ClientSettings returns the last overlay passed to SetClientSettings
func (m *MockServerContext) ClientSettings() *types.ConfigOverlay {
	return m.clientSettings
}

// LoadWorkspaceConfig records the call
func (m *MockServerContext) LoadWorkspaceConfig() error {
	m.LoadWorkspaceConfigCalled = true
	if m.LoadWorkspaceConfigFunc != nil {
		return m.LoadWorkspaceConfigFunc()
	}
	return nil
}

// ShouldProcess applies the enabled flag and language filter
func (m *MockServerContext) ShouldProcess(uri, languageID string) bool {
	if m.ShouldProcessFunc != nil {
		return m.ShouldProcessFunc(uri, languageID)
	}
	return m.config.Enabled && m.config.HandlesLanguage(languageID)
}

// Processor returns a processor reading from the mock's documents
func (m *MockServerContext) Processor() *pipeline.Processor {
	return m.processor
}

// Submit records ev
func (m *MockServerContext) Submit(ev pipeline.Event) bool {
	m.mu.Lock()
	m.submitted = append(m.submitted, ev)
	m.mu.Unlock()
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ev)
	}
	return true
}

// Submitted returns every event passed to Submit
func (m *MockServerContext) Submitted() []pipeline.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]pipeline.Event(nil), m.submitted...)
}

// StartQueue records the call
func (m *MockServerContext) StartQueue() {
	m.QueueStarted = true
}

// CloseQueue records the call
func (m *MockServerContext) CloseQueue(context.Context) error {
	m.QueueClosed = true
	return nil
}

// Sink returns the sink handed to the processor
func (m *MockServerContext) Sink() log.Sink {
	return m.sink
}

// SinkLines returns every line appended to the sink
func (m *MockServerContext) SinkLines() []string {
	return m.sink.Lines()
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}
