package types

import (
	"context"

	"bennypowers.dev/tickify/internal/documents"
	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/internal/pipeline"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers.
// Handlers depend on this interface rather than on the server so tests can
// substitute a mock.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)
	ClientName() string
	SetClientName(name string)

	// Configuration
	GetConfig() ServerConfig
	SetConfig(config ServerConfig)
	SetClientSettings(overlay *ConfigOverlay)
	LoadWorkspaceConfig() error

	// ShouldProcess reports whether automatic conversion applies to a
	// document: enabled, a configured language, not excluded
	ShouldProcess(uri, languageID string) bool

	// Conversion pipeline
	Processor() *pipeline.Processor
	Submit(ev pipeline.Event) bool
	StartQueue()
	CloseQueue(ctx context.Context) error

	// Sink receives the pipeline's diagnostic lines
	Sink() log.Sink

	// LSP context (for applyEdit, logMessage, etc.)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)
}
