package documents

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/tickify/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ErrNotFound is returned for operations on a document that is not open
var ErrNotFound = errors.New("document not found")

// Manager tracks the documents the client has open
type Manager struct {
	documents map[string]*Document
	mu        sync.RWMutex
}

// NewManager creates a new document manager
func NewManager() *Manager {
	return &Manager{
		documents: make(map[string]*Document),
	}
}

// Get returns the current snapshot of a document, or nil
func (m *Manager) Get(uri string) *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.documents[uri]
}

// GetAll returns the current snapshots of all open documents
func (m *Manager) GetAll() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs
}

// LineText returns the text of one line of an open document along with the
// document version it was read from
func (m *Manager) LineText(uri string, line int) (string, int, error) {
	doc := m.Get(uri)
	if doc == nil {
		return "", 0, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}
	text, err := doc.Line(line)
	if err != nil {
		return "", 0, err
	}
	return text, doc.Version(), nil
}

// DidOpen handles the textDocument/didOpen notification
func (m *Manager) DidOpen(uri, languageID string, version int, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.documents[uri] = NewDocument(uri, languageID, version, content)
	return nil
}

// DidClose handles the textDocument/didClose notification
func (m *Manager) DidClose(uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.documents[uri]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, uri)
	}

	delete(m.documents, uri)
	return nil
}

// DidChange handles the textDocument/didChange notification.
// A change without a Range replaces the whole document.
func (m *Manager) DidChange(uri string, version int, changes []protocol.TextDocumentContentChangeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, exists := m.documents[uri]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, uri)
	}

	content := doc.Content()
	for _, change := range changes {
		if change.Range == nil {
			content = change.Text
			continue
		}
		next, err := applyIncrementalChange(content, *change.Range, change.Text)
		if err != nil {
			return fmt.Errorf("failed to apply changes: %w", err)
		}
		content = next
	}

	updated, err := doc.WithContent(content, version)
	if err != nil {
		return fmt.Errorf("failed to set document content: %w", err)
	}
	m.documents[uri] = updated
	return nil
}

// applyIncrementalChange replaces the range r of content with text.
// LSP ranges are expressed in UTF-16 code units and converted to bytes here.
func applyIncrementalChange(content string, r protocol.Range, text string) (string, error) {
	lines := strings.Split(content, "\n")

	startLine, endLine := int(r.Start.Line), int(r.End.Line)
	if startLine > endLine || (startLine == endLine && r.Start.Character > r.End.Character) {
		return "", fmt.Errorf("inverted range %d:%d-%d:%d", startLine, r.Start.Character, endLine, r.End.Character)
	}
	if endLine > len(lines) {
		return "", fmt.Errorf("end line %d out of bounds (total lines: %d)", endLine, len(lines))
	}

	// a range starting one past the last line is an append at EOF
	if startLine == len(lines) {
		return content + text, nil
	}

	start := lineOffset(lines, startLine) + position.UTF16ToByteOffset(lines[startLine], int(r.Start.Character))
	var end int
	if endLine == len(lines) {
		end = len(content)
	} else {
		end = lineOffset(lines, endLine) + position.UTF16ToByteOffset(lines[endLine], int(r.End.Character))
	}

	return content[:start] + text + content[end:], nil
}

// lineOffset returns the byte offset at which line n begins
func lineOffset(lines []string, n int) int {
	offset := 0
	for i := 0; i < n; i++ {
		offset += len(lines[i]) + 1
	}
	return offset
}
