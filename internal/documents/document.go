package documents

import (
	"fmt"
	"strings"
)

// Document is an immutable snapshot of a text document open in the client.
// Edits produce a new snapshot, so a *Document handed to the conversion
// worker never changes underneath it.
type Document struct {
	uri        string
	languageID string
	content    string
	version    int
	lines      []string
}

// NewDocument creates a new document snapshot
func NewDocument(uri, languageID string, version int, content string) *Document {
	return &Document{
		uri:        uri,
		languageID: languageID,
		version:    version,
		content:    content,
		lines:      strings.Split(content, "\n"),
	}
}

// URI returns the document's URI
func (d *Document) URI() string {
	return d.uri
}

// LanguageID returns the document's language identifier
func (d *Document) LanguageID() string {
	return d.languageID
}

// Version returns the document's version
func (d *Document) Version() int {
	return d.version
}

// Content returns the document's full text
func (d *Document) Content() string {
	return d.content
}

// LineCount returns the number of lines, counting a trailing empty line
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the text of line n without its terminator ("\n" or "\r\n")
func (d *Document) Line(n int) (string, error) {
	if n < 0 || n >= len(d.lines) {
		return "", fmt.Errorf("line %d out of range (document has %d lines)", n, len(d.lines))
	}
	return strings.TrimSuffix(d.lines[n], "\r"), nil
}

// WithContent returns a new snapshot holding content at version.
// Returns an error if version is older than the current one, so stale updates
// cannot overwrite newer text.
func (d *Document) WithContent(content string, version int) (*Document, error) {
	if version < d.version {
		return nil, fmt.Errorf("rejected stale update: document version is %d but update version is %d", d.version, version)
	}
	return NewDocument(d.uri, d.languageID, version, content), nil
}
