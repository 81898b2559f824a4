package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"bennypowers.dev/tickify/internal/documents"
	"bennypowers.dev/tickify/internal/pipeline"
	"bennypowers.dev/tickify/internal/position"
	"bennypowers.dev/tickify/internal/uriutil"
	"bennypowers.dev/tickify/lsp/helpers"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var errNoConversion = errors.New("no conversion")

// documentHost applies edits to an in-memory copy of a file
type documentHost struct {
	docs *documents.Manager
}

func (h documentHost) LineText(uri string, line int) (string, int, error) {
	return h.docs.LineText(uri, line)
}

func (h documentHost) ApplyEdit(_ context.Context, edit pipeline.Edit) (bool, error) {
	doc := h.docs.Get(edit.URI)
	if doc == nil || doc.Version() != edit.Version {
		return false, nil
	}
	editRange := helpers.EditRange(edit)
	err := h.docs.DidChange(edit.URI, edit.Version+1, []protocol.TextDocumentContentChangeEvent{
		{Range: &editRange, Text: edit.NewText},
	})
	return err == nil, err
}

// convertFile converts the literal at a 1-based line and character column
// of path and returns the rewritten line. The file is not modified.
func convertFile(ctx context.Context, path string, line, column int, strategy pipeline.Strategy) (string, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return "", err
	}

	uri := uriutil.PathToURI(path)
	docs := documents.NewManager()
	if err := docs.DidOpen(uri, "", 1, string(content)); err != nil {
		return "", err
	}

	text, _, err := docs.LineText(uri, line-1)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if column < 1 || column > utf8.RuneCountInString(text)+1 {
		return "", fmt.Errorf("%s:%d: column %d out of range", path, line, column)
	}

	proc := pipeline.NewProcessor(documentHost{docs}, nil, strategy)
	outcome, err := proc.Process(ctx, pipeline.Event{
		URI:       uri,
		Line:      line - 1,
		Character: position.ByteOffsetToUTF16(text, runeOffset(text, column-1)),
		Force:     true,
	})
	if err != nil {
		return "", err
	}
	if !outcome.Applied {
		return "", fmt.Errorf("%w: %s", errNoConversion, outcome.Skipped)
	}

	converted, _, err := docs.LineText(uri, line-1)
	return converted, err
}

// runeOffset returns the byte offset of the n-th rune of s
func runeOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
