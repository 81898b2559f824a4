package textDocument

import (
	"testing"

	"bennypowers.dev/tickify/internal/pipeline"
	"bennypowers.dev/tickify/lsp/testutil"
	"bennypowers.dev/tickify/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func insertAt(line, character uint32, text string) protocol.TextDocumentContentChangeEvent {
	pos := protocol.Position{Line: line, Character: character}
	return protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{Start: pos, End: pos},
		Text:  text,
	}
}

func openDocument(t *testing.T, server *testutil.MockServerContext, uri, languageID, text string) {
	t.Helper()
	err := DidOpen(types.NewRequestContext(server, nil), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: languageID, Version: 1, Text: text},
	})
	require.NoError(t, err)
}

func change(t *testing.T, server *testutil.MockServerContext, uri string, version int32, changes ...any) {
	t.Helper()
	err := DidChange(types.NewRequestContext(server, nil), &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}, Version: version},
		ContentChanges: changes,
	})
	require.NoError(t, err)
}

func TestDidOpenAndClose(t *testing.T) {
	server := testutil.NewMockServerContext()
	openDocument(t, server, "file:///a.js", "javascript", "let a = 1;")

	doc := server.Document("file:///a.js")
	require.NotNil(t, doc)
	assert.Equal(t, "let a = 1;", doc.Content())

	err := DidClose(types.NewRequestContext(server, nil), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.js"},
	})
	require.NoError(t, err)
	assert.Nil(t, server.Document("file:///a.js"))
}

func TestDidChangeSubmitsTriggeredEdits(t *testing.T) {
	server := testutil.NewMockServerContext()
	uri := "file:///a.js"
	openDocument(t, server, uri, "javascript", "let s = 'id: ';")

	change(t, server, uri, 2, insertAt(0, 13, "$"))
	change(t, server, uri, 3, insertAt(0, 14, "{"))
	change(t, server, uri, 4, insertAt(0, 15, "id"))
	change(t, server, uri, 5, insertAt(0, 17, "}"))

	assert.Equal(t, "let s = 'id: ${id}';", server.Document(uri).Content())
	assert.Equal(t, []pipeline.Event{
		{URI: uri, Text: "$", Line: 0, Character: 13},
		{URI: uri, Text: "{", Line: 0, Character: 14},
		{URI: uri, Text: "}", Line: 0, Character: 17},
	}, server.Submitted(), "plain text insertions never reach the queue")
}

func TestDidChangeFilters(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		languageID string
		config     func(*types.ServerConfig)
	}{
		{name: "language not configured", uri: "file:///a.css", languageID: "css"},
		{name: "disabled", uri: "file:///a.ts", languageID: "typescript", config: func(c *types.ServerConfig) { c.Enabled = false }},
		{name: "language removed", uri: "file:///a.ts", languageID: "typescript", config: func(c *types.ServerConfig) { c.Languages = []string{"javascript"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewMockServerContext()
			if tt.config != nil {
				config := server.GetConfig()
				tt.config(&config)
				server.SetConfig(config)
			}
			openDocument(t, server, tt.uri, tt.languageID, "x = '';")

			change(t, server, tt.uri, 2, insertAt(0, 5, "${a}"))

			assert.Equal(t, "x = '${a}';", server.Document(tt.uri).Content(), "the document stays in sync")
			assert.Empty(t, server.Submitted())
		})
	}
}

func TestDidChangeFullReplacementProducesNoEvent(t *testing.T) {
	server := testutil.NewMockServerContext()
	uri := "file:///a.js"
	openDocument(t, server, uri, "javascript", "")

	change(t, server, uri, 2, protocol.TextDocumentContentChangeEventWhole{Text: "let s = '${a}';"})

	assert.Equal(t, "let s = '${a}';", server.Document(uri).Content())
	assert.Empty(t, server.Submitted())
}

func TestDidChangeStaleVersion(t *testing.T) {
	server := testutil.NewMockServerContext()
	uri := "file:///a.js"
	openDocument(t, server, uri, "javascript", "a")

	err := DidChange(types.NewRequestContext(server, nil), &protocol.DidChangeTextDocumentParams{
		TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}, Version: 0},
		ContentChanges: []any{insertAt(0, 1, "$")},
	})
	assert.Error(t, err)
	assert.Empty(t, server.Submitted())
}

func TestEvents(t *testing.T) {
	changes := []protocol.TextDocumentContentChangeEvent{
		insertAt(2, 4, "{"),
		{Text: "whole"},
		insertAt(3, 0, "}"),
	}

	assert.Equal(t, []pipeline.Event{
		{URI: "file:///a.js", Text: "{", Line: 2, Character: 4},
		{URI: "file:///a.js", Text: "}", Line: 3, Character: 0},
	}, Events("file:///a.js", changes))
}

func TestContentChanges(t *testing.T) {
	ranged := insertAt(0, 0, "x")
	got := ContentChanges([]any{ranged, protocol.TextDocumentContentChangeEventWhole{Text: "y"}, "junk"})

	require.Len(t, got, 2)
	assert.Equal(t, ranged, got[0])
	assert.Nil(t, got[1].Range)
	assert.Equal(t, "y", got[1].Text)
}
