package tickify

import (
	"testing"

	"bennypowers.dev/tickify/lsp/testutil"
	"bennypowers.dev/tickify/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func positionParams(uri string, line, character uint32) *protocol.TextDocumentPositionParams {
	return &protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Position:     protocol.Position{Line: line, Character: character},
	}
}

func TestConvert(t *testing.T) {
	server := testutil.NewMockServerContext()
	uri := "file:///greet.js"
	content := "function greet(name) {\n  return 'Hello, ${name}!';\n}"
	require.NoError(t, server.DocumentManager().DidOpen(uri, "javascript", 2, content))

	result, err := Convert(types.NewRequestContext(server, nil), positionParams(uri, 1, 20))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "`Hello, ${name}!`", result.ConvertedText)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 9},
		End:   protocol.Position{Line: 1, Character: 26},
	}, result.Range)

	// probing never edits the document
	assert.Equal(t, content, server.Document(uri).Content())
	assert.Equal(t, 2, server.Document(uri).Version())
}

func TestConvertNothingToDo(t *testing.T) {
	server := testutil.NewMockServerContext()
	require.NoError(t, server.DocumentManager().DidOpen("file:///a.js", "javascript", 1, `f('plain', "${x}")`))
	req := types.NewRequestContext(server, nil)

	tests := []struct {
		name   string
		params *protocol.TextDocumentPositionParams
	}{
		{"literal without placeholder", positionParams("file:///a.js", 0, 4)},
		{"outside any literal", positionParams("file:///a.js", 0, 0)},
		{"line out of range", positionParams("file:///a.js", 9, 0)},
		{"document not open", positionParams("file:///b.js", 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Convert(req, tt.params)
			require.NoError(t, err)
			assert.Nil(t, result)
		})
	}
}
