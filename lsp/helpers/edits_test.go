package helpers

import (
	"testing"

	"bennypowers.dev/tickify/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestEditRange(t *testing.T) {
	r := EditRange(pipeline.Edit{Line: 3, StartCharacter: 8, EndCharacter: 19})
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 3, Character: 8},
		End:   protocol.Position{Line: 3, Character: 19},
	}, r)
}

func TestWorkspaceEdit(t *testing.T) {
	t.Run("versioned", func(t *testing.T) {
		edit := pipeline.Edit{URI: "file:///a.js", Line: 0, StartCharacter: 8, EndCharacter: 19, NewText: "`id: ${id}`", Version: 7}

		ws := WorkspaceEdit(edit)
		assert.Nil(t, ws.Changes)
		require.Len(t, ws.DocumentChanges, 1)

		docEdit, ok := ws.DocumentChanges[0].(protocol.TextDocumentEdit)
		require.True(t, ok)
		assert.Equal(t, "file:///a.js", docEdit.TextDocument.URI)
		require.NotNil(t, docEdit.TextDocument.Version)
		assert.Equal(t, protocol.Integer(7), *docEdit.TextDocument.Version)

		require.Len(t, docEdit.Edits, 1)
		textEdit, ok := docEdit.Edits[0].(protocol.TextEdit)
		require.True(t, ok)
		assert.Equal(t, "`id: ${id}`", textEdit.NewText)
		assert.Equal(t, EditRange(edit), textEdit.Range)
	})

	t.Run("unknown version", func(t *testing.T) {
		docEdit := TextDocumentEdit(pipeline.Edit{URI: "file:///a.js"})
		assert.Nil(t, docEdit.TextDocument.Version)
	})
}
