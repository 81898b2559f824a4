// Package helpers converts pipeline edits to LSP protocol values.
package helpers

import (
	"bennypowers.dev/tickify/internal/pipeline"
	"bennypowers.dev/tickify/internal/position"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// EditRange returns the single-line range an edit replaces
func EditRange(edit pipeline.Edit) protocol.Range {
	line := position.ToUInteger(edit.Line)
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: position.ToUInteger(edit.StartCharacter)},
		End:   protocol.Position{Line: line, Character: position.ToUInteger(edit.EndCharacter)},
	}
}

// TextDocumentEdit wraps an edit for its document. When the edit carries a
// version the client must reject it if the document has changed since.
func TextDocumentEdit(edit pipeline.Edit) protocol.TextDocumentEdit {
	identifier := protocol.OptionalVersionedTextDocumentIdentifier{
		TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: edit.URI},
	}
	if edit.Version > 0 {
		version := protocol.Integer(edit.Version)
		identifier.Version = &version
	}
	return protocol.TextDocumentEdit{
		TextDocument: identifier,
		Edits: []any{
			protocol.TextEdit{Range: EditRange(edit), NewText: edit.NewText},
		},
	}
}

// WorkspaceEdit builds a workspace edit holding one versioned document edit
func WorkspaceEdit(edit pipeline.Edit) protocol.WorkspaceEdit {
	return protocol.WorkspaceEdit{
		DocumentChanges: []any{TextDocumentEdit(edit)},
	}
}
