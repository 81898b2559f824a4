// Package tickify holds the server's own request methods
package tickify

import (
	"bennypowers.dev/tickify/lsp/helpers"
	"bennypowers.dev/tickify/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// MethodConvert previews the conversion at a position without applying it
const MethodConvert = "tickify/convert"

// ConvertResult is the replacement tickify/convert proposes
type ConvertResult struct {
	ConvertedText string         `json:"convertedText"`
	Range         protocol.Range `json:"range"`
}

// Convert handles the tickify/convert request. It returns the literal at
// the position rewritten as a template literal, or nil when there is
// nothing to convert. The document is not modified.
func Convert(req *types.RequestContext, params *protocol.TextDocumentPositionParams) (*ConvertResult, error) {
	uri := params.TextDocument.URI
	line := int(params.Position.Line)

	text, _, err := req.Server.DocumentManager().LineText(uri, line)
	if err != nil {
		return nil, nil
	}

	edit, ok := req.Server.Processor().Plan(uri, line, text, int(params.Position.Character))
	if !ok {
		return nil, nil
	}

	return &ConvertResult{
		ConvertedText: edit.NewText,
		Range:         helpers.EditRange(edit),
	}, nil
}
