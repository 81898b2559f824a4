package lsp

import (
	"encoding/json"

	"bennypowers.dev/tickify/lsp/methods/tickify"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CustomHandler wraps protocol.Handler to add methods it has no field for,
// currently tickify/convert
type CustomHandler struct {
	*protocol.Handler // Pointer to avoid copying embedded mutex
	server            *Server
}

// Handle implements glsp.Handler interface
func (h *CustomHandler) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	if context.Method == tickify.MethodConvert {
		var params protocol.TextDocumentPositionParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}

		result, err := method(h.server, tickify.MethodConvert, tickify.Convert)(context, &params)
		if err != nil {
			return nil, true, true, err
		}
		if result == nil {
			return nil, true, true, nil
		}
		return result, true, true, nil
	}

	// Fall through to default protocol.Handler
	return h.Handler.Handle(context)
}
