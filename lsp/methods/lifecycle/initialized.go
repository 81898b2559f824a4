package lifecycle

import (
	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ActivatedMessage is written to the sink once the server is ready
const ActivatedMessage = "Template literal converter is now active"

// Initialized handles the LSP initialized notification
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	// Store context for later use (applyEdit, logMessage)
	req.Server.SetGLSPContext(req.GLSP)

	// A broken config file must not stop the server; defaults fill the gap
	if err := req.Server.LoadWorkspaceConfig(); err != nil {
		req.AddWarning(err)
	}

	config := req.Server.GetConfig()
	log.Info("Server initialized (strategy: %s, languages: %v)", config.ParsedStrategy(), config.Languages)

	req.Server.StartQueue()
	req.Server.Sink().Append(ActivatedMessage)
	return nil
}
