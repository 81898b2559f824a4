package workspace

import (
	"fmt"

	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration notification.
// Settings arrive as { "tickify": { ... } } and replace the client layer.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	overlay, err := types.ParseSettings(params.Settings)
	if err != nil {
		// Don't fail, keep the current configuration
		req.AddWarning(fmt.Errorf("failed to parse configuration: %w", err))
		return nil
	}

	req.Server.SetClientSettings(overlay)
	log.Info("New configuration: %+v", req.Server.GetConfig())
	return nil
}
