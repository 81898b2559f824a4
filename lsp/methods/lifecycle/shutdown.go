package lifecycle

import (
	"context"
	"time"

	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/lsp/types"
)

// DeactivatedMessage is written to the sink on shutdown
const DeactivatedMessage = "Template literal converter is now deactivated"

// ShutdownTimeout bounds how long shutdown waits for queued conversions
var ShutdownTimeout = 2 * time.Second

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	// Conversions still waiting when the timeout hits are abandoned
	if err := req.Server.CloseQueue(ctx); err != nil {
		req.AddWarning(err)
	}

	req.Server.Sink().Append(DeactivatedMessage)
	return nil
}
