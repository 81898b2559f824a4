package lsp

import (
	"context"
	"errors"
	"time"

	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/internal/pipeline"
	"bennypowers.dev/tickify/lsp/helpers"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ErrNoClient is returned when an edit is applied before a client connected
var ErrNoClient = errors.New("no client connection")

const applyEditLabel = "Convert to template literal"

// editorHost is the pipeline's view of the editor: lines come from the
// synchronized documents, edits go to the client
type editorHost struct {
	server *Server
}

func (h editorHost) LineText(uri string, line int) (string, int, error) {
	return h.server.documents.LineText(uri, line)
}

func (h editorHost) ApplyEdit(ctx context.Context, edit pipeline.Edit) (bool, error) {
	return ApplyEdit(ctx, h.server.GLSPContext(), edit, h.server.GetConfig().ApplyTimeout())
}

// ApplyEdit asks the client to perform edit via workspace/applyEdit and
// reports whether it did. The edit is versioned, so a client whose document
// moved on rejects it. A response that does not arrive within timeout counts
// as not applied.
//
// ApplyEdit blocks until the client answers; never call it from a message
// handler, whose goroutine must stay free to read the response.
func ApplyEdit(ctx context.Context, client *glsp.Context, edit pipeline.Edit, timeout time.Duration) (bool, error) {
	if client == nil || client.Call == nil {
		return false, ErrNoClient
	}

	label := applyEditLabel
	params := protocol.ApplyWorkspaceEditParams{
		Label: &label,
		Edit:  helpers.WorkspaceEdit(edit),
	}

	// glsp.Context.Call cannot be cancelled; on timeout the goroutine exits
	// once the client answers or the connection closes
	responses := make(chan protocol.ApplyWorkspaceEditResponse, 1)
	go func() {
		var response protocol.ApplyWorkspaceEditResponse
		client.Call(protocol.ServerWorkspaceApplyEdit, params, &response)
		responses <- response
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case response := <-responses:
		if !response.Applied && response.FailureReason != nil {
			log.Warn("Client rejected edit for %s: %s", edit.URI, *response.FailureReason)
		}
		return response.Applied, nil
	case <-timer.C:
		log.Warn("No workspace/applyEdit response for %s within %s", edit.URI, timeout)
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
