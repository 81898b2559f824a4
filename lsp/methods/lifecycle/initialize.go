package lifecycle

import (
	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/internal/uriutil"
	"bennypowers.dev/tickify/internal/version"
	"bennypowers.dev/tickify/lsp/methods/workspace"
	"bennypowers.dev/tickify/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported in serverInfo
const ServerName = "tickify"

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	req.Server.SetClientName(clientName)
	log.Info("Initializing for client: %s", clientName)

	// Store the workspace root
	if params.RootURI != nil && *params.RootURI != "" {
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
		log.Info("Workspace root: %s", req.Server.RootPath())
	} else if params.RootPath != nil && *params.RootPath != "" {
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
		log.Info("Workspace root (from rootPath): %s", req.Server.RootPath())
	}

	// Client settings passed up front; the workspace files are read on initialized
	overlay, err := types.ParseSettings(params.InitializationOptions)
	if err != nil {
		req.AddWarning(err)
	} else if overlay != nil {
		req.Server.SetClientSettings(overlay)
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
		CodeActionProvider: protocol.CodeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindRefactorRewrite},
		},
		ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
			Commands: workspace.Commands,
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
