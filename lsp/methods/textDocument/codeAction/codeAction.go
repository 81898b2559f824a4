package codeaction

import (
	"slices"
	"strings"

	"bennypowers.dev/tickify/lsp/helpers"
	"bennypowers.dev/tickify/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Title is the title of the conversion code action
const Title = "Convert to template literal"

// CodeAction handles the textDocument/codeAction request.
// It offers to convert the quoted literal at the start of the requested
// range when that literal holds a placeholder. No trigger character is
// needed, and the enabled setting is ignored: the user asked explicitly.
func CodeAction(req *types.RequestContext, params *protocol.CodeActionParams) (any, error) {
	if !kindRequested(params.Context.Only) {
		return nil, nil
	}

	uri := params.TextDocument.URI
	doc := req.Server.Document(uri)
	if doc == nil {
		return nil, nil
	}
	if !req.Server.GetConfig().HandlesLanguage(doc.LanguageID()) {
		return nil, nil
	}

	line := int(params.Range.Start.Line)
	text, err := doc.Line(line)
	if err != nil {
		return nil, nil
	}

	edit, ok := req.Server.Processor().Plan(uri, line, text, int(params.Range.Start.Character))
	if !ok {
		return nil, nil
	}
	edit.Version = doc.Version()

	kind := protocol.CodeActionKindRefactorRewrite
	workspaceEdit := helpers.WorkspaceEdit(edit)
	return []protocol.CodeAction{
		{
			Title: Title,
			Kind:  &kind,
			Edit:  &workspaceEdit,
		},
	}, nil
}

// kindRequested reports whether a refactor.rewrite action passes the
// client's kind filter. A filter entry matches its sub-kinds.
func kindRequested(only []protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	return slices.ContainsFunc(only, func(kind protocol.CodeActionKind) bool {
		k := string(kind)
		return k == string(protocol.CodeActionKindRefactorRewrite) || strings.HasPrefix(string(protocol.CodeActionKindRefactorRewrite), k+".")
	})
}
