package textDocument

import (
	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/internal/pipeline"
	"bennypowers.dev/tickify/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	log.Debug("Document opened: %s (language: %s, version: %d)",
		params.TextDocument.URI, params.TextDocument.LanguageID, int(params.TextDocument.Version))

	return req.Server.DocumentManager().DidOpen(params.TextDocument.URI, params.TextDocument.LanguageID,
		int(params.TextDocument.Version), params.TextDocument.Text)
}

// DidChange handles the textDocument/didChange notification.
// The changes are applied to the document first; every ranged change to a
// document that conversion applies to then becomes a pipeline event.
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)

	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, version, len(params.ContentChanges))

	changes := ContentChanges(params.ContentChanges)
	if err := req.Server.DocumentManager().DidChange(uri, version, changes); err != nil {
		return err
	}

	doc := req.Server.Document(uri)
	if doc == nil || !req.Server.ShouldProcess(uri, doc.LanguageID()) {
		return nil
	}

	for _, ev := range Events(uri, changes) {
		if !pipeline.Triggered(ev.Text) {
			continue
		}
		if !req.Server.Submit(ev) {
			log.Debug("Conversion not queued for %s:%d", ev.URI, ev.Line)
		}
	}

	return nil
}

// DidClose handles the textDocument/didClose notification
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	log.Debug("Document closed: %s", params.TextDocument.URI)
	return req.Server.DocumentManager().DidClose(params.TextDocument.URI)
}

// ContentChanges normalizes the decoded change events. glsp yields
// TextDocumentContentChangeEvent for ranged changes and
// TextDocumentContentChangeEventWhole for full replacements; the latter
// becomes an event with a nil Range.
func ContentChanges(raw []any) []protocol.TextDocumentContentChangeEvent {
	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(raw))
	for _, change := range raw {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, c)
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, protocol.TextDocumentContentChangeEvent{Text: c.Text})
		}
	}
	return changes
}

// Events builds one pipeline event per ranged change, positioned at the
// change start. Full replacements carry no position and produce none.
func Events(uri string, changes []protocol.TextDocumentContentChangeEvent) []pipeline.Event {
	var events []pipeline.Event
	for _, change := range changes {
		if change.Range == nil {
			continue
		}
		events = append(events, pipeline.Event{
			URI:       uri,
			Text:      change.Text,
			Line:      int(change.Range.Start.Line),
			Character: int(change.Range.Start.Character),
		})
	}
	return events
}
