package workspace

import (
	"fmt"

	"bennypowers.dev/tickify/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LogError logs an error message to stderr and optionally to the LSP client
func LogError(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	notify(context, protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    protocol.MessageTypeError,
		Message: message,
	})
}

// LogWarning logs a warning message to stderr and optionally to the LSP client
func LogWarning(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Warn("%s", message)
	notify(context, protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
		Type:    protocol.MessageTypeWarning,
		Message: message,
	})
}

// ShowMessage sends a message to be displayed to the user
func ShowMessage(context *glsp.Context, messageType protocol.MessageType, message string) {
	notify(context, protocol.ServerWindowShowMessage, &protocol.ShowMessageParams{
		Type:    messageType,
		Message: message,
	})
}

func notify(context *glsp.Context, method string, params any) {
	if context == nil || context.Notify == nil {
		return
	}
	go context.Notify(method, params)
}

// ClientSink mirrors pipeline lines to the client's output via
// window/logMessage. current is consulted on every line, so the sink can be
// created before the client connects; lines appended without a client are
// dropped.
func ClientSink(current func() *glsp.Context) log.Sink {
	return log.SinkFunc(func(line string) {
		context := current()
		if context == nil || context.Notify == nil {
			return
		}
		// sent inline so lines reach the client in order
		context.Notify(protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
			Type:    protocol.MessageTypeLog,
			Message: line,
		})
	})
}
