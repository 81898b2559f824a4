package workspace

import (
	"errors"
	"fmt"
	"math"

	"bennypowers.dev/tickify/internal/pipeline"
	"bennypowers.dev/tickify/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Commands handled by workspace/executeCommand
const (
	// CommandConvert converts the literal at [uri, line, character],
	// bypassing the trigger filter
	CommandConvert = "tickify.convert"
	// CommandShowOutput shows conversion statistics
	CommandShowOutput = "tickify.showOutput"
)

// Commands lists every command the server advertises
var Commands = []string{CommandConvert, CommandShowOutput}

var (
	// ErrUnknownCommand is returned for commands the server does not handle
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidArguments is returned when command arguments cannot be decoded
	ErrInvalidArguments = errors.New("invalid arguments")
)

// ExecuteCommand handles the workspace/executeCommand request.
// tickify.convert returns whether the conversion was queued.
func ExecuteCommand(req *types.RequestContext, params *protocol.ExecuteCommandParams) (any, error) {
	switch params.Command {
	case CommandConvert:
		ev, err := convertEvent(params.Arguments)
		if err != nil {
			return nil, err
		}
		if req.Server.Document(ev.URI) == nil {
			return nil, fmt.Errorf("document not open: %s", ev.URI)
		}
		return req.Server.Submit(ev), nil

	case CommandShowOutput:
		ShowMessage(req.GLSP, protocol.MessageTypeInfo, FormatStats(req.Server.Processor()))
		return nil, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, params.Command)
}

// convertEvent decodes [uri, line, character]. JSON numbers arrive as float64.
func convertEvent(args []any) (pipeline.Event, error) {
	if len(args) != 3 {
		return pipeline.Event{}, fmt.Errorf("%w: %s expects [uri, line, character], got %d arguments", ErrInvalidArguments, CommandConvert, len(args))
	}
	uri, ok := args[0].(string)
	if !ok || uri == "" {
		return pipeline.Event{}, fmt.Errorf("%w: uri must be a non-empty string", ErrInvalidArguments)
	}
	line, err := nonNegativeInt(args[1], "line")
	if err != nil {
		return pipeline.Event{}, err
	}
	character, err := nonNegativeInt(args[2], "character")
	if err != nil {
		return pipeline.Event{}, err
	}
	return pipeline.Event{URI: uri, Line: line, Character: character, Force: true}, nil
}

func nonNegativeInt(value any, name string) (int, error) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidArguments, name, value)
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %v", ErrInvalidArguments, name, value)
	}
	return int(f), nil
}

// FormatStats summarizes a processor's counters for display
func FormatStats(proc *pipeline.Processor) string {
	stats := proc.Stats()
	return fmt.Sprintf("Tickify (%s): %d converted, %d failed, %d skipped of %d edits",
		proc.Strategy(), stats.Applied, stats.Failed, stats.Skipped, stats.Processed)
}
