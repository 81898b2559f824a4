// Package pipeline turns edit events into template-literal rewrites.
//
// A Processor handles one event at a time: it filters out keystrokes that
// cannot introduce a placeholder, reads the edited line from the Host, finds
// the literal to rewrite and asks the Host to apply the replacement. A Queue
// feeds events to a Processor strictly one after another.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"bennypowers.dev/tickify/internal/literal"
	"bennypowers.dev/tickify/internal/log"
	"bennypowers.dev/tickify/internal/position"
)

var (
	// ErrLineUnavailable is returned when the host cannot supply the edited line
	ErrLineUnavailable = errors.New("line unavailable")

	// ErrApply is returned when the host could not deliver an edit
	ErrApply = errors.New("apply edit")

	// ErrPanic is returned when processing an event panicked
	ErrPanic = errors.New("panic while processing edit")
)

// TriggerChars are the characters whose insertion can complete a placeholder
const TriggerChars = "{}$"

// Triggered reports whether inserted text may have created a placeholder
func Triggered(inserted string) bool {
	return strings.ContainsAny(inserted, TriggerChars)
}

// Event is a single text change reported by the host
type Event struct {
	URI string
	// Text is the inserted text
	Text string
	// Line is the zero-based line of the change start
	Line int
	// Character is the UTF-16 column of the change start
	Character int
	// Force skips the trigger filter (explicit user command)
	Force bool
}

// Edit replaces a range of one line. Columns are UTF-16 code units.
type Edit struct {
	URI            string
	Line           int
	StartCharacter int
	EndCharacter   int
	NewText        string
	// Version is the document version the line was read from, or 0 if unknown
	Version int
}

// Host is the editor side of the pipeline
type Host interface {
	// LineText returns the current text of a line and the document version
	LineText(uri string, line int) (text string, version int, err error)
	// ApplyEdit asks the editor to perform edit and reports whether it did
	ApplyEdit(ctx context.Context, edit Edit) (bool, error)
}

// Skip reasons recorded on an Outcome
const (
	SkipNotTriggered  = "no trigger character"
	SkipNoLiteral     = "cursor not inside a literal"
	SkipNoPlaceholder = "no placeholder"
)

// Outcome reports what happened to one event
type Outcome struct {
	Event   Event
	Edit    *Edit
	Applied bool
	Skipped string
}

// Stats counts outcomes over the lifetime of a Processor
type Stats struct {
	Processed uint64
	Applied   uint64
	Failed    uint64
	Skipped   uint64
}

// Processor runs the locate, classify and apply steps for one event
type Processor struct {
	host Host
	sink log.Sink

	mu       sync.RWMutex
	strategy Strategy

	processed atomic.Uint64
	applied   atomic.Uint64
	failed    atomic.Uint64
	skipped   atomic.Uint64
}

// NewProcessor creates a processor. A nil sink discards diagnostics.
func NewProcessor(host Host, sink log.Sink, strategy Strategy) *Processor {
	if sink == nil {
		sink = log.Discard
	}
	return &Processor{
		host:     host,
		sink:     sink,
		strategy: strategy,
	}
}

// Strategy returns the boundary strategy in use
func (p *Processor) Strategy() Strategy {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.strategy
}

// SetStrategy switches the boundary strategy for subsequent events
func (p *Processor) SetStrategy(strategy Strategy) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.strategy = strategy
}

// Stats returns a snapshot of the processor's counters
func (p *Processor) Stats() Stats {
	return Stats{
		Processed: p.processed.Load(),
		Applied:   p.applied.Load(),
		Failed:    p.failed.Load(),
		Skipped:   p.skipped.Load(),
	}
}

// Process handles one event. A returned error never leaves the processor
// unusable; the next event is processed normally.
func (p *Processor) Process(ctx context.Context, ev Event) (outcome Outcome, err error) {
	outcome.Event = ev
	p.processed.Add(1)

	defer func() {
		if r := recover(); r != nil {
			p.failed.Add(1)
			p.sink.Append(fmt.Sprintf("Error processing template literal conversion: %v\n%s", r, debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	if !ev.Force && !Triggered(ev.Text) {
		p.skipped.Add(1)
		outcome.Skipped = SkipNotTriggered
		return outcome, nil
	}

	text, version, err := p.host.LineText(ev.URI, ev.Line)
	if err != nil {
		p.failed.Add(1)
		p.sink.Append(fmt.Sprintf("Error reading line %d of %s: %v", ev.Line, ev.URI, err))
		return outcome, fmt.Errorf("%w: %w", ErrLineUnavailable, err)
	}

	cursor := position.UTF16ToByteOffset(text, ev.Character)
	result, reason := p.Strategy().Plan(text, cursor)
	if reason != "" {
		p.skipped.Add(1)
		outcome.Skipped = reason
		return outcome, nil
	}

	edit := EditFor(ev.URI, ev.Line, text, result)
	edit.Version = version
	outcome.Edit = &edit
	p.sink.Append(fmt.Sprintf("Found template expression to convert: %s", result.Text))

	applied, err := p.host.ApplyEdit(ctx, edit)
	if err != nil {
		p.failed.Add(1)
		p.sink.Append(fmt.Sprintf("Failed to apply template literal conversion: %v", err))
		return outcome, fmt.Errorf("%w: %w", ErrApply, err)
	}
	if !applied {
		p.failed.Add(1)
		p.sink.Append("Failed to apply template literal conversion")
		return outcome, nil
	}

	p.applied.Add(1)
	outcome.Applied = true
	p.sink.Append("Successfully applied template literal conversion")
	return outcome, nil
}

// Plan computes the edit for a line without applying it. It ignores the
// trigger filter; code actions and previews use it directly.
func (p *Processor) Plan(uri string, line int, text string, character int) (Edit, bool) {
	result, reason := p.Strategy().Plan(text, position.UTF16ToByteOffset(text, character))
	if reason != "" {
		return Edit{}, false
	}
	return EditFor(uri, line, text, result), true
}

// EditFor converts a byte-offset result on line text into a UTF-16 edit
func EditFor(uri string, line int, text string, result literal.Result) Edit {
	return Edit{
		URI:            uri,
		Line:           line,
		StartCharacter: position.ByteOffsetToUTF16(text, result.Start),
		EndCharacter:   position.ByteOffsetToUTF16(text, result.End()),
		NewText:        result.Text,
	}
}
