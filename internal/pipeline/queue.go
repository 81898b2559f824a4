package pipeline

import (
	"context"
	"sync"

	"bennypowers.dev/tickify/internal/log"
)

// DefaultQueueSize bounds the number of events waiting for the worker
const DefaultQueueSize = 64

// Queue runs events through a Processor on a single worker goroutine.
//
// Each event's pipeline, including waiting for the host to confirm the edit,
// finishes before the next event starts. Submit never blocks: the LSP read
// loop must stay free to deliver the host's reply to an in-flight edit.
type Queue struct {
	proc   *Processor
	events chan Event
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// OnOutcome, if set before Start, is called on the worker after every event
	OnOutcome func(Outcome, error)

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewQueue creates a queue feeding proc. size <= 0 selects DefaultQueueSize.
func NewQueue(proc *Processor, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		proc:   proc,
		events: make(chan Event, size),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Processor returns the processor the queue feeds
func (q *Queue) Processor() *Processor {
	return q.proc
}

// Start launches the worker. Later calls are no-ops.
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	go q.run()
}

func (q *Queue) run() {
	defer close(q.done)
	for ev := range q.events {
		outcome, err := q.proc.Process(q.ctx, ev)
		if err != nil {
			log.Warn("Conversion failed for %s:%d: %v", ev.URI, ev.Line, err)
		}
		if q.OnOutcome != nil {
			q.OnOutcome(outcome, err)
		}
	}
}

// Submit enqueues ev. It returns false if the queue is closed or full; a
// dropped keystroke is harmless because the next one re-triggers evaluation.
func (q *Queue) Submit(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	select {
	case q.events <- ev:
		return true
	default:
		log.Warn("Conversion queue full, dropping edit at %s:%d", ev.URI, ev.Line)
		return false
	}
}

// Close stops accepting events, lets the worker finish those already queued
// and waits for it. If ctx expires first, in-flight host calls are cancelled.
// Close is safe to call more than once.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.events)
		if !q.started {
			close(q.done)
		}
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		return ctx.Err()
	}
}
