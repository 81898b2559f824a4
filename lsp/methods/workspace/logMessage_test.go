package workspace

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params any
}

func recordingContext() (*glsp.Context, func() []notification) {
	var mu sync.Mutex
	var sent []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			mu.Lock()
			defer mu.Unlock()
			sent = append(sent, notification{method, params})
		},
	}
	return ctx, func() []notification {
		mu.Lock()
		defer mu.Unlock()
		return append([]notification(nil), sent...)
	}
}

func TestLogError_NilContext(t *testing.T) {
	LogError(nil, "test error: %s", "message")
	LogError(&glsp.Context{}, "no notify func")
}

func TestLogWarning_NilContext(t *testing.T) {
	LogWarning(nil, "test warning: %s", "message")
}

func TestShowMessage_NilContext(t *testing.T) {
	ShowMessage(nil, protocol.MessageTypeInfo, "test message")
}

func TestLogError_WithContext(t *testing.T) {
	ctx, sent := recordingContext()
	LogError(ctx, "failed: %d", 42)

	require.Eventually(t, func() bool { return len(sent()) == 1 }, time.Second, time.Millisecond)
	got := sent()[0]
	assert.Equal(t, protocol.ServerWindowLogMessage, got.method)
	assert.Equal(t, &protocol.LogMessageParams{Type: protocol.MessageTypeError, Message: "failed: 42"}, got.params)
}

func TestShowMessage_WithContext(t *testing.T) {
	ctx, sent := recordingContext()
	ShowMessage(ctx, protocol.MessageTypeInfo, "hello")

	require.Eventually(t, func() bool { return len(sent()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, protocol.ServerWindowShowMessage, sent()[0].method)
}

func TestClientSink(t *testing.T) {
	var current *glsp.Context
	sink := ClientSink(func() *glsp.Context { return current })

	// no client yet: dropped
	sink.Append("early")

	ctx, sent := recordingContext()
	current = ctx
	sink.Append("first")
	sink.Append("second")

	got := sent()
	require.Len(t, got, 2)
	assert.Equal(t, &protocol.LogMessageParams{Type: protocol.MessageTypeLog, Message: "first"}, got[0].params)
	assert.Equal(t, &protocol.LogMessageParams{Type: protocol.MessageTypeLog, Message: "second"}, got[1].params)
}
