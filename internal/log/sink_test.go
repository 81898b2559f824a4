package log_test

import (
	"bytes"
	"testing"

	"bennypowers.dev/tickify/internal/log"
	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	var lines log.Lines
	lines.Append("one")
	lines.Append("two")

	got := lines.Lines()
	assert.Equal(t, []string{"one", "two"}, got)

	// returned slice is a copy
	got[0] = "changed"
	assert.Equal(t, "one", lines.Lines()[0])
}

func TestStderrSink(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil)

	log.StderrSink{Level: log.LevelWarn}.Append("apply rejected")
	assert.Contains(t, buf.String(), "WARN: apply rejected")
}

func TestTee(t *testing.T) {
	var a, b log.Lines
	sink := log.Tee(&a, nil, &b, log.Discard)

	sink.Append("hello")

	assert.Equal(t, []string{"hello"}, a.Lines())
	assert.Equal(t, []string{"hello"}, b.Lines())
}
