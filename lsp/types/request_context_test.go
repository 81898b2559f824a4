package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tliron/glsp"
)

func TestRequestContext_AddWarning(t *testing.T) {
	req := NewRequestContext(nil, &glsp.Context{Method: "test"})

	assert.False(t, req.HasWarnings())
	assert.Nil(t, req.Warnings())

	err1 := errors.New("warning 1")
	err2 := errors.New("warning 2")
	req.AddWarning(err1)
	req.AddWarning(err2)

	assert.True(t, req.HasWarnings())
	assert.Equal(t, []error{err1, err2}, req.Warnings())
}

func TestRequestContext_AddWarning_Nil(t *testing.T) {
	req := NewRequestContext(nil, nil)

	req.AddWarning(nil)

	assert.False(t, req.HasWarnings())
}

func TestRequestContext_ContextAccess(t *testing.T) {
	glspCtx := &glsp.Context{Method: "textDocument/codeAction"}
	req := NewRequestContext(nil, glspCtx)

	assert.Nil(t, req.Server)
	assert.Same(t, glspCtx, req.GLSP)
	assert.Equal(t, "textDocument/codeAction", req.GLSP.Method)
}
