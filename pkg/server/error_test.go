package server_test

import (
	"errors"
	"fmt"
	"testing"

	"lintang/bearmaps/pkg/server"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	orig := errors.New("vertex not found")
	err := server.WrapErrorf(orig, server.ErrNotFound, "location %d is not on the map", 42)

	assert.Equal(t, "location 42 is not on the map", err.Error())
	assert.ErrorIs(t, err, orig)
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))

	wrapped := fmt.Errorf("shortest path: %w", err)
	assert.Equal(t, server.ErrNotFound, server.CodeOf(wrapped))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, server.ErrInternalServerError, server.CodeOf(errors.New("boom")))
}
