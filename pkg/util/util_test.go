package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 1.23, RoundFloat(1.2345, 2))
	assert.Equal(t, 1.235, RoundFloat(1.23456, 3))
	assert.Equal(t, 2.0, RoundFloat(1.5, 0))
}

func TestReverseG(t *testing.T) {
	t.Run("odd", func(t *testing.T) {
		arr := []int64{1, 2, 3}
		ReverseG(arr)
		assert.Equal(t, []int64{3, 2, 1}, arr)
	})
	t.Run("empty", func(t *testing.T) {
		arr := []string{}
		ReverseG(arr)
		assert.Empty(t, arr)
	})
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 7))
	assert.Equal(t, 7, Clamp(9, 0, 7))
	assert.Equal(t, 4, Clamp(4, 0, 7))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}
