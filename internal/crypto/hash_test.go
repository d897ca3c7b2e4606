package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashData(t *testing.T) {
	h1 := HashData([]byte("hello"))
	h2 := HashData([]byte("hello"))
	h3 := HashData([]byte("world"))

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.False(t, h1.IsZero())
	assert.Len(t, h1.String(), 2*HashSize)
}

func TestHashIsZero(t *testing.T) {
	var zero Hash
	assert.True(t, zero.IsZero())

	zero[31] = 1
	assert.False(t, zero.IsZero())
}
