package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	tests := map[string][]byte{
		"nil":       nil,
		"empty":     {},
		"key sized": bytes.Repeat([]byte{0xab}, KeySize),
		"odd sized": []byte("52998224725"),
	}

	for name, b := range tests {
		t.Run(name, func(t *testing.T) {
			n := len(b)
			assert.NotPanics(t, func() { Zero(b) })
			assert.Len(t, b, n)
			assert.Empty(t, bytes.Trim(b, "\x00"))
		})
	}
}

func TestZero_SharesBackingArray(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, KeySize)
	view := key[:8]

	Zero(key)

	assert.Equal(t, make([]byte, 8), view)
}

func TestZero_NilStaysNil(t *testing.T) {
	var b []byte
	Zero(b)
	assert.Nil(t, b)
}
