package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256HashService_Digest(t *testing.T) {
	digester := NewSHA256HashService()

	tests := []struct {
		digits   string
		expected string
	}{
		// SHA-256("abc")
		{digits: "abc", expected: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		// SHA-256("")
		{digits: "", expected: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	}

	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			assert.Equal(t, tt.expected, digester.Digest(tt.digits))
		})
	}

	t.Run("lowercase hex of 64 chars", func(t *testing.T) {
		digest := digester.Digest("52998224725")
		assert.Len(t, digest, 64)
		assert.Equal(t, strings.ToLower(digest), digest)
	})
}

func TestDigestFunc(t *testing.T) {
	var hs HashService = DigestFunc(func(digits string) string { return "h:" + digits })
	assert.Equal(t, "h:123", hs.Digest("123"))
}
