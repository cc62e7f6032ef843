package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		expected bool
	}{
		{from: StatusNotConnected, to: StatusActive, expected: true},
		{from: StatusActive, to: StatusActive, expected: true},
		{from: StatusNeedsReauth, to: StatusActive, expected: true},
		{from: StatusExpired, to: StatusActive, expected: true},
		{from: StatusActive, to: StatusNeedsReauth, expected: true},
		{from: StatusActive, to: StatusExpired, expected: true},
		{from: StatusNeedsReauth, to: StatusExpired, expected: false},
		{from: StatusExpired, to: StatusNeedsReauth, expected: false},
		{from: StatusNotConnected, to: StatusNeedsReauth, expected: false},
		{from: StatusActive, to: StatusNotConnected, expected: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{StatusActive, StatusNeedsReauth, StatusExpired} {
		parsed, ok := ParseStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}

	_, ok := ParseStatus(string(StatusNotConnected))
	assert.False(t, ok)

	_, ok = ParseStatus("active")
	assert.False(t, ok)
}

func TestStatus_Message(t *testing.T) {
	assert.Equal(t, "session is active", StatusActive.Message())
	assert.Contains(t, StatusNeedsReauth.Message(), "needs reauthentication")
	assert.Contains(t, StatusExpired.Message(), "expired")
	assert.Equal(t, "no session connected for this site", StatusNotConnected.Message())
	assert.Equal(t, "unknown session status", Status("BOGUS").Message())
}
