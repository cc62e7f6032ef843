package domain

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/radarone/vault/internal/errors"
)

const sampleState = `{"cookies":[{"name":"s","value":"v"}],"origins":[{"origin":"https://mercadolivre.com.br","localStorage":[]}]}`

func TestNormalizeStorageState_AcceptedForms(t *testing.T) {
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(sampleState), &decoded))

	pretty := "{\n  \"origins\": [{\"origin\": \"https://mercadolivre.com.br\", \"localStorage\": []}],\n" +
		"  \"cookies\": [{\"value\": \"v\", \"name\": \"s\"}]\n}"

	tests := []struct {
		name string
		raw  any
	}{
		{name: "json string", raw: sampleState},
		{name: "pretty json string with other key order", raw: pretty},
		{name: "bytes", raw: []byte(sampleState)},
		{name: "raw message", raw: json.RawMessage(sampleState)},
		{name: "decoded object", raw: decoded},
		{name: "base64", raw: base64.StdEncoding.EncodeToString([]byte(sampleState))},
		{name: "base64 url without padding", raw: base64.RawURLEncoding.EncodeToString([]byte(sampleState))},
		{name: "surrounding whitespace", raw: "  " + sampleState + "\n"},
	}

	expected, err := NormalizeStorageState(sampleState)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical, err := NormalizeStorageState(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, expected, canonical)
			assert.JSONEq(t, sampleState, canonical)
		})
	}
}

func TestNormalizeStorageState_PreservesUnknownFieldsAndNumbers(t *testing.T) {
	raw := `{"cookies":[{"name":"s","value":"<v&>","expires":1767225600.5,"partitionKey":"x"}],"origins":[]}`

	canonical, err := NormalizeStorageState(raw)
	require.NoError(t, err)
	assert.Contains(t, canonical, `"partitionKey":"x"`)
	assert.Contains(t, canonical, `1767225600.5`)
	assert.Contains(t, canonical, `"<v&>"`)
}

func TestNormalizeStorageState_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected error
	}{
		{name: "nil", raw: nil, expected: ErrStorageStateRequired},
		{name: "empty string", raw: "", expected: ErrStorageStateRequired},
		{name: "blank string", raw: "   ", expected: ErrStorageStateRequired},
		{name: "json null", raw: "null", expected: ErrStorageStateRequired},
		{name: "empty bytes", raw: []byte{}, expected: ErrStorageStateRequired},
		{name: "not json", raw: "{cookies: []}", expected: ErrInvalidStorageState},
		{name: "trailing data", raw: `{"cookies":[]} {}`, expected: ErrInvalidStorageState},
		{name: "base64 of garbage", raw: base64.StdEncoding.EncodeToString([]byte("hello")), expected: ErrInvalidStorageState},
		{name: "unserializable value", raw: map[string]any{"f": func() {}}, expected: ErrInvalidStorageState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical, err := NormalizeStorageState(tt.raw)
			assert.Empty(t, canonical)
			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestParseStorageState_Success(t *testing.T) {
	state, err := ParseStorageState(sampleState)
	require.NoError(t, err)

	assert.Equal(t, SessionMeta{CookiesCount: 1, OriginsCount: 1}, state.Meta())
	assert.Equal(t, "s", state.Cookies[0].Name)
	assert.Equal(t, "https://mercadolivre.com.br", state.Origins[0].Origin)
	assert.Nil(t, state.ExpiresAtTime())
}

func TestParseStorageState_EmptyListsAreValid(t *testing.T) {
	state, err := ParseStorageState(`{"cookies":[],"origins":[]}`)
	require.NoError(t, err)
	assert.Equal(t, SessionMeta{}, state.Meta())
}

func TestParseStorageState_ExpiresAt(t *testing.T) {
	state, err := ParseStorageState(`{"cookies":[],"origins":[],"expiresAt":"2030-01-02T03:04:05-03:00"}`)
	require.NoError(t, err)

	expiresAt := state.ExpiresAtTime()
	require.NotNil(t, expiresAt)
	assert.Equal(t, time.Date(2030, 1, 2, 6, 4, 5, 0, time.UTC), *expiresAt)
}

func TestParseStorageState_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		reasons []string
	}{
		{
			name:    "missing origins",
			input:   `{"cookies":[{"name":"s","value":"v"}]}`,
			reasons: []string{"origins: is required"},
		},
		{
			name:    "missing both",
			input:   `{}`,
			reasons: []string{"cookies: is required", "origins: is required"},
		},
		{
			name:    "null cookies",
			input:   `{"cookies":null,"origins":[]}`,
			reasons: []string{"cookies: is required"},
		},
		{
			name:    "top level array",
			input:   `[]`,
			reasons: []string{"must be a JSON object"},
		},
		{
			name:    "cookies not an array",
			input:   `{"cookies":"s=v","origins":[]}`,
			reasons: []string{"cookies: must not be a JSON string"},
		},
		{
			name:  "nested field problems",
			input: `{"cookies":[{"value":"v"}],"origins":[{"origin":"ftp://x","localStorage":null},{"localStorage":[{"value":"1"}]}]}`,
			reasons: []string{
				"cookies.0.name: cannot be blank",
				"origins.0.localStorage: is required",
				"origins.0.origin: must be an http(s) origin",
				"origins.1.localStorage.0.name: cannot be blank",
				"origins.1.origin: cannot be blank",
			},
		},
		{
			name:    "bad same site",
			input:   `{"cookies":[{"name":"s","value":"v","sameSite":"Sometimes"}],"origins":[]}`,
			reasons: []string{"cookies.0.sameSite: must be a valid value"},
		},
		{
			name:    "bad expiry",
			input:   `{"cookies":[],"origins":[],"expiresAt":"tomorrow"}`,
			reasons: []string{"expiresAt: must be an RFC 3339 timestamp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := ParseStorageState(tt.input)
			assert.Nil(t, state)

			var stateErr *StorageStateError
			require.ErrorAs(t, err, &stateErr)
			assert.Equal(t, tt.reasons, stateErr.Reasons)
			assert.ErrorIs(t, err, ErrInvalidStorageState)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestStorageStateError_Error(t *testing.T) {
	err := &StorageStateError{Reasons: []string{"cookies: is required", "origins: is required"}}
	assert.Equal(t, "invalid session state: cookies: is required; origins: is required", err.Error())
}
