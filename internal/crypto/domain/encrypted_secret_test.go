package domain_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radarone/vault/internal/crypto/domain"
	apperrors "github.com/radarone/vault/internal/errors"
)

func TestEncryptedSecret_String(t *testing.T) {
	secret := domain.EncryptedSecret{
		IV:         bytes.Repeat([]byte{0xab}, domain.IVSize),
		AuthTag:    bytes.Repeat([]byte{0x01}, domain.AuthTagSize),
		Ciphertext: []byte{0xde, 0xad, 0xbe, 0xef},
	}

	expected := strings.Repeat("ab", 16) + ":" + strings.Repeat("01", 16) + ":deadbeef"
	assert.Equal(t, expected, secret.String())
}

func TestParseEncryptedSecret_Success(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		original := domain.EncryptedSecret{
			IV:         bytes.Repeat([]byte{0x10}, domain.IVSize),
			AuthTag:    bytes.Repeat([]byte{0x20}, domain.AuthTagSize),
			Ciphertext: []byte("ciphertext-bytes"),
		}

		parsed, err := domain.ParseEncryptedSecret(original.String())

		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})

	t.Run("UppercaseHex", func(t *testing.T) {
		input := strings.Repeat("AB", 16) + ":" + strings.Repeat("CD", 16) + ":EF"

		parsed, err := domain.ParseEncryptedSecret(input)

		require.NoError(t, err)
		assert.Equal(t, []byte{0xef}, parsed.Ciphertext)
	})
}

func TestParseEncryptedSecret_Errors(t *testing.T) {
	validIV := strings.Repeat("00", domain.IVSize)
	validTag := strings.Repeat("11", domain.AuthTagSize)

	tests := []struct {
		name  string
		input string
	}{
		{name: "Error_OnePart", input: "onlyonepart"},
		{name: "Error_FourParts", input: "not:two:parts:extra"},
		{name: "Error_EmptyString", input: ""},
		{name: "Error_IVNotHex", input: strings.Repeat("zz", 16) + ":" + validTag + ":00"},
		{name: "Error_IVWrongSize", input: "0011:" + validTag + ":00"},
		{name: "Error_TagNotHex", input: validIV + ":" + strings.Repeat("x", 32) + ":00"},
		{name: "Error_TagWrongSize", input: validIV + ":11:00"},
		{name: "Error_CiphertextNotHex", input: validIV + ":" + validTag + ":0g"},
		{name: "Error_CiphertextOddLength", input: validIV + ":" + validTag + ":abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret, err := domain.ParseEncryptedSecret(tt.input)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidSecretFormat)
			assert.ErrorIs(t, err, apperrors.ErrIntegrity)
			assert.Equal(t, domain.EncryptedSecret{}, secret)
		})
	}
}
