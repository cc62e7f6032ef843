package service

import (
	"bytes"
	"crypto/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/radarone/vault/internal/crypto/domain"
)

func newTestKey(t *testing.T) *cryptoDomain.EncryptionKey {
	t.Helper()
	raw := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(raw)
	require.NoError(t, err)

	key, err := cryptoDomain.NewEncryptionKey(raw)
	require.NoError(t, err)
	return key
}

func newTestCipher(t *testing.T) *AESGCMCipher {
	t.Helper()
	c, err := NewAESGCM(newTestKey(t))
	require.NoError(t, err)
	return c
}

func TestNewAESGCM(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		c, err := NewAESGCM(newTestKey(t))
		assert.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("nil key", func(t *testing.T) {
		c, err := NewAESGCM(nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidEncryptionKey)
		assert.Nil(t, c)
	})

	t.Run("closed key", func(t *testing.T) {
		key := newTestKey(t)
		key.Close()

		c, err := NewAESGCM(key)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidEncryptionKey)
		assert.Nil(t, c)
	})
}

func TestAESGCMCipher_Seal(t *testing.T) {
	c := newTestCipher(t)

	t.Run("sizes", func(t *testing.T) {
		plaintext := []byte("12345678909")

		secret, err := c.Seal(plaintext)
		require.NoError(t, err)

		assert.Len(t, secret.IV, cryptoDomain.IVSize)
		assert.Len(t, secret.AuthTag, cryptoDomain.AuthTagSize)
		assert.Len(t, secret.Ciphertext, len(plaintext))
		assert.NotEqual(t, plaintext, secret.Ciphertext)
	})

	t.Run("fresh iv per call", func(t *testing.T) {
		plaintext := []byte("same input")

		first, err := c.Seal(plaintext)
		require.NoError(t, err)
		second, err := c.Seal(plaintext)
		require.NoError(t, err)

		assert.NotEqual(t, first.IV, second.IV)
		assert.NotEqual(t, first.String(), second.String())
	})

	t.Run("empty plaintext", func(t *testing.T) {
		secret, err := c.Seal([]byte{})
		require.NoError(t, err)
		assert.Empty(t, secret.Ciphertext)
		assert.Len(t, secret.AuthTag, cryptoDomain.AuthTagSize)
	})
}

func TestAESGCMCipher_Open(t *testing.T) {
	c := newTestCipher(t)
	plaintext := []byte(`{"cookies":[],"origins":[]}`)

	secret, err := c.Seal(plaintext)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		got, err := c.Open(secret)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	})

	t.Run("tampered tag", func(t *testing.T) {
		tampered := secret
		tampered.AuthTag = bytes.Clone(secret.AuthTag)
		tampered.AuthTag[0] ^= 0x01

		got, err := c.Open(tampered)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.Nil(t, got)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		tampered := secret
		tampered.Ciphertext = bytes.Clone(secret.Ciphertext)
		tampered.Ciphertext[0] ^= 0x80

		got, err := c.Open(tampered)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.Nil(t, got)
	})

	t.Run("tampered iv", func(t *testing.T) {
		tampered := secret
		tampered.IV = bytes.Clone(secret.IV)
		tampered.IV[15] ^= 0xff

		_, err := c.Open(tampered)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := newTestCipher(t)

		_, err := other.Open(secret)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("short iv", func(t *testing.T) {
		tampered := secret
		tampered.IV = secret.IV[:12]

		_, err := c.Open(tampered)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidSecretFormat)
	})

	t.Run("does not modify input", func(t *testing.T) {
		before := secret.String()
		_, err := c.Open(secret)
		require.NoError(t, err)
		assert.Equal(t, before, secret.String())
	})
}

func TestAESGCMCipher_ConcurrentUse(t *testing.T) {
	c := newTestCipher(t)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			plaintext := []byte{byte(i), byte(i + 1), byte(i + 2)}
			secret, err := c.Seal(plaintext)
			if !assert.NoError(t, err) {
				return
			}
			got, err := c.Open(secret)
			assert.NoError(t, err)
			assert.Equal(t, plaintext, got)
		}(i)
	}
	wg.Wait()
}
