package commands

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/radarone/vault/internal/crypto/domain"
	cryptoService "github.com/radarone/vault/internal/crypto/service"
)

type MockKMSService struct {
	mock.Mock
}

func (m *MockKMSService) OpenKeeper(ctx context.Context, uri string) (cryptoService.KMSKeeper, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cryptoService.KMSKeeper), args.Error(1)
}

type MockKMSKeeper struct {
	mock.Mock
}

func (m *MockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Close() error {
	return m.Called().Error(0)
}

// decryptOnlyKeeper lacks Encrypt.
type decryptOnlyKeeper struct{}

func (decryptOnlyKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	return ciphertext, nil
}

func (decryptOnlyKeeper) Close() error { return nil }

var piiKeyLine = regexp.MustCompile(`PII_ENCRYPTION_KEY="([^"]+)"`)

func extractPIIKey(t *testing.T, output string) string {
	t.Helper()
	match := piiKeyLine.FindStringSubmatch(output)
	require.Len(t, match, 2, "output: %s", output)
	return match[1]
}

func TestRunCreatePIIKey(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("plaintext mode", func(t *testing.T) {
		var out bytes.Buffer

		err := RunCreatePIIKey(ctx, nil, logger, &out, "")
		require.NoError(t, err)

		value := extractPIIKey(t, out.String())
		assert.Regexp(t, `^[0-9a-f]{64}$`, value)

		key, err := cryptoDomain.ParseEncryptionKey(value)
		require.NoError(t, err)
		key.Close()
	})

	t.Run("keys differ between runs", func(t *testing.T) {
		var first, second bytes.Buffer
		require.NoError(t, RunCreatePIIKey(ctx, nil, logger, &first, ""))
		require.NoError(t, RunCreatePIIKey(ctx, nil, logger, &second, ""))

		assert.NotEqual(t, extractPIIKey(t, first.String()), extractPIIKey(t, second.String()))
	})

	t.Run("kms mode with mocks", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockKeeper := &MockKMSKeeper{}
		mockService.On("OpenKeeper", ctx, "base64key://test").Return(mockKeeper, nil)
		mockKeeper.On("Encrypt", ctx, mock.AnythingOfType("[]uint8")).Return([]byte("wrapped"), nil)
		mockKeeper.On("Close").Return(nil)

		var out bytes.Buffer
		err := RunCreatePIIKey(ctx, mockService, logger, &out, "base64key://test")
		require.NoError(t, err)

		assert.Contains(t, out.String(), `KMS_KEY_URI="base64key://test"`)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("wrapped")), extractPIIKey(t, out.String()))
		mockService.AssertExpectations(t)
		mockKeeper.AssertExpectations(t)
	})

	t.Run("kms keeper cannot be opened", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockService.On("OpenKeeper", ctx, "gcpkms://missing").Return(nil, errors.New("permission denied"))

		err := RunCreatePIIKey(ctx, mockService, logger, io.Discard, "gcpkms://missing")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})

	t.Run("kms encrypt fails", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockKeeper := &MockKMSKeeper{}
		mockService.On("OpenKeeper", ctx, "base64key://test").Return(mockKeeper, nil)
		mockKeeper.On("Encrypt", ctx, mock.Anything).Return(nil, errors.New("quota exceeded"))
		mockKeeper.On("Close").Return(nil)

		err := RunCreatePIIKey(ctx, mockService, logger, io.Discard, "base64key://test")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to encrypt key with KMS")
		mockKeeper.AssertExpectations(t)
	})

	t.Run("keeper without encrypt", func(t *testing.T) {
		mockService := &MockKMSService{}
		mockService.On("OpenKeeper", ctx, "base64key://test").Return(decryptOnlyKeeper{}, nil)

		err := RunCreatePIIKey(ctx, mockService, logger, io.Discard, "base64key://test")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not support encryption")
	})

	t.Run("kms output is loadable by the server", func(t *testing.T) {
		masterKey := make([]byte, 32)
		_, err := rand.Read(masterKey)
		require.NoError(t, err)
		keyURI := "base64key://" + base64.URLEncoding.EncodeToString(masterKey)
		kmsService := cryptoService.NewKMSService()

		var out bytes.Buffer
		require.NoError(t, RunCreatePIIKey(ctx, kmsService, logger, &out, keyURI))

		loader := cryptoService.NewKeyLoader(kmsService, keyURI, extractPIIKey(t, out.String()))
		key, err := loader.Load(ctx)
		require.NoError(t, err)
		defer key.Close()
		assert.Len(t, key.Bytes(), cryptoDomain.KeySize)
	})
}
