package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/radarone/vault/internal/crypto/domain"
	cryptoService "github.com/radarone/vault/internal/crypto/service"
)

type kmsEncrypter interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
}

// RunCreatePIIKey generates a random 256-bit field encryption key and prints it as
// PII_ENCRYPTION_KEY.
//
// Without kmsKeyURI the value is the 64-character hex key. With kmsKeyURI the hex key is
// encrypted by that KMS key and the value is the base64 ciphertext, which the server unwraps at
// first use when KMS_KEY_URI is set to the same URI.
func RunCreatePIIKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
) error {
	raw := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	key, err := cryptoDomain.NewEncryptionKey(raw)
	cryptoDomain.Zero(raw)
	if err != nil {
		return err
	}
	defer key.Close()

	if kmsKeyURI == "" {
		_, _ = fmt.Fprintln(writer, "# Field encryption key (plaintext mode)")
		_, _ = fmt.Fprintln(writer, "# Store it in your secrets manager. Losing it makes stored data unreadable.")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "PII_ENCRYPTION_KEY=\"%s\"\n", key.Hex())
		return nil
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	encrypter, ok := keeper.(kmsEncrypter)
	if !ok {
		return fmt.Errorf("KMS keeper does not support encryption")
	}

	hexKey := []byte(key.Hex())
	defer cryptoDomain.Zero(hexKey)

	ciphertext, err := encrypter.Encrypt(ctx, hexKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt key with KMS: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "# Field encryption key (KMS mode)")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "PII_ENCRYPTION_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(ciphertext))

	return nil
}
