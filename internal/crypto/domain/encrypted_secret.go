package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// EncryptedSecret is the output of one authenticated encryption.
//
// It serializes to hex(iv) + ":" + hex(authTag) + ":" + hex(ciphertext). That string is the
// on-disk representation of every encrypted field (national ids and session blobs) and must stay
// bit-exact. There is no key-version marker: rotating the key requires re-encrypting every value.
type EncryptedSecret struct {
	IV         []byte
	AuthTag    []byte
	Ciphertext []byte
}

// ParseEncryptedSecret decodes the serialized "iv:tag:ciphertext" form.
//
// It fails with ErrInvalidSecretFormat when the value does not have exactly three
// colon-separated parts, when any part is not valid hex, or when the IV or tag have the wrong
// size. No cryptographic work happens here.
func ParseEncryptedSecret(content string) (EncryptedSecret, error) {
	parts := strings.Split(content, ":")
	if len(parts) != 3 {
		return EncryptedSecret{}, fmt.Errorf(
			"%w: expected format 'iv:tag:ciphertext', got %d parts",
			ErrInvalidSecretFormat,
			len(parts),
		)
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return EncryptedSecret{}, fmt.Errorf("%w: iv is not hex", ErrInvalidSecretFormat)
	}
	if len(iv) != IVSize {
		return EncryptedSecret{}, fmt.Errorf(
			"%w: iv must be %d bytes, got %d",
			ErrInvalidSecretFormat,
			IVSize,
			len(iv),
		)
	}

	tag, err := hex.DecodeString(parts[1])
	if err != nil {
		return EncryptedSecret{}, fmt.Errorf("%w: auth tag is not hex", ErrInvalidSecretFormat)
	}
	if len(tag) != AuthTagSize {
		return EncryptedSecret{}, fmt.Errorf(
			"%w: auth tag must be %d bytes, got %d",
			ErrInvalidSecretFormat,
			AuthTagSize,
			len(tag),
		)
	}

	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return EncryptedSecret{}, fmt.Errorf("%w: ciphertext is not hex", ErrInvalidSecretFormat)
	}

	return EncryptedSecret{IV: iv, AuthTag: tag, Ciphertext: ciphertext}, nil
}

// String serializes the secret to "iv:tag:ciphertext" with lowercase hex.
func (s EncryptedSecret) String() string {
	return hex.EncodeToString(s.IV) + ":" +
		hex.EncodeToString(s.AuthTag) + ":" +
		hex.EncodeToString(s.Ciphertext)
}
