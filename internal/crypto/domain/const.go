// Package domain defines the cryptographic primitives shared by every bounded context:
// the process encryption key and the serialized EncryptedSecret format.
package domain

// Algorithm represents the authenticated encryption algorithm used for field encryption.
type Algorithm string

// AESGCM is AES-256 in Galois/Counter Mode with a 16-byte IV and a 16-byte tag.
// It is the only algorithm the EncryptedSecret wire format supports.
const AESGCM Algorithm = "aes-256-gcm"

const (
	// KeySize is the size in bytes of the AES-256 key.
	KeySize = 32

	// KeyHexLength is the length of the hex-encoded key accepted from configuration.
	KeyHexLength = KeySize * 2

	// IVSize is the size in bytes of the random IV generated for every encryption.
	IVSize = 16

	// AuthTagSize is the size in bytes of the GCM authentication tag.
	AuthTagSize = 16
)
