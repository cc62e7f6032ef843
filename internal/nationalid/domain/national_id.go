package domain

import (
	"time"

	"github.com/google/uuid"
)

// EncryptedNationalID is the output of encrypting a national id.
type EncryptedNationalID struct {
	// Ciphertext is the serialized "iv:tag:ciphertext" hex string.
	Ciphertext string
	// Last4 is stored in plaintext for display only.
	Last4 string
}

// NationalIDRecord is the persisted national id of a user.
//
// Records are created once and never updated. Hash is the unsalted SHA-256 of the normalized
// digits and carries a unique constraint so duplicates collide without comparing plaintext.
type NationalIDRecord struct {
	ID         uuid.UUID
	UserID     string
	Ciphertext string
	Last4      string
	Hash       string
	CreatedAt  time.Time
}

// Masked returns the display form of the record.
func (r *NationalIDRecord) Masked() string {
	return Mask(r.Last4)
}
