package domain

import (
	"github.com/radarone/vault/internal/errors"
)

var (
	// ErrInvalidNationalIDLength indicates the value does not reduce to exactly 11 digits.
	ErrInvalidNationalIDLength = errors.Wrap(errors.ErrInvalidInput, "must have 11 digits")

	// ErrInvalidNationalID indicates the value has 11 digits but fails the check digit algorithm.
	ErrInvalidNationalID = errors.Wrap(errors.ErrInvalidInput, "invalid national id")

	// ErrNationalIDNotFound indicates no national id is registered for the user.
	ErrNationalIDNotFound = errors.Wrap(errors.ErrNotFound, "national id not found")

	// ErrNationalIDAlreadyRegistered indicates another user already registered the same national id.
	ErrNationalIDAlreadyRegistered = errors.Wrap(errors.ErrConflict, "national id already registered")

	// ErrNationalIDImmutable indicates the user already has a national id; records are never updated.
	ErrNationalIDImmutable = errors.Wrap(errors.ErrConflict, "national id already set for user")
)
