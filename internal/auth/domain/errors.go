package domain

import (
	"github.com/radarone/vault/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidToken indicates the bearer token is malformed, expired or signed with another key.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrMissingSubject indicates the token carries no user id.
	ErrMissingSubject = errors.Wrap(errors.ErrUnauthorized, "token has no subject")

	// ErrTokenSecretNotSet indicates AUTH_JWT_SECRET is empty.
	ErrTokenSecretNotSet = errors.Wrap(errors.ErrMisconfigured, "token signing secret not set")
)
