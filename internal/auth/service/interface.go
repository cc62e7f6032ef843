// Package service provides bearer token issuing and verification.
package service

import "time"

// TokenService issues and verifies signed bearer tokens whose subject is a user id.
type TokenService interface {
	// Issue signs a token for userID valid for ttl.
	Issue(userID string, ttl time.Duration) (string, error)

	// ParseUserID verifies the signature, issuer and expiry of token and returns its subject.
	ParseUserID(token string) (string, error)
}
