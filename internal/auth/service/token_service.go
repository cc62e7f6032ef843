package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/radarone/vault/internal/auth/domain"
	apperrors "github.com/radarone/vault/internal/errors"
)

// jwtTokenService implements TokenService with HS256-signed JWTs.
type jwtTokenService struct {
	secret []byte
	issuer string
}

// Issue signs a token with subject userID.
func (s *jwtTokenService) Issue(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", authDomain.ErrMissingSubject
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// ParseUserID verifies token and returns the user id in its subject claim.
func (s *jwtTokenService) ParseUserID(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", authDomain.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", authDomain.ErrMissingSubject
	}
	return claims.Subject, nil
}

// NewJWTTokenService creates a TokenService signing with secret.
// An empty secret is a configuration error, reported here so the server refuses to start.
func NewJWTTokenService(secret string, issuer string) (TokenService, error) {
	if secret == "" {
		return nil, authDomain.ErrTokenSecretNotSet
	}
	if issuer == "" {
		issuer = authDomain.DefaultIssuer
	}
	return &jwtTokenService{secret: []byte(secret), issuer: issuer}, nil
}
