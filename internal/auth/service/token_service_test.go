package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/radarone/vault/internal/auth/domain"
	apperrors "github.com/radarone/vault/internal/errors"
)

func newTestTokenService(t *testing.T) TokenService {
	t.Helper()
	svc, err := NewJWTTokenService("test-secret", authDomain.DefaultIssuer)
	require.NoError(t, err)
	return svc
}

func TestNewJWTTokenService(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, err := NewJWTTokenService("secret", "")
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("Error_EmptySecret", func(t *testing.T) {
		svc, err := NewJWTTokenService("", authDomain.DefaultIssuer)
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, authDomain.ErrTokenSecretNotSet)
		assert.True(t, apperrors.Is(err, apperrors.ErrMisconfigured))
	})
}

func TestJWTTokenService_IssueAndParse(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue("user-42", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := svc.ParseUserID(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestJWTTokenService_Issue_EmptyUser(t *testing.T) {
	svc := newTestTokenService(t)

	_, err := svc.Issue("", time.Hour)
	assert.ErrorIs(t, err, authDomain.ErrMissingSubject)
}

func TestJWTTokenService_ParseUserID_Errors(t *testing.T) {
	svc := newTestTokenService(t)

	other, err := NewJWTTokenService("other-secret", authDomain.DefaultIssuer)
	require.NoError(t, err)
	foreign, err := other.Issue("user-42", time.Hour)
	require.NoError(t, err)

	otherIssuer, err := NewJWTTokenService("test-secret", "someone-else")
	require.NoError(t, err)
	wrongIssuer, err := otherIssuer.Issue("user-42", time.Hour)
	require.NoError(t, err)

	expired, err := svc.Issue("user-42", -time.Minute)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  authDomain.DefaultIssuer,
		Subject: "user-42",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    authDomain.DefaultIssuer,
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "signed with another secret", token: foreign},
		{name: "wrong issuer", token: wrongIssuer},
		{name: "expired", token: expired},
		{name: "no expiry", token: noExpiry},
		{name: "alg none", token: noneAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := svc.ParseUserID(tt.token)
			assert.Empty(t, userID)
			assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
			assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
		})
	}
}

func TestJWTTokenService_ParseUserID_MissingSubject(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    authDomain.DefaultIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ParseUserID(token)
	assert.ErrorIs(t, err, authDomain.ErrMissingSubject)
}
