package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	authService "github.com/radarone/vault/internal/auth/service"
)

type issuedToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RunIssueToken signs a bearer token for userID, for operators and local development.
func RunIssueToken(
	tokenService authService.TokenService,
	writer io.Writer,
	userID string,
	ttl time.Duration,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("--user is required")
	}
	if ttl <= 0 {
		return fmt.Errorf("token lifetime must be positive")
	}

	token, err := tokenService.Issue(userID, ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	result := issuedToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl).Truncate(time.Second),
	}

	if format == formatJSON {
		return writeJSON(writer, result)
	}

	_, _ = fmt.Fprintf(writer, "Token: %s\n", result.Token)
	_, _ = fmt.Fprintf(writer, "Expires at: %s\n", result.ExpiresAt.Format(time.RFC3339))
	return nil
}
