package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	sessionUseCase "github.com/radarone/vault/internal/session/usecase"
)

const (
	markNeedsReauth = "needs-reauth"
	markUsed        = "used"
)

// RunMarkSession records a scraper outcome against a stored session.
//
// "needs-reauth" flags the session so the user is asked to upload a fresh login and reason is
// kept as the last error. "used" stamps last_used_at after a successful replay.
func RunMarkSession(
	ctx context.Context,
	useCase sessionUseCase.SessionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userID, site, status, reason string,
) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("--user is required")
	}
	site = strings.ToUpper(strings.TrimSpace(site))

	switch status {
	case markNeedsReauth:
		if err := useCase.MarkNeedsReauth(ctx, userID, site, reason); err != nil {
			return fmt.Errorf("failed to mark session: %w", err)
		}
	case markUsed:
		if err := useCase.MarkUsed(ctx, userID, site); err != nil {
			return fmt.Errorf("failed to mark session: %w", err)
		}
	default:
		return fmt.Errorf("invalid status: %s (valid options: %s, %s)", status, markNeedsReauth, markUsed)
	}

	logger.Info("session marked",
		slog.String("user_id", userID),
		slog.String("site", site),
		slog.String("status", status),
	)
	_, _ = fmt.Fprintf(writer, "Session %s of user %s marked as %s\n", site, userID, status)
	return nil
}
