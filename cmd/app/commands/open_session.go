package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	sessionUseCase "github.com/radarone/vault/internal/session/usecase"
)

type openedSession struct {
	SessionID    uuid.UUID       `json:"session_id"`
	UserID       string          `json:"user_id"`
	Site         string          `json:"site"`
	Domain       string          `json:"domain"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	StorageState json.RawMessage `json:"storage_state"`
}

// RunOpenSession decrypts an ACTIVE session for the scraping worker.
//
// In text format only the storage-state JSON is written, ready to be loaded by the browser
// automation. The json format wraps it with the session identity and expiry.
func RunOpenSession(
	ctx context.Context,
	useCase sessionUseCase.SessionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userID, site, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("--user is required")
	}
	site = strings.ToUpper(strings.TrimSpace(site))

	replay, err := useCase.OpenForReplay(ctx, userID, site)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	logger.Info("session opened for replay",
		slog.String("user_id", userID),
		slog.String("site", site),
		slog.String("session_id", replay.SessionID.String()),
	)

	if format == formatJSON {
		return writeJSON(writer, openedSession{
			SessionID:    replay.SessionID,
			UserID:       replay.UserID,
			Site:         string(replay.Site),
			Domain:       replay.Domain,
			ExpiresAt:    replay.ExpiresAt,
			StorageState: json.RawMessage(replay.StorageState),
		})
	}

	_, _ = fmt.Fprintln(writer, replay.StorageState)
	return nil
}
