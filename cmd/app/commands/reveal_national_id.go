package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	nationalIDDomain "github.com/radarone/vault/internal/nationalid/domain"
	nationalIDUseCase "github.com/radarone/vault/internal/nationalid/usecase"
)

type revealedNationalID struct {
	UserID     string `json:"user_id"`
	NationalID string `json:"national_id"`
}

// RunRevealNationalID decrypts the CPF of userID for support staff. The access is logged
// without the value.
func RunRevealNationalID(
	ctx context.Context,
	useCase nationalIDUseCase.NationalIDUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userID, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("--user is required")
	}

	nationalID, err := useCase.Reveal(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to reveal national id: %w", err)
	}

	logger.Warn("national id revealed", slog.String("user_id", userID))

	formatted := nationalIDDomain.Format(nationalID)
	if format == formatJSON {
		return writeJSON(writer, revealedNationalID{UserID: userID, NationalID: formatted})
	}

	_, _ = fmt.Fprintf(writer, "National ID: %s\n", formatted)
	return nil
}
