package commands

import (
	"context"
	"fmt"
	"io"

	nationalIDDomain "github.com/radarone/vault/internal/nationalid/domain"
	nationalIDUseCase "github.com/radarone/vault/internal/nationalid/usecase"
)

// NationalIDChecker is the offline subset of the national id encryptor.
type NationalIDChecker interface {
	Validate(candidate string) bool
	Format(candidate string) string
	Hash(plaintext string) (string, error)
}

type nationalIDCheckResult struct {
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted"`
	Hash      string `json:"hash,omitempty"`
}

// RunCheckNationalID validates and formats a national id without touching the database.
// The hash preview is the value stored in national_id_records.hash and is printed
// only for valid input. An invalid value is reported, not returned as an error.
func RunCheckNationalID(checker NationalIDChecker, writer io.Writer, value, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	result := nationalIDCheckResult{
		Valid:     checker.Validate(value),
		Formatted: checker.Format(value),
	}
	if result.Valid {
		hash, err := checker.Hash(value)
		if err != nil {
			return fmt.Errorf("failed to hash national id: %w", err)
		}
		result.Hash = hash
	}

	if format == formatJSON {
		return writeJSON(writer, result)
	}

	status := "invalid"
	if result.Valid {
		status = "valid"
	}
	_, _ = fmt.Fprintf(writer, "Status: %s\n", status)
	_, _ = fmt.Fprintf(writer, "Formatted: %s\n", result.Formatted)
	if result.Hash != "" {
		_, _ = fmt.Fprintf(writer, "Hash: %s\n", result.Hash)
	}
	return nil
}

type nationalIDLookupResult struct {
	Formatted  string `json:"formatted"`
	Registered bool   `json:"registered"`
}

// RunLookupNationalID reports whether any customer registered the national id. It reads the
// hash index only and never decrypts.
func RunLookupNationalID(
	ctx context.Context,
	useCase nationalIDUseCase.NationalIDUseCase,
	writer io.Writer,
	value, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	registered, err := useCase.IsRegistered(ctx, value)
	if err != nil {
		return fmt.Errorf("failed to look up national id: %w", err)
	}

	result := nationalIDLookupResult{
		Formatted:  nationalIDDomain.Format(value),
		Registered: registered,
	}
	if format == formatJSON {
		return writeJSON(writer, result)
	}

	_, _ = fmt.Fprintf(writer, "National ID: %s\n", result.Formatted)
	_, _ = fmt.Fprintf(writer, "Registered: %t\n", result.Registered)
	return nil
}
