package dto

import (
	"time"

	"github.com/radarone/vault/internal/nationalid/domain"
)

// NationalIDResponse represents a stored national id. The plaintext is never returned.
type NationalIDResponse struct {
	ID        string    `json:"id"`
	Last4     string    `json:"last4"`
	Masked    string    `json:"masked"`
	CreatedAt time.Time `json:"created_at"`
}

// MapNationalIDRecordToResponse converts a domain record to an API response.
func MapNationalIDRecordToResponse(record *domain.NationalIDRecord) NationalIDResponse {
	return NationalIDResponse{
		ID:        record.ID.String(),
		Last4:     record.Last4,
		Masked:    record.Masked(),
		CreatedAt: record.CreatedAt,
	}
}

// CheckNationalIDResponse is the result of checking a candidate national id. Whether the value
// belongs to a customer is not disclosed here.
type CheckNationalIDResponse struct {
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted"`
}
