// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/radarone/vault/internal/validation"
)

// RegisterNationalIDRequest contains the national id to attach to the authenticated user.
// Punctuated ("123.456.789-09") and digit-only forms are both accepted.
type RegisterNationalIDRequest struct {
	NationalID string `json:"national_id"`
}

// Validate checks if the register request is valid.
func (r *RegisterNationalIDRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.NationalID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NationalIDLength,
		),
	)
}

// CheckNationalIDRequest contains a candidate national id to check.
type CheckNationalIDRequest struct {
	NationalID string `json:"national_id"`
}

// Validate checks if the check request is valid. Checksum failures are reported in the
// response body, not as validation errors.
func (r *CheckNationalIDRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.NationalID,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 32),
		),
	)
}
