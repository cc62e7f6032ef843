// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	customValidation "github.com/radarone/vault/internal/validation"
)

// UploadSessionRequest carries a browser storage state captured by the user.
//
// StorageState may be the JSON object itself, a JSON string holding it, or a string with its
// base64 encoding. Shape validation happens in the use case so every field reason is reported.
type UploadSessionRequest struct {
	StorageState json.RawMessage `json:"storage_state"`
	AccountLabel string          `json:"account_label"`
}

// Validate checks if the upload request is valid.
func (r *UploadSessionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.StorageState, validation.Required),
		validation.Field(&r.AccountLabel, validation.Length(0, 120)),
	)
}

// StorageStateInput returns the value handed to the use case. A JSON string is unquoted so base64
// text and stringified JSON are both accepted.
func (r *UploadSessionRequest) StorageStateInput() any {
	var text string
	if err := json.Unmarshal(r.StorageState, &text); err == nil {
		return text
	}
	return r.StorageState
}

// ValidateSiteParam checks the shape of the :site path parameter.
func ValidateSiteParam(site string) error {
	return validation.Errors{
		"site": validation.Validate(site, validation.Required, customValidation.SiteKey),
	}.Filter()
}
