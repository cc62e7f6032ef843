// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/radarone/vault/internal/errors"
	nationalIDDomain "github.com/radarone/vault/internal/nationalid/domain"
)

var (
	// siteKeyRegex matches upper snake case identifiers such as MERCADO_LIVRE.
	siteKeyRegex = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NationalIDLength validates that a string reduces to exactly 11 digits once punctuation is
// stripped. Check digits are verified by the use case.
var NationalIDLength = validation.NewStringRuleWithError(
	func(s string) bool {
		return len(nationalIDDomain.Normalize(s)) == nationalIDDomain.Length
	},
	validation.NewError("validation_national_id_length", "must have 11 digits"),
)

// SiteKey validates the shape of a marketplace key. Whether the key is registered is decided by
// the site registry.
var SiteKey = validation.NewStringRuleWithError(
	func(s string) bool {
		return siteKeyRegex.MatchString(s)
	},
	validation.NewError("validation_site_key", "must be an upper case site key"),
)
