// Package domain defines the authentication model of the API: bearer tokens that carry the
// id of the RadarOne user the request acts for.
package domain

import "time"

const (
	// DefaultIssuer is the issuer claim set and required on bearer tokens.
	DefaultIssuer = "radarone"

	// DefaultTokenTTL is the lifetime of tokens issued by the CLI when none is given.
	DefaultTokenTTL = 24 * time.Hour
)
