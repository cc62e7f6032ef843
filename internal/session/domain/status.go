package domain

// Status is the lifecycle state of a stored session.
type Status string

const (
	// StatusActive is set by every successful upload.
	StatusActive Status = "ACTIVE"

	// StatusNeedsReauth is reported by the scraper when the target site rejects the session.
	StatusNeedsReauth Status = "NEEDS_REAUTH"

	// StatusExpired is derived at read time once expires_at has passed. It may also be stored by
	// operators.
	StatusExpired Status = "EXPIRED"

	// StatusNotConnected is never stored: it describes the absence of a record.
	StatusNotConnected Status = "NOT_CONNECTED"
)

// ParseStatus converts a stored value. Unknown values yield false.
func ParseStatus(value string) (Status, bool) {
	switch s := Status(value); s {
	case StatusActive, StatusNeedsReauth, StatusExpired:
		return s, true
	default:
		return "", false
	}
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
// A fresh upload moves any state to ACTIVE; only ACTIVE sessions degrade.
func (s Status) CanTransitionTo(next Status) bool {
	switch next {
	case StatusActive:
		return true
	case StatusNeedsReauth, StatusExpired:
		return s == StatusActive
	default:
		return false
	}
}

// Message is the human readable description of the status.
func (s Status) Message() string {
	switch s {
	case StatusActive:
		return "session is active"
	case StatusNeedsReauth:
		return "session needs reauthentication: upload a new session"
	case StatusExpired:
		return "session has expired: upload a new session"
	case StatusNotConnected:
		return "no session connected for this site"
	default:
		return "unknown session status"
	}
}
