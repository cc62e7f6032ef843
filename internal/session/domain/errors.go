package domain

import (
	"github.com/radarone/vault/internal/errors"
)

// Session credential errors.
var (
	// ErrUnsupportedSite indicates the site key is not in the site registry.
	ErrUnsupportedSite = errors.Wrap(errors.ErrInvalidInput, "unsupported site")

	// ErrStorageStateRequired indicates the upload carried no storage state.
	ErrStorageStateRequired = errors.Wrap(errors.ErrInvalidInput, "storage state is required")

	// ErrInvalidStorageState indicates the storage state is not a valid browser export.
	// Returned wrapped in a *StorageStateError listing every rejection reason.
	ErrInvalidStorageState = errors.Wrap(errors.ErrInvalidInput, "invalid session state")

	// ErrStorageStateTooLarge indicates the storage state exceeds the configured size limit.
	ErrStorageStateTooLarge = errors.Wrap(errors.ErrInvalidInput, "storage state is too large")

	// ErrSessionNotFound indicates the user has no session for the site.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")

	// ErrSessionNotActive indicates the session cannot be replayed in its current status.
	ErrSessionNotActive = errors.Wrap(errors.ErrConflict, "session is not active")

	// ErrInvalidStatusTransition indicates a status change the state machine does not allow.
	ErrInvalidStatusTransition = errors.Wrap(errors.ErrConflict, "invalid session status transition")

	// ErrSessionChanged indicates the session was replaced or removed after it was read.
	ErrSessionChanged = errors.Wrap(ErrInvalidStatusTransition, "session changed concurrently")
)
