// Package usecase implements the external session credential store: upload, status queries and
// deletion for users, plus the replay capabilities used by the scraper.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/radarone/vault/internal/session/domain"
)

// SessionRepository defines the interface for session persistence.
type SessionRepository interface {
	// Upsert inserts the session or atomically replaces the one stored for (UserID, Site).
	// A replaced record keeps its ID and CreatedAt; both are written back into session.
	Upsert(ctx context.Context, session *domain.Session) error

	// GetByUserAndSite returns the session or ErrSessionNotFound.
	GetByUserAndSite(ctx context.Context, userID string, site domain.SiteKey) (*domain.Session, error)

	// ListByUser returns every session of the user ordered by site.
	ListByUser(ctx context.Context, userID string) ([]*domain.Session, error)

	// DeleteByUserAndSite removes the session and reports whether one existed.
	DeleteByUserAndSite(ctx context.Context, userID string, site domain.SiteKey) (bool, error)

	// UpdateStatus writes Status, LastErrorAt, LastError and UpdatedAt of the session by ID,
	// provided the stored updated_at still equals readUpdatedAt. Otherwise it returns
	// ErrSessionChanged and writes nothing.
	UpdateStatus(ctx context.Context, session *domain.Session, readUpdatedAt time.Time) error

	// TouchLastUsed sets last_used_at of the session.
	TouchLastUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error
}

// Config holds the session policy.
type Config struct {
	// DefaultTTL sets expires_at when the upload carries no hint. Zero disables expiry.
	DefaultTTL time.Duration
	// MaxStateBytes bounds the canonical storage state. Zero disables the limit.
	MaxStateBytes int
}

// SessionUseCase defines the session operations exposed to handlers and commands.
type SessionUseCase interface {
	// Upload validates, encrypts and stores a storage state, replacing any previous one.
	// Nothing is written when any step fails.
	Upload(ctx context.Context, input domain.UploadInput) (*domain.UploadResult, error)

	// GetStatus returns the status of the user's session on site. A missing session yields a
	// NOT_CONNECTED view, not an error. The blob is never decrypted.
	GetStatus(ctx context.Context, userID, site string) (*domain.StatusView, error)

	// GetAll returns the status of every stored session of the user.
	GetAll(ctx context.Context, userID string) ([]*domain.StatusView, error)

	// Delete removes the session and reports whether one existed.
	Delete(ctx context.Context, userID, site string) (bool, error)

	// Validate maps the current status to a human readable message without side effects.
	Validate(ctx context.Context, userID, site string) (*domain.ValidationResult, error)

	// OpenForReplay decrypts an ACTIVE session for the scraper.
	OpenForReplay(ctx context.Context, userID, site string) (*domain.ReplaySession, error)

	// MarkNeedsReauth records that the target site rejected the session.
	MarkNeedsReauth(ctx context.Context, userID, site, reason string) error

	// MarkUsed records a successful replay.
	MarkUsed(ctx context.Context, userID, site string) error
}
