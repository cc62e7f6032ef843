// Package domain defines the external session credential model: the marketplace registry, the
// browser storage-state schema, the session status machine and the persisted record.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the stored browser session of one user on one marketplace.
//
// (UserID, Site) is unique. An upload replaces the whole record: blob, meta and expiry always
// come from the same upload.
type Session struct {
	ID     uuid.UUID
	UserID string
	Site   SiteKey
	Domain string
	// EncryptedBlob is the serialized "iv:tag:ciphertext" of the canonical storage state.
	EncryptedBlob string
	Status        Status
	Meta          SessionMeta
	AccountLabel  *string
	ExpiresAt     *time.Time
	LastUsedAt    *time.Time
	LastErrorAt   *time.Time
	LastError     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectiveStatus returns the status as seen at now: an ACTIVE session past its expiry reads
// as EXPIRED without any write.
func (s *Session) EffectiveStatus(now time.Time) Status {
	if s.Status == StatusActive && s.ExpiresAt != nil && !now.Before(*s.ExpiresAt) {
		return StatusExpired
	}
	return s.Status
}

// StatusView is the read model returned by status queries. It never carries the blob.
type StatusView struct {
	Site         SiteKey
	SiteName     string
	Domain       string
	Status       Status
	HasSession   bool
	SessionID    *uuid.UUID
	Meta         *SessionMeta
	AccountLabel *string
	ExpiresAt    *time.Time
	LastUsedAt   *time.Time
	LastErrorAt  *time.Time
	UpdatedAt    *time.Time
}

// NewStatusView builds the view of a stored session at now.
func NewStatusView(site Site, session *Session, now time.Time) *StatusView {
	meta := session.Meta
	id := session.ID
	updatedAt := session.UpdatedAt
	return &StatusView{
		Site:         site.Key,
		SiteName:     site.DisplayName,
		Domain:       session.Domain,
		Status:       session.EffectiveStatus(now),
		HasSession:   true,
		SessionID:    &id,
		Meta:         &meta,
		AccountLabel: session.AccountLabel,
		ExpiresAt:    session.ExpiresAt,
		LastUsedAt:   session.LastUsedAt,
		LastErrorAt:  session.LastErrorAt,
		UpdatedAt:    &updatedAt,
	}
}

// NotConnectedView builds the view of a site with no stored session.
func NotConnectedView(site Site) *StatusView {
	return &StatusView{
		Site:       site.Key,
		SiteName:   site.DisplayName,
		Domain:     site.Domain(),
		Status:     StatusNotConnected,
		HasSession: false,
	}
}

// ValidationResult is the human readable status of a session.
type ValidationResult struct {
	Status  Status
	Message string
}

// ReplaySession is the decrypted session handed to the scraper.
type ReplaySession struct {
	SessionID uuid.UUID
	UserID    string
	Site      SiteKey
	Domain    string
	// StorageState is the canonical storage-state JSON.
	StorageState string
	ExpiresAt    *time.Time
}

// UploadInput carries an uploaded storage state.
type UploadInput struct {
	UserID string
	Site   string
	// StorageState is JSON text, base64 of JSON text, or a decoded JSON object.
	StorageState any
	AccountLabel string
}

// UploadResult is returned by a successful upload.
type UploadResult struct {
	Success   bool
	SessionID uuid.UUID
	Message   string
	Meta      SessionMeta
	ExpiresAt *time.Time
}
