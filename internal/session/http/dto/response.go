package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/radarone/vault/internal/session/domain"
)

// SiteResponse describes a supported marketplace.
type SiteResponse struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Domains []string `json:"domains"`
}

// ListSitesResponse wraps the site registry.
type ListSitesResponse struct {
	Data []SiteResponse `json:"data"`
}

// MapSitesToResponse converts the site registry to its API representation.
func MapSitesToResponse(sites []domain.Site) ListSitesResponse {
	data := make([]SiteResponse, 0, len(sites))
	for _, site := range sites {
		data = append(data, SiteResponse{
			Key:     string(site.Key),
			Name:    site.DisplayName,
			Domains: site.Domains,
		})
	}
	return ListSitesResponse{Data: data}
}

// UploadSessionResponse is returned after a successful upload.
type UploadSessionResponse struct {
	Success   bool               `json:"success"`
	SessionID uuid.UUID          `json:"session_id"`
	Message   string             `json:"message"`
	Meta      domain.SessionMeta `json:"meta"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
}

// MapUploadResultToResponse converts an upload result to its API representation.
func MapUploadResultToResponse(result *domain.UploadResult) UploadSessionResponse {
	return UploadSessionResponse{
		Success:   result.Success,
		SessionID: result.SessionID,
		Message:   result.Message,
		Meta:      result.Meta,
		ExpiresAt: result.ExpiresAt,
	}
}

// SessionStatusResponse is the status of one (user, site) pair. It never carries the blob.
type SessionStatusResponse struct {
	Site         string              `json:"site"`
	SiteName     string              `json:"site_name"`
	Domain       string              `json:"domain"`
	Status       string              `json:"status"`
	HasSession   bool                `json:"has_session"`
	SessionID    *uuid.UUID          `json:"session_id,omitempty"`
	Meta         *domain.SessionMeta `json:"meta,omitempty"`
	AccountLabel *string             `json:"account_label,omitempty"`
	ExpiresAt    *time.Time          `json:"expires_at,omitempty"`
	LastUsedAt   *time.Time          `json:"last_used_at,omitempty"`
	LastErrorAt  *time.Time          `json:"last_error_at,omitempty"`
	UpdatedAt    *time.Time          `json:"updated_at,omitempty"`
}

// MapStatusViewToResponse converts a status view to its API representation.
func MapStatusViewToResponse(view *domain.StatusView) SessionStatusResponse {
	return SessionStatusResponse{
		Site:         string(view.Site),
		SiteName:     view.SiteName,
		Domain:       view.Domain,
		Status:       string(view.Status),
		HasSession:   view.HasSession,
		SessionID:    view.SessionID,
		Meta:         view.Meta,
		AccountLabel: view.AccountLabel,
		ExpiresAt:    view.ExpiresAt,
		LastUsedAt:   view.LastUsedAt,
		LastErrorAt:  view.LastErrorAt,
		UpdatedAt:    view.UpdatedAt,
	}
}

// ListSessionsResponse wraps the sessions of the authenticated user.
type ListSessionsResponse struct {
	Data []SessionStatusResponse `json:"data"`
}

// MapStatusViewsToResponse converts a list of status views.
func MapStatusViewsToResponse(views []*domain.StatusView) ListSessionsResponse {
	data := make([]SessionStatusResponse, 0, len(views))
	for _, view := range views {
		data = append(data, MapStatusViewToResponse(view))
	}
	return ListSessionsResponse{Data: data}
}

// DeleteSessionResponse reports whether a session was removed.
type DeleteSessionResponse struct {
	Deleted bool `json:"deleted"`
}

// ValidateSessionResponse is the result of a validation check.
type ValidateSessionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MapValidationResultToResponse converts a validation result to its API representation.
func MapValidationResultToResponse(result *domain.ValidationResult) ValidateSessionResponse {
	return ValidateSessionResponse{
		Status:  string(result.Status),
		Message: result.Message,
	}
}
