// Package http provides HTTP handlers for external marketplace sessions.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/radarone/vault/internal/auth/http"
	"github.com/radarone/vault/internal/httputil"
	"github.com/radarone/vault/internal/session/domain"
	"github.com/radarone/vault/internal/session/http/dto"
	sessionUseCase "github.com/radarone/vault/internal/session/usecase"
	customValidation "github.com/radarone/vault/internal/validation"
)

// SessionHandler handles HTTP requests for the authenticated user's marketplace sessions.
type SessionHandler struct {
	sessionUseCase sessionUseCase.SessionUseCase
	maxBodyBytes   int64
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
//
// Upload bodies are capped at twice maxStateBytes, leaving room for JSON escaping and base64
// before the use case checks the canonical size. Zero disables the cap.
func NewSessionHandler(
	sessionUseCase sessionUseCase.SessionUseCase,
	maxStateBytes int,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		maxBodyBytes:   2 * int64(maxStateBytes),
		logger:         logger,
	}
}

// ListSitesHandler returns the supported marketplaces.
// GET /v1/sites - Returns 200 OK.
func (h *SessionHandler) ListSitesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapSitesToResponse(domain.Sites()))
}

// UploadHandler stores or replaces the session of a site.
// POST /v1/sessions/:site - Returns 200 OK with the session metadata.
func (h *SessionHandler) UploadHandler(c *gin.Context) {
	userID, ok := authHTTP.RequireUserID(c, h.logger)
	if !ok {
		return
	}

	site, ok := h.siteParam(c)
	if !ok {
		return
	}

	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var req dto.UploadSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.HandleErrorGin(c, domain.ErrStorageStateTooLarge, h.logger)
			return
		}
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.sessionUseCase.Upload(c.Request.Context(), domain.UploadInput{
		UserID:       userID,
		Site:         site,
		StorageState: req.StorageStateInput(),
		AccountLabel: req.AccountLabel,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUploadResultToResponse(result))
}

// GetHandler returns the status of the session of a site.
// GET /v1/sessions/:site - Returns 200 OK, with status NOT_CONNECTED when none is stored.
func (h *SessionHandler) GetHandler(c *gin.Context) {
	userID, ok := authHTTP.RequireUserID(c, h.logger)
	if !ok {
		return
	}

	site, ok := h.siteParam(c)
	if !ok {
		return
	}

	view, err := h.sessionUseCase.GetStatus(c.Request.Context(), userID, site)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatusViewToResponse(view))
}

// ListHandler returns every stored session of the authenticated user.
// GET /v1/sessions - Returns 200 OK.
func (h *SessionHandler) ListHandler(c *gin.Context) {
	userID, ok := authHTTP.RequireUserID(c, h.logger)
	if !ok {
		return
	}

	views, err := h.sessionUseCase.GetAll(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatusViewsToResponse(views))
}

// DeleteHandler removes the session of a site.
// DELETE /v1/sessions/:site - Returns 200 OK with {"deleted": bool}; a missing session is not an error.
func (h *SessionHandler) DeleteHandler(c *gin.Context) {
	userID, ok := authHTTP.RequireUserID(c, h.logger)
	if !ok {
		return
	}

	site, ok := h.siteParam(c)
	if !ok {
		return
	}

	deleted, err := h.sessionUseCase.Delete(c.Request.Context(), userID, site)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteSessionResponse{Deleted: deleted})
}

// ValidateHandler reports whether the session of a site is usable.
// GET /v1/sessions/:site/validate - Returns 200 OK with {status, message}.
func (h *SessionHandler) ValidateHandler(c *gin.Context) {
	userID, ok := authHTTP.RequireUserID(c, h.logger)
	if !ok {
		return
	}

	site, ok := h.siteParam(c)
	if !ok {
		return
	}

	result, err := h.sessionUseCase.Validate(c.Request.Context(), userID, site)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapValidationResultToResponse(result))
}

// siteParam reads the :site path parameter. Keys are case-insensitive in URLs.
func (h *SessionHandler) siteParam(c *gin.Context) (string, bool) {
	site := strings.ToUpper(strings.TrimSpace(c.Param("site")))
	if err := dto.ValidateSiteParam(site); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return "", false
	}
	return site, true
}
