// Package http provides HTTP handlers for national id registration and lookup.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/radarone/vault/internal/auth/http"
	"github.com/radarone/vault/internal/httputil"
	"github.com/radarone/vault/internal/nationalid/domain"
	"github.com/radarone/vault/internal/nationalid/http/dto"
	nationalIDUseCase "github.com/radarone/vault/internal/nationalid/usecase"
	customValidation "github.com/radarone/vault/internal/validation"
)

// NationalIDHandler handles HTTP requests for the authenticated user's national id.
type NationalIDHandler struct {
	nationalIDUseCase nationalIDUseCase.NationalIDUseCase
	logger            *slog.Logger
}

// NewNationalIDHandler creates a new national id handler with required dependencies.
func NewNationalIDHandler(
	nationalIDUseCase nationalIDUseCase.NationalIDUseCase,
	logger *slog.Logger,
) *NationalIDHandler {
	return &NationalIDHandler{
		nationalIDUseCase: nationalIDUseCase,
		logger:            logger,
	}
}

// RegisterHandler stores the national id of the authenticated user.
// POST /v1/national-id - Returns 201 Created with the masked record.
func (h *NationalIDHandler) RegisterHandler(c *gin.Context) {
	userID, ok := authHTTP.RequireUserID(c, h.logger)
	if !ok {
		return
	}

	var req dto.RegisterNationalIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.nationalIDUseCase.Register(c.Request.Context(), userID, req.NationalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapNationalIDRecordToResponse(record))
}

// GetHandler returns the masked national id of the authenticated user.
// GET /v1/national-id - Returns 200 OK, or 404 when none is registered.
func (h *NationalIDHandler) GetHandler(c *gin.Context) {
	userID, ok := authHTTP.RequireUserID(c, h.logger)
	if !ok {
		return
	}

	record, err := h.nationalIDUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNationalIDRecordToResponse(record))
}

// CheckHandler validates and formats a candidate national id without reading storage.
// POST /v1/national-id/check - Returns 200 OK.
func (h *NationalIDHandler) CheckHandler(c *gin.Context) {
	var req dto.CheckNationalIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CheckNationalIDResponse{
		Valid:     domain.IsValid(req.NationalID),
		Formatted: domain.Format(req.NationalID),
	})
}
