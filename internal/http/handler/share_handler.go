package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/service"
	"go.uber.org/zap"
)

// ShareHandler issues, lists and revokes share links, and resolves them publicly
type ShareHandler struct {
	shareService *service.ShareService
	logger       *zap.Logger
}

func NewShareHandler(shareService *service.ShareService, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		logger:       logger,
	}
}

// Issue godoc
// @Summary Share estimate
// @Description Issue a read-only share link. Only the owner or staff may share.
// @Tags Shares
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Param request body domain.ShareEstimateRequest false "Recipient and lifetime"
// @Success 201 {object} domain.EstimateShareDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id}/share [post]
func (h *ShareHandler) Issue(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "estimate")
	if !ok {
		return
	}

	var req domain.ShareEstimateRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	share, err := h.shareService.Issue(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "share estimate")
		return
	}

	respondJSON(w, http.StatusCreated, share)
}

// List godoc
// @Summary List estimate shares
// @Tags Shares
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Success 200 {array} domain.EstimateShareDTO
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id}/shares [get]
func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "estimate")
	if !ok {
		return
	}

	shares, err := h.shareService.ListByEstimate(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "list shares")
		return
	}

	respondJSON(w, http.StatusOK, shares)
}

// Revoke godoc
// @Summary Revoke share
// @Tags Shares
// @Param id path string true "Estimate ID" format(uuid)
// @Param shareId path string true "Share ID" format(uuid)
// @Success 204 "No Content"
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id}/shares/{shareId} [delete]
func (h *ShareHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "estimate")
	if !ok {
		return
	}
	shareID, ok := parseUUIDParam(w, r, "shareId", "share")
	if !ok {
		return
	}

	if err := h.shareService.Revoke(r.Context(), id, shareID); err != nil {
		respondServiceError(w, h.logger, err, "revoke share")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Resolve godoc
// @Summary Open shared estimate
// @Description Resolve a share token to a read-only estimate. No authentication.
// @Tags Shares
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} domain.SharedEstimateDTO
// @Failure 404 {object} domain.APIError
// @Failure 410 {object} domain.APIError "Share link expired"
// @Router /shared/{token} [get]
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	shared, err := h.shareService.Resolve(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		respondServiceError(w, h.logger, err, "resolve share")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, shared)
}
