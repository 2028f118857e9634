package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jengaest/estimate-api/internal/mapper"
	"github.com/jengaest/estimate-api/internal/service"
	"go.uber.org/zap"
)

// ReferenceHandler exposes project types and locations
type ReferenceHandler struct {
	referenceService *service.ReferenceService
	logger           *zap.Logger
}

func NewReferenceHandler(referenceService *service.ReferenceService, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		referenceService: referenceService,
		logger:           logger,
	}
}

// ListProjectTypes godoc
// @Summary List project types
// @Tags Reference
// @Produce json
// @Param category query string false "Filter by category" Enums(residential, commercial, infrastructure, industrial)
// @Success 200 {array} domain.ProjectTypeDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /project-types [get]
func (h *ReferenceHandler) ListProjectTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.referenceService.ListProjectTypes(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list project types")
		return
	}
	respondJSON(w, http.StatusOK, types)
}

// GetProjectType godoc
// @Summary Get project type
// @Description Look up a project type by id or case-insensitive name
// @Tags Reference
// @Produce json
// @Param ref path string true "Project type id or name"
// @Success 200 {object} domain.ProjectTypeDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /project-types/{ref} [get]
func (h *ReferenceHandler) GetProjectType(w http.ResponseWriter, r *http.Request) {
	pt, err := h.referenceService.GetProjectType(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		respondServiceError(w, h.logger, err, "get project type")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToProjectTypeDTO(pt))
}

// ListLocations godoc
// @Summary List locations
// @Tags Reference
// @Produce json
// @Param region query string false "Filter by region"
// @Success 200 {array} domain.LocationDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /locations [get]
func (h *ReferenceHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.referenceService.ListLocations(r.Context(), r.URL.Query().Get("region"))
	if err != nil {
		respondServiceError(w, h.logger, err, "list locations")
		return
	}
	respondJSON(w, http.StatusOK, locations)
}

// GetLocation godoc
// @Summary Get location
// @Description Look up a location by numeric id, 3-digit county code or case-insensitive county name
// @Tags Reference
// @Produce json
// @Param ref path string true "Location id, county code or name"
// @Success 200 {object} domain.LocationDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /locations/{ref} [get]
func (h *ReferenceHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := h.referenceService.GetLocation(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		respondServiceError(w, h.logger, err, "get location")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToLocationDTO(loc))
}
