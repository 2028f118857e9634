package handler

import (
	"net/http"

	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/jengaest/estimate-api/internal/service"
	"go.uber.org/zap"
)

type EstimateHandler struct {
	estimateService *service.EstimateService
	logger          *zap.Logger
}

func NewEstimateHandler(estimateService *service.EstimateService, logger *zap.Logger) *EstimateHandler {
	return &EstimateHandler{
		estimateService: estimateService,
		logger:          logger,
	}
}

// List godoc
// @Summary List estimates
// @Description Paginated list of the caller's estimates. Staff see every estimate.
// @Tags Estimates
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Case-insensitive match on name or description"
// @Param projectType query string false "Project type id or name"
// @Param location query string false "Location id, county code or name"
// @Param status query string false "Filter by status" Enums(draft, pending, approved, rejected, processing, error)
// @Param source query string false "Filter by source" Enums(manual, ai-generated, upload)
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, totalEstimatedCost, projectName, status)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.EstimateDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates [get]
func (h *EstimateHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := service.EstimateListFilter{
		Search:      q.Get("search"),
		ProjectType: q.Get("projectType"),
		Location:    q.Get("location"),
		Status:      q.Get("status"),
		Source:      q.Get("source"),
	}

	sort := repository.DefaultSortConfig()
	if field := q.Get("sortBy"); field != "" {
		sort.Field = field
	}
	if order := q.Get("sortOrder"); order != "" {
		sort.Order = repository.ParseSortOrder(order)
	}

	result, err := h.estimateService.List(r.Context(), parseIntQuery(r, "page", 1), parseIntQuery(r, "pageSize", repository.DefaultPageSize), filter, sort)
	if err != nil {
		respondServiceError(w, h.logger, err, "list estimates")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create estimate
// @Description Create an estimate. Missing rates are taken from the resolved project type and location, then the cost fields are derived.
// @Tags Estimates
// @Accept json
// @Produce json
// @Param request body domain.CreateEstimateRequest true "Estimate data"
// @Success 201 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Unknown project type or location"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates [post]
func (h *EstimateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEstimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	estimate, err := h.estimateService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create estimate")
		return
	}

	w.Header().Set("Location", "/api/v1/estimates/"+estimate.ID.String())
	respondJSON(w, http.StatusCreated, estimate)
}

// GetByID godoc
// @Summary Get estimate
// @Description Get an estimate with its items and reference data
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Success 200 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id} [get]
func (h *EstimateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "estimate")
	if !ok {
		return
	}

	estimate, err := h.estimateService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get estimate")
		return
	}

	respondJSON(w, http.StatusOK, estimate)
}

// Update godoc
// @Summary Update estimate
// @Description Partially update an estimate. Supplying items replaces all of them. A change in total cost appends a revision.
// @Tags Estimates
// @Accept json
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Param request body domain.UpdateEstimateRequest true "Fields to change"
// @Success 200 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError "Concurrent revision"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id} [put]
func (h *EstimateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "estimate")
	if !ok {
		return
	}

	var req domain.UpdateEstimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	estimate, err := h.estimateService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update estimate")
		return
	}

	respondJSON(w, http.StatusOK, estimate)
}

// Delete godoc
// @Summary Delete estimate
// @Description Permanently delete an estimate with its items, revisions, shares and AI record
// @Tags Estimates
// @Param id path string true "Estimate ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id} [delete]
func (h *EstimateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "estimate")
	if !ok {
		return
	}

	if err := h.estimateService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete estimate")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Duplicate godoc
// @Summary Duplicate estimate
// @Description Copy an estimate and its items into a new draft owned by the caller
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Success 201 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id}/duplicate [post]
func (h *EstimateHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "estimate")
	if !ok {
		return
	}

	estimate, err := h.estimateService.Duplicate(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "duplicate estimate")
		return
	}

	w.Header().Set("Location", "/api/v1/estimates/"+estimate.ID.String())
	respondJSON(w, http.StatusCreated, estimate)
}

// ListRevisions godoc
// @Summary List estimate revisions
// @Description Revision ledger of an estimate, oldest first
// @Tags Estimates
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Success 200 {array} domain.EstimateRevisionDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id}/revisions [get]
func (h *EstimateHandler) ListRevisions(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "estimate")
	if !ok {
		return
	}

	revisions, err := h.estimateService.ListRevisions(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "list revisions")
		return
	}

	respondJSON(w, http.StatusOK, revisions)
}

// Statistics godoc
// @Summary Estimate statistics
// @Description Counts and total value of the caller's estimates, or of every estimate for staff
// @Tags Estimates
// @Produce json
// @Success 200 {object} domain.EstimateStatisticsDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/statistics [get]
func (h *EstimateHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.estimateService.Statistics(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "compute statistics")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
