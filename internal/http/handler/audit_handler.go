package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/service"
	"go.uber.org/zap"
)

// AuditHandler handles audit log related HTTP requests
type AuditHandler struct {
	auditService *service.AuditLogService
	logger       *zap.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditLogService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// List godoc
// @Summary List audit logs
// @Description Returns a paginated list of audit log entries with optional filters. Staff only.
// @Tags Audit
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 200)"
// @Param userId query string false "Filter by user ID"
// @Param action query string false "Filter by action" Enums(create, update, delete)
// @Param entityType query string false "Filter by entity type"
// @Param entityId query string false "Filter by entity ID"
// @Param requestId query string false "Filter by request ID"
// @Param startTime query string false "Filter by start time (RFC3339)"
// @Param endTime query string false "Filter by end time (RFC3339)"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.AuditLogDTO}
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /audit [get]
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.auditService.List(r.Context(), service.AuditLogQuery{
		UserID:     q.Get("userId"),
		Action:     q.Get("action"),
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
		StartTime:  q.Get("startTime"),
		EndTime:    q.Get("endTime"),
		RequestID:  q.Get("requestId"),
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "pageSize", 20),
	})
	if err != nil {
		respondServiceError(w, h.logger, err, "list audit logs")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByEntity godoc
// @Summary Get audit logs for an entity
// @Description Latest audit entries recorded against one entity. Staff only.
// @Tags Audit
// @Produce json
// @Param entityType path string true "Entity type (e.g., Estimate, EstimateShare)"
// @Param entityId path string true "Entity ID" format(uuid)
// @Param limit query int false "Maximum number of entries (default: 50, max: 200)"
// @Success 200 {array} domain.AuditLogDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /audit/entity/{entityType}/{entityId} [get]
func (h *AuditHandler) GetByEntity(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	entityID, err := uuid.Parse(chi.URLParam(r, "entityId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid entity ID format")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	if limit < 1 || limit > 200 {
		limit = 200
	}

	logs, err := h.auditService.GetByEntity(r.Context(), entityType, entityID, limit)
	if err != nil {
		respondServiceError(w, h.logger, err, "list entity audit logs")
		return
	}

	respondJSON(w, http.StatusOK, logs)
}
