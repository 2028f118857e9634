package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/service"
	"go.uber.org/zap"
)

// AIEstimateHandler queues AI estimates and reports on them
type AIEstimateHandler struct {
	aiService *service.AIEstimateService
	logger    *zap.Logger
}

func NewAIEstimateHandler(aiService *service.AIEstimateService, logger *zap.Logger) *AIEstimateHandler {
	return &AIEstimateHandler{
		aiService: aiService,
		logger:    logger,
	}
}

// Submit godoc
// @Summary Request AI estimate
// @Description Create a processing estimate and queue it for the AI estimator. Poll the task or the estimate for the result.
// @Tags AI
// @Accept json
// @Produce json
// @Param request body domain.AIEstimateRequest true "Project details"
// @Success 202 {object} domain.AITaskDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Unknown location"
// @Failure 503 {object} domain.APIError "AI estimation unavailable"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/ai [post]
func (h *AIEstimateHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.AIEstimateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, err := h.aiService.Submit(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "queue AI estimate")
		return
	}

	w.Header().Set("Location", "/api/v1/estimates/ai/tasks/"+task.TaskID)
	respondJSON(w, http.StatusAccepted, task)
}

// TaskStatus godoc
// @Summary AI task status
// @Tags AI
// @Produce json
// @Param taskId path string true "Task ID"
// @Success 200 {object} domain.AITaskDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/ai/tasks/{taskId} [get]
func (h *AIEstimateHandler) TaskStatus(w http.ResponseWriter, r *http.Request) {
	task, err := h.aiService.TaskStatus(r.Context(), chi.URLParam(r, "taskId"))
	if err != nil {
		respondServiceError(w, h.logger, err, "get AI task")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// Get godoc
// @Summary Get AI analysis
// @Description The stored AI analysis of an estimate, exactly as the estimator returned it
// @Tags AI
// @Produce json
// @Param id path string true "Estimate ID" format(uuid)
// @Success 200 {object} domain.AIEstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id}/ai [get]
func (h *AIEstimateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "estimate")
	if !ok {
		return
	}

	ai, err := h.aiService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get AI estimate")
		return
	}
	respondJSON(w, http.StatusOK, ai)
}
