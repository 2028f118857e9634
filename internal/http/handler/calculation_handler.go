package handler

import (
	"net/http"

	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/service"
	"go.uber.org/zap"
)

// CalculationHandler serves the stateless cost calculator
type CalculationHandler struct {
	calculationService *service.CalculationService
	logger             *zap.Logger
}

func NewCalculationHandler(calculationService *service.CalculationService, logger *zap.Logger) *CalculationHandler {
	return &CalculationHandler{
		calculationService: calculationService,
		logger:             logger,
	}
}

// Calculate godoc
// @Summary Calculate cost
// @Description Compute a cost breakdown without storing anything. Custom items are added to the grand total; contingency applies to the area subtotal only.
// @Tags Calculator
// @Accept json
// @Produce json
// @Param request body domain.CalculateCostRequest true "Calculation inputs"
// @Success 200 {object} domain.CostBreakdownDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError "Unknown project type or location"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/calculate [post]
func (h *CalculationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req domain.CalculateCostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	breakdown, err := h.calculationService.Calculate(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "calculate cost")
		return
	}

	respondJSON(w, http.StatusOK, breakdown)
}
