package handler

import (
	"net/http"

	"github.com/jengaest/estimate-api/internal/service"
	"go.uber.org/zap"
)

// MarketDataHandler exposes the market-rate source to staff
type MarketDataHandler struct {
	marketRateService *service.MarketRateService
	logger            *zap.Logger
}

func NewMarketDataHandler(marketRateService *service.MarketRateService, logger *zap.Logger) *MarketDataHandler {
	return &MarketDataHandler{
		marketRateService: marketRateService,
		logger:            logger,
	}
}

// Sync godoc
// @Summary Sync market rates
// @Description Pull county multipliers and project-type base rates from the market data warehouse now. Staff only.
// @Tags Market Data
// @Produce json
// @Success 200 {object} service.MarketRateSyncResult
// @Failure 403 {object} domain.APIError
// @Failure 503 {object} domain.APIError "Market data source not configured"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /market-data/sync [post]
func (h *MarketDataHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.marketRateService.Sync(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "sync market rates")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Health godoc
// @Summary Market data health
// @Description Connectivity of the market data warehouse. Reports "disabled" when not configured.
// @Tags Market Data
// @Produce json
// @Success 200 {object} marketdata.HealthStatus
// @Failure 503 {object} marketdata.HealthStatus
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /market-data/health [get]
func (h *MarketDataHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.marketRateService.Health(r.Context())
	code := http.StatusOK
	if status.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, status)
}
