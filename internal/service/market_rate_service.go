package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/marketdata"
	"github.com/jengaest/estimate-api/internal/repository"
	"go.uber.org/zap"
)

// RateSource publishes current county multipliers and project-type base rates
type RateSource interface {
	IsEnabled() bool
	CountyRates(ctx context.Context) ([]marketdata.CountyRate, error)
	ProjectRates(ctx context.Context) ([]marketdata.ProjectRate, error)
	HealthCheck(ctx context.Context) *marketdata.HealthStatus
}

// MarketRateSyncResult counts what one sync changed
type MarketRateSyncResult struct {
	LocationsUpdated    int64 `json:"locationsUpdated"`
	ProjectTypesUpdated int64 `json:"projectTypesUpdated"`
	Skipped             int   `json:"skipped"`
}

// MarketRateService copies published market rates onto reference data.
// Estimates keep the rates they were created with.
type MarketRateService struct {
	source          RateSource
	locationRepo    *repository.LocationRepository
	projectTypeRepo *repository.ProjectTypeRepository
	logger          *zap.Logger
}

func NewMarketRateService(
	source RateSource,
	locationRepo *repository.LocationRepository,
	projectTypeRepo *repository.ProjectTypeRepository,
	logger *zap.Logger,
) *MarketRateService {
	return &MarketRateService{
		source:          source,
		locationRepo:    locationRepo,
		projectTypeRepo: projectTypeRepo,
		logger:          logger,
	}
}

// IsEnabled reports whether a market-rate source is configured
func (s *MarketRateService) IsEnabled() bool {
	return s.source != nil && s.source.IsEnabled()
}

// Sync applies every published rate. Non-positive rates are skipped and
// rates that match the stored value leave the row untouched.
func (s *MarketRateService) Sync(ctx context.Context) (*MarketRateSyncResult, error) {
	if !s.IsEnabled() {
		s.logger.Info("market data not available, skipping rate sync")
		return nil, ErrMarketDataUnavailable
	}

	counties, err := s.source.CountyRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read county rates: %w", err)
	}
	projects, err := s.source.ProjectRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read project rates: %w", err)
	}

	result := &MarketRateSyncResult{}
	for _, rate := range counties {
		code := strings.TrimSpace(rate.CountyCode)
		if code == "" || !rate.CostMultiplier.IsPositive() {
			result.Skipped++
			continue
		}
		n, err := s.locationRepo.UpdateMultiplierByCode(ctx, code, costing.Round(rate.CostMultiplier))
		if err != nil {
			return result, fmt.Errorf("failed to update county %s: %w", code, err)
		}
		result.LocationsUpdated += n
	}

	for _, rate := range projects {
		name := strings.TrimSpace(rate.ProjectTypeName)
		if name == "" || !rate.BaseCostPerSqm.IsPositive() {
			result.Skipped++
			continue
		}
		n, err := s.projectTypeRepo.UpdateBaseCostByName(ctx, name, costing.Round(rate.BaseCostPerSqm))
		if err != nil {
			return result, fmt.Errorf("failed to update project type %s: %w", name, err)
		}
		result.ProjectTypesUpdated += n
	}

	s.logger.Info("market rate sync completed",
		zap.Int64("locations_updated", result.LocationsUpdated),
		zap.Int64("project_types_updated", result.ProjectTypesUpdated),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// Health reports the state of the market-rate source
func (s *MarketRateService) Health(ctx context.Context) *marketdata.HealthStatus {
	if !s.IsEnabled() {
		return &marketdata.HealthStatus{Status: "disabled"}
	}
	return s.source.HealthCheck(ctx)
}
