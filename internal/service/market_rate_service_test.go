package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/marketdata"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/jengaest/estimate-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRateSource struct {
	counties []marketdata.CountyRate
	projects []marketdata.ProjectRate
	err      error
}

func (f *fakeRateSource) IsEnabled() bool { return true }

func (f *fakeRateSource) CountyRates(context.Context) ([]marketdata.CountyRate, error) {
	return f.counties, f.err
}

func (f *fakeRateSource) ProjectRates(context.Context) ([]marketdata.ProjectRate, error) {
	return f.projects, f.err
}

func (f *fakeRateSource) HealthCheck(context.Context) *marketdata.HealthStatus {
	return &marketdata.HealthStatus{Status: "healthy"}
}

func createMarketRateService(db *gorm.DB, source service.RateSource) *service.MarketRateService {
	return service.NewMarketRateService(
		source,
		repository.NewLocationRepository(db),
		repository.NewProjectTypeRepository(db),
		zap.NewNop(),
	)
}

func TestMarketRateService_Sync(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	nairobi := testutil.CreateLocation(t, db, "047", "Nairobi", "1.20")
	testutil.CreateLocation(t, db, "001", "Mombasa", "1.10")
	pt := testutil.CreateProjectType(t, db, "Office Block", domain.ProjectCategoryCommercial, "40000.00")

	source := &fakeRateSource{
		counties: []marketdata.CountyRate{
			{CountyCode: "047", CostMultiplier: decimal.RequireFromString("1.254")},
			{CountyCode: "001", CostMultiplier: decimal.RequireFromString("1.10")},
			{CountyCode: "099", CostMultiplier: decimal.RequireFromString("0")},
		},
		projects: []marketdata.ProjectRate{
			{ProjectTypeName: "office block", BaseCostPerSqm: decimal.RequireFromString("45000")},
			{ProjectTypeName: "", BaseCostPerSqm: decimal.RequireFromString("1")},
		},
	}
	svc := createMarketRateService(db, source)

	result, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.LocationsUpdated)
	assert.Equal(t, int64(1), result.ProjectTypesUpdated)
	assert.Equal(t, 2, result.Skipped)

	var loc domain.Location
	require.NoError(t, db.First(&loc, nairobi.ID).Error)
	assert.Equal(t, "1.25", loc.CostMultiplier.StringFixed(2))

	var updated domain.ProjectType
	require.NoError(t, db.First(&updated, "id = ?", pt.ID).Error)
	assert.Equal(t, "45000.00", updated.BaseCostPerSqm.StringFixed(2))

	t.Run("source errors are returned", func(t *testing.T) {
		_, err := createMarketRateService(db, &fakeRateSource{err: errors.New("timeout")}).Sync(ctx)
		assert.Error(t, err)
	})

	t.Run("disabled source", func(t *testing.T) {
		var client *marketdata.Client
		disabled := createMarketRateService(db, client)
		assert.False(t, disabled.IsEnabled())

		_, err := disabled.Sync(ctx)
		assert.ErrorIs(t, err, service.ErrMarketDataUnavailable)
		assert.Equal(t, "disabled", disabled.Health(ctx).Status)
	})
}
