package service_test

import (
	"context"
	"testing"

	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/jengaest/estimate-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculationService_Calculate(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewCalculationService(createReferenceService(db), costing.NewCalculator(costing.StandardDefaults()))
	ctx := context.Background()

	pt := testutil.CreateProjectType(t, db, "Warehouse", domain.ProjectCategoryIndustrial, "10000.00")
	loc := testutil.CreateLocation(t, db, "022", "Kiambu", "1.20")

	t.Run("references and custom items", func(t *testing.T) {
		got, err := svc.Calculate(ctx, &domain.CalculateCostRequest{
			ProjectType: "warehouse",
			Location:    "22",
			TotalArea:   dec("100"),
			CustomItems: []domain.CustomItemInput{{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(500)}},
		})
		require.NoError(t, err)

		assert.Equal(t, "12000.00", got.AdjustedCostPerSqm)
		assert.Equal(t, "1200000.00", got.AreaSubtotal)
		assert.Equal(t, "1000.00", got.CustomItemsTotal)
		assert.Equal(t, "120000.00", got.ContingencyAmount)
		assert.Equal(t, "1321000.00", got.GrandTotal)
		assert.Equal(t, "720000.00", got.Breakdown.Materials)
		require.NotNil(t, got.ProjectTypeID)
		assert.Equal(t, pt.ID, *got.ProjectTypeID)
		require.NotNil(t, got.LocationID)
		assert.Equal(t, loc.ID, *got.LocationID)
	})

	t.Run("category picks an existing type without creating one", func(t *testing.T) {
		got, err := svc.Calculate(ctx, &domain.CalculateCostRequest{
			ProjectCategory: domain.ProjectCategoryIndustrial,
			TotalArea:       dec("1"),
		})
		require.NoError(t, err)
		assert.Equal(t, "10000.00", got.BaseCostPerSqm)

		got, err = svc.Calculate(ctx, &domain.CalculateCostRequest{
			ProjectCategory: domain.ProjectCategoryCommercial,
			TotalArea:       dec("1"),
		})
		require.NoError(t, err)
		assert.Equal(t, "50000.00", got.BaseCostPerSqm)
		assert.Nil(t, got.ProjectTypeID)

		var count int64
		require.NoError(t, db.Model(&domain.ProjectType{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("no area gives a zero subtotal", func(t *testing.T) {
		got, err := svc.Calculate(ctx, &domain.CalculateCostRequest{})
		require.NoError(t, err)
		assert.Equal(t, "0.00", got.GrandTotal)
		assert.Equal(t, "50000.00", got.AdjustedCostPerSqm)
	})

	t.Run("negative custom item", func(t *testing.T) {
		_, err := svc.Calculate(ctx, &domain.CalculateCostRequest{
			CustomItems: []domain.CustomItemInput{{Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(1)}},
		})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}
