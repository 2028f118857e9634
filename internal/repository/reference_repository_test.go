package repository_test

import (
	"context"
	"testing"

	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/jengaest/estimate-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProjectTypeRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewProjectTypeRepository(db)
	ctx := context.Background()

	testutil.CreateProjectType(t, db, "Villa", domain.ProjectCategoryResidential, "15000")
	testutil.CreateProjectType(t, db, "Apartment Block", domain.ProjectCategoryResidential, "12000")
	testutil.CreateProjectType(t, db, "Office Tower", domain.ProjectCategoryCommercial, "30000")

	t.Run("name lookup is case-insensitive", func(t *testing.T) {
		pt, err := repo.GetByName(ctx, "villa")
		require.NoError(t, err)
		assert.Equal(t, "Villa", pt.Name)
	})

	t.Run("first active in category is by name", func(t *testing.T) {
		pt, err := repo.FirstActiveByCategory(ctx, domain.ProjectCategoryResidential)
		require.NoError(t, err)
		assert.Equal(t, "Apartment Block", pt.Name)
	})

	t.Run("empty category", func(t *testing.T) {
		_, err := repo.FirstActiveByCategory(ctx, domain.ProjectCategoryIndustrial)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("list filtered by category", func(t *testing.T) {
		category := domain.ProjectCategoryCommercial
		types, err := repo.ListActive(ctx, &category)
		require.NoError(t, err)
		require.Len(t, types, 1)
		assert.Equal(t, "Office Tower", types[0].Name)
	})

	t.Run("update base cost skips unchanged rows", func(t *testing.T) {
		changed, err := repo.UpdateBaseCostByName(ctx, "Villa", decimal.NewFromInt(15000))
		require.NoError(t, err)
		assert.Equal(t, int64(0), changed)

		changed, err = repo.UpdateBaseCostByName(ctx, "Villa", decimal.NewFromInt(16000))
		require.NoError(t, err)
		assert.Equal(t, int64(1), changed)
	})
}

func TestLocationRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewLocationRepository(db)
	ctx := context.Background()

	nairobi := testutil.CreateLocation(t, db, "047", "Nairobi", "1.20")
	testutil.CreateLocation(t, db, "001", "Mombasa", "1.10")

	t.Run("by id", func(t *testing.T) {
		loc, err := repo.GetByID(ctx, nairobi.ID)
		require.NoError(t, err)
		assert.Equal(t, "047", loc.CountyCode)
		assert.Equal(t, "1.20", loc.CostMultiplier.StringFixed(2))
	})

	t.Run("by code", func(t *testing.T) {
		loc, err := repo.GetByCode(ctx, "001")
		require.NoError(t, err)
		assert.Equal(t, "Mombasa", loc.CountyName)
	})

	t.Run("by name", func(t *testing.T) {
		loc, err := repo.GetByName(ctx, "NAIROBI")
		require.NoError(t, err)
		assert.Equal(t, nairobi.ID, loc.ID)
	})

	t.Run("list ordered by code", func(t *testing.T) {
		locations, err := repo.ListActive(ctx, "")
		require.NoError(t, err)
		require.Len(t, locations, 2)
		assert.Equal(t, "001", locations[0].CountyCode)
	})

	t.Run("update multiplier", func(t *testing.T) {
		changed, err := repo.UpdateMultiplierByCode(ctx, "047", decimal.RequireFromString("1.25"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), changed)
	})
}
