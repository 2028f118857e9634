// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/database"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated, isolated in-memory sqlite database
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateProjectType inserts an active project type
func CreateProjectType(t *testing.T, db *gorm.DB, name string, category domain.ProjectCategory, baseCost string) *domain.ProjectType {
	t.Helper()
	pt := &domain.ProjectType{
		Name:           name,
		Category:       category,
		BaseCostPerSqm: decimal.RequireFromString(baseCost),
		IsActive:       true,
	}
	require.NoError(t, db.Create(pt).Error)
	return pt
}

// CreateLocation inserts an active location
func CreateLocation(t *testing.T, db *gorm.DB, code, name, multiplier string) *domain.Location {
	t.Helper()
	loc := &domain.Location{
		CountyCode:     code,
		CountyName:     name,
		Region:         "Test",
		CostMultiplier: decimal.RequireFromString(multiplier),
		IsActive:       true,
	}
	require.NoError(t, db.Create(loc).Error)
	return loc
}

// CreateEstimate inserts a derived estimate for owner with the given area-driven total inputs
func CreateEstimate(t *testing.T, db *gorm.DB, owner uuid.UUID, name, baseCost, area string) *domain.Estimate {
	t.Helper()
	e := &domain.Estimate{
		UserID:                owner,
		ProjectName:           name,
		ConstructionType:      domain.ConstructionTypeNew,
		BaseCostPerSqm:        decimal.RequireFromString(baseCost),
		LocationMultiplier:    decimal.NewFromInt(1),
		ContingencyPercentage: decimal.NewFromInt(10),
		TotalArea:             decimal.NewNullDecimal(decimal.RequireFromString(area)),
		Status:                domain.EstimateStatusDraft,
		Source:                domain.EstimateSourceManual,
	}
	e.AdjustedCostPerSqm = e.BaseCostPerSqm
	e.TotalEstimatedCost = e.BaseCostPerSqm.Mul(e.TotalArea.Decimal).Round(2)
	e.ContingencyAmount = e.TotalEstimatedCost.Div(decimal.NewFromInt(10)).Round(2)
	require.NoError(t, db.Omit("ProjectType", "Location", "Items").Create(e).Error)
	return e
}

// CreateShare inserts a share token for an estimate
func CreateShare(t *testing.T, db *gorm.DB, estimateID, issuer uuid.UUID, active bool, expiresAt time.Time) *domain.EstimateShare {
	t.Helper()
	share := &domain.EstimateShare{
		EstimateID:  estimateID,
		Token:       uuid.NewString(),
		IsActive:    true,
		ExpiresAt:   expiresAt,
		CreatedByID: issuer,
	}
	require.NoError(t, db.Omit("Estimate").Create(share).Error)
	if !active {
		require.NoError(t, db.Model(share).Update("is_active", false).Error)
		share.IsActive = false
	}
	return share
}
