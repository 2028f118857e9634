package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/jengaest/estimate-api/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func userContext(userID uuid.UUID, roles ...string) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      userID,
		DisplayName: "Test User",
		Email:       "test@example.com",
		Roles:       roles,
	})
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func createReferenceService(db *gorm.DB) *service.ReferenceService {
	return service.NewReferenceService(
		repository.NewProjectTypeRepository(db),
		repository.NewLocationRepository(db),
		decimal.NewFromInt(50000),
		zap.NewNop(),
	)
}

func createEstimateService(t *testing.T, db *gorm.DB) *service.EstimateService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir(), 1<<20)
	require.NoError(t, err)

	return service.NewEstimateService(
		db,
		repository.NewEstimateRepository(db),
		repository.NewEstimateItemRepository(db),
		repository.NewEstimateRevisionRepository(db),
		createReferenceService(db),
		costing.NewCalculator(costing.StandardDefaults()),
		files,
		3,
		zap.NewNop(),
	)
}
