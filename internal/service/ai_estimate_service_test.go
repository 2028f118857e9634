package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/aiestimator"
	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/jengaest/estimate-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeEstimator struct {
	result  *aiestimator.Result
	err     error
	details []aiestimator.ProjectDetails
}

func (f *fakeEstimator) Estimate(_ context.Context, details aiestimator.ProjectDetails) (*aiestimator.Result, error) {
	f.details = append(f.details, details)
	return f.result, f.err
}

func (f *fakeEstimator) Model() string { return "test-model" }

// inlineQueue runs tasks immediately, or rejects them when full is set
type inlineQueue struct {
	full bool
}

func (q *inlineQueue) Submit(task func(ctx context.Context)) error {
	if q.full {
		return errors.New("queue full")
	}
	task(context.Background())
	return nil
}

func createAIEstimateService(db *gorm.DB, estimator service.Estimator, queue service.TaskQueue) *service.AIEstimateService {
	return service.NewAIEstimateService(
		db,
		repository.NewEstimateRepository(db),
		repository.NewAIEstimateRepository(db),
		createReferenceService(db),
		costing.NewCalculator(costing.StandardDefaults()),
		estimator,
		queue,
		decimal.RequireFromString("85.00"),
		zap.NewNop(),
	)
}

func aiRequest() *domain.AIEstimateRequest {
	return &domain.AIEstimateRequest{
		ProjectName:     "Mall",
		ProjectCategory: domain.ProjectCategoryCommercial,
		BuildingType:    "retail",
		Location:        "Nakuru",
	}
}

func TestAIEstimateService_Submit(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateLocation(t, db, "032", "Nakuru", "1.10")
	owner := uuid.New()
	ctx := userContext(owner)

	t.Run("successful analysis sets the base rate and stores the record", func(t *testing.T) {
		result, err := aiestimator.ParseResult(`{
			"cost_analysis": {"base_cost_per_sqm": 42000, "location_multiplier": 1.3, "adjusted_cost_per_sqm": 54600},
			"breakdown": {"materials": {"total": 1}},
			"recommendations": ["Use local stone"],
			"risk_factors": ["Rainy season"]
		}`)
		require.NoError(t, err)
		estimator := &fakeEstimator{result: result}
		svc := createAIEstimateService(db, estimator, &inlineQueue{})

		task, err := svc.Submit(ctx, aiRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, task.TaskID)
		assert.Equal(t, domain.EstimateStatusProcessing, task.Status)

		require.Len(t, estimator.details, 1)
		assert.Equal(t, "Nakuru", estimator.details[0].LocationName)
		assert.Equal(t, "100.00", estimator.details[0].TotalArea.StringFixed(2))
		assert.Equal(t, "Q1", estimator.details[0].DataPeriod)

		estimate, err := repository.NewEstimateRepository(db).GetByID(ctx, task.EstimateID)
		require.NoError(t, err)
		assert.Equal(t, domain.EstimateStatusDraft, estimate.Status)
		assert.Equal(t, domain.EstimateSourceAIGenerated, estimate.Source)
		assert.Equal(t, "42000.00", estimate.BaseCostPerSqm.StringFixed(2))
		// The location multiplier comes from reference data, not the AI reply.
		assert.Equal(t, "1.10", estimate.LocationMultiplier.StringFixed(2))
		assert.Equal(t, "4620000.00", estimate.TotalEstimatedCost.StringFixed(2))
		assert.NotNil(t, estimate.ProcessingCompletedAt)
		require.NotNil(t, estimate.ProjectType)
		assert.Equal(t, "Commercial Project", estimate.ProjectType.Name)

		ai, err := svc.Get(ctx, task.EstimateID)
		require.NoError(t, err)
		assert.Equal(t, "85.00", ai.ConfidenceScore)
		assert.Equal(t, "test-model", ai.Model)
		assert.JSONEq(t, `["Rainy season"]`, string(ai.RiskFactors))

		status, err := svc.TaskStatus(ctx, task.TaskID)
		require.NoError(t, err)
		assert.Equal(t, domain.EstimateStatusDraft, status.Status)
	})

	t.Run("missing rate falls back to the default", func(t *testing.T) {
		svc := createAIEstimateService(db, &fakeEstimator{result: &aiestimator.Result{Raw: json.RawMessage(`{}`)}}, &inlineQueue{})
		task, err := svc.Submit(ctx, aiRequest())
		require.NoError(t, err)

		estimate, err := repository.NewEstimateRepository(db).GetByID(ctx, task.EstimateID)
		require.NoError(t, err)
		assert.Equal(t, "50000.00", estimate.BaseCostPerSqm.StringFixed(2))
	})

	t.Run("collaborator failure marks the estimate as error", func(t *testing.T) {
		svc := createAIEstimateService(db, &fakeEstimator{err: errors.New("upstream 500")}, &inlineQueue{})
		task, err := svc.Submit(ctx, aiRequest())
		require.NoError(t, err)

		status, err := svc.TaskStatus(ctx, task.TaskID)
		require.NoError(t, err)
		assert.Equal(t, domain.EstimateStatusError, status.Status)
		assert.Contains(t, status.Error, "upstream 500")

		_, err = svc.Get(ctx, task.EstimateID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("full queue is unavailable and leaves an error estimate", func(t *testing.T) {
		svc := createAIEstimateService(db, &fakeEstimator{}, &inlineQueue{full: true})
		_, err := svc.Submit(ctx, aiRequest())
		assert.ErrorIs(t, err, service.ErrAIUnavailable)

		var count int64
		require.NoError(t, db.Model(&domain.Estimate{}).Where("status = ? AND processing_error = ?", domain.EstimateStatusError, "queue full").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("disabled estimator", func(t *testing.T) {
		svc := createAIEstimateService(db, nil, &inlineQueue{})
		_, err := svc.Submit(ctx, aiRequest())
		assert.ErrorIs(t, err, service.ErrAIUnavailable)
	})

	t.Run("unknown location", func(t *testing.T) {
		svc := createAIEstimateService(db, &fakeEstimator{}, &inlineQueue{})
		req := aiRequest()
		req.Location = "Atlantis"
		_, err := svc.Submit(ctx, req)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("other users cannot read the AI record", func(t *testing.T) {
		svc := createAIEstimateService(db, &fakeEstimator{}, &inlineQueue{})
		var estimate domain.Estimate
		require.NoError(t, db.Where("source = ?", domain.EstimateSourceAIGenerated).First(&estimate).Error)

		_, err := svc.Get(userContext(uuid.New()), estimate.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
