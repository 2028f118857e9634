package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/aiestimator"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/mapper"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// defaultAIArea is assumed when an AI request carries no floor area
var defaultAIArea = decimal.NewFromInt(100)

// Estimator produces an AI cost analysis for a project
type Estimator interface {
	Estimate(ctx context.Context, details aiestimator.ProjectDetails) (*aiestimator.Result, error)
	Model() string
}

// TaskQueue runs work outside the request that submitted it
type TaskQueue interface {
	Submit(task func(ctx context.Context)) error
}

// AIEstimateService creates estimates from the AI collaborator's analysis
type AIEstimateService struct {
	db           *gorm.DB
	estimateRepo *repository.EstimateRepository
	aiRepo       *repository.AIEstimateRepository
	references   *ReferenceService
	calculator   *costing.Calculator
	estimator    Estimator
	queue        TaskQueue
	confidence   decimal.Decimal
	now          func() time.Time
	logger       *zap.Logger
}

// NewAIEstimateService creates the service. A nil estimator disables AI estimation.
func NewAIEstimateService(
	db *gorm.DB,
	estimateRepo *repository.EstimateRepository,
	aiRepo *repository.AIEstimateRepository,
	references *ReferenceService,
	calculator *costing.Calculator,
	estimator Estimator,
	queue TaskQueue,
	confidence decimal.Decimal,
	logger *zap.Logger,
) *AIEstimateService {
	return &AIEstimateService{
		db:           db,
		estimateRepo: estimateRepo,
		aiRepo:       aiRepo,
		references:   references,
		calculator:   calculator,
		estimator:    estimator,
		queue:        queue,
		confidence:   confidence,
		now:          time.Now,
		logger:       logger,
	}
}

// Submit stores a processing estimate and queues the AI call for it
func (s *AIEstimateService) Submit(ctx context.Context, req *domain.AIEstimateRequest) (*domain.AITaskDTO, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}
	if s.estimator == nil || s.queue == nil {
		return nil, ErrAIUnavailable
	}
	if !req.ProjectCategory.IsValid() {
		return nil, invalidf("unknown project category %q", req.ProjectCategory)
	}
	if strings.TrimSpace(req.ProjectName) == "" {
		return nil, invalidf("projectName is required")
	}

	area := defaultAIArea
	if req.TotalArea != nil {
		if req.TotalArea.IsNegative() {
			return nil, invalidf("totalArea must not be negative")
		}
		area = *req.TotalArea
	}

	now := s.now().UTC()
	estimate := &domain.Estimate{
		UserID:              user.UserID,
		UserName:            user.DisplayName,
		ProjectName:         strings.TrimSpace(req.ProjectName),
		ProjectDescription:  req.ProjectDescription,
		ConstructionType:    req.ConstructionType,
		BuildingType:        req.BuildingType,
		DataPeriod:          req.DataPeriod,
		TotalArea:           costing.Present(area),
		Status:              domain.EstimateStatusProcessing,
		Source:              domain.EstimateSourceAIGenerated,
		TaskID:              uuid.NewString(),
		ProcessingStartedAt: &now,
	}
	if estimate.ConstructionType == "" {
		estimate.ConstructionType = domain.ConstructionTypeNew
	}
	if estimate.DataPeriod == "" {
		estimate.DataPeriod = domain.DataPeriodQ1
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pt, loc, err := resolveReferences(ctx, s.references.WithTx(tx), "", req.ProjectCategory, req.Location)
		if err != nil {
			return err
		}

		// Placeholder figures until the AI rate arrives; the worker re-derives them.
		input := estimate.CostInput()
		input.BaseRate = decimal.NullDecimal{}
		input.LocationMultiplier = decimal.NullDecimal{}
		input.ContingencyPercentage = decimal.NullDecimal{}
		applyReferenceRates(&input, estimate, pt, loc)
		estimate.ApplyBreakdown(s.calculator.Compute(input))

		return s.estimateRepo.WithTx(tx).Create(ctx, estimate)
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		s.logger.Error("failed to create AI estimate", zap.Error(err))
		return nil, fmt.Errorf("failed to create AI estimate: %w", err)
	}

	estimateID := estimate.ID
	if err := s.queue.Submit(func(ctx context.Context) {
		s.Process(ctx, estimateID)
	}); err != nil {
		s.logger.Warn("failed to queue AI estimate", zap.Error(err), zap.String("estimateId", estimateID.String()))
		s.fail(context.WithoutCancel(ctx), estimateID, err)
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}

	s.logger.Info("AI estimate queued",
		zap.String("estimateId", estimateID.String()),
		zap.String("taskId", estimate.TaskID),
	)

	return &domain.AITaskDTO{
		EstimateID: estimateID,
		TaskID:     estimate.TaskID,
		Status:     estimate.Status,
	}, nil
}

// Process calls the collaborator for a queued estimate and stores the outcome.
// It runs without a user context and never returns an error; failures land on the estimate.
func (s *AIEstimateService) Process(ctx context.Context, estimateID uuid.UUID) {
	log := s.logger.With(zap.String("estimateId", estimateID.String()))

	estimate, err := s.estimateRepo.GetByID(ctx, estimateID)
	if err != nil {
		log.Error("failed to load estimate for AI processing", zap.Error(err))
		return
	}
	if estimate.Status != domain.EstimateStatusProcessing {
		log.Info("skipping AI processing, estimate is no longer processing", zap.String("status", string(estimate.Status)))
		return
	}

	details := aiestimator.ProjectDetails{
		ProjectName:        estimate.ProjectName,
		ProjectDescription: estimate.ProjectDescription,
		BuildingType:       estimate.BuildingType,
		ConstructionType:   string(estimate.ConstructionType),
		TotalArea:          estimate.TotalArea.Decimal,
		DataPeriod:         string(estimate.DataPeriod),
	}
	if estimate.Location != nil {
		details.LocationName = estimate.Location.CountyName
	}

	result, err := s.estimator.Estimate(ctx, details)
	if err != nil {
		log.Warn("AI estimation failed", zap.Error(err))
		s.fail(ctx, estimateID, err)
		return
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.estimateRepo.WithTx(tx).GetForUpdate(ctx, estimateID)
		if err != nil {
			return err
		}

		baseRate := s.calculator.Defaults().BaseRate
		if result.CostAnalysis.BaseCostPerSqm.Valid && !result.CostAnalysis.BaseCostPerSqm.Decimal.IsNegative() {
			baseRate = result.CostAnalysis.BaseCostPerSqm.Decimal
		}
		locked.BaseCostPerSqm = costing.Round(baseRate)
		locked.Derive(s.calculator)

		completed := s.now().UTC()
		locked.Status = domain.EstimateStatusDraft
		locked.ProcessingCompletedAt = &completed
		locked.ProcessingError = ""
		if err := s.estimateRepo.WithTx(tx).Save(ctx, locked); err != nil {
			return err
		}

		return s.aiRepo.WithTx(tx).Upsert(ctx, &domain.AIEstimate{
			EstimateID:      estimateID,
			Model:           s.estimator.Model(),
			ConfidenceScore: s.confidence,
			CostAnalysis:    datatypes.JSON(result.CostAnalysisRaw),
			Breakdown:       datatypes.JSON(result.Breakdown),
			Recommendations: datatypes.JSON(result.Recommendations),
			RiskFactors:     datatypes.JSON(result.RiskFactors),
			RawResponse:     datatypes.JSON(result.Raw),
		})
	})
	if err != nil {
		log.Error("failed to store AI estimate", zap.Error(err))
		s.fail(ctx, estimateID, err)
		return
	}

	log.Info("AI estimate completed")
}

// Get returns the stored AI record of an estimate visible to the caller
func (s *AIEstimateService) Get(ctx context.Context, estimateID uuid.UUID) (*domain.AIEstimateDTO, error) {
	if _, err := s.estimateRepo.GetByID(ctx, estimateID); err != nil {
		return nil, translateGet(err, "failed to get estimate")
	}

	ai, err := s.aiRepo.GetByEstimate(ctx, estimateID)
	if err != nil {
		return nil, translateGet(err, "failed to get AI estimate")
	}

	dto := mapper.ToAIEstimateDTO(ai)
	return &dto, nil
}

// TaskStatus reports the state of the estimate created for a task
func (s *AIEstimateService) TaskStatus(ctx context.Context, taskID string) (*domain.AITaskDTO, error) {
	estimate, err := s.estimateRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, translateGet(err, "failed to get task")
	}
	return &domain.AITaskDTO{
		EstimateID: estimate.ID,
		TaskID:     estimate.TaskID,
		Status:     estimate.Status,
		Error:      estimate.ProcessingError,
	}, nil
}

func (s *AIEstimateService) fail(ctx context.Context, estimateID uuid.UUID, cause error) {
	completed := s.now().UTC()
	err := s.estimateRepo.UpdateFields(ctx, estimateID, map[string]interface{}{
		"status":                  domain.EstimateStatusError,
		"processing_error":        cause.Error(),
		"processing_completed_at": completed,
	})
	if err != nil {
		s.logger.Error("failed to record AI failure", zap.Error(err), zap.String("estimateId", estimateID.String()))
	}
}

// ExpireStale fails estimates that have been processing for longer than timeout
func (s *AIEstimateService) ExpireStale(ctx context.Context, timeout time.Duration) (int64, error) {
	if timeout <= 0 {
		return 0, nil
	}
	count, err := s.estimateRepo.MarkStaleProcessing(ctx, s.now().Add(-timeout).UTC(), "processing timed out")
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale estimates: %w", err)
	}
	if count > 0 {
		s.logger.Warn("expired stale AI estimates", zap.Int64("count", count), zap.Duration("timeout", timeout))
	}
	return count, nil
}
