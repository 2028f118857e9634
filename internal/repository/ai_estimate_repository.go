package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AIEstimateRepository stores AI collaborator responses
type AIEstimateRepository struct {
	db *gorm.DB
}

// NewAIEstimateRepository creates a new AI estimate repository
func NewAIEstimateRepository(db *gorm.DB) *AIEstimateRepository {
	return &AIEstimateRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *AIEstimateRepository) WithTx(tx *gorm.DB) *AIEstimateRepository {
	return &AIEstimateRepository{db: tx}
}

// Upsert stores the AI record for an estimate, replacing any previous one
func (r *AIEstimateRepository) Upsert(ctx context.Context, ai *domain.AIEstimate) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "estimate_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"model", "confidence_score", "cost_analysis", "breakdown",
			"recommendations", "risk_factors", "raw_response", "updated_at",
		}),
	}).Create(ai).Error
}

// GetByEstimate returns the AI record for an estimate
func (r *AIEstimateRepository) GetByEstimate(ctx context.Context, estimateID uuid.UUID) (*domain.AIEstimate, error) {
	var ai domain.AIEstimate
	if err := r.db.WithContext(ctx).Where("estimate_id = ?", estimateID).First(&ai).Error; err != nil {
		return nil, err
	}
	return &ai, nil
}
