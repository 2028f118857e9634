package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/domain"
	"gorm.io/gorm"
)

// EstimateShareRepository handles share tokens
type EstimateShareRepository struct {
	db *gorm.DB
}

// NewEstimateShareRepository creates a new share repository
func NewEstimateShareRepository(db *gorm.DB) *EstimateShareRepository {
	return &EstimateShareRepository{db: db}
}

// Create inserts a share
func (r *EstimateShareRepository) Create(ctx context.Context, share *domain.EstimateShare) error {
	return r.db.WithContext(ctx).Omit("Estimate").Create(share).Error
}

// GetByToken retrieves a share by its token regardless of state
func (r *EstimateShareRepository) GetByToken(ctx context.Context, token string) (*domain.EstimateShare, error) {
	var share domain.EstimateShare
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// GetByID retrieves a share of a given estimate
func (r *EstimateShareRepository) GetByID(ctx context.Context, estimateID, id uuid.UUID) (*domain.EstimateShare, error) {
	var share domain.EstimateShare
	err := r.db.WithContext(ctx).
		Where("id = ? AND estimate_id = ?", id, estimateID).
		First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// ListByEstimate returns an estimate's shares, newest first
func (r *EstimateShareRepository) ListByEstimate(ctx context.Context, estimateID uuid.UUID) ([]domain.EstimateShare, error) {
	var shares []domain.EstimateShare
	err := r.db.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Order("created_at DESC").
		Find(&shares).Error
	return shares, err
}

// Deactivate turns a share off. Deactivating an inactive share is a no-op.
func (r *EstimateShareRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.EstimateShare{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false).Error
}

// DeactivateExpired turns off every active share that expired at or before now.
// Returns the number of shares changed.
func (r *EstimateShareRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.EstimateShare{}).
		Where("is_active = ? AND expires_at <= ?", true, now).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
