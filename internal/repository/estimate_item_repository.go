package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/domain"
	"gorm.io/gorm"
)

// EstimateItemRepository handles estimate line items
type EstimateItemRepository struct {
	db *gorm.DB
}

// NewEstimateItemRepository creates a new estimate item repository
func NewEstimateItemRepository(db *gorm.DB) *EstimateItemRepository {
	return &EstimateItemRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *EstimateItemRepository) WithTx(tx *gorm.DB) *EstimateItemRepository {
	return &EstimateItemRepository{db: tx}
}

// ListByEstimate returns an estimate's items ordered by category then name
func (r *EstimateItemRepository) ListByEstimate(ctx context.Context, estimateID uuid.UUID) ([]domain.EstimateItem, error) {
	var items []domain.EstimateItem
	err := r.db.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Order("category ASC, name ASC").
		Find(&items).Error
	return items, err
}

// ReplaceForEstimate deletes every item of the estimate and inserts items in their place
func (r *EstimateItemRepository) ReplaceForEstimate(ctx context.Context, estimateID uuid.UUID, items []domain.EstimateItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("estimate_id = ?", estimateID).Delete(&domain.EstimateItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = uuid.Nil
			items[i].EstimateID = estimateID
		}
		return tx.Create(&items).Error
	})
}

// CloneItems copies every item of source onto target and returns the copies
func (r *EstimateItemRepository) CloneItems(ctx context.Context, sourceID, targetID uuid.UUID) ([]domain.EstimateItem, error) {
	items, err := r.ListByEstimate(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	clones := make([]domain.EstimateItem, len(items))
	for i, item := range items {
		clones[i] = domain.EstimateItem{
			EstimateID:  targetID,
			Category:    item.Category,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Notes:       item.Notes,
		}
	}
	if err := r.db.WithContext(ctx).Create(&clones).Error; err != nil {
		return nil, err
	}
	return clones, nil
}
