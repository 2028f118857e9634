package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EstimateFilters defines filter options for estimate listing
type EstimateFilters struct {
	Search        string
	ProjectTypeID *uuid.UUID
	LocationID    *uint
	Status        *domain.EstimateStatus
	Source        *domain.EstimateSource
}

// estimateSortableFields maps API field names to columns. Only these may be sorted on.
var estimateSortableFields = map[string]string{
	"createdAt":          "created_at",
	"updatedAt":          "updated_at",
	"totalEstimatedCost": "total_estimated_cost",
	"projectName":        "project_name",
	"status":             "status",
}

// EstimateRepository handles estimate data access
type EstimateRepository struct {
	db *gorm.DB
}

// NewEstimateRepository creates a new estimate repository
func NewEstimateRepository(db *gorm.DB) *EstimateRepository {
	return &EstimateRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *EstimateRepository) WithTx(tx *gorm.DB) *EstimateRepository {
	return &EstimateRepository{db: tx}
}

// Create inserts an estimate together with its items
func (r *EstimateRepository) Create(ctx context.Context, estimate *domain.Estimate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(estimate).Error; err != nil {
			return err
		}
		if len(estimate.Items) == 0 {
			return nil
		}
		for i := range estimate.Items {
			estimate.Items[i].EstimateID = estimate.ID
		}
		return tx.Create(&estimate.Items).Error
	})
}

// GetByID retrieves an estimate visible to the current user, with items ordered
// by category then name and its reference data loaded
func (r *EstimateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Estimate, error) {
	var estimate domain.Estimate
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("category ASC, name ASC")
		}).
		Preload("ProjectType").
		Preload("Location").
		Where("id = ?", id)
	query = ApplyOwnerFilter(ctx, query)

	if err := query.First(&estimate).Error; err != nil {
		return nil, err
	}
	return &estimate, nil
}

// GetForUpdate loads the bare estimate row and locks it until the surrounding
// transaction ends. sqlite ignores the lock clause and serialises writers instead.
func (r *EstimateRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Estimate, error) {
	var estimate domain.Estimate
	query := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id)
	query = ApplyOwnerFilter(ctx, query)

	if err := query.First(&estimate).Error; err != nil {
		return nil, err
	}
	return &estimate, nil
}

// GetByTaskID returns the estimate created for a background task
func (r *EstimateRepository) GetByTaskID(ctx context.Context, taskID string) (*domain.Estimate, error) {
	var estimate domain.Estimate
	query := ApplyOwnerFilter(ctx, r.db.WithContext(ctx).Where("task_id = ?", taskID))
	if err := query.First(&estimate).Error; err != nil {
		return nil, err
	}
	return &estimate, nil
}

// Save writes the estimate's own columns; items are managed by EstimateItemRepository
func (r *EstimateRepository) Save(ctx context.Context, estimate *domain.Estimate) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(estimate).Error
}

// UpdateFields applies a column map to one estimate
func (r *EstimateRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&domain.Estimate{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes an estimate and everything it owns
func (r *EstimateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&domain.EstimateItem{},
			&domain.EstimateRevision{},
			&domain.EstimateShare{},
			&domain.AIEstimate{},
		} {
			if err := tx.Where("estimate_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&domain.Estimate{}, "id = ?", id).Error
	})
}

// List returns a page of estimates visible to the current user
func (r *EstimateRepository) List(ctx context.Context, page, pageSize int, filters *EstimateFilters, sort SortConfig) ([]domain.Estimate, int64, error) {
	var estimates []domain.Estimate
	var total int64

	page, pageSize = NormalizePage(page, pageSize)

	query := ApplyOwnerFilter(ctx, r.db.WithContext(ctx).Model(&domain.Estimate{}))

	if filters != nil {
		if filters.Search != "" {
			pattern := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where("(LOWER(project_name) LIKE ? OR LOWER(project_description) LIKE ?)", pattern, pattern)
		}
		if filters.ProjectTypeID != nil {
			query = query.Where("project_type_id = ?", *filters.ProjectTypeID)
		}
		if filters.LocationID != nil {
			query = query.Where("location_id = ?", *filters.LocationID)
		}
		if filters.Status != nil {
			query = query.Where("status = ?", *filters.Status)
		}
		if filters.Source != nil {
			query = query.Where("source = ?", *filters.Source)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderClause := BuildOrderClause(sort, estimateSortableFields, "created_at")

	offset := (page - 1) * pageSize
	err := query.
		Preload("ProjectType").
		Preload("Location").
		Order(orderClause).
		Offset(offset).
		Limit(pageSize).
		Find(&estimates).Error

	return estimates, total, err
}

// EstimateStats holds aggregated estimate statistics
type EstimateStats struct {
	Total          int64
	Recent         int64
	TotalValue     decimal.Decimal
	ByBuildingType map[string]int64
	ByStatus       map[string]int64
}

type groupCount struct {
	GroupKey string
	Count    int64
}

// Statistics aggregates the estimates visible to the current user.
// Recent counts estimates created at or after since.
func (r *EstimateRepository) Statistics(ctx context.Context, since time.Time) (*EstimateStats, error) {
	base := func() *gorm.DB {
		return ApplyOwnerFilter(ctx, r.db.WithContext(ctx).Model(&domain.Estimate{}))
	}

	stats := &EstimateStats{
		ByBuildingType: make(map[string]int64),
		ByStatus:       make(map[string]int64),
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("created_at >= ?", since).Count(&stats.Recent).Error; err != nil {
		return nil, err
	}

	var sum decimal.NullDecimal
	if err := base().Select("SUM(total_estimated_cost)").Row().Scan(&sum); err != nil {
		return nil, err
	}
	stats.TotalValue = sum.Decimal.Round(2)

	var byType []groupCount
	if err := base().Select("building_type AS group_key, COUNT(*) AS count").Group("building_type").Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, g := range byType {
		key := g.GroupKey
		if key == "" {
			key = "unspecified"
		}
		stats.ByBuildingType[key] += g.Count
	}

	var byStatus []groupCount
	if err := base().Select("status AS group_key, COUNT(*) AS count").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, g := range byStatus {
		stats.ByStatus[g.GroupKey] = g.Count
	}

	return stats, nil
}

// MarkStaleProcessing moves estimates stuck in processing since before cutoff to error.
// Returns the number of estimates changed.
func (r *EstimateRepository) MarkStaleProcessing(ctx context.Context, cutoff time.Time, reason string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Estimate{}).
		Where("status = ?", domain.EstimateStatusProcessing).
		Where("((processing_started_at IS NOT NULL AND processing_started_at < ?) OR (processing_started_at IS NULL AND created_at < ?))", cutoff, cutoff).
		Updates(map[string]interface{}{
			"status":           domain.EstimateStatusError,
			"processing_error": reason,
		})
	return result.RowsAffected, result.Error
}
