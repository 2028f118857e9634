package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectTypeRepository handles project type reference data
type ProjectTypeRepository struct {
	db *gorm.DB
}

// NewProjectTypeRepository creates a new project type repository
func NewProjectTypeRepository(db *gorm.DB) *ProjectTypeRepository {
	return &ProjectTypeRepository{db: db}
}

// Create inserts a project type
func (r *ProjectTypeRepository) Create(ctx context.Context, pt *domain.ProjectType) error {
	return r.db.WithContext(ctx).Create(pt).Error
}

// GetByID retrieves a project type by its ID
func (r *ProjectTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectType, error) {
	var pt domain.ProjectType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pt).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

// GetByName finds a project type by case-insensitive name
func (r *ProjectTypeRepository) GetByName(ctx context.Context, name string) (*domain.ProjectType, error) {
	var pt domain.ProjectType
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&pt).Error
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

// FirstActiveByCategory returns the first active project type in a category, by name
func (r *ProjectTypeRepository) FirstActiveByCategory(ctx context.Context, category domain.ProjectCategory) (*domain.ProjectType, error) {
	var pt domain.ProjectType
	err := r.db.WithContext(ctx).
		Where("category = ? AND is_active = ?", category, true).
		Order("name ASC").
		First(&pt).Error
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

// ListActive returns all active project types ordered by category and name
func (r *ProjectTypeRepository) ListActive(ctx context.Context, category *domain.ProjectCategory) ([]domain.ProjectType, error) {
	var types []domain.ProjectType
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	err := query.Order("category ASC, name ASC").Find(&types).Error
	return types, err
}

// UpdateBaseCostByName sets the base cost of the named project type.
// Returns the number of rows changed.
func (r *ProjectTypeRepository) UpdateBaseCostByName(ctx context.Context, name string, baseCost decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.ProjectType{}).
		Where("LOWER(name) = LOWER(?) AND base_cost_per_sqm <> ?", name, baseCost).
		Update("base_cost_per_sqm", baseCost)
	return result.RowsAffected, result.Error
}
