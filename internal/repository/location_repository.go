package repository

import (
	"context"

	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LocationRepository handles location reference data
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create inserts a location
func (r *LocationRepository) Create(ctx context.Context, loc *domain.Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

// GetByID retrieves a location by its numeric ID
func (r *LocationRepository) GetByID(ctx context.Context, id uint) (*domain.Location, error) {
	var loc domain.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetByCode retrieves a location by its 3-digit county code
func (r *LocationRepository) GetByCode(ctx context.Context, code string) (*domain.Location, error) {
	var loc domain.Location
	if err := r.db.WithContext(ctx).Where("county_code = ?", code).First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetByName finds a location by case-insensitive county name
func (r *LocationRepository) GetByName(ctx context.Context, name string) (*domain.Location, error) {
	var loc domain.Location
	err := r.db.WithContext(ctx).
		Where("LOWER(county_name) = LOWER(?)", name).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// ListActive returns active locations ordered by county code
func (r *LocationRepository) ListActive(ctx context.Context, region string) ([]domain.Location, error) {
	var locations []domain.Location
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if region != "" {
		query = query.Where("LOWER(region) = LOWER(?)", region)
	}
	err := query.Order("county_code ASC").Find(&locations).Error
	return locations, err
}

// UpdateMultiplierByCode sets the cost multiplier for a county code.
// Returns the number of rows changed.
func (r *LocationRepository) UpdateMultiplierByCode(ctx context.Context, code string, multiplier decimal.Decimal) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Location{}).
		Where("county_code = ? AND cost_multiplier <> ?", code, multiplier).
		Update("cost_multiplier", multiplier)
	return result.RowsAffected, result.Error
}
