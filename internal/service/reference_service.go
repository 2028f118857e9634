package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/mapper"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReferenceService resolves project types and locations from the loose
// references clients send (ids, codes or names)
type ReferenceService struct {
	projectTypeRepo *repository.ProjectTypeRepository
	locationRepo    *repository.LocationRepository
	defaultBaseRate decimal.Decimal
	logger          *zap.Logger
}

func NewReferenceService(
	projectTypeRepo *repository.ProjectTypeRepository,
	locationRepo *repository.LocationRepository,
	defaultBaseRate decimal.Decimal,
	logger *zap.Logger,
) *ReferenceService {
	return &ReferenceService{
		projectTypeRepo: projectTypeRepo,
		locationRepo:    locationRepo,
		defaultBaseRate: defaultBaseRate,
		logger:          logger,
	}
}

// WithTx returns a service whose lookups and creations run on tx
func (s *ReferenceService) WithTx(tx *gorm.DB) *ReferenceService {
	clone := *s
	clone.projectTypeRepo = repository.NewProjectTypeRepository(tx)
	clone.locationRepo = repository.NewLocationRepository(tx)
	return &clone
}

// GetProjectType looks up a project type by UUID, or by case-insensitive name
func (s *ReferenceService) GetProjectType(ctx context.Context, ref string) (*domain.ProjectType, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, invalidf("project type reference is empty")
	}

	var (
		pt  *domain.ProjectType
		err error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		pt, err = s.projectTypeRepo.GetByID(ctx, id)
	} else {
		pt, err = s.projectTypeRepo.GetByName(ctx, ref)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project type %q", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("failed to get project type: %w", err)
	}
	return pt, nil
}

// ResolveOrCreateProjectType returns the first active project type in the
// category, creating "<Category> Project" at the default base rate when none exists
func (s *ReferenceService) ResolveOrCreateProjectType(ctx context.Context, category domain.ProjectCategory) (*domain.ProjectType, error) {
	if !category.IsValid() {
		return nil, invalidf("unknown project category %q", category)
	}

	pt, err := s.projectTypeRepo.FirstActiveByCategory(ctx, category)
	if err == nil {
		return pt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find project type: %w", err)
	}

	name := categoryTitle(category) + " Project"
	pt = &domain.ProjectType{
		Name:           name,
		Category:       category,
		Description:    fmt.Sprintf("Standard %s construction project", category),
		BaseCostPerSqm: s.defaultBaseRate,
		IsActive:       true,
	}
	if err := s.projectTypeRepo.Create(ctx, pt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// An inactive type already holds the name, or a concurrent request created it.
			return s.GetProjectType(ctx, name)
		}
		return nil, fmt.Errorf("failed to create project type: %w", err)
	}

	s.logger.Info("created default project type",
		zap.String("category", string(category)),
		zap.String("projectTypeId", pt.ID.String()),
	)
	return pt, nil
}

// GetLocation resolves a numeric id, then a zero-padded county code, then a county name
func (s *ReferenceService) GetLocation(ctx context.Context, ref string) (*domain.Location, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, invalidf("location reference is empty")
	}

	if isDigits(ref) {
		if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
			loc, err := s.locationRepo.GetByID(ctx, uint(id))
			if err == nil {
				return loc, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to get location: %w", err)
			}
		}

		if len(ref) <= 3 {
			loc, err := s.locationRepo.GetByCode(ctx, strings.Repeat("0", 3-len(ref))+ref)
			if err == nil {
				return loc, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to get location: %w", err)
			}
		}
	}

	loc, err := s.locationRepo.GetByName(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: location %q", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return loc, nil
}

// ListProjectTypes returns active project types, optionally for one category
func (s *ReferenceService) ListProjectTypes(ctx context.Context, category string) ([]domain.ProjectTypeDTO, error) {
	var filter *domain.ProjectCategory
	if category != "" {
		c := domain.ProjectCategory(strings.ToLower(category))
		if !c.IsValid() {
			return nil, invalidf("unknown project category %q", category)
		}
		filter = &c
	}

	types, err := s.projectTypeRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list project types: %w", err)
	}

	dtos := make([]domain.ProjectTypeDTO, len(types))
	for i := range types {
		dtos[i] = mapper.ToProjectTypeDTO(&types[i])
	}
	return dtos, nil
}

// ListLocations returns active locations, optionally for one region
func (s *ReferenceService) ListLocations(ctx context.Context, region string) ([]domain.LocationDTO, error) {
	locations, err := s.locationRepo.ListActive(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	dtos := make([]domain.LocationDTO, len(locations))
	for i := range locations {
		dtos[i] = mapper.ToLocationDTO(&locations[i])
	}
	return dtos, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func categoryTitle(c domain.ProjectCategory) string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
