package service

import (
	"context"

	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/mapper"
)

// CalculationService runs stateless cost calculations against reference data
type CalculationService struct {
	references *ReferenceService
	calculator *costing.Calculator
}

func NewCalculationService(references *ReferenceService, calculator *costing.Calculator) *CalculationService {
	return &CalculationService{references: references, calculator: calculator}
}

// Calculate resolves the referenced rates and returns the full breakdown. Nothing is stored.
func (s *CalculationService) Calculate(ctx context.Context, req *domain.CalculateCostRequest) (*domain.CostBreakdownDTO, error) {
	if err := validateCostInputs(req.TotalArea, req.BaseCostPerSqm, req.LocationMultiplier, req.ContingencyPercentage); err != nil {
		return nil, err
	}

	customItems := make([]costing.CustomItem, len(req.CustomItems))
	for i, item := range req.CustomItems {
		if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
			return nil, invalidf("customItems[%d] must not be negative", i)
		}
		customItems[i] = costing.CustomItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice}
	}

	input := costing.Input{
		BaseRate:              nullable(req.BaseCostPerSqm),
		LocationMultiplier:    nullable(req.LocationMultiplier),
		TotalArea:             nullable(req.TotalArea),
		ContingencyPercentage: nullable(req.ContingencyPercentage),
		CustomItems:           customItems,
	}

	// A category-only calculation must not create reference data, so only
	// explicit project types are resolved here.
	pt, loc, err := resolveReferences(ctx, s.references, req.ProjectType, "", req.Location)
	if err != nil {
		return nil, err
	}
	if pt == nil && req.ProjectCategory != "" {
		if !req.ProjectCategory.IsValid() {
			return nil, invalidf("unknown project category %q", req.ProjectCategory)
		}
		if found, err := s.references.projectTypeRepo.FirstActiveByCategory(ctx, req.ProjectCategory); err == nil {
			pt = found
		}
	}

	var scratch domain.Estimate
	applyReferenceRates(&input, &scratch, pt, loc)

	dto := mapper.ToCostBreakdownDTO(s.calculator.Compute(input))
	dto.ProjectTypeID = scratch.ProjectTypeID
	dto.LocationID = scratch.LocationID
	return &dto, nil
}
