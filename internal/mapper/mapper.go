package mapper

import (
	"encoding/json"
	"time"

	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const timestampFormat = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// money renders a decimal with exactly two places
func money(d decimal.Decimal) string {
	return d.StringFixed(costing.MoneyPlaces)
}

// ToProjectTypeDTO converts ProjectType to ProjectTypeDTO
func ToProjectTypeDTO(pt *domain.ProjectType) domain.ProjectTypeDTO {
	return domain.ProjectTypeDTO{
		ID:             pt.ID,
		Name:           pt.Name,
		Category:       pt.Category,
		Description:    pt.Description,
		BaseCostPerSqm: money(pt.BaseCostPerSqm),
		IsActive:       pt.IsActive,
	}
}

// ToLocationDTO converts Location to LocationDTO
func ToLocationDTO(loc *domain.Location) domain.LocationDTO {
	return domain.LocationDTO{
		ID:             loc.ID,
		CountyCode:     loc.CountyCode,
		CountyName:     loc.CountyName,
		Region:         loc.Region,
		CostMultiplier: money(loc.CostMultiplier),
		IsActive:       loc.IsActive,
	}
}

// ToEstimateItemDTO converts EstimateItem to EstimateItemDTO
func ToEstimateItemDTO(item *domain.EstimateItem) domain.EstimateItemDTO {
	return domain.EstimateItemDTO{
		ID:          item.ID,
		Category:    item.Category,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    money(item.Quantity),
		Unit:        item.Unit,
		UnitPrice:   money(item.UnitPrice),
		TotalPrice:  money(item.TotalPrice),
		Notes:       item.Notes,
	}
}

// ToEstimateDTO converts Estimate to EstimateDTO including its items
func ToEstimateDTO(e *domain.Estimate) domain.EstimateDTO {
	dto := domain.EstimateDTO{
		ID:                    e.ID,
		UserID:                e.UserID,
		ProjectName:           e.ProjectName,
		ProjectDescription:    e.ProjectDescription,
		ProjectTypeID:         e.ProjectTypeID,
		LocationID:            e.LocationID,
		ConstructionType:      e.ConstructionType,
		BuildingType:          e.BuildingType,
		DataPeriod:            e.DataPeriod,
		BaseCostPerSqm:        money(e.BaseCostPerSqm),
		LocationMultiplier:    money(e.LocationMultiplier),
		AdjustedCostPerSqm:    money(e.AdjustedCostPerSqm),
		TotalEstimatedCost:    money(e.TotalEstimatedCost),
		ContingencyPercentage: money(e.ContingencyPercentage),
		ContingencyAmount:     money(e.ContingencyAmount),
		TotalWithContingency:  money(e.TotalEstimatedCost.Add(e.ContingencyAmount)),
		ItemsTotal:            money(e.ItemsTotal()),
		Status:                e.Status,
		Source:                e.Source,
		IsPublic:              e.IsPublic,
		OriginalFilename:      e.OriginalFilename,
		TaskID:                e.TaskID,
		ProcessingStartedAt:   formatTimePtr(e.ProcessingStartedAt),
		ProcessingCompletedAt: formatTimePtr(e.ProcessingCompletedAt),
		ProcessingError:       e.ProcessingError,
		Items:                 make([]domain.EstimateItemDTO, len(e.Items)),
		CreatedAt:             formatTime(e.CreatedAt),
		UpdatedAt:             formatTime(e.UpdatedAt),
	}

	if e.TotalArea.Valid {
		area := money(e.TotalArea.Decimal)
		dto.TotalArea = &area
	}
	if e.ProjectType != nil {
		dto.ProjectTypeName = e.ProjectType.Name
	}
	if e.Location != nil {
		dto.LocationName = e.Location.CountyName
	}
	for i := range e.Items {
		dto.Items[i] = ToEstimateItemDTO(&e.Items[i])
	}

	return dto
}

// ToEstimateRevisionDTO converts EstimateRevision to EstimateRevisionDTO
func ToEstimateRevisionDTO(r *domain.EstimateRevision) domain.EstimateRevisionDTO {
	return domain.EstimateRevisionDTO{
		ID:                r.ID,
		EstimateID:        r.EstimateID,
		RevisionNumber:    r.RevisionNumber,
		ChangesSummary:    r.ChangesSummary,
		PreviousTotalCost: money(r.PreviousTotalCost),
		NewTotalCost:      money(r.NewTotalCost),
		CreatedByID:       r.CreatedByID,
		CreatedByName:     r.CreatedByName,
		CreatedAt:         formatTime(r.CreatedAt),
	}
}

// ToEstimateShareDTO converts EstimateShare to EstimateShareDTO
func ToEstimateShareDTO(s *domain.EstimateShare) domain.EstimateShareDTO {
	return domain.EstimateShareDTO{
		ID:              s.ID,
		EstimateID:      s.EstimateID,
		SharedWithEmail: s.SharedWithEmail,
		SharedWithName:  s.SharedWithName,
		Token:           s.Token,
		IsActive:        s.IsActive,
		ExpiresAt:       formatTime(s.ExpiresAt),
		CreatedAt:       formatTime(s.CreatedAt),
	}
}

// ToSharedEstimateDTO builds the read-only view behind a share link
func ToSharedEstimateDTO(e *domain.Estimate, s *domain.EstimateShare) domain.SharedEstimateDTO {
	return domain.SharedEstimateDTO{
		Estimate:  ToEstimateDTO(e),
		ExpiresAt: formatTime(s.ExpiresAt),
		ReadOnly:  true,
	}
}

func rawJSON(j datatypes.JSON) json.RawMessage {
	if len(j) == 0 {
		return nil
	}
	return json.RawMessage(j)
}

// ToAIEstimateDTO converts AIEstimate to AIEstimateDTO
func ToAIEstimateDTO(ai *domain.AIEstimate) domain.AIEstimateDTO {
	return domain.AIEstimateDTO{
		ID:              ai.ID,
		EstimateID:      ai.EstimateID,
		Model:           ai.Model,
		ConfidenceScore: money(ai.ConfidenceScore),
		CostAnalysis:    rawJSON(ai.CostAnalysis),
		Breakdown:       rawJSON(ai.Breakdown),
		Recommendations: rawJSON(ai.Recommendations),
		RiskFactors:     rawJSON(ai.RiskFactors),
		CreatedAt:       formatTime(ai.CreatedAt),
	}
}

// ToCostBreakdownDTO converts a calculator result to CostBreakdownDTO
func ToCostBreakdownDTO(b costing.Breakdown) domain.CostBreakdownDTO {
	return domain.CostBreakdownDTO{
		BaseCostPerSqm:        money(b.BaseRate),
		LocationMultiplier:    money(b.LocationMultiplier),
		TotalArea:             money(b.TotalArea),
		ContingencyPercentage: money(b.ContingencyPercentage),
		AdjustedCostPerSqm:    money(b.AdjustedRate),
		AreaSubtotal:          money(b.AreaSubtotal),
		CustomItemsTotal:      money(b.CustomItemsTotal),
		ContingencyAmount:     money(b.ContingencyAmount),
		GrandTotal:            money(b.GrandTotal),
		Breakdown: domain.CostSplitDTO{
			Materials: money(b.Split.Materials),
			Labor:     money(b.Split.Labor),
			Equipment: money(b.Split.Equipment),
		},
	}
}

// ToAuditLogDTO converts AuditLog to AuditLogDTO
func ToAuditLogDTO(log *domain.AuditLog) domain.AuditLogDTO {
	return domain.AuditLogDTO{
		ID:          log.ID,
		UserID:      log.UserID,
		UserName:    log.UserName,
		Action:      log.Action,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		NewValues:   rawJSON(log.NewValues),
		IPAddress:   log.IPAddress,
		RequestID:   log.RequestID,
		PerformedAt: formatTime(log.PerformedAt),
	}
}
