package domain

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Money and multipliers are serialized as fixed two-decimal strings.

type ProjectTypeDTO struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Category       ProjectCategory `json:"category"`
	Description    string          `json:"description,omitempty"`
	BaseCostPerSqm string          `json:"baseCostPerSqm"`
	IsActive       bool            `json:"isActive"`
}

type LocationDTO struct {
	ID             uint   `json:"id"`
	CountyCode     string `json:"countyCode"`
	CountyName     string `json:"countyName"`
	Region         string `json:"region,omitempty"`
	CostMultiplier string `json:"costMultiplier"`
	IsActive       bool   `json:"isActive"`
}

type EstimateItemDTO struct {
	ID          uuid.UUID    `json:"id"`
	Category    ItemCategory `json:"category"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Quantity    string       `json:"quantity"`
	Unit        string       `json:"unit"`
	UnitPrice   string       `json:"unitPrice"`
	TotalPrice  string       `json:"totalPrice"`
	Notes       string       `json:"notes,omitempty"`
}

type EstimateDTO struct {
	ID                    uuid.UUID         `json:"id"`
	UserID                uuid.UUID         `json:"userId"`
	ProjectName           string            `json:"projectName"`
	ProjectDescription    string            `json:"projectDescription,omitempty"`
	ProjectTypeID         *uuid.UUID        `json:"projectTypeId,omitempty"`
	ProjectTypeName       string            `json:"projectTypeName,omitempty"`
	LocationID            *uint             `json:"locationId,omitempty"`
	LocationName          string            `json:"locationName,omitempty"`
	ConstructionType      ConstructionType  `json:"constructionType"`
	BuildingType          string            `json:"buildingType,omitempty"`
	DataPeriod            DataPeriod        `json:"dataPeriod,omitempty"`
	TotalArea             *string           `json:"totalArea"`
	BaseCostPerSqm        string            `json:"baseCostPerSqm"`
	LocationMultiplier    string            `json:"locationMultiplier"`
	AdjustedCostPerSqm    string            `json:"adjustedCostPerSqm"`
	TotalEstimatedCost    string            `json:"totalEstimatedCost"`
	ContingencyPercentage string            `json:"contingencyPercentage"`
	ContingencyAmount     string            `json:"contingencyAmount"`
	TotalWithContingency  string            `json:"totalWithContingency"`
	ItemsTotal            string            `json:"itemsTotal"`
	Status                EstimateStatus    `json:"status"`
	Source                EstimateSource    `json:"source"`
	IsPublic              bool              `json:"isPublic"`
	OriginalFilename      string            `json:"originalFilename,omitempty"`
	TaskID                string            `json:"taskId,omitempty"`
	ProcessingStartedAt   *string           `json:"processingStartedAt,omitempty"`
	ProcessingCompletedAt *string           `json:"processingCompletedAt,omitempty"`
	ProcessingError       string            `json:"processingError,omitempty"`
	Items                 []EstimateItemDTO `json:"items"`
	CreatedAt             string            `json:"createdAt"`
	UpdatedAt             string            `json:"updatedAt"`
}

type EstimateRevisionDTO struct {
	ID                uuid.UUID `json:"id"`
	EstimateID        uuid.UUID `json:"estimateId"`
	RevisionNumber    int       `json:"revisionNumber"`
	ChangesSummary    string    `json:"changesSummary"`
	PreviousTotalCost string    `json:"previousTotalCost"`
	NewTotalCost      string    `json:"newTotalCost"`
	CreatedByID       uuid.UUID `json:"createdById"`
	CreatedByName     string    `json:"createdByName,omitempty"`
	CreatedAt         string    `json:"createdAt"`
}

type EstimateShareDTO struct {
	ID              uuid.UUID `json:"id"`
	EstimateID      uuid.UUID `json:"estimateId"`
	SharedWithEmail string    `json:"sharedWithEmail,omitempty"`
	SharedWithName  string    `json:"sharedWithName,omitempty"`
	Token           string    `json:"token"`
	IsActive        bool      `json:"isActive"`
	ExpiresAt       string    `json:"expiresAt"`
	CreatedAt       string    `json:"createdAt"`
}

// SharedEstimateDTO is what an unauthenticated share link resolves to
type SharedEstimateDTO struct {
	Estimate  EstimateDTO `json:"estimate"`
	ExpiresAt string      `json:"expiresAt"`
	ReadOnly  bool        `json:"readOnly"`
}

type AIEstimateDTO struct {
	ID              uuid.UUID       `json:"id"`
	EstimateID      uuid.UUID       `json:"estimateId"`
	Model           string          `json:"model,omitempty"`
	ConfidenceScore string          `json:"confidenceScore"`
	CostAnalysis    json.RawMessage `json:"costAnalysis,omitempty"`
	Breakdown       json.RawMessage `json:"breakdown,omitempty"`
	Recommendations json.RawMessage `json:"recommendations,omitempty"`
	RiskFactors     json.RawMessage `json:"riskFactors,omitempty"`
	CreatedAt       string          `json:"createdAt"`
}

// AITaskDTO is returned when an AI estimate has been queued
type AITaskDTO struct {
	EstimateID uuid.UUID      `json:"estimateId"`
	TaskID     string         `json:"taskId"`
	Status     EstimateStatus `json:"status"`
	Error      string         `json:"error,omitempty"`
}

type CostSplitDTO struct {
	Materials string `json:"materials"`
	Labor     string `json:"labor"`
	Equipment string `json:"equipment"`
}

// CostBreakdownDTO is the result of a stateless calculation
type CostBreakdownDTO struct {
	ProjectTypeID         *uuid.UUID   `json:"projectTypeId,omitempty"`
	LocationID            *uint        `json:"locationId,omitempty"`
	BaseCostPerSqm        string       `json:"baseCostPerSqm"`
	LocationMultiplier    string       `json:"locationMultiplier"`
	TotalArea             string       `json:"totalArea"`
	ContingencyPercentage string       `json:"contingencyPercentage"`
	AdjustedCostPerSqm    string       `json:"adjustedCostPerSqm"`
	AreaSubtotal          string       `json:"areaSubtotal"`
	CustomItemsTotal      string       `json:"customItemsTotal"`
	ContingencyAmount     string       `json:"contingencyAmount"`
	GrandTotal            string       `json:"grandTotal"`
	Breakdown             CostSplitDTO `json:"breakdown"`
}

type EstimateStatisticsDTO struct {
	TotalEstimates  int64            `json:"totalEstimates"`
	RecentEstimates int64            `json:"recentEstimates"`
	TotalValue      string           `json:"totalValue"`
	ByBuildingType  map[string]int64 `json:"byBuildingType"`
	ByStatus        map[string]int64 `json:"byStatus"`
}

type AuditLogDTO struct {
	ID          uuid.UUID       `json:"id"`
	UserID      string          `json:"userId,omitempty"`
	UserName    string          `json:"userName,omitempty"`
	Action      AuditAction     `json:"action"`
	EntityType  string          `json:"entityType"`
	EntityID    *uuid.UUID      `json:"entityId,omitempty"`
	NewValues   json.RawMessage `json:"newValues,omitempty"`
	IPAddress   string          `json:"ipAddress,omitempty"`
	RequestID   string          `json:"requestId,omitempty"`
	PerformedAt string          `json:"performedAt"`
}

// PaginatedResponse wraps list results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Request DTOs

// EstimateItemInput is a line item as supplied by a client
type EstimateItemInput struct {
	Category    ItemCategory    `json:"category" validate:"required,oneof=material labor equipment overhead other"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit" validate:"required,max=50"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Notes       string          `json:"notes,omitempty"`
}

// CreateEstimateRequest creates an estimate. ProjectType and Location accept an
// id, a code or a name; ProjectCategory alone resolves or creates a project type.
type CreateEstimateRequest struct {
	ProjectName           string              `json:"projectName" validate:"required,max=200"`
	ProjectDescription    string              `json:"projectDescription,omitempty" validate:"max=150"`
	ProjectType           string              `json:"projectType,omitempty" validate:"max=100"`
	ProjectCategory       ProjectCategory     `json:"projectCategory,omitempty" validate:"omitempty,oneof=residential commercial infrastructure industrial"`
	Location              string              `json:"location,omitempty" validate:"max=100"`
	ConstructionType      ConstructionType    `json:"constructionType,omitempty" validate:"omitempty,oneof=new_construction repair"`
	BuildingType          string              `json:"buildingType,omitempty" validate:"max=50"`
	DataPeriod            DataPeriod          `json:"dataPeriod,omitempty" validate:"omitempty,oneof=Q1 Q2 Q3 Q4 3months 6months 9months 12months"`
	TotalArea             *decimal.Decimal    `json:"totalArea,omitempty"`
	BaseCostPerSqm        *decimal.Decimal    `json:"baseCostPerSqm,omitempty"`
	LocationMultiplier    *decimal.Decimal    `json:"locationMultiplier,omitempty"`
	ContingencyPercentage *decimal.Decimal    `json:"contingencyPercentage,omitempty"`
	Status                EstimateStatus      `json:"status,omitempty" validate:"omitempty,oneof=draft pending approved rejected processing error"`
	IsPublic              bool                `json:"isPublic,omitempty"`
	Items                 []EstimateItemInput `json:"items,omitempty" validate:"dive"`
}

// UpdateEstimateRequest applies a partial update. A non-nil Items replaces every
// existing item; an empty list removes them all.
type UpdateEstimateRequest struct {
	ProjectName           *string              `json:"projectName,omitempty" validate:"omitempty,min=1,max=200"`
	ProjectDescription    *string              `json:"projectDescription,omitempty" validate:"omitempty,max=150"`
	ConstructionType      *ConstructionType    `json:"constructionType,omitempty" validate:"omitempty,oneof=new_construction repair"`
	BuildingType          *string              `json:"buildingType,omitempty" validate:"omitempty,max=50"`
	DataPeriod            *DataPeriod          `json:"dataPeriod,omitempty" validate:"omitempty,oneof=Q1 Q2 Q3 Q4 3months 6months 9months 12months"`
	TotalArea             *decimal.Decimal     `json:"totalArea,omitempty"`
	BaseCostPerSqm        *decimal.Decimal     `json:"baseCostPerSqm,omitempty"`
	LocationMultiplier    *decimal.Decimal     `json:"locationMultiplier,omitempty"`
	ContingencyPercentage *decimal.Decimal     `json:"contingencyPercentage,omitempty"`
	Status                *EstimateStatus      `json:"status,omitempty" validate:"omitempty,oneof=draft pending approved rejected processing error"`
	IsPublic              *bool                `json:"isPublic,omitempty"`
	Items                 *[]EstimateItemInput `json:"items,omitempty" validate:"omitempty,dive"`
}

// CustomItemInput is an ad-hoc line for a stateless calculation
type CustomItemInput struct {
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type CalculateCostRequest struct {
	ProjectType           string            `json:"projectType,omitempty" validate:"max=100"`
	ProjectCategory       ProjectCategory   `json:"projectCategory,omitempty" validate:"omitempty,oneof=residential commercial infrastructure industrial"`
	Location              string            `json:"location,omitempty" validate:"max=100"`
	TotalArea             *decimal.Decimal  `json:"totalArea,omitempty"`
	BaseCostPerSqm        *decimal.Decimal  `json:"baseCostPerSqm,omitempty"`
	LocationMultiplier    *decimal.Decimal  `json:"locationMultiplier,omitempty"`
	ContingencyPercentage *decimal.Decimal  `json:"contingencyPercentage,omitempty"`
	CustomItems           []CustomItemInput `json:"customItems,omitempty"`
}

type ShareEstimateRequest struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Name     string `json:"name,omitempty" validate:"max=200"`
	TTLHours *int   `json:"ttlHours,omitempty" validate:"omitempty,gt=0"`
}

type AIEstimateRequest struct {
	ProjectName        string           `json:"projectName" validate:"required,max=200"`
	ProjectDescription string           `json:"projectDescription,omitempty" validate:"max=150"`
	ProjectCategory    ProjectCategory  `json:"projectCategory" validate:"required,oneof=residential commercial infrastructure industrial"`
	ConstructionType   ConstructionType `json:"constructionType,omitempty" validate:"omitempty,oneof=new_construction repair"`
	BuildingType       string           `json:"buildingType" validate:"required,max=50"`
	Location           string           `json:"location" validate:"required,max=100"`
	TotalArea          *decimal.Decimal `json:"totalArea,omitempty"`
	DataPeriod         DataPeriod       `json:"dataPeriod,omitempty" validate:"omitempty,oneof=Q1 Q2 Q3 Q4 3months 6months 9months 12months"`
}

// UploadEstimateRequest carries the form fields sent alongside a plan file
type UploadEstimateRequest struct {
	ProjectName        string           `validate:"required,max=200"`
	ProjectDescription string           `validate:"max=150"`
	ProjectType        string           `validate:"max=100"`
	Location           string           `validate:"max=100"`
	BuildingType       string           `validate:"max=50"`
	ConstructionType   ConstructionType `validate:"omitempty,oneof=new_construction repair"`
	TotalArea          *decimal.Decimal
}

// AuthUserDTO describes the authenticated caller
type AuthUserDTO struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email,omitempty"`
	Roles   []string `json:"roles"`
	IsStaff bool     `json:"isStaff"`
}
