package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BaseModel carries the identity and timestamps shared by most tables.
// IDs are generated in Go so the same models work on postgres and sqlite.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns an ID when the caller did not
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ProjectCategory groups project types
type ProjectCategory string

const (
	ProjectCategoryResidential    ProjectCategory = "residential"
	ProjectCategoryCommercial     ProjectCategory = "commercial"
	ProjectCategoryInfrastructure ProjectCategory = "infrastructure"
	ProjectCategoryIndustrial     ProjectCategory = "industrial"
)

// IsValid checks if the category is a known value
func (c ProjectCategory) IsValid() bool {
	switch c {
	case ProjectCategoryResidential, ProjectCategoryCommercial, ProjectCategoryInfrastructure, ProjectCategoryIndustrial:
		return true
	}
	return false
}

// ConstructionType distinguishes new builds from repair work
type ConstructionType string

const (
	ConstructionTypeNew    ConstructionType = "new_construction"
	ConstructionTypeRepair ConstructionType = "repair"
)

// IsValid checks if the construction type is a known value
func (c ConstructionType) IsValid() bool {
	return c == ConstructionTypeNew || c == ConstructionTypeRepair
}

// DataPeriod is the market-data window an estimate was priced against
type DataPeriod string

const (
	DataPeriodQ1       DataPeriod = "Q1"
	DataPeriodQ2       DataPeriod = "Q2"
	DataPeriodQ3       DataPeriod = "Q3"
	DataPeriodQ4       DataPeriod = "Q4"
	DataPeriod3Months  DataPeriod = "3months"
	DataPeriod6Months  DataPeriod = "6months"
	DataPeriod9Months  DataPeriod = "9months"
	DataPeriod12Months DataPeriod = "12months"
)

// IsValid checks if the data period is a known value
func (p DataPeriod) IsValid() bool {
	switch p {
	case DataPeriodQ1, DataPeriodQ2, DataPeriodQ3, DataPeriodQ4,
		DataPeriod3Months, DataPeriod6Months, DataPeriod9Months, DataPeriod12Months:
		return true
	}
	return false
}

// EstimateStatus is a coarse lifecycle label. Any write path may set any value.
type EstimateStatus string

const (
	EstimateStatusDraft      EstimateStatus = "draft"
	EstimateStatusPending    EstimateStatus = "pending"
	EstimateStatusApproved   EstimateStatus = "approved"
	EstimateStatusRejected   EstimateStatus = "rejected"
	EstimateStatusProcessing EstimateStatus = "processing"
	EstimateStatusError      EstimateStatus = "error"
)

// IsValid checks if the status is a known value
func (s EstimateStatus) IsValid() bool {
	switch s {
	case EstimateStatusDraft, EstimateStatusPending, EstimateStatusApproved,
		EstimateStatusRejected, EstimateStatusProcessing, EstimateStatusError:
		return true
	}
	return false
}

// EstimateSource records where an estimate came from
type EstimateSource string

const (
	EstimateSourceManual      EstimateSource = "manual"
	EstimateSourceUpload      EstimateSource = "upload"
	EstimateSourceAIGenerated EstimateSource = "ai-generated"
)

// IsValid checks if the source is a known value
func (s EstimateSource) IsValid() bool {
	return s == EstimateSourceManual || s == EstimateSourceUpload || s == EstimateSourceAIGenerated
}

// ItemCategory classifies estimate line items
type ItemCategory string

const (
	ItemCategoryMaterial  ItemCategory = "material"
	ItemCategoryLabor     ItemCategory = "labor"
	ItemCategoryEquipment ItemCategory = "equipment"
	ItemCategoryOverhead  ItemCategory = "overhead"
	ItemCategoryOther     ItemCategory = "other"
)

// IsValid checks if the item category is a known value
func (c ItemCategory) IsValid() bool {
	switch c {
	case ItemCategoryMaterial, ItemCategoryLabor, ItemCategoryEquipment, ItemCategoryOverhead, ItemCategoryOther:
		return true
	}
	return false
}

// ProjectType is reference data supplying a base cost per square metre
type ProjectType struct {
	BaseModel
	Name           string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Category       ProjectCategory `gorm:"type:varchar(20);not null;index"`
	Description    string          `gorm:"type:text"`
	BaseCostPerSqm decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IsActive       bool            `gorm:"not null"`
}

func (ProjectType) TableName() string {
	return "project_types"
}

// Location is a county with a cost multiplier applied to base rates
type Location struct {
	ID             uint            `gorm:"primaryKey;autoIncrement"`
	CountyCode     string          `gorm:"type:varchar(3);not null;uniqueIndex"`
	CountyName     string          `gorm:"type:varchar(100);not null"`
	Region         string          `gorm:"type:varchar(100)"`
	CostMultiplier decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	IsActive       bool            `gorm:"not null"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

func (Location) TableName() string {
	return "locations"
}

// Estimate is the central aggregate. AdjustedCostPerSqm, TotalEstimatedCost and
// ContingencyAmount are derived and only ever written by Derive.
type Estimate struct {
	BaseModel
	UserID             uuid.UUID        `gorm:"type:uuid;not null;index"`
	UserName           string           `gorm:"type:varchar(200)"`
	ProjectName        string           `gorm:"type:varchar(200);not null"`
	ProjectDescription string           `gorm:"type:varchar(150)"`
	ProjectTypeID      *uuid.UUID       `gorm:"type:uuid;index"`
	ProjectType        *ProjectType     `gorm:"foreignKey:ProjectTypeID"`
	LocationID         *uint            `gorm:"index"`
	Location           *Location        `gorm:"foreignKey:LocationID"`
	ConstructionType   ConstructionType `gorm:"type:varchar(20);not null"`
	BuildingType       string           `gorm:"type:varchar(50)"`
	DataPeriod         DataPeriod       `gorm:"type:varchar(10)"`

	TotalArea             decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	BaseCostPerSqm        decimal.Decimal     `gorm:"type:decimal(15,2);not null"`
	LocationMultiplier    decimal.Decimal     `gorm:"type:decimal(5,2);not null"`
	ContingencyPercentage decimal.Decimal     `gorm:"type:decimal(5,2);not null"`

	AdjustedCostPerSqm decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalEstimatedCost decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ContingencyAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`

	Status   EstimateStatus `gorm:"type:varchar(20);not null;index"`
	Source   EstimateSource `gorm:"type:varchar(20);not null"`
	IsPublic bool           `gorm:"not null"`

	OriginalFilename      string `gorm:"type:varchar(255)"`
	FilePath              string `gorm:"type:varchar(500)"`
	TaskID                string `gorm:"type:varchar(64);index"`
	ProcessingStartedAt   *time.Time
	ProcessingCompletedAt *time.Time
	ProcessingError       string `gorm:"type:text"`

	Items []EstimateItem `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE"`
}

func (Estimate) TableName() string {
	return "estimates"
}

// Derive recomputes every derived field, including item totals, from the
// stored inputs. It depends on nothing else, so calling it twice gives the same result.
func (e *Estimate) Derive(calc *costing.Calculator) {
	e.ApplyBreakdown(calc.Compute(e.CostInput()))
	for i := range e.Items {
		e.Items[i].Recompute()
	}
}

// ApplyBreakdown stores the resolved inputs and derived figures of a calculation.
// The area-driven subtotal is the estimate's total; items do not contribute.
func (e *Estimate) ApplyBreakdown(b costing.Breakdown) {
	e.BaseCostPerSqm = b.BaseRate
	e.LocationMultiplier = b.LocationMultiplier
	e.ContingencyPercentage = b.ContingencyPercentage
	if e.TotalArea.Valid {
		e.TotalArea.Decimal = b.TotalArea
	}

	e.AdjustedCostPerSqm = b.AdjustedRate
	e.TotalEstimatedCost = b.AreaSubtotal
	e.ContingencyAmount = b.ContingencyAmount
}

// CostInput maps the stored inputs onto a calculator input
func (e *Estimate) CostInput() costing.Input {
	return costing.Input{
		BaseRate:              costing.Present(e.BaseCostPerSqm),
		LocationMultiplier:    costing.Present(e.LocationMultiplier),
		TotalArea:             e.TotalArea,
		ContingencyPercentage: costing.Present(e.ContingencyPercentage),
	}
}

// ItemsTotal sums the stored item totals
func (e *Estimate) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.TotalPrice)
	}
	return total
}

// EstimateItem is a line item owned by one estimate
type EstimateItem struct {
	BaseModel
	EstimateID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category    ItemCategory    `gorm:"type:varchar(20);not null"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Unit        string          `gorm:"type:varchar(50);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Notes       string          `gorm:"type:text"`
}

func (EstimateItem) TableName() string {
	return "estimate_items"
}

// Recompute sets TotalPrice from quantity and unit price
func (i *EstimateItem) Recompute() {
	i.Quantity = costing.Round(i.Quantity)
	i.UnitPrice = costing.Round(i.UnitPrice)
	i.TotalPrice = costing.LineTotal(i.Quantity, i.UnitPrice)
}

// BeforeSave keeps TotalPrice consistent on every write path
func (i *EstimateItem) BeforeSave(tx *gorm.DB) error {
	i.Recompute()
	return nil
}

// EstimateRevision is an append-only record of a change to an estimate's total
type EstimateRevision struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EstimateID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_estimate_revisions_number"`
	RevisionNumber    int             `gorm:"not null;uniqueIndex:idx_estimate_revisions_number"`
	ChangesSummary    string          `gorm:"type:text;not null"`
	PreviousTotalCost decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NewTotalCost      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedByID       uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedByName     string          `gorm:"type:varchar(200)"`
	CreatedAt         time.Time       `gorm:"not null"`
}

func (EstimateRevision) TableName() string {
	return "estimate_revisions"
}

// BeforeCreate assigns an ID when the caller did not
func (r *EstimateRevision) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// EstimateShare is a capability granting read-only access to one estimate
type EstimateShare struct {
	BaseModel
	EstimateID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Estimate        *Estimate `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE"`
	SharedWithEmail string    `gorm:"type:varchar(255)"`
	SharedWithName  string    `gorm:"type:varchar(200)"`
	Token           string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	IsActive        bool      `gorm:"not null;index"`
	ExpiresAt       time.Time `gorm:"not null;index"`
	CreatedByID     uuid.UUID `gorm:"type:uuid;not null"`
}

func (EstimateShare) TableName() string {
	return "estimate_shares"
}

// Grants reports whether the share allows access at the given instant
func (s *EstimateShare) Grants(now time.Time) bool {
	return s.IsActive && now.Before(s.ExpiresAt)
}

// Expired reports whether the share is past its expiry at the given instant
func (s *EstimateShare) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// AIEstimate stores the AI collaborator's response verbatim. Its figures are
// independent of the estimate's calculated totals and are never reconciled.
type AIEstimate struct {
	BaseModel
	EstimateID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Model           string          `gorm:"type:varchar(100)"`
	ConfidenceScore decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CostAnalysis    datatypes.JSON  `gorm:"type:jsonb"`
	Breakdown       datatypes.JSON  `gorm:"type:jsonb"`
	Recommendations datatypes.JSON  `gorm:"type:jsonb"`
	RiskFactors     datatypes.JSON  `gorm:"type:jsonb"`
	RawResponse     datatypes.JSON  `gorm:"type:jsonb"`
}

func (AIEstimate) TableName() string {
	return "ai_estimates"
}

// AuditAction represents the type of audit action
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog records a mutating API request
type AuditLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID      string         `gorm:"type:varchar(100);index"`
	UserEmail   string         `gorm:"type:varchar(255)"`
	UserName    string         `gorm:"type:varchar(200)"`
	Action      AuditAction    `gorm:"type:varchar(20);not null"`
	EntityType  string         `gorm:"type:varchar(50);not null;index:idx_audit_logs_entity"`
	EntityID    *uuid.UUID     `gorm:"type:uuid;index:idx_audit_logs_entity"`
	NewValues   datatypes.JSON `gorm:"type:jsonb"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	IPAddress   string         `gorm:"type:varchar(64)"`
	UserAgent   string         `gorm:"type:text"`
	RequestID   string         `gorm:"type:varchar(100)"`
	PerformedAt time.Time      `gorm:"not null;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate assigns an ID when the caller did not
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
