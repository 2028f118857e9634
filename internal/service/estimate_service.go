package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/mapper"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/jengaest/estimate-api/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recentWindow is the period counted as recent in estimate statistics
const recentWindow = 30 * 24 * time.Hour

// EstimateListFilter holds the raw list filters supplied by a client
type EstimateListFilter struct {
	Search      string
	ProjectType string
	Location    string
	Status      string
	Source      string
}

// EstimateService owns the estimate aggregate: it is the only writer of the
// derived cost fields and of the revision ledger
type EstimateService struct {
	db              *gorm.DB
	estimateRepo    *repository.EstimateRepository
	itemRepo        *repository.EstimateItemRepository
	revisionRepo    *repository.EstimateRevisionRepository
	references      *ReferenceService
	calculator      *costing.Calculator
	files           storage.Storage
	revisionRetries int
	logger          *zap.Logger
}

func NewEstimateService(
	db *gorm.DB,
	estimateRepo *repository.EstimateRepository,
	itemRepo *repository.EstimateItemRepository,
	revisionRepo *repository.EstimateRevisionRepository,
	references *ReferenceService,
	calculator *costing.Calculator,
	files storage.Storage,
	revisionRetries int,
	logger *zap.Logger,
) *EstimateService {
	if revisionRetries < 1 {
		revisionRetries = 1
	}
	return &EstimateService{
		db:              db,
		estimateRepo:    estimateRepo,
		itemRepo:        itemRepo,
		revisionRepo:    revisionRepo,
		references:      references,
		calculator:      calculator,
		files:           files,
		revisionRetries: revisionRetries,
		logger:          logger,
	}
}

// Create resolves references, derives costs and stores the estimate with its items
func (s *EstimateService) Create(ctx context.Context, req *domain.CreateEstimateRequest) (*domain.EstimateDTO, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	if err := validateCostInputs(req.TotalArea, req.BaseCostPerSqm, req.LocationMultiplier, req.ContingencyPercentage); err != nil {
		return nil, err
	}
	items, err := buildItems(req.Items)
	if err != nil {
		return nil, err
	}

	estimate := &domain.Estimate{
		UserID:             user.UserID,
		UserName:           user.DisplayName,
		ProjectName:        strings.TrimSpace(req.ProjectName),
		ProjectDescription: req.ProjectDescription,
		ConstructionType:   req.ConstructionType,
		BuildingType:       req.BuildingType,
		DataPeriod:         req.DataPeriod,
		Status:             req.Status,
		Source:             domain.EstimateSourceManual,
		IsPublic:           req.IsPublic,
		Items:              items,
	}
	if estimate.ProjectName == "" {
		return nil, invalidf("projectName is required")
	}
	if estimate.ConstructionType == "" {
		estimate.ConstructionType = domain.ConstructionTypeNew
	}
	if estimate.Status == "" {
		estimate.Status = domain.EstimateStatusDraft
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs := s.references.WithTx(tx)
		pt, loc, err := resolveReferences(ctx, refs, req.ProjectType, req.ProjectCategory, req.Location)
		if err != nil {
			return err
		}

		input := costing.Input{
			BaseRate:              nullable(req.BaseCostPerSqm),
			LocationMultiplier:    nullable(req.LocationMultiplier),
			TotalArea:             nullable(req.TotalArea),
			ContingencyPercentage: nullable(req.ContingencyPercentage),
		}
		applyReferenceRates(&input, estimate, pt, loc)

		estimate.TotalArea = input.TotalArea
		estimate.ApplyBreakdown(s.calculator.Compute(input))
		for i := range estimate.Items {
			estimate.Items[i].Recompute()
		}
		if err := checkTotalsFit(estimate); err != nil {
			return err
		}

		return s.estimateRepo.WithTx(tx).Create(ctx, estimate)
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		s.logger.Error("failed to create estimate", zap.Error(err))
		return nil, fmt.Errorf("failed to create estimate: %w", err)
	}

	s.logger.Info("estimate created",
		zap.String("estimateId", estimate.ID.String()),
		zap.String("userId", user.UserID.String()),
		zap.String("totalEstimatedCost", estimate.TotalEstimatedCost.StringFixed(2)),
	)

	return s.GetByID(ctx, estimate.ID)
}

// GetByID returns an estimate visible to the caller
func (s *EstimateService) GetByID(ctx context.Context, id uuid.UUID) (*domain.EstimateDTO, error) {
	estimate, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}
	dto := mapper.ToEstimateDTO(estimate)
	return &dto, nil
}

// Update applies a partial change, re-derives every cost field and appends a
// revision when the total moves. A revision-number collision is retried.
func (s *EstimateService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateEstimateRequest) (*domain.EstimateDTO, error) {
	if _, ok := auth.FromContext(ctx); !ok {
		return nil, ErrForbidden
	}
	if err := validateCostInputs(req.TotalArea, req.BaseCostPerSqm, req.LocationMultiplier, req.ContingencyPercentage); err != nil {
		return nil, err
	}
	if req.ProjectName != nil && strings.TrimSpace(*req.ProjectName) == "" {
		return nil, invalidf("projectName cannot be empty")
	}

	var items []domain.EstimateItem
	if req.Items != nil {
		var err error
		if items, err = buildItems(*req.Items); err != nil {
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		err := s.applyUpdate(ctx, id, req, items)
		if err == nil {
			return s.GetByID(ctx, id)
		}
		if !errors.Is(err, ErrConflict) || attempt >= s.revisionRetries {
			if isServiceError(err) {
				return nil, err
			}
			s.logger.Error("failed to update estimate", zap.Error(err), zap.String("estimateId", id.String()))
			return nil, fmt.Errorf("failed to update estimate: %w", err)
		}
		s.logger.Warn("revision number collision, retrying update",
			zap.String("estimateId", id.String()),
			zap.Int("attempt", attempt),
		)
	}
}

func (s *EstimateService) applyUpdate(ctx context.Context, id uuid.UUID, req *domain.UpdateEstimateRequest, items []domain.EstimateItem) error {
	user, _ := auth.FromContext(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		estimate, err := s.estimateRepo.WithTx(tx).GetForUpdate(ctx, id)
		if err != nil {
			return translate(err)
		}
		previousTotal := estimate.TotalEstimatedCost

		applyChanges(estimate, req)

		if req.Items != nil {
			replacement := make([]domain.EstimateItem, len(items))
			copy(replacement, items)
			if err := s.itemRepo.WithTx(tx).ReplaceForEstimate(ctx, estimate.ID, replacement); err != nil {
				return fmt.Errorf("failed to replace items: %w", err)
			}
			estimate.Items = replacement
		}

		estimate.Derive(s.calculator)
		if err := checkTotalsFit(estimate); err != nil {
			return err
		}

		if err := s.estimateRepo.WithTx(tx).Save(ctx, estimate); err != nil {
			return fmt.Errorf("failed to save estimate: %w", err)
		}

		if previousTotal.Equal(estimate.TotalEstimatedCost) {
			return nil
		}

		revision, err := s.revisionRepo.WithTx(tx).Append(ctx, repository.RevisionEntry{
			EstimateID:        estimate.ID,
			PreviousTotalCost: previousTotal,
			NewTotalCost:      estimate.TotalEstimatedCost,
			ChangesSummary:    RevisionSummary(previousTotal, estimate.TotalEstimatedCost),
			AuthorID:          user.UserID,
			AuthorName:        user.DisplayName,
		})
		if err != nil {
			return translate(err)
		}

		s.logger.Info("estimate revision recorded",
			zap.String("estimateId", estimate.ID.String()),
			zap.Int("revisionNumber", revision.RevisionNumber),
		)
		return nil
	})
}

// RevisionSummary describes a change of total cost
func RevisionSummary(previous, current decimal.Decimal) string {
	return fmt.Sprintf("Updated estimate - Total cost changed from %s to %s",
		previous.StringFixed(costing.MoneyPlaces), current.StringFixed(costing.MoneyPlaces))
}

// Duplicate copies an estimate and its items verbatim to a new draft owned by the caller
func (s *EstimateService) Duplicate(ctx context.Context, id uuid.UUID) (*domain.EstimateDTO, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	source, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translateGet(err, "failed to get estimate")
	}

	clone := &domain.Estimate{
		UserID:                user.UserID,
		UserName:              user.DisplayName,
		ProjectName:           "Copy of " + source.ProjectName,
		ProjectDescription:    source.ProjectDescription,
		ProjectTypeID:         source.ProjectTypeID,
		LocationID:            source.LocationID,
		ConstructionType:      source.ConstructionType,
		BuildingType:          source.BuildingType,
		DataPeriod:            source.DataPeriod,
		TotalArea:             source.TotalArea,
		BaseCostPerSqm:        source.BaseCostPerSqm,
		LocationMultiplier:    source.LocationMultiplier,
		ContingencyPercentage: source.ContingencyPercentage,
		AdjustedCostPerSqm:    source.AdjustedCostPerSqm,
		TotalEstimatedCost:    source.TotalEstimatedCost,
		ContingencyAmount:     source.ContingencyAmount,
		Status:                domain.EstimateStatusDraft,
		Source:                domain.EstimateSourceManual,
		IsPublic:              false,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.estimateRepo.WithTx(tx).Create(ctx, clone); err != nil {
			return err
		}
		_, err := s.itemRepo.WithTx(tx).CloneItems(ctx, source.ID, clone.ID)
		return err
	})
	if err != nil {
		s.logger.Error("failed to duplicate estimate", zap.Error(err), zap.String("estimateId", id.String()))
		return nil, fmt.Errorf("failed to duplicate estimate: %w", err)
	}

	s.logger.Info("estimate duplicated",
		zap.String("sourceId", source.ID.String()),
		zap.String("estimateId", clone.ID.String()),
	)
	return s.GetByID(ctx, clone.ID)
}

// Delete removes an estimate and everything it owns. Only the owner or staff may delete.
func (s *EstimateService) Delete(ctx context.Context, id uuid.UUID) error {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return ErrForbidden
	}

	estimate, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		return translateGet(err, "failed to get estimate")
	}
	if !user.CanAccess(estimate.UserID) {
		return ErrNotFound
	}

	if err := s.estimateRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete estimate", zap.Error(err), zap.String("estimateId", id.String()))
		return fmt.Errorf("failed to delete estimate: %w", err)
	}

	if estimate.FilePath != "" && s.files != nil {
		if err := s.files.Delete(ctx, estimate.FilePath); err != nil {
			s.logger.Warn("failed to delete plan file",
				zap.Error(err),
				zap.String("estimateId", id.String()),
				zap.String("filePath", estimate.FilePath),
			)
		}
	}

	s.logger.Info("estimate deleted", zap.String("estimateId", id.String()))
	return nil
}

// List returns a page of estimates visible to the caller
func (s *EstimateService) List(ctx context.Context, page, pageSize int, filter EstimateListFilter, sort repository.SortConfig) (*domain.PaginatedResponse, error) {
	page, pageSize = repository.NormalizePage(page, pageSize)

	filters := &repository.EstimateFilters{Search: strings.TrimSpace(filter.Search)}

	if filter.Status != "" {
		status := domain.EstimateStatus(filter.Status)
		if !status.IsValid() {
			return nil, invalidf("unknown status %q", filter.Status)
		}
		filters.Status = &status
	}
	if filter.Source != "" {
		source := domain.EstimateSource(filter.Source)
		if !source.IsValid() {
			return nil, invalidf("unknown source %q", filter.Source)
		}
		filters.Source = &source
	}

	empty := &domain.PaginatedResponse{Data: []domain.EstimateDTO{}, Page: page, PageSize: pageSize}
	if filter.ProjectType != "" {
		pt, err := s.references.GetProjectType(ctx, filter.ProjectType)
		if errors.Is(err, ErrNotFound) {
			return empty, nil
		}
		if err != nil {
			return nil, err
		}
		filters.ProjectTypeID = &pt.ID
	}
	if filter.Location != "" {
		loc, err := s.references.GetLocation(ctx, filter.Location)
		if errors.Is(err, ErrNotFound) {
			return empty, nil
		}
		if err != nil {
			return nil, err
		}
		filters.LocationID = &loc.ID
	}

	estimates, total, err := s.estimateRepo.List(ctx, page, pageSize, filters, sort)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}

	dtos := make([]domain.EstimateDTO, len(estimates))
	for i := range estimates {
		dtos[i] = mapper.ToEstimateDTO(&estimates[i])
	}

	return paginate(dtos, total, page, pageSize), nil
}

// Statistics aggregates the caller's estimates, or every estimate for staff
func (s *EstimateService) Statistics(ctx context.Context) (*domain.EstimateStatisticsDTO, error) {
	stats, err := s.estimateRepo.Statistics(ctx, time.Now().Add(-recentWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return &domain.EstimateStatisticsDTO{
		TotalEstimates:  stats.Total,
		RecentEstimates: stats.Recent,
		TotalValue:      stats.TotalValue.StringFixed(costing.MoneyPlaces),
		ByBuildingType:  stats.ByBuildingType,
		ByStatus:        stats.ByStatus,
	}, nil
}

// ListRevisions returns an estimate's revision ledger in order
func (s *EstimateService) ListRevisions(ctx context.Context, id uuid.UUID) ([]domain.EstimateRevisionDTO, error) {
	if _, err := s.estimateRepo.GetByID(ctx, id); err != nil {
		return nil, translateGet(err, "failed to get estimate")
	}

	revisions, err := s.revisionRepo.ListByEstimate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions: %w", err)
	}

	dtos := make([]domain.EstimateRevisionDTO, len(revisions))
	for i := range revisions {
		dtos[i] = mapper.ToEstimateRevisionDTO(&revisions[i])
	}
	return dtos, nil
}

// applyChanges copies the set fields of req onto estimate. Derived fields are
// never touched here.
func applyChanges(estimate *domain.Estimate, req *domain.UpdateEstimateRequest) {
	if req.ProjectName != nil {
		estimate.ProjectName = strings.TrimSpace(*req.ProjectName)
	}
	if req.ProjectDescription != nil {
		estimate.ProjectDescription = *req.ProjectDescription
	}
	if req.ConstructionType != nil {
		estimate.ConstructionType = *req.ConstructionType
	}
	if req.BuildingType != nil {
		estimate.BuildingType = *req.BuildingType
	}
	if req.DataPeriod != nil {
		estimate.DataPeriod = *req.DataPeriod
	}
	if req.TotalArea != nil {
		estimate.TotalArea = costing.Present(*req.TotalArea)
	}
	if req.BaseCostPerSqm != nil {
		estimate.BaseCostPerSqm = *req.BaseCostPerSqm
	}
	if req.LocationMultiplier != nil {
		estimate.LocationMultiplier = *req.LocationMultiplier
	}
	if req.ContingencyPercentage != nil {
		estimate.ContingencyPercentage = *req.ContingencyPercentage
	}
	if req.Status != nil {
		estimate.Status = *req.Status
	}
	if req.IsPublic != nil {
		estimate.IsPublic = *req.IsPublic
	}
}

// resolveReferences looks up the project type and location named by a request.
// An explicit project type wins over a category; a category alone resolves or
// creates a project type.
func resolveReferences(ctx context.Context, refs *ReferenceService, projectType string, category domain.ProjectCategory, location string) (*domain.ProjectType, *domain.Location, error) {
	var (
		pt  *domain.ProjectType
		loc *domain.Location
		err error
	)

	switch {
	case strings.TrimSpace(projectType) != "":
		pt, err = refs.GetProjectType(ctx, projectType)
	case category != "":
		pt, err = refs.ResolveOrCreateProjectType(ctx, category)
	}
	if err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(location) != "" {
		if loc, err = refs.GetLocation(ctx, location); err != nil {
			return nil, nil, err
		}
	}
	return pt, loc, nil
}

// applyReferenceRates fills unset rates from the resolved references and links them
func applyReferenceRates(input *costing.Input, estimate *domain.Estimate, pt *domain.ProjectType, loc *domain.Location) {
	if pt != nil {
		estimate.ProjectTypeID = &pt.ID
		if !input.BaseRate.Valid {
			input.BaseRate = costing.Present(pt.BaseCostPerSqm)
		}
	}
	if loc != nil {
		estimate.LocationID = &loc.ID
		if !input.LocationMultiplier.Valid {
			input.LocationMultiplier = costing.Present(loc.CostMultiplier)
		}
	}
}

func buildItems(inputs []domain.EstimateItemInput) ([]domain.EstimateItem, error) {
	items := make([]domain.EstimateItem, 0, len(inputs))
	for i, in := range inputs {
		if in.Quantity.IsNegative() {
			return nil, invalidf("items[%d].quantity must not be negative", i)
		}
		if in.UnitPrice.IsNegative() {
			return nil, invalidf("items[%d].unitPrice must not be negative", i)
		}
		if in.Quantity.GreaterThan(maxArea) {
			return nil, invalidf("items[%d].quantity must not exceed %s", i, maxArea.String())
		}
		if in.UnitPrice.GreaterThan(maxMoney) {
			return nil, invalidf("items[%d].unitPrice must not exceed %s", i, maxMoney.String())
		}
		if !in.Category.IsValid() {
			return nil, invalidf("items[%d].category %q is not valid", i, in.Category)
		}
		item := domain.EstimateItem{
			Category:    in.Category,
			Name:        in.Name,
			Description: in.Description,
			Quantity:    in.Quantity,
			Unit:        in.Unit,
			UnitPrice:   in.UnitPrice,
			Notes:       in.Notes,
		}
		item.Recompute()
		items = append(items, item)
	}
	return items, nil
}

// Column limits of the estimates and estimate_items tables. Values past them
// would fail at the database instead of as invalid input.
var (
	maxArea        = decimal.RequireFromString("99999999.99")
	maxMoney       = decimal.RequireFromString("9999999999999.99")
	maxMultiplier  = decimal.RequireFromString("999.99")
	maxContingency = decimal.NewFromInt(100)
)

func validateCostInputs(area, baseRate, multiplier, contingency *decimal.Decimal) error {
	checks := []struct {
		name  string
		value *decimal.Decimal
		max   decimal.Decimal
	}{
		{"totalArea", area, maxArea},
		{"baseCostPerSqm", baseRate, maxMoney},
		{"locationMultiplier", multiplier, maxMultiplier},
		{"contingencyPercentage", contingency, maxContingency},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if c.value.IsNegative() {
			return invalidf("%s must not be negative", c.name)
		}
		if c.value.GreaterThan(c.max) {
			return invalidf("%s must not exceed %s", c.name, c.max.String())
		}
	}
	return nil
}

// checkTotalsFit rejects estimates whose derived figures overflow their columns
func checkTotalsFit(estimate *domain.Estimate) error {
	totals := []struct {
		name  string
		value decimal.Decimal
	}{
		{"adjustedCostPerSqm", estimate.AdjustedCostPerSqm},
		{"totalEstimatedCost", estimate.TotalEstimatedCost},
		{"contingencyAmount", estimate.ContingencyAmount},
	}
	for _, t := range totals {
		if t.value.GreaterThan(maxMoney) {
			return invalidf("%s exceeds %s; reduce the area or rates", t.name, maxMoney.String())
		}
	}
	for i, item := range estimate.Items {
		if item.TotalPrice.GreaterThan(maxMoney) {
			return invalidf("items[%d].totalPrice exceeds %s", i, maxMoney.String())
		}
	}
	return nil
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return costing.Present(*d)
}

// translateGet maps a lookup failure, wrapping anything that is not a miss
func translateGet(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isServiceError(err error) bool {
	for _, target := range []error{ErrNotFound, ErrInvalidInput, ErrConflict, ErrForbidden, ErrShareExpired, ErrAIUnavailable, ErrUploadRejected, ErrMarketDataUnavailable} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func paginate(data interface{}, total int64, page, pageSize int) *domain.PaginatedResponse {
	return &domain.PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}
