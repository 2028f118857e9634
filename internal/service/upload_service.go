package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlanFile is an uploaded plan as received from the client
type PlanFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadService stores plan files and creates the estimates that reference them
type UploadService struct {
	db                *gorm.DB
	estimates         *EstimateService
	files             storage.Storage
	allowedExtensions map[string]bool
	maxBytes          int64
	logger            *zap.Logger
}

func NewUploadService(
	db *gorm.DB,
	estimates *EstimateService,
	files storage.Storage,
	allowedExtensions []string,
	maxBytes int64,
	logger *zap.Logger,
) *UploadService {
	allowed := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}
	return &UploadService{
		db:                db,
		estimates:         estimates,
		files:             files,
		allowedExtensions: allowed,
		maxBytes:          maxBytes,
		logger:            logger,
	}
}

// Upload validates and stores the plan, then creates a pending estimate for it.
// The stored file is removed again if the estimate cannot be created.
func (s *UploadService) Upload(ctx context.Context, req *domain.UploadEstimateRequest, file PlanFile) (*domain.EstimateDTO, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	filename := path.Base(filepath.ToSlash(strings.TrimSpace(file.Filename)))
	ext := strings.ToLower(filepath.Ext(filename))
	if filename == "" || filename == "." || filename == "/" {
		return nil, fmt.Errorf("%w: a file is required", ErrUploadRejected)
	}
	if !s.allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrUploadRejected, ext)
	}
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrUploadRejected, s.maxBytes)
	}
	if strings.TrimSpace(req.ProjectName) == "" {
		return nil, invalidf("projectName is required")
	}
	if err := validateCostInputs(req.TotalArea, nil, nil, nil); err != nil {
		return nil, err
	}

	estimate := &domain.Estimate{
		BaseModel:          domain.BaseModel{ID: uuid.New()},
		UserID:             user.UserID,
		UserName:           user.DisplayName,
		ProjectName:        strings.TrimSpace(req.ProjectName),
		ProjectDescription: req.ProjectDescription,
		ConstructionType:   req.ConstructionType,
		BuildingType:       req.BuildingType,
		DataPeriod:         domain.DataPeriodQ1,
		Status:             domain.EstimateStatusPending,
		Source:             domain.EstimateSourceUpload,
		OriginalFilename:   filename,
	}
	if estimate.ConstructionType == "" {
		estimate.ConstructionType = domain.ConstructionTypeNew
	}

	storedPath, size, err := s.files.Upload(ctx, "estimates/"+estimate.ID.String(), filename, file.ContentType, file.Content)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrUploadRejected, s.maxBytes)
		}
		s.logger.Error("failed to store plan", zap.Error(err), zap.String("filename", filename))
		return nil, fmt.Errorf("failed to store plan: %w", err)
	}
	estimate.FilePath = storedPath

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pt, loc, err := resolveReferences(ctx, s.estimates.references.WithTx(tx), req.ProjectType, "", req.Location)
		if err != nil {
			return err
		}

		input := costing.Input{TotalArea: nullable(req.TotalArea)}
		applyReferenceRates(&input, estimate, pt, loc)
		estimate.TotalArea = input.TotalArea
		estimate.ApplyBreakdown(s.estimates.calculator.Compute(input))

		return s.estimates.estimateRepo.WithTx(tx).Create(ctx, estimate)
	})
	if err != nil {
		if delErr := s.files.Delete(context.WithoutCancel(ctx), storedPath); delErr != nil {
			s.logger.Warn("failed to remove orphaned plan", zap.Error(delErr), zap.String("filePath", storedPath))
		}
		if isServiceError(err) {
			return nil, err
		}
		s.logger.Error("failed to create estimate from upload", zap.Error(err))
		return nil, fmt.Errorf("failed to create estimate: %w", err)
	}

	s.logger.Info("plan uploaded",
		zap.String("estimateId", estimate.ID.String()),
		zap.String("filename", filename),
		zap.Int64("size", size),
	)

	return s.estimates.GetByID(ctx, estimate.ID)
}

// Download opens the plan attached to an estimate visible to the caller
func (s *UploadService) Download(ctx context.Context, estimateID uuid.UUID) (io.ReadCloser, string, error) {
	estimate, err := s.estimates.estimateRepo.GetByID(ctx, estimateID)
	if err != nil {
		return nil, "", translateGet(err, "failed to get estimate")
	}
	if estimate.FilePath == "" {
		return nil, "", ErrNotFound
	}

	rc, err := s.files.Download(ctx, estimate.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to download plan: %w", err)
	}
	return rc, estimate.OriginalFilename, nil
}
