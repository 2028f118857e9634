package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// multipartOverhead is allowed on top of the file size for form fields and boundaries
const multipartOverhead = 1 << 20

// UploadHandler accepts construction plans and serves them back
type UploadHandler struct {
	uploadService *service.UploadService
	maxUploadMB   int64
	logger        *zap.Logger
}

func NewUploadHandler(uploadService *service.UploadService, maxUploadMB int64, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxUploadMB:   maxUploadMB,
		logger:        logger,
	}
}

// Upload godoc
// @Summary Upload plan
// @Description Upload a construction plan (.pdf, .dwg, .dxf) and create a pending estimate for it
// @Tags Estimates
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Plan file"
// @Param projectName formData string true "Project name"
// @Param projectDescription formData string false "Project description"
// @Param projectType formData string false "Project type id or name"
// @Param location formData string false "Location id, county code or name"
// @Param buildingType formData string false "Building type"
// @Param constructionType formData string false "Construction type" Enums(new_construction, repair)
// @Param totalArea formData string false "Total area in square metres"
// @Success 201 {object} domain.EstimateDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Failure 422 {object} domain.APIError "Unsupported file type or size"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.maxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	req := domain.UploadEstimateRequest{
		ProjectName:        strings.TrimSpace(r.FormValue("projectName")),
		ProjectDescription: r.FormValue("projectDescription"),
		ProjectType:        r.FormValue("projectType"),
		Location:           r.FormValue("location"),
		BuildingType:       r.FormValue("buildingType"),
		ConstructionType:   domain.ConstructionType(r.FormValue("constructionType")),
	}
	if raw := strings.TrimSpace(r.FormValue("totalArea")); raw != "" {
		area, err := decimal.NewFromString(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.APIError{
				Type:   domain.ErrorTypeValidation,
				Title:  "Validation Error",
				Status: http.StatusBadRequest,
				Detail: "One or more fields failed validation",
				Errors: map[string]string{"totalArea": "Must be a decimal number"},
			})
			return
		}
		req.TotalArea = &area
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	estimate, err := h.uploadService.Upload(r.Context(), &req, service.PlanFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		respondServiceError(w, h.logger, err, "upload plan")
		return
	}

	w.Header().Set("Location", "/api/v1/estimates/"+estimate.ID.String())
	respondJSON(w, http.StatusCreated, estimate)
}

// Download godoc
// @Summary Download plan
// @Description Download the plan file an estimate was created from
// @Tags Estimates
// @Produce octet-stream
// @Param id path string true "Estimate ID" format(uuid)
// @Success 200 {file} file
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /estimates/{id}/plan [get]
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "estimate")
	if !ok {
		return
	}

	reader, filename, err := h.uploadService.Download(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "download plan")
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("plan download interrupted", zap.Error(err), zap.String("estimateId", id.String()))
	}
}
