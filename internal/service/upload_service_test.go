package service_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/jengaest/estimate-api/internal/storage"
	"github.com/jengaest/estimate-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUploadService_Upload(t *testing.T) {
	db := testutil.NewTestDB(t)
	files, err := storage.NewLocalStorage(t.TempDir(), 64)
	require.NoError(t, err)
	svc := service.NewUploadService(db, createEstimateService(t, db), files, []string{".pdf", "dwg", ".DXF"}, 64, zap.NewNop())

	owner := uuid.New()
	ctx := userContext(owner)
	testutil.CreateLocation(t, db, "001", "Mombasa", "1.10")

	plan := func(name, body string) service.PlanFile {
		return service.PlanFile{Filename: name, ContentType: "application/octet-stream", Size: int64(len(body)), Content: strings.NewReader(body)}
	}

	t.Run("stores the plan and creates a pending estimate", func(t *testing.T) {
		dto, err := svc.Upload(ctx, &domain.UploadEstimateRequest{
			ProjectName: "Villa",
			Location:    "Mombasa",
			TotalArea:   dec("10"),
		}, plan("ground-floor.PDF", "%PDF-1.4"))
		require.NoError(t, err)

		assert.Equal(t, domain.EstimateStatusPending, dto.Status)
		assert.Equal(t, domain.EstimateSourceUpload, dto.Source)
		assert.Equal(t, "ground-floor.PDF", dto.OriginalFilename)
		assert.Equal(t, "550000.00", dto.TotalEstimatedCost)

		rc, name, err := svc.Download(ctx, dto.ID)
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(body))
		assert.Equal(t, "ground-floor.PDF", name)

		_, _, err = svc.Download(userContext(uuid.New()), dto.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("directory components are dropped from the name", func(t *testing.T) {
		dto, err := svc.Upload(ctx, &domain.UploadEstimateRequest{ProjectName: "Shop"}, plan("../../etc/site.dwg", "dwg"))
		require.NoError(t, err)
		assert.Equal(t, "site.dwg", dto.OriginalFilename)
	})

	tests := []struct {
		name string
		req  *domain.UploadEstimateRequest
		file service.PlanFile
		want error
	}{
		{"unsupported extension", &domain.UploadEstimateRequest{ProjectName: "x"}, plan("plan.exe", "MZ"), service.ErrUploadRejected},
		{"declared size too large", &domain.UploadEstimateRequest{ProjectName: "x"}, plan("plan.pdf", strings.Repeat("a", 65)), service.ErrUploadRejected},
		{"streamed size too large", &domain.UploadEstimateRequest{ProjectName: "x"}, service.PlanFile{Filename: "plan.dxf", Content: bytes.NewReader(make([]byte, 100))}, service.ErrUploadRejected},
		{"missing file name", &domain.UploadEstimateRequest{ProjectName: "x"}, plan("", "a"), service.ErrUploadRejected},
		{"missing project name", &domain.UploadEstimateRequest{}, plan("plan.pdf", "a"), service.ErrInvalidInput},
		{"unknown location", &domain.UploadEstimateRequest{ProjectName: "x", Location: "Atlantis"}, plan("plan.pdf", "a"), service.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, tt.req, tt.file)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("rejected uploads leave no estimate behind", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&domain.Estimate{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})
}
