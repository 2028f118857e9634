package handler_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/http/handler"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/jengaest/estimate-api/internal/storage"
	"github.com/jengaest/estimate-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCalculationHandler_Calculate(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateLocation(t, db, "047", "Nairobi", "1.50")
	h := handler.NewCalculationHandler(
		service.NewCalculationService(createReferenceService(db), costing.NewCalculator(costing.StandardDefaults())),
		zap.NewNop(),
	)

	c := &caller{}
	c.set(uuid.New())
	r := newRouter(c)
	r.Post("/estimates/calculate", h.Calculate)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantTotal  string
	}{
		{
			name:       "explicit rates with custom items",
			body:       map[string]interface{}{"totalArea": "10", "baseCostPerSqm": "1000", "customItems": []map[string]string{{"quantity": "3", "unitPrice": "100"}}},
			wantStatus: http.StatusOK,
			wantTotal:  "11300.00",
		},
		{
			name:       "location multiplier applies",
			body:       map[string]interface{}{"totalArea": "10", "baseCostPerSqm": "1000", "location": "Nairobi", "contingencyPercentage": "0"},
			wantStatus: http.StatusOK,
			wantTotal:  "15000.00",
		},
		{name: "unknown location", body: map[string]interface{}{"location": "Atlantis"}, wantStatus: http.StatusNotFound},
		{name: "negative contingency", body: map[string]interface{}{"contingencyPercentage": "-1"}, wantStatus: http.StatusBadRequest},
		{name: "bad category", body: map[string]interface{}{"projectCategory": "space"}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, r, http.MethodPost, "/estimates/calculate", tt.body)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantTotal == "" {
				return
			}
			var got domain.CostBreakdownDTO
			decode(t, rr, &got)
			assert.Equal(t, tt.wantTotal, got.GrandTotal)
		})
	}
}

func TestReferenceHandler(t *testing.T) {
	db := testutil.NewTestDB(t)
	pt := testutil.CreateProjectType(t, db, "Apartment Block", domain.ProjectCategoryResidential, "45000.00")
	testutil.CreateProjectType(t, db, "Office Tower", domain.ProjectCategoryCommercial, "60000.00")
	testutil.CreateLocation(t, db, "001", "Mombasa", "1.10")

	h := handler.NewReferenceHandler(createReferenceService(db), zap.NewNop())
	c := &caller{}
	c.set(uuid.New())
	r := newRouter(c)
	r.Get("/project-types", h.ListProjectTypes)
	r.Get("/project-types/{ref}", h.GetProjectType)
	r.Get("/locations", h.ListLocations)
	r.Get("/locations/{ref}", h.GetLocation)

	t.Run("list project types by category", func(t *testing.T) {
		rr := doJSON(t, r, http.MethodGet, "/project-types?category=residential", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var types []domain.ProjectTypeDTO
		decode(t, rr, &types)
		require.Len(t, types, 1)
		assert.Equal(t, pt.ID, types[0].ID)

		assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/project-types?category=space", nil).Code)
	})

	t.Run("get project type by name", func(t *testing.T) {
		rr := doJSON(t, r, http.MethodGet, "/project-types/apartment%20block", nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/project-types/castle", nil).Code)
	})

	t.Run("location lookups", func(t *testing.T) {
		for _, ref := range []string{"1", "001", "mombasa"} {
			rr := doJSON(t, r, http.MethodGet, "/locations/"+ref, nil)
			require.Equal(t, http.StatusOK, rr.Code, ref)
			var loc domain.LocationDTO
			decode(t, rr, &loc)
			assert.Equal(t, "001", loc.CountyCode)
		}

		rr := doJSON(t, r, http.MethodGet, "/locations", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var all []domain.LocationDTO
		decode(t, rr, &all)
		assert.Len(t, all, 1)
	})
}

func TestUploadHandler(t *testing.T) {
	db := testutil.NewTestDB(t)
	files, err := storage.NewLocalStorage(t.TempDir(), 1<<20)
	require.NoError(t, err)
	svc := service.NewUploadService(db, createEstimateService(t, db), files, []string{".pdf", ".dwg", ".dxf"}, 1<<20, zap.NewNop())
	h := handler.NewUploadHandler(svc, 1, zap.NewNop())

	c := &caller{}
	owner := uuid.New()
	c.set(owner)
	r := newRouter(c)
	r.Post("/estimates/upload", h.Upload)
	r.Get("/estimates/{id}/plan", h.Download)

	upload := func(filename, content string, fields map[string]string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		if filename != "" {
			fw, err := mw.CreateFormFile("file", filename)
			require.NoError(t, err)
			_, err = io.WriteString(fw, content)
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/estimates/upload", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	t.Run("creates a pending estimate and serves the plan back", func(t *testing.T) {
		rr := upload("site.pdf", "%PDF-1.7", map[string]string{"projectName": "Warehouse", "totalArea": "12.5"})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var dto domain.EstimateDTO
		decode(t, rr, &dto)
		assert.Equal(t, domain.EstimateStatusPending, dto.Status)
		assert.Equal(t, domain.EstimateSourceUpload, dto.Source)
		require.NotNil(t, dto.TotalArea)
		assert.Equal(t, "12.50", *dto.TotalArea)

		rr = doJSON(t, r, http.MethodGet, "/estimates/"+dto.ID.String()+"/plan", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "%PDF-1.7", rr.Body.String())
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename=site.pdf`)
	})

	tests := []struct {
		name       string
		filename   string
		fields     map[string]string
		wantStatus int
	}{
		{name: "missing file", fields: map[string]string{"projectName": "x"}, wantStatus: http.StatusBadRequest},
		{name: "missing project name", filename: "a.pdf", fields: map[string]string{}, wantStatus: http.StatusBadRequest},
		{name: "bad area", filename: "a.pdf", fields: map[string]string{"projectName": "x", "totalArea": "lots"}, wantStatus: http.StatusBadRequest},
		{name: "unsupported type", filename: "a.exe", fields: map[string]string{"projectName": "x"}, wantStatus: http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := upload(tt.filename, "data", tt.fields)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
		})
	}

	t.Run("plan of an estimate without one", func(t *testing.T) {
		e := testutil.CreateEstimate(t, db, owner, "No plan", "1", "1")
		assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/estimates/"+e.ID.String()+"/plan", nil).Code)
	})
}

func TestAuditHandler_StaffOnly(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewAuditLogService(repository.NewAuditLogRepository(db), zap.NewNop())
	h := handler.NewAuditHandler(svc, zap.NewNop())

	c := &caller{}
	r := newRouter(c)
	r.Get("/audit", h.List)
	r.Get("/audit/entity/{entityType}/{entityId}", h.GetByEntity)

	entityID := uuid.New()
	staffID := uuid.New()
	c.set(staffID, auth.RoleStaff)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimates", nil)
	require.NoError(t, svc.Log(auth.WithUserContext(req.Context(), c.user), req, service.LogEntry{
		Action:     domain.AuditActionCreate,
		EntityType: "Estimate",
		EntityID:   &entityID,
	}))

	t.Run("staff", func(t *testing.T) {
		rr := doJSON(t, r, http.MethodGet, "/audit?entityType=Estimate", nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var page domain.PaginatedResponse
		decode(t, rr, &page)
		assert.Equal(t, int64(1), page.Total)

		rr = doJSON(t, r, http.MethodGet, "/audit/entity/Estimate/"+entityID.String(), nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var logs []domain.AuditLogDTO
		decode(t, rr, &logs)
		require.Len(t, logs, 1)
		assert.Equal(t, staffID.String(), logs[0].UserID)

		assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/audit?startTime=yesterday", nil).Code)
		assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodGet, "/audit/entity/Estimate/nope", nil).Code)
	})

	t.Run("non-staff", func(t *testing.T) {
		c.set(uuid.New())
		assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodGet, "/audit", nil).Code)
		assert.Equal(t, http.StatusForbidden, doJSON(t, r, http.MethodGet, "/audit/entity/Estimate/"+entityID.String(), nil).Code)
	})
}

func TestAIEstimateHandler_Unavailable(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewAIEstimateService(
		db,
		repository.NewEstimateRepository(db),
		repository.NewAIEstimateRepository(db),
		createReferenceService(db),
		costing.NewCalculator(costing.StandardDefaults()),
		nil,
		nil,
		decimal.NewFromInt(85),
		zap.NewNop(),
	)
	h := handler.NewAIEstimateHandler(svc, zap.NewNop())

	c := &caller{}
	c.set(uuid.New())
	r := newRouter(c)
	r.Post("/estimates/ai", h.Submit)
	r.Get("/estimates/ai/tasks/{taskId}", h.TaskStatus)
	r.Get("/estimates/{id}/ai", h.Get)

	rr := doJSON(t, r, http.MethodPost, "/estimates/ai", map[string]interface{}{
		"projectName":     "Hospital",
		"projectCategory": "commercial",
		"buildingType":    "hospital",
		"location":        "Nairobi",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code, rr.Body.String())

	rr = doJSON(t, r, http.MethodPost, "/estimates/ai", map[string]interface{}{"projectName": "Hospital"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/estimates/ai/tasks/unknown", nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/estimates/"+uuid.NewString()+"/ai", nil).Code)
}

func TestMarketDataHandler_Disabled(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := service.NewMarketRateService(nil, repository.NewLocationRepository(db), repository.NewProjectTypeRepository(db), zap.NewNop())
	h := handler.NewMarketDataHandler(svc, zap.NewNop())

	c := &caller{}
	c.set(uuid.New(), auth.RoleStaff)
	r := newRouter(c)
	r.Post("/market-data/sync", h.Sync)
	r.Get("/market-data/health", h.Health)

	assert.Equal(t, http.StatusServiceUnavailable, doJSON(t, r, http.MethodPost, "/market-data/sync", nil).Code)

	rr := doJSON(t, r, http.MethodGet, "/market-data/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"disabled"`)
}

func TestAuthHandler_Me(t *testing.T) {
	h := handler.NewAuthHandler()
	c := &caller{}
	r := newRouter(c)
	r.Get("/auth/me", h.Me)

	assert.Equal(t, http.StatusUnauthorized, doJSON(t, r, http.MethodGet, "/auth/me", nil).Code)

	id := uuid.New()
	c.set(id, auth.RoleStaff)
	rr := doJSON(t, r, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var me domain.AuthUserDTO
	decode(t, rr, &me)
	assert.Equal(t, id.String(), me.ID)
	assert.True(t, me.IsStaff)
}
