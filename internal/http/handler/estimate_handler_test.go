package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/http/handler"
	"github.com/jengaest/estimate-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func estimateRouter(t *testing.T, c *caller) http.Handler {
	db := testutil.NewTestDB(t)
	h := handler.NewEstimateHandler(createEstimateService(t, db), zap.NewNop())

	r := newRouter(c)
	r.Get("/estimates", h.List)
	r.Post("/estimates", h.Create)
	r.Get("/estimates/statistics", h.Statistics)
	r.Get("/estimates/{id}", h.GetByID)
	r.Put("/estimates/{id}", h.Update)
	r.Delete("/estimates/{id}", h.Delete)
	r.Post("/estimates/{id}/duplicate", h.Duplicate)
	r.Get("/estimates/{id}/revisions", h.ListRevisions)
	return r
}

func TestEstimateHandler_Lifecycle(t *testing.T) {
	c := &caller{}
	owner := uuid.New()
	c.set(owner)
	r := estimateRouter(t, c)

	rr := doJSON(t, r, http.MethodPost, "/estimates", map[string]interface{}{
		"projectName":           "Clinic",
		"totalArea":             "100",
		"baseCostPerSqm":        1000,
		"contingencyPercentage": "5",
		"items": []map[string]interface{}{
			{"category": "material", "name": "Cement", "quantity": "10", "unit": "bag", "unitPrice": "7.25"},
		},
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created domain.EstimateDTO
	decode(t, rr, &created)
	assert.Equal(t, "/api/v1/estimates/"+created.ID.String(), rr.Header().Get("Location"))
	assert.Equal(t, "100000.00", created.TotalEstimatedCost)
	assert.Equal(t, "5000.00", created.ContingencyAmount)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "72.50", created.Items[0].TotalPrice)

	path := "/estimates/" + created.ID.String()

	t.Run("update with new total appends a revision", func(t *testing.T) {
		rr := doJSON(t, r, http.MethodPut, path, map[string]interface{}{"totalArea": "200"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var updated domain.EstimateDTO
		decode(t, rr, &updated)
		assert.Equal(t, "200000.00", updated.TotalEstimatedCost)

		rr = doJSON(t, r, http.MethodGet, path+"/revisions", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var revisions []domain.EstimateRevisionDTO
		decode(t, rr, &revisions)
		require.Len(t, revisions, 1)
		assert.Equal(t, 1, revisions[0].RevisionNumber)
	})

	t.Run("other users cannot see it", func(t *testing.T) {
		c.set(uuid.New())
		defer c.set(owner)

		assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, path, nil).Code)
		assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodDelete, path, nil).Code)
	})

	t.Run("staff can see it", func(t *testing.T) {
		c.set(uuid.New(), auth.RoleStaff)
		defer c.set(owner)

		assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, path, nil).Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		rr := doJSON(t, r, http.MethodPost, path+"/duplicate", nil)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var copied domain.EstimateDTO
		decode(t, rr, &copied)
		assert.Equal(t, "Copy of Clinic", copied.ProjectName)
		assert.Equal(t, domain.EstimateStatusDraft, copied.Status)
		assert.NotEqual(t, created.ID, copied.ID)
	})

	t.Run("list and statistics", func(t *testing.T) {
		rr := doJSON(t, r, http.MethodGet, "/estimates?search=clinic&sortBy=projectName&sortOrder=asc", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var page domain.PaginatedResponse
		decode(t, rr, &page)
		assert.Equal(t, int64(2), page.Total)

		rr = doJSON(t, r, http.MethodGet, "/estimates?status=bogus", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = doJSON(t, r, http.MethodGet, "/estimates/statistics", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var stats domain.EstimateStatisticsDTO
		decode(t, rr, &stats)
		assert.Equal(t, int64(2), stats.TotalEstimates)
		assert.Equal(t, "400000.00", stats.TotalValue)
	})

	t.Run("delete", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodDelete, path, nil).Code)
		assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, path, nil).Code)
	})
}

func TestEstimateHandler_BadRequests(t *testing.T) {
	c := &caller{}
	c.set(uuid.New())
	r := estimateRouter(t, c)

	tests := []struct {
		name       string
		method     string
		path       string
		body       interface{}
		wantStatus int
		wantType   string
		wantField  string
	}{
		{name: "malformed id", method: http.MethodGet, path: "/estimates/not-a-uuid", wantStatus: http.StatusBadRequest, wantType: domain.ErrorTypeBadRequest},
		{name: "malformed json", method: http.MethodPost, path: "/estimates", body: "{", wantStatus: http.StatusBadRequest, wantType: domain.ErrorTypeBadRequest},
		{name: "missing name", method: http.MethodPost, path: "/estimates", body: map[string]interface{}{}, wantStatus: http.StatusBadRequest, wantType: domain.ErrorTypeValidation, wantField: "projectName"},
		{name: "bad data period", method: http.MethodPost, path: "/estimates", body: map[string]interface{}{"projectName": "x", "dataPeriod": "Q9"}, wantStatus: http.StatusBadRequest, wantType: domain.ErrorTypeValidation, wantField: "dataPeriod"},
		{name: "negative area", method: http.MethodPost, path: "/estimates", body: map[string]interface{}{"projectName": "x", "totalArea": "-1"}, wantStatus: http.StatusBadRequest, wantType: domain.ErrorTypeBadRequest},
		{name: "unknown location", method: http.MethodPost, path: "/estimates", body: map[string]interface{}{"projectName": "x", "location": "Atlantis"}, wantStatus: http.StatusNotFound, wantType: domain.ErrorTypeNotFound},
		{name: "missing estimate", method: http.MethodPut, path: "/estimates/" + uuid.NewString(), body: map[string]interface{}{"projectName": "x"}, wantStatus: http.StatusNotFound, wantType: domain.ErrorTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())

			var apiErr domain.APIError
			decode(t, rr, &apiErr)
			assert.Equal(t, tt.wantType, apiErr.Type)
			assert.Equal(t, tt.wantStatus, apiErr.Status)
			if tt.wantField != "" {
				assert.Contains(t, apiErr.Errors, tt.wantField)
			}
		})
	}
}
