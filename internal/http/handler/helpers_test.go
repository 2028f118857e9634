package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/costing"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/jengaest/estimate-api/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// caller is injected into every request the test router serves; nil means anonymous
type caller struct {
	user *auth.UserContext
}

func (c *caller) set(userID uuid.UUID, roles ...string) {
	c.user = &auth.UserContext{
		UserID:      userID,
		DisplayName: "Test User",
		Email:       "test@example.com",
		Roles:       roles,
	}
}

func (c *caller) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.user != nil {
			r = r.WithContext(auth.WithUserContext(r.Context(), c.user))
		}
		next.ServeHTTP(w, r)
	})
}

func newRouter(c *caller) chi.Router {
	r := chi.NewRouter()
	r.Use(c.middleware)
	return r
}

func createReferenceService(db *gorm.DB) *service.ReferenceService {
	return service.NewReferenceService(
		repository.NewProjectTypeRepository(db),
		repository.NewLocationRepository(db),
		decimal.NewFromInt(50000),
		zap.NewNop(),
	)
}

func createEstimateService(t *testing.T, db *gorm.DB) *service.EstimateService {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir(), 1<<20)
	require.NoError(t, err)

	return service.NewEstimateService(
		db,
		repository.NewEstimateRepository(db),
		repository.NewEstimateItemRepository(db),
		repository.NewEstimateRevisionRepository(db),
		createReferenceService(db),
		costing.NewCalculator(costing.StandardDefaults()),
		files,
		3,
		zap.NewNop(),
	)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), target), rr.Body.String())
}
