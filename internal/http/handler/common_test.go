package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantType   string
	}{
		{service.ErrNotFound, http.StatusNotFound, domain.ErrorTypeNotFound},
		{fmt.Errorf("%w: bad area", service.ErrInvalidInput), http.StatusBadRequest, domain.ErrorTypeBadRequest},
		{service.ErrConflict, http.StatusConflict, domain.ErrorTypeConflict},
		{service.ErrForbidden, http.StatusForbidden, domain.ErrorTypeForbidden},
		{service.ErrShareExpired, http.StatusGone, domain.ErrorTypeGone},
		{service.ErrUploadRejected, http.StatusUnprocessableEntity, domain.ErrorTypeValidation},
		{service.ErrAIUnavailable, http.StatusServiceUnavailable, domain.ErrorTypeUnavailable},
		{service.ErrMarketDataUnavailable, http.StatusServiceUnavailable, domain.ErrorTypeUnavailable},
		{errors.New("connection reset"), http.StatusInternalServerError, domain.ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rr := httptest.NewRecorder()
			respondServiceError(rr, zap.NewNop(), tt.err, "do thing")

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body domain.APIError
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantType, body.Type)
			assert.Equal(t, tt.wantStatus, body.Status)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, "Failed to do thing", body.Detail)
			}
		})
	}
}

func TestDetail(t *testing.T) {
	assert.Equal(t, "Invalid input: bad area", detail(fmt.Errorf("%w: bad area", service.ErrInvalidInput)))
}
