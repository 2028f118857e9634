package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/service"
	"go.uber.org/zap"
)

var validate = validator.New()

// maxJSONBody bounds every JSON request body
const maxJSONBody = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// decodeJSON reads the request body into target and validates it. On failure the
// error response has been written and false is returned.
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(target); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(target); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[toJSONFieldName(fe.Field())] = formatValidationError(fe)
		}
	}

	respondJSON(w, http.StatusBadRequest, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: fields,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// respondServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500 without its detail.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, action string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, detail(err))
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, detail(err))
	case errors.Is(err, service.ErrConflict):
		respondWithError(w, http.StatusConflict, "The resource was modified concurrently, please retry")
	case errors.Is(err, service.ErrForbidden):
		respondWithError(w, http.StatusForbidden, detail(err))
	case errors.Is(err, service.ErrShareExpired):
		respondWithError(w, http.StatusGone, detail(err))
	case errors.Is(err, service.ErrUploadRejected):
		respondWithError(w, http.StatusUnprocessableEntity, detail(err))
	case errors.Is(err, service.ErrAIUnavailable), errors.Is(err, service.ErrMarketDataUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, detail(err))
	default:
		logger.Error("failed to "+action, zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// detail capitalises the service error text for the response body
func detail(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnprocessableEntity:
		return domain.ErrorTypeValidation
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusGone:
		return domain.ErrorTypeGone
	case http.StatusServiceUnavailable:
		return domain.ErrorTypeUnavailable
	default:
		return domain.ErrorTypeInternal
	}
}

// parseUUIDParam reads a UUID path parameter, writing a 400 when it is malformed
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID format", label))
		return uuid.Nil, false
	}
	return id, true
}

// parseIntQuery parses an integer query parameter with a default value
func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
