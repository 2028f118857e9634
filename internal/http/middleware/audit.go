package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/service"
	"go.uber.org/zap"
)

// maxAuditBody bounds how much of a request or response body is kept for the audit trail
const maxAuditBody = 64 << 10

// AuditConfig holds configuration for audit middleware
type AuditConfig struct {
	// SkipPaths are path prefixes that are never audited
	SkipPaths []string
	// SkipMethods are methods that are never audited
	SkipMethods []string
	// AuditReads enables auditing of GET requests
	AuditReads bool
}

// DefaultAuditConfig skips health probes, docs and the stateless calculator
func DefaultAuditConfig() *AuditConfig {
	return &AuditConfig{
		SkipPaths: []string{
			"/health",
			"/swagger",
			"/api/v1/estimates/calculate",
		},
		SkipMethods: []string{
			http.MethodOptions,
			http.MethodHead,
		},
	}
}

// AuditLogger is the part of the audit service the middleware writes through
type AuditLogger interface {
	Log(ctx context.Context, r *http.Request, entry service.LogEntry) error
}

// AuditMiddleware records successful mutating requests in the audit log
type AuditMiddleware struct {
	audit  AuditLogger
	config *AuditConfig
	logger *zap.Logger
}

// NewAuditMiddleware creates a new audit middleware
func NewAuditMiddleware(audit AuditLogger, config *AuditConfig, logger *zap.Logger) *AuditMiddleware {
	if config == nil {
		config = DefaultAuditConfig()
	}
	return &AuditMiddleware{
		audit:  audit,
		config: config,
		logger: logger,
	}
}

// Audit must run after authentication so the entry carries the acting user.
// The entry is written once the handler returns; a failed write is logged and
// never changes the response.
func (m *AuditMiddleware) Audit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.shouldAudit(r) {
			next.ServeHTTP(w, r)
			return
		}

		var requestBody []byte
		if r.Body != nil && isJSON(r) && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
			requestBody, _ = io.ReadAll(io.LimitReader(r.Body, maxAuditBody))
			r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(requestBody), r.Body))
		}

		rc := &responseCapture{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rc, r)

		m.logAudit(r, rc, requestBody)
	})
}

func (m *AuditMiddleware) shouldAudit(r *http.Request) bool {
	for _, method := range m.config.SkipMethods {
		if r.Method == method {
			return false
		}
	}
	if r.Method == http.MethodGet && !m.config.AuditReads {
		return false
	}
	for _, skip := range m.config.SkipPaths {
		if strings.HasPrefix(r.URL.Path, skip) {
			return false
		}
	}
	return true
}

func (m *AuditMiddleware) logAudit(r *http.Request, rc *responseCapture, requestBody []byte) {
	if m.audit == nil || rc.statusCode < 200 || rc.statusCode >= 300 {
		return
	}

	action := methodToAction(r.Method)
	if action == "" {
		return
	}

	entityType, entityID := extractEntityInfo(r)
	if r.Method == http.MethodPost {
		if id := createdID(rc.body.Bytes()); id != nil {
			entityID = id
		}
	}

	entry := service.LogEntry{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		NewValues:  scrubBody(requestBody),
		Metadata: map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": rc.statusCode,
		},
	}

	if err := m.audit.Log(r.Context(), r, entry); err != nil {
		m.logger.Warn("failed to create audit log entry",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Error(err))
	}
}

func methodToAction(method string) domain.AuditAction {
	switch method {
	case http.MethodPost:
		return domain.AuditActionCreate
	case http.MethodPut, http.MethodPatch:
		return domain.AuditActionUpdate
	case http.MethodDelete:
		return domain.AuditActionDelete
	default:
		return ""
	}
}

// extractEntityInfo prefers the most specific id in the route: a share id over
// its estimate id
func extractEntityInfo(r *http.Request) (string, *uuid.UUID) {
	routeCtx := chi.RouteContext(r.Context())
	if routeCtx == nil {
		return parseEntityFromPath(r.URL.Path), nil
	}

	var entityID *uuid.UUID
	for _, key := range []string{"shareId", "id"} {
		if id, err := uuid.Parse(routeCtx.URLParam(key)); err == nil {
			entityID = &id
			break
		}
	}

	pattern := routeCtx.RoutePattern()
	if pattern == "" {
		pattern = r.URL.Path
	}
	return parseEntityFromPath(pattern), entityID
}

// entityMap resolves path segments to entity types; later segments win
var entityMap = map[string]string{
	"estimates":   "Estimate",
	"upload":      "Estimate",
	"duplicate":   "Estimate",
	"ai":          "AIEstimate",
	"share":       "EstimateShare",
	"shares":      "EstimateShare",
	"market-data": "MarketRate",
}

func parseEntityFromPath(path string) string {
	entityType := "Unknown"
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if t, ok := entityMap[part]; ok {
			entityType = t
		}
	}
	return entityType
}

// createdID reads the id of the record a POST created from its JSON response
func createdID(body []byte) *uuid.UUID {
	if len(body) == 0 {
		return nil
	}
	var created struct {
		ID         string `json:"id"`
		EstimateID string `json:"estimateId"`
	}
	if json.Unmarshal(body, &created) != nil {
		return nil
	}
	for _, raw := range []string{created.ID, created.EstimateID} {
		if id, err := uuid.Parse(raw); err == nil {
			return &id
		}
	}
	return nil
}

var sensitiveFields = []string{"password", "secret", "token", "apiKey"}

func scrubBody(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	var parsed map[string]interface{}
	if json.Unmarshal(body, &parsed) != nil {
		return nil
	}
	for _, f := range sensitiveFields {
		delete(parsed, f)
	}
	return parsed
}

func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return ct == "" || strings.HasPrefix(ct, "application/json")
}

// responseCapture records the status code and the head of the response body
type responseCapture struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	body        bytes.Buffer
}

func (rc *responseCapture) WriteHeader(code int) {
	if rc.wroteHeader {
		return
	}
	rc.statusCode = code
	rc.wroteHeader = true
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	if !rc.wroteHeader {
		rc.WriteHeader(http.StatusOK)
	}
	if room := maxAuditBody - rc.body.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		rc.body.Write(b[:room])
	}
	return rc.ResponseWriter.Write(b)
}
