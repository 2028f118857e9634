package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/mapper"
	"github.com/jengaest/estimate-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// AuditLogService records and queries the audit trail of mutating requests
type AuditLogService struct {
	auditRepo *repository.AuditLogRepository
	now       func() time.Time
	logger    *zap.Logger
}

// NewAuditLogService creates a new audit log service
func NewAuditLogService(auditRepo *repository.AuditLogRepository, logger *zap.Logger) *AuditLogService {
	return &AuditLogService{
		auditRepo: auditRepo,
		now:       time.Now,
		logger:    logger,
	}
}

// LogEntry represents the input for creating an audit log entry
type LogEntry struct {
	Action     domain.AuditAction
	EntityType string
	EntityID   *uuid.UUID
	NewValues  interface{}
	Metadata   map[string]interface{}
}

// AuditLogQuery holds the raw query parameters of an audit listing
type AuditLogQuery struct {
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	StartTime  string
	EndTime    string
	RequestID  string
	Page       int
	PageSize   int
}

// Log creates an audit log entry from context and request
func (s *AuditLogService) Log(ctx context.Context, r *http.Request, entry LogEntry) error {
	auditLog := &domain.AuditLog{
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		NewValues:   toJSON(entry.NewValues),
		Metadata:    toJSON(entry.Metadata),
		PerformedAt: s.now().UTC(),
	}

	if user, ok := auth.FromContext(ctx); ok {
		auditLog.UserID = user.UserID.String()
		auditLog.UserEmail = user.Email
		auditLog.UserName = user.DisplayName
	}

	if r != nil {
		auditLog.IPAddress = ClientIP(r)
		auditLog.UserAgent = r.UserAgent()
		auditLog.RequestID = r.Header.Get("X-Request-ID")
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.logger.Error("failed to create audit log",
			zap.String("action", string(entry.Action)),
			zap.String("entity_type", entry.EntityType),
			zap.Error(err))
		return err
	}
	return nil
}

// List returns a page of audit entries. Staff only.
func (s *AuditLogService) List(ctx context.Context, query AuditLogQuery) (*domain.PaginatedResponse, error) {
	user, ok := auth.FromContext(ctx)
	if !ok || !user.IsStaff() {
		return nil, ErrForbidden
	}

	filter, err := parseAuditQuery(query)
	if err != nil {
		return nil, err
	}

	page, pageSize := repository.NormalizePage(query.Page, query.PageSize)
	logs, total, err := s.auditRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	dtos := make([]domain.AuditLogDTO, len(logs))
	for i := range logs {
		dtos[i] = mapper.ToAuditLogDTO(&logs[i])
	}
	return paginate(dtos, total, page, pageSize), nil
}

// GetByEntity returns the latest entries recorded against one entity. Staff only.
func (s *AuditLogService) GetByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]domain.AuditLogDTO, error) {
	user, ok := auth.FromContext(ctx)
	if !ok || !user.IsStaff() {
		return nil, ErrForbidden
	}

	logs, err := s.auditRepo.ListByEntity(ctx, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	dtos := make([]domain.AuditLogDTO, len(logs))
	for i := range logs {
		dtos[i] = mapper.ToAuditLogDTO(&logs[i])
	}
	return dtos, nil
}

// CleanupOldLogs removes entries older than the retention period
func (s *AuditLogService) CleanupOldLogs(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -retentionDays)

	count, err := s.auditRepo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up audit logs: %w", err)
	}

	s.logger.Info("cleaned up old audit logs",
		zap.Int64("deleted_count", count),
		zap.Int("retention_days", retentionDays),
	)
	return count, nil
}

func parseAuditQuery(q AuditLogQuery) (*repository.AuditLogFilter, error) {
	filter := &repository.AuditLogFilter{
		UserID:     strings.TrimSpace(q.UserID),
		EntityType: strings.TrimSpace(q.EntityType),
		RequestID:  strings.TrimSpace(q.RequestID),
	}

	if q.Action != "" {
		action := domain.AuditAction(q.Action)
		switch action {
		case domain.AuditActionCreate, domain.AuditActionUpdate, domain.AuditActionDelete:
			filter.Action = &action
		default:
			return nil, invalidf("unknown audit action %q", q.Action)
		}
	}

	if q.EntityID != "" {
		id, err := uuid.Parse(q.EntityID)
		if err != nil {
			return nil, invalidf("entityId must be a UUID")
		}
		filter.EntityID = &id
	}

	for _, bound := range []struct {
		name  string
		value string
		dst   **time.Time
	}{
		{"startTime", q.StartTime, &filter.StartTime},
		{"endTime", q.EndTime, &filter.EndTime},
	} {
		if bound.value == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, bound.value)
		if err != nil {
			return nil, invalidf("%s must be an RFC 3339 timestamp", bound.name)
		}
		*bound.dst = &t
	}

	return filter, nil
}

// toJSON serializes v, storing JSON null when there is nothing to record
func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("null")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(data)
}

// ClientIP returns the originating client address of a request
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
