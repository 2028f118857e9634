package repository

import (
	"context"
	"strings"

	"github.com/jengaest/estimate-api/internal/auth"
	"gorm.io/gorm"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// DefaultPageSize is used when the caller does not ask for one
const DefaultPageSize = 20

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SortConfig holds sorting configuration for list queries
type SortConfig struct {
	Field string
	Order SortOrder
}

// DefaultSortConfig returns createdAt DESC
func DefaultSortConfig() SortConfig {
	return SortConfig{Field: "createdAt", Order: SortOrderDesc}
}

// ParseSortOrder parses a string into SortOrder, defaulting to desc
func ParseSortOrder(s string) SortOrder {
	if strings.ToLower(s) == "asc" {
		return SortOrderAsc
	}
	return SortOrderDesc
}

// BuildOrderClause builds an ORDER BY clause. Only fields present in fieldMap
// are accepted; anything else sorts by defaultColumn.
func BuildOrderClause(config SortConfig, fieldMap map[string]string, defaultColumn string) string {
	column, ok := fieldMap[config.Field]
	if !ok {
		column = defaultColumn
	}

	order := "DESC"
	if config.Order == SortOrderAsc {
		order = "ASC"
	}
	return column + " " + order
}

// NormalizePage clamps page and pageSize to valid values
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// ApplyOwnerFilter limits a query to rows owned by the current user. Staff and
// requests without a user context (background jobs) are not filtered.
func ApplyOwnerFilter(ctx context.Context, query *gorm.DB) *gorm.DB {
	return ApplyOwnerFilterWithColumn(ctx, query, "user_id")
}

// ApplyOwnerFilterWithColumn applies the owner filter using a specific column name
func ApplyOwnerFilterWithColumn(ctx context.Context, query *gorm.DB, column string) *gorm.DB {
	user, ok := auth.FromContext(ctx)
	if !ok || user.IsStaff() {
		return query
	}
	return query.Where(column+" = ?", user.UserID)
}
