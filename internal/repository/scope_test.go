package repository_test

import (
	"testing"

	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestBuildOrderClause(t *testing.T) {
	fields := map[string]string{"createdAt": "created_at", "projectName": "project_name"}

	tests := []struct {
		name   string
		config repository.SortConfig
		want   string
	}{
		{"known field asc", repository.SortConfig{Field: "projectName", Order: repository.SortOrderAsc}, "project_name ASC"},
		{"known field desc", repository.SortConfig{Field: "createdAt", Order: repository.SortOrderDesc}, "created_at DESC"},
		{"unknown field falls back", repository.SortConfig{Field: "password; DROP TABLE", Order: repository.SortOrderAsc}, "created_at ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repository.BuildOrderClause(tt.config, fields, "created_at"))
		})
	}
}

func TestNormalizePage(t *testing.T) {
	page, size := repository.NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, repository.DefaultPageSize, size)

	_, size = repository.NormalizePage(3, 10000)
	assert.Equal(t, repository.MaxPageSize, size)
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, repository.SortOrderAsc, repository.ParseSortOrder("ASC"))
	assert.Equal(t, repository.SortOrderDesc, repository.ParseSortOrder("sideways"))
}
