package service_test

import (
	"context"
	"testing"

	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/jengaest/estimate-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceService_GetLocation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := createReferenceService(db)
	ctx := context.Background()

	nairobi := testutil.CreateLocation(t, db, "047", "Nairobi", "1.20")
	kisumu := testutil.CreateLocation(t, db, "042", "Kisumu", "1.05")

	tests := []struct {
		name string
		ref  string
		want uint
	}{
		{"by id", "1", nairobi.ID},
		{"by padded code", "42", kisumu.ID},
		{"by exact code", "047", nairobi.ID},
		{"by name ignoring case", "kisumu", kisumu.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := svc.GetLocation(ctx, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc.ID)
		})
	}

	t.Run("miss", func(t *testing.T) {
		_, err := svc.GetLocation(ctx, "Gotham")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.GetLocation(ctx, "  ")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestReferenceService_ProjectTypes(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := createReferenceService(db)
	ctx := context.Background()

	house := testutil.CreateProjectType(t, db, "Bungalow", domain.ProjectCategoryResidential, "35000.00")

	t.Run("by id and by name", func(t *testing.T) {
		byID, err := svc.GetProjectType(ctx, house.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "Bungalow", byID.Name)

		byName, err := svc.GetProjectType(ctx, "BUNGALOW")
		require.NoError(t, err)
		assert.Equal(t, house.ID, byName.ID)
	})

	t.Run("resolve prefers an existing type in the category", func(t *testing.T) {
		pt, err := svc.ResolveOrCreateProjectType(ctx, domain.ProjectCategoryResidential)
		require.NoError(t, err)
		assert.Equal(t, house.ID, pt.ID)
	})

	t.Run("resolve creates a default type once", func(t *testing.T) {
		first, err := svc.ResolveOrCreateProjectType(ctx, domain.ProjectCategoryIndustrial)
		require.NoError(t, err)
		assert.Equal(t, "Industrial Project", first.Name)
		assert.Equal(t, "50000.00", first.BaseCostPerSqm.StringFixed(2))

		second, err := svc.ResolveOrCreateProjectType(ctx, domain.ProjectCategoryIndustrial)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.ResolveOrCreateProjectType(ctx, "aerospace")
		assert.ErrorIs(t, err, service.ErrInvalidInput)

		_, err = svc.ListProjectTypes(ctx, "aerospace")
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("list by category", func(t *testing.T) {
		list, err := svc.ListProjectTypes(ctx, "Residential")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Bungalow", list[0].Name)

		all, err := svc.ListProjectTypes(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}
