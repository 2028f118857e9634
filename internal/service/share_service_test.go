package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/repository"
	"github.com/jengaest/estimate-api/internal/service"
	"github.com/jengaest/estimate-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createShareService(db *gorm.DB, now time.Time) *service.ShareService {
	return service.NewShareService(
		repository.NewEstimateShareRepository(db),
		repository.NewEstimateRepository(db),
		7*24*time.Hour,
		90*24*time.Hour,
		zap.NewNop(),
	).WithClock(func() time.Time { return now })
}

func TestShareService_IssueAndResolve(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := uuid.New()
	ctx := userContext(owner)
	estimate := testutil.CreateEstimate(t, db, owner, "Library", "1000", "10")

	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := createShareService(db, issuedAt)

	share, err := svc.Issue(ctx, estimate.ID, &domain.ShareEstimateRequest{Email: "client@example.com"})
	require.NoError(t, err)
	assert.True(t, share.IsActive)
	assert.NotEmpty(t, share.Token)
	assert.Equal(t, "2026-03-08T12:00:00Z", share.ExpiresAt)

	t.Run("resolves without a user before expiry", func(t *testing.T) {
		later := createShareService(db, issuedAt.Add(6*24*time.Hour))
		shared, err := later.Resolve(userContext(uuid.New()), share.Token)
		require.NoError(t, err)
		assert.True(t, shared.ReadOnly)
		assert.Equal(t, estimate.ID, shared.Estimate.ID)
		assert.Equal(t, "10000.00", shared.Estimate.TotalEstimatedCost)
	})

	t.Run("expired token stays expired once deactivated", func(t *testing.T) {
		expired := createShareService(db, issuedAt.Add(7*24*time.Hour))
		_, err := expired.Resolve(ctx, share.Token)
		assert.ErrorIs(t, err, service.ErrShareExpired)

		stored, err := repository.NewEstimateShareRepository(db).GetByToken(ctx, share.Token)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)

		_, err = expired.Resolve(ctx, share.Token)
		assert.ErrorIs(t, err, service.ErrShareExpired)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.Resolve(ctx, uuid.NewString())
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestShareService_IssueRules(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := uuid.New()
	estimate := testutil.CreateEstimate(t, db, owner, "Depot", "1000", "10")
	svc := createShareService(db, time.Now())

	ttl := func(h int) *int { return &h }

	tests := []struct {
		name    string
		ctxUser uuid.UUID
		roles   []string
		req     *domain.ShareEstimateRequest
		wantErr error
	}{
		{"owner with custom ttl", owner, nil, &domain.ShareEstimateRequest{TTLHours: ttl(48)}, nil},
		{"staff may share any estimate", uuid.New(), []string{auth.RoleStaff}, &domain.ShareEstimateRequest{}, nil},
		{"stranger cannot see it", uuid.New(), nil, &domain.ShareEstimateRequest{}, service.ErrNotFound},
		{"ttl above maximum", owner, nil, &domain.ShareEstimateRequest{TTLHours: ttl(91 * 24)}, service.ErrInvalidInput},
		{"non-positive ttl", owner, nil, &domain.ShareEstimateRequest{TTLHours: ttl(0)}, service.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Issue(userContext(tt.ctxUser, tt.roles...), estimate.ID, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestShareService_RevokeAndSweep(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := uuid.New()
	ctx := userContext(owner)
	estimate := testutil.CreateEstimate(t, db, owner, "Hangar", "1000", "10")
	now := time.Now().UTC()
	svc := createShareService(db, now)

	live := testutil.CreateShare(t, db, estimate.ID, owner, true, now.Add(time.Hour))
	stale := testutil.CreateShare(t, db, estimate.ID, owner, true, now.Add(-time.Hour))

	count, err := svc.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = svc.Resolve(ctx, stale.Token)
	assert.ErrorIs(t, err, service.ErrShareExpired)

	shares, err := svc.ListByEstimate(ctx, estimate.ID)
	require.NoError(t, err)
	require.Len(t, shares, 2)
	for _, s := range shares {
		assert.Equal(t, s.ID == live.ID, s.IsActive, s.ID)
	}

	require.NoError(t, svc.Revoke(ctx, estimate.ID, live.ID))
	_, err = svc.Resolve(ctx, live.Token)
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = svc.Revoke(userContext(uuid.New()), estimate.ID, stale.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	err = svc.Revoke(ctx, estimate.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
