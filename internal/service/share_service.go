package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/auth"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/jengaest/estimate-api/internal/mapper"
	"github.com/jengaest/estimate-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShareService issues and resolves read-only share links
type ShareService struct {
	shareRepo    *repository.EstimateShareRepository
	estimateRepo *repository.EstimateRepository
	defaultTTL   time.Duration
	maxTTL       time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

func NewShareService(
	shareRepo *repository.EstimateShareRepository,
	estimateRepo *repository.EstimateRepository,
	defaultTTL, maxTTL time.Duration,
	logger *zap.Logger,
) *ShareService {
	return &ShareService{
		shareRepo:    shareRepo,
		estimateRepo: estimateRepo,
		defaultTTL:   defaultTTL,
		maxTTL:       maxTTL,
		now:          time.Now,
		logger:       logger,
	}
}

// WithClock returns a copy of the service that reads time from now
func (s *ShareService) WithClock(now func() time.Time) *ShareService {
	clone := *s
	clone.now = now
	return &clone
}

// Issue creates a share link for an estimate the caller owns, or any estimate for staff
func (s *ShareService) Issue(ctx context.Context, estimateID uuid.UUID, req *domain.ShareEstimateRequest) (*domain.EstimateShareDTO, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	if _, err := s.ownedEstimate(ctx, user, estimateID); err != nil {
		return nil, err
	}

	ttl := s.defaultTTL
	if req.TTLHours != nil {
		if *req.TTLHours <= 0 {
			return nil, invalidf("ttlHours must be positive")
		}
		ttl = time.Duration(*req.TTLHours) * time.Hour
	}
	if s.maxTTL > 0 && ttl > s.maxTTL {
		return nil, invalidf("ttlHours exceeds the maximum of %d", int(s.maxTTL.Hours()))
	}

	share := &domain.EstimateShare{
		EstimateID:      estimateID,
		SharedWithEmail: strings.TrimSpace(req.Email),
		SharedWithName:  strings.TrimSpace(req.Name),
		Token:           uuid.NewString(),
		IsActive:        true,
		ExpiresAt:       s.now().Add(ttl).UTC(),
		CreatedByID:     user.UserID,
	}
	if err := s.shareRepo.Create(ctx, share); err != nil {
		s.logger.Error("failed to create share", zap.Error(err), zap.String("estimateId", estimateID.String()))
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	s.logger.Info("estimate shared",
		zap.String("estimateId", estimateID.String()),
		zap.String("shareId", share.ID.String()),
		zap.Time("expiresAt", share.ExpiresAt),
	)

	dto := mapper.ToEstimateShareDTO(share)
	return &dto, nil
}

// Resolve returns the estimate behind a token. A token past its expiry is
// ErrShareExpired whether or not it was already deactivated; unknown and
// revoked tokens are ErrNotFound.
func (s *ShareService) Resolve(ctx context.Context, token string) (*domain.SharedEstimateDTO, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNotFound
	}

	share, err := s.shareRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, translateGet(err, "failed to get share")
	}

	now := s.now()
	if share.Expired(now) {
		if share.IsActive {
			if err := s.shareRepo.Deactivate(ctx, share.ID); err != nil {
				s.logger.Warn("failed to deactivate expired share", zap.Error(err), zap.String("shareId", share.ID.String()))
			}
		}
		return nil, ErrShareExpired
	}
	if !share.Grants(now) {
		return nil, ErrNotFound
	}

	// Share links bypass ownership, so the lookup runs without a user context.
	estimate, err := s.estimateRepo.GetByID(withoutUser(ctx), share.EstimateID)
	if err != nil {
		return nil, translateGet(err, "failed to get shared estimate")
	}

	dto := mapper.ToSharedEstimateDTO(estimate, share)
	return &dto, nil
}

// ListByEstimate returns every share of an estimate the caller owns
func (s *ShareService) ListByEstimate(ctx context.Context, estimateID uuid.UUID) ([]domain.EstimateShareDTO, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}
	if _, err := s.ownedEstimate(ctx, user, estimateID); err != nil {
		return nil, err
	}

	shares, err := s.shareRepo.ListByEstimate(ctx, estimateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}

	dtos := make([]domain.EstimateShareDTO, len(shares))
	for i := range shares {
		dtos[i] = mapper.ToEstimateShareDTO(&shares[i])
	}
	return dtos, nil
}

// Revoke deactivates one share of an estimate the caller owns
func (s *ShareService) Revoke(ctx context.Context, estimateID, shareID uuid.UUID) error {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return ErrForbidden
	}
	if _, err := s.ownedEstimate(ctx, user, estimateID); err != nil {
		return err
	}

	share, err := s.shareRepo.GetByID(ctx, estimateID, shareID)
	if err != nil {
		return translateGet(err, "failed to get share")
	}
	if err := s.shareRepo.Deactivate(ctx, share.ID); err != nil {
		return fmt.Errorf("failed to revoke share: %w", err)
	}

	s.logger.Info("share revoked", zap.String("shareId", shareID.String()), zap.String("estimateId", estimateID.String()))
	return nil
}

// SweepExpired deactivates every active share whose expiry has passed
func (s *ShareService) SweepExpired(ctx context.Context) (int64, error) {
	count, err := s.shareRepo.DeactivateExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired shares: %w", err)
	}
	return count, nil
}

func (s *ShareService) ownedEstimate(ctx context.Context, user *auth.UserContext, estimateID uuid.UUID) (*domain.Estimate, error) {
	estimate, err := s.estimateRepo.GetByID(ctx, estimateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}
	if !user.CanAccess(estimate.UserID) {
		return nil, ErrNotFound
	}
	return estimate, nil
}

// withoutUser strips any user from ctx so owner filtering does not apply
func withoutUser(ctx context.Context) context.Context {
	return auth.WithUserContext(ctx, nil)
}
