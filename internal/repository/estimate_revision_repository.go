package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jengaest/estimate-api/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevisionEntry is the content of a revision before it is numbered
type RevisionEntry struct {
	EstimateID        uuid.UUID
	PreviousTotalCost decimal.Decimal
	NewTotalCost      decimal.Decimal
	ChangesSummary    string
	AuthorID          uuid.UUID
	AuthorName        string
}

// EstimateRevisionRepository is the append-only revision ledger.
// There are deliberately no update or delete methods.
type EstimateRevisionRepository struct {
	db *gorm.DB
}

// NewEstimateRevisionRepository creates a new revision repository
func NewEstimateRevisionRepository(db *gorm.DB) *EstimateRevisionRepository {
	return &EstimateRevisionRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *EstimateRevisionRepository) WithTx(tx *gorm.DB) *EstimateRevisionRepository {
	return &EstimateRevisionRepository{db: tx}
}

// Append numbers and stores a revision. The estimate row is locked with
// SELECT ... FOR UPDATE for the rest of the transaction so concurrent writers
// queue behind each other; the unique (estimate_id, revision_number) index
// rejects anything that still collides with gorm.ErrDuplicatedKey.
func (r *EstimateRevisionRepository) Append(ctx context.Context, entry RevisionEntry) (*domain.EstimateRevision, error) {
	var revision *domain.EstimateRevision

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked domain.Estimate
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", entry.EstimateID).
			First(&locked).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&domain.EstimateRevision{}).
			Where("estimate_id = ?", entry.EstimateID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count revisions: %w", err)
		}

		revision = &domain.EstimateRevision{
			EstimateID:        entry.EstimateID,
			RevisionNumber:    int(count) + 1,
			ChangesSummary:    entry.ChangesSummary,
			PreviousTotalCost: entry.PreviousTotalCost,
			NewTotalCost:      entry.NewTotalCost,
			CreatedByID:       entry.AuthorID,
			CreatedByName:     entry.AuthorName,
		}
		return tx.Create(revision).Error
	})
	if err != nil {
		return nil, err
	}
	return revision, nil
}

// ListByEstimate returns an estimate's revisions in ledger order
func (r *EstimateRevisionRepository) ListByEstimate(ctx context.Context, estimateID uuid.UUID) ([]domain.EstimateRevision, error) {
	var revisions []domain.EstimateRevision
	err := r.db.WithContext(ctx).
		Where("estimate_id = ?", estimateID).
		Order("revision_number ASC").
		Find(&revisions).Error
	return revisions, err
}
