package gormrepo

import (
	"context"

	ledgerDomain "familyledger/internal/domain/ledger"

	"gorm.io/gorm"
)

// MovementRepository only inserts and reads; there is deliberately no Save or Delete.
type MovementRepository struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) *MovementRepository { return &MovementRepository{db: db} }

func (r *MovementRepository) Append(ctx context.Context, m *ledgerDomain.Movement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MovementRepository) ListByLoan(ctx context.Context, loanID uint64) ([]ledgerDomain.Movement, error) {
	var out []ledgerDomain.Movement
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("occurred_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *MovementRepository) ListByLoans(ctx context.Context, loanIDs []uint64) ([]ledgerDomain.Movement, error) {
	if len(loanIDs) == 0 {
		return nil, nil
	}
	var out []ledgerDomain.Movement
	err := r.db.WithContext(ctx).
		Where("loan_id IN ?", loanIDs).
		Order("occurred_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
