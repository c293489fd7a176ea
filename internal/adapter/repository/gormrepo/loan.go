package gormrepo

import (
	"context"
	"errors"

	loanDomain "familyledger/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.first(r.db.WithContext(ctx), loanID)
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), loanID)
}

func (r *LoanRepository) first(q *gorm.DB, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := q.Where("loan_id = ?", loanID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LoanRepository) List(ctx context.Context, ownerID uint64) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if ownerID != 0 {
		q = q.Where("owner_id = ?", ownerID)
	}
	var out []loanDomain.Loan
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LoanRepository) UpdateStatus(ctx context.Context, id uint64, to loanDomain.Status, from ...loanDomain.Status) (bool, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{}).Where("id = ?", id)
	if len(from) > 0 {
		q = q.Where("status IN ?", from)
	}
	res := q.Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
