package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// Row-locking read; only meaningful inside a UnitOfWork transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// List newest first; ownerID 0 lists every loan.
	List(ctx context.Context, ownerID uint64) ([]Loan, error)
	// UpdateStatus is a conditional write: it only changes rows currently in
	// one of from, and reports whether a row changed.
	UpdateStatus(ctx context.Context, id uint64, to Status, from ...Status) (bool, error)
}
