package uow

import (
	"context"

	"familyledger/internal/domain/ledger"
	"familyledger/internal/domain/loan"
	"familyledger/internal/domain/user"
)

// Repos are bound to the surrounding transaction.
type Repos struct {
	Loans     loan.Repository
	Movements ledger.Repository
	Users     user.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in. Concurrent
	// ledger writes for the same loan are serialised by that lock.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
