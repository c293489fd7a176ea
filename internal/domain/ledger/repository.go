package ledger

import "context"

// Repository exposes no update or delete: the ledger is append-only.
type Repository interface {
	Append(ctx context.Context, m *Movement) error
	ListByLoan(ctx context.Context, loanID uint64) ([]Movement, error)
	// ListByLoans returns movements for every loan in loanIDs, newest first.
	ListByLoans(ctx context.Context, loanIDs []uint64) ([]Movement, error)
}
