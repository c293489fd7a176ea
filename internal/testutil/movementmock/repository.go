package movementmock

import (
	"context"
	"sync"

	"familyledger/internal/domain/ledger"
)

var _ ledger.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies ledger.Repository.
type Repo struct {
	AppendFn      func(ctx context.Context, m *ledger.Movement) error
	ListByLoanFn  func(ctx context.Context, loanID uint64) ([]ledger.Movement, error)
	ListByLoansFn func(ctx context.Context, loanIDs []uint64) ([]ledger.Movement, error)
}

func (r *Repo) Append(ctx context.Context, m *ledger.Movement) error {
	if r.AppendFn != nil {
		return r.AppendFn(ctx, m)
	}
	return nil
}

func (r *Repo) ListByLoan(ctx context.Context, loanID uint64) ([]ledger.Movement, error) {
	if r.ListByLoanFn != nil {
		return r.ListByLoanFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (r *Repo) ListByLoans(ctx context.Context, loanIDs []uint64) ([]ledger.Movement, error) {
	if r.ListByLoansFn != nil {
		return r.ListByLoansFn(ctx, loanIDs)
	}
	return nil, context.Canceled
}

// Store is an in-memory ledger.Repository. Usecase tests use it when they
// need the balance to follow the rows they append.
type Store struct {
	mu   sync.Mutex
	rows []ledger.Movement
}

func NewStore(seed ...ledger.Movement) *Store {
	return &Store{rows: append([]ledger.Movement(nil), seed...)}
}

func (s *Store) Append(_ context.Context, m *ledger.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = uint64(len(s.rows) + 1)
	s.rows = append(s.rows, *m)
	return nil
}

// ListByLoan returns newest rows first, like the gorm repository.
func (s *Store) ListByLoan(_ context.Context, loanID uint64) ([]ledger.Movement, error) {
	return s.filter(func(m ledger.Movement) bool { return m.LoanID == loanID }), nil
}

func (s *Store) ListByLoans(_ context.Context, loanIDs []uint64) ([]ledger.Movement, error) {
	want := make(map[uint64]bool, len(loanIDs))
	for _, id := range loanIDs {
		want[id] = true
	}
	return s.filter(func(m ledger.Movement) bool { return want[m.LoanID] }), nil
}

// All returns every stored row in insertion order.
func (s *Store) All() []ledger.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ledger.Movement(nil), s.rows...)
}

func (s *Store) filter(keep func(ledger.Movement) bool) []ledger.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.Movement
	for i := len(s.rows) - 1; i >= 0; i-- {
		if keep(s.rows[i]) {
			out = append(out, s.rows[i])
		}
	}
	return out
}
