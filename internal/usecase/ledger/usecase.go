package ledger

import (
	"context"

	"familyledger/internal/domain/ledger"
	"familyledger/internal/domain/loan"
	"familyledger/internal/domain/uow"
	"familyledger/internal/domain/user"
)

type Usecase struct {
	loans     loan.Repository
	movements ledger.Repository
	users     user.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(repos uow.Repos, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: repos.Loans, movements: repos.Movements, users: repos.Users, uow: tx}
}

// AppendMovement inserts one movement under the loan lock. It never touches
// earlier movements or the loan row.
func (u *Usecase) AppendMovement(ctx context.Context, in MovementInput) (*MovementDTO, error) {
	return u.appendLocked(ctx, in, nil)
}

// RecordMovement is the admin entry point for interest, charges and
// adjustments. The loan must still be active or in arrears.
func (u *Usecase) RecordMovement(ctx context.Context, actor user.Principal, in MovementInput) (*MovementDTO, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	if !in.Kind.Manual() {
		return nil, ledger.ErrKindNotManual
	}
	return u.appendLocked(ctx, in, func(l *loan.Loan) error {
		if l.Status != loan.StatusActive && l.Status != loan.StatusInArrears {
			return loan.ErrNotActive
		}
		return nil
	})
}

func (u *Usecase) appendLocked(ctx context.Context, in MovementInput, guard func(l *loan.Loan) error) (*MovementDTO, error) {
	var dto *MovementDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		m, err := Append(ctx, r, l, in, guard)
		if err != nil {
			return err
		}
		dto = ToMovementDTO(m, l.LoanID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Append is the single write path of the ledger. It runs inside the caller's
// transaction on an already loaded loan, in this order:
//
//   - the kind must be writable
//   - a disbursement record is only accepted as the loan's first movement
//   - a positive payment may not exceed the balance read from r
//   - guard, when set, decides on the loan row
//   - the amount passes the sign and precision rules of NewMovement
//
// in.LoanID is ignored; the movement is attached to l.
func Append(ctx context.Context, r uow.Repos, l *loan.Loan, in MovementInput, guard func(l *loan.Loan) error) (*ledger.Movement, error) {
	if !in.Kind.Writable() {
		return nil, ledger.ErrKindNotWritable
	}
	if in.Kind == ledger.KindDisbursementRecord || in.Kind == ledger.KindPayment {
		history, err := r.Movements.ListByLoan(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		if in.Kind == ledger.KindDisbursementRecord && len(history) > 0 {
			return nil, ledger.ErrAlreadyDisbursed
		}
		if in.Kind == ledger.KindPayment && in.Amount.IsPositive() && in.Amount.GreaterThan(ledger.Balance(history)) {
			return nil, ledger.ErrExceedsBalance
		}
	}
	if guard != nil {
		if err := guard(l); err != nil {
			return nil, err
		}
	}
	m, err := ledger.NewMovement(l.ID, in.Kind, in.Amount, in.Note, in.Reference, OccurredAt(in.OccurredAt))
	if err != nil {
		return nil, err
	}
	if err := r.Movements.Append(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ComputeBalance folds every movement of the loan. Clients can only read
// their own loans; anything else reads as not found.
func (u *Usecase) ComputeBalance(ctx context.Context, actor user.Principal, loanID string) (*BalanceDTO, error) {
	l, err := u.visibleLoan(ctx, actor, loanID)
	if err != nil {
		return nil, err
	}
	history, err := u.movements.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &BalanceDTO{
		LoanID:   l.LoanID,
		Currency: l.Currency,
		Status:   string(l.Status),
		Balance:  ledger.Balance(history),
	}, nil
}

// LoanMovements lists a loan's history, newest first.
func (u *Usecase) LoanMovements(ctx context.Context, actor user.Principal, loanID string) ([]MovementDTO, error) {
	l, err := u.visibleLoan(ctx, actor, loanID)
	if err != nil {
		return nil, err
	}
	history, err := u.movements.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]MovementDTO, 0, len(history))
	for i := range history {
		out = append(out, *ToMovementDTO(&history[i], l.LoanID))
	}
	return out, nil
}

// UserMovements lists the movements of every loan owned by userID, newest
// first. Clients may only ask for themselves.
func (u *Usecase) UserMovements(ctx context.Context, actor user.Principal, userID string) ([]MovementDTO, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, user.ErrForbidden
	}
	owner, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	loans, err := u.loans.List(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return []MovementDTO{}, nil
	}

	publicIDs := make(map[uint64]string, len(loans))
	ids := make([]uint64, 0, len(loans))
	for _, l := range loans {
		publicIDs[l.ID] = l.LoanID
		ids = append(ids, l.ID)
	}
	history, err := u.movements.ListByLoans(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]MovementDTO, 0, len(history))
	for i := range history {
		out = append(out, *ToMovementDTO(&history[i], publicIDs[history[i].LoanID]))
	}
	return out, nil
}

func (u *Usecase) visibleLoan(ctx context.Context, actor user.Principal, loanID string) (*loan.Loan, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !l.VisibleTo(actor) {
		return nil, loan.ErrNotFound
	}
	return l, nil
}
