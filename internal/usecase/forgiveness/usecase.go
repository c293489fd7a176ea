package forgiveness

import (
	"context"
	"log/slog"

	"familyledger/internal/domain/failure"
	"familyledger/internal/domain/ledger"
	"familyledger/internal/domain/loan"
	"familyledger/internal/domain/uow"
	"familyledger/internal/domain/user"
	ledgeruc "familyledger/internal/usecase/ledger"
)

type Usecase struct {
	loans loan.Repository
	uow   uow.UnitOfWork
	log   *slog.Logger
}

func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, logger *slog.Logger) *Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{loans: repos.Loans, uow: tx, log: logger}
}

// ForgiveLoanDebt writes an adjustment of exactly -B, where B is the balance
// read under the loan lock, then marks the loan forgiven. The adjustment is
// authoritative: if the status write fails it is not rolled back and the
// error is a *failure.Partial.
func (u *Usecase) ForgiveLoanDebt(ctx context.Context, actor user.Principal, in ForgiveInput) (*ledgeruc.MovementDTO, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	note := in.Note
	if note == nil || *note == "" {
		n := defaultNote
		note = &n
	}
	ref := ledger.ForgivenessReference

	var (
		target *loan.Loan
		m      *ledger.Movement
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		history, err := r.Movements.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		owed := ledger.Balance(history)
		if !owed.IsPositive() {
			return loan.ErrNoOutstandingDebt
		}
		if !l.Collectible() {
			return loan.ErrNotActive
		}
		m, err = ledgeruc.Append(ctx, r, l, ledgeruc.MovementInput{
			Kind:      ledger.KindAdjustment,
			Amount:    owed.Neg(),
			Note:      note,
			Reference: &ref,
		}, nil)
		if err != nil {
			return err
		}
		target = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := ledgeruc.ToMovementDTO(m, target.LoanID)
	if _, err := u.loans.UpdateStatus(ctx, target.ID, loan.StatusForgiven, loan.StatusActive); err != nil {
		u.log.ErrorContext(ctx, "loan status update failed after forgiveness",
			slog.Bool("partial_failure", true),
			slog.String("loan_id", target.LoanID),
			slog.String("movement_id", m.MovementID),
			slog.Any("err", err),
		)
		return dto, &failure.Partial{Op: "mark loan forgiven", Err: err}
	}
	return dto, nil
}
