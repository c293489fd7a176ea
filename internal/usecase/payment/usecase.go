package payment

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
	loans     loan.Repository
	movements ledger.Repository
	uow       uow.UnitOfWork
	log       *slog.Logger
}

func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, logger *slog.Logger) *Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{loans: repos.Loans, movements: repos.Movements, uow: tx, log: logger}
}

// CreatePayment appends a payment and closes the loan when it is paid off.
//
// The balance check and the insert share one transaction holding the loan
// row lock, so two concurrent payments cannot both pass the check. The amount
// is compared as given; sub-cent amounts are refused, never rounded. Closing
// the loan happens after commit; when it fails the payment stands and the
// caller gets the movement together with a *failure.Partial.
func (u *Usecase) CreatePayment(ctx context.Context, actor user.Principal, in CreatePaymentInput) (*ledgeruc.MovementDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}

	var (
		paid *loan.Loan
		m    *ledger.Movement
	)
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if !l.VisibleTo(actor) {
			return loan.ErrNotFound
		}
		var err error
		m, err = ledgeruc.Append(ctx, r, l, ledgeruc.MovementInput{
			Kind:       ledger.KindPayment,
			Amount:     in.Amount,
			Note:       in.Note,
			Reference:  in.Reference,
			OccurredAt: in.OccurredAt,
		}, func(l *loan.Loan) error {
			if !l.Collectible() {
				return loan.ErrNotActive
			}
			return nil
		})
		if err != nil {
			return err
		}
		paid = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	dto := ledgeruc.ToMovementDTO(m, paid.LoanID)
	if err := u.closeIfSettled(ctx, paid); err != nil {
		u.log.ErrorContext(ctx, "loan status update failed after payment",
			slog.Bool("partial_failure", true),
			slog.String("loan_id", paid.LoanID),
			slog.String("movement_id", m.MovementID),
			slog.Any("err", err),
		)
		return dto, &failure.Partial{Op: "close loan", Err: err}
	}
	return dto, nil
}

// closeIfSettled re-reads the ledger after the insert and closes the loan
// when nothing is owed. Running it twice is harmless.
func (u *Usecase) closeIfSettled(ctx context.Context, l *loan.Loan) error {
	history, err := u.movements.ListByLoan(ctx, l.ID)
	if err != nil {
		return err
	}
	if ledger.Balance(history).IsPositive() {
		return nil
	}
	_, err = u.loans.UpdateStatus(ctx, l.ID, loan.StatusClosed, loan.StatusActive)
	return err
}
