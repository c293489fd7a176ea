package loan

import (
	"context"
	"strings"
	"time"

	"familyledger/internal/domain/ledger"
	"familyledger/internal/domain/loan"
	"familyledger/internal/domain/uow"
	"familyledger/internal/domain/user"
	ledgeruc "familyledger/internal/usecase/ledger"
	"familyledger/pkg/id"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	loans     loan.Repository
	movements ledger.Repository
	users     user.Repository
	uow       uow.UnitOfWork
	currency  string
}

func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, defaultCurrency string) *Usecase {
	if defaultCurrency == "" {
		defaultCurrency = loan.DefaultCurrency
	}
	return &Usecase{
		loans:     repos.Loans,
		movements: repos.Movements,
		users:     repos.Users,
		uow:       tx,
		currency:  defaultCurrency,
	}
}

// Create stores the loan and its disbursement-record movement in a single
// transaction, so a fresh loan's balance always equals its principal.
func (u *Usecase) Create(ctx context.Context, actor user.Principal, in CreateLoanInput) (*LoanDTO, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}

	start := in.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	l := &loan.Loan{
		LoanID:      id.NewID32(),
		Currency:    strings.ToUpper(strings.TrimSpace(in.Currency)),
		Principal:   in.Principal,
		MonthlyRate: in.MonthlyRate,
		StartDate:   truncateDay(start),
		Status:      loan.StatusActive,
		Note:        in.Note,
	}
	if l.Currency == "" {
		l.Currency = u.currency
	}
	if in.DueDate != nil {
		due := truncateDay(*in.DueDate)
		l.DueDate = &due
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	owner, err := u.users.GetByUserID(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsActive {
		return nil, user.ErrInactive
	}
	l.OwnerID = owner.ID

	var history []ledger.Movement
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		m, err := ledgeruc.Append(ctx, r, l, ledgeruc.MovementInput{
			Kind:   ledger.KindDisbursementRecord,
			Amount: l.Principal,
		}, nil)
		if err != nil {
			return err
		}
		history = []ledger.Movement{*m}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(l, owner, ledger.Balance(history)), nil
}

func (u *Usecase) Get(ctx context.Context, actor user.Principal, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !l.VisibleTo(actor) {
		return nil, loan.ErrNotFound
	}
	return u.view(ctx, l)
}

func (u *Usecase) view(ctx context.Context, l *loan.Loan) (*LoanDTO, error) {
	history, err := u.movements.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	owner, err := u.users.GetByID(ctx, l.OwnerID)
	if err != nil {
		return nil, err
	}
	return toDTO(l, owner, ledger.Balance(history)), nil
}

// List returns loans with their balances, newest first. Admins may filter
// by owner; clients always get their own loans.
func (u *Usecase) List(ctx context.Context, actor user.Principal, ownerUserID string) ([]LoanDTO, error) {
	var ownerID uint64
	switch {
	case !actor.IsAdmin():
		ownerID = actor.ID
	case ownerUserID != "":
		owner, err := u.users.GetByUserID(ctx, ownerUserID)
		if err != nil {
			return nil, err
		}
		ownerID = owner.ID
	}

	loans, err := u.loans.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(loans) == 0 {
		return []LoanDTO{}, nil
	}
	ids := make([]uint64, 0, len(loans))
	for _, l := range loans {
		ids = append(ids, l.ID)
	}
	history, err := u.movements.ListByLoans(ctx, ids)
	if err != nil {
		return nil, err
	}
	balances := ledger.Balances(history)

	owners := map[uint64]*user.User{}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		l := &loans[i]
		owner, ok := owners[l.OwnerID]
		if !ok {
			if owner, err = u.users.GetByID(ctx, l.OwnerID); err != nil {
				return nil, err
			}
			owners[l.OwnerID] = owner
		}
		out = append(out, *toDTO(l, owner, balances[l.ID]))
	}
	return out, nil
}

// SetStatus is the manual admin override. Only active and in-arrears can be
// set this way; closed and forgiven come from payments and forgiveness.
func (u *Usecase) SetStatus(ctx context.Context, actor user.Principal, loanID string, to loan.Status) (*LoanDTO, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	if !to.Valid() {
		return nil, loan.ErrInvalidStatus
	}
	if !loan.ManualTarget(to) {
		return nil, loan.ErrInvalidTransition
	}
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.CanTransition(l.Status, to) {
		return nil, loan.ErrInvalidTransition
	}
	changed, err := u.loans.UpdateStatus(ctx, l.ID, to, l.Status)
	if err != nil {
		return nil, err
	}
	if !changed {
		// someone else moved the loan first
		return nil, loan.ErrInvalidTransition
	}
	l.Status = to
	return u.view(ctx, l)
}

// Reconcile replays the status flag from the ledger. An active loan whose
// balance is no longer positive becomes forgiven when a forgiveness
// adjustment exists and closed otherwise. Repeated calls change nothing.
func (u *Usecase) Reconcile(ctx context.Context, actor user.Principal, loanID string) (*ReconcileDTO, error) {
	if !actor.IsAdmin() {
		return nil, user.ErrForbidden
	}
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	history, err := u.movements.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := &ReconcileDTO{LoanID: l.LoanID, Status: string(l.Status), Balance: ledger.Balance(history)}
	if l.Status != loan.StatusActive || out.Balance.IsPositive() {
		return out, nil
	}

	target := loan.StatusClosed
	if ledger.HasForgiveness(history) {
		target = loan.StatusForgiven
	}
	changed, err := u.loans.UpdateStatus(ctx, l.ID, target, loan.StatusActive)
	if err != nil {
		return nil, err
	}
	if changed {
		out.Status, out.Changed = string(target), true
	}
	return out, nil
}

func (u *Usecase) Quote(principal, monthlyRate decimal.Decimal, months int) (loan.Quote, error) {
	return loan.NewQuote(principal, monthlyRate, months)
}

func toDTO(l *loan.Loan, owner *user.User, balance decimal.Decimal) *LoanDTO {
	dto := &LoanDTO{
		LoanID:      l.LoanID,
		OwnerID:     owner.UserID,
		OwnerName:   owner.DisplayName,
		Currency:    l.Currency,
		Principal:   l.Principal,
		MonthlyRate: l.MonthlyRate,
		StartDate:   l.StartDate.Format(dateLayout),
		Status:      string(l.Status),
		Note:        l.Note,
		Balance:     balance,
		CreatedAt:   l.CreatedAt,
	}
	if l.DueDate != nil {
		due := l.DueDate.Format(dateLayout)
		dto.DueDate = &due
	}
	return dto
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
