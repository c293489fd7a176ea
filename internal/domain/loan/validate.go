package loan

import (
	"familyledger/internal/domain/user"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Validate checks the rules a loan must satisfy before it is stored.
func (l *Loan) Validate() error {
	if !l.Principal.IsPositive() {
		return ErrInvalidPrincipal
	}
	if !l.Principal.Equal(l.Principal.Round(2)) {
		return ErrPrincipalCents
	}
	if l.MonthlyRate.IsNegative() || l.MonthlyRate.GreaterThan(one) {
		return ErrInvalidRate
	}
	if !validCurrency(l.Currency) {
		return ErrInvalidCurrency
	}
	if l.DueDate != nil && l.DueDate.Before(l.StartDate) {
		return ErrInvalidDueDate
	}
	if !l.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func validCurrency(c string) bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// VisibleTo reports whether p may read or pay this loan. Clients only see
// their own loans.
func (l *Loan) VisibleTo(p user.Principal) bool {
	return p.IsAdmin() || l.OwnerID == p.ID
}
