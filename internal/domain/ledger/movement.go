package ledger

import (
	"time"

	"familyledger/pkg/id"

	"github.com/shopspring/decimal"
)

const maxReferenceLen = 128

// NewMovement builds a movement ready to append, enforcing the sign rules of
// its kind. Adjustments may be negative but never zero; every other kind must
// be positive. Amounts are whole cents and are never rounded here.
func NewMovement(loanID uint64, kind Kind, amount decimal.Decimal, note, reference *string, at time.Time) (*Movement, error) {
	if !kind.Writable() {
		return nil, ErrKindNotWritable
	}
	if !amount.Equal(amount.Round(2)) {
		return nil, ErrAmountPrecision
	}
	switch {
	case kind == KindAdjustment && amount.IsZero():
		return nil, ErrZeroAdjustment
	case kind != KindAdjustment && !amount.IsPositive():
		return nil, ErrInvalidAmount
	}
	if reference != nil && len(*reference) > maxReferenceLen {
		return nil, ErrReferenceTooLong
	}
	if at.IsZero() {
		at = time.Now()
	}
	return &Movement{
		MovementID: id.NewID32(),
		LoanID:     loanID,
		Kind:       kind,
		Amount:     amount,
		OccurredAt: at.UTC(),
		Note:       emptyToNil(note),
		Reference:  emptyToNil(reference),
	}, nil
}

// Manual reports whether an administrator may record kind k directly.
// Payments and the disbursement record have their own entry points.
func (k Kind) Manual() bool {
	return k == KindInterest || k == KindCharge || k == KindAdjustment
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
