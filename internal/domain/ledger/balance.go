package ledger

import (
	"github.com/shopspring/decimal"
)

// Contribution is the signed effect of one movement on a loan balance.
func Contribution(m Movement) decimal.Decimal {
	switch m.Kind {
	case KindDisbursementRecord, KindInterest, KindCharge:
		return m.Amount
	case KindPayment:
		return m.Amount.Neg()
	case KindAdjustment:
		return m.Amount
	default:
		return decimal.Zero
	}
}

// Balance folds movements into the outstanding amount. The result does not
// depend on the order of movements.
func Balance(movements []Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(Contribution(m))
	}
	return total
}

// Balances groups movements by loan and folds each group.
func Balances(movements []Movement) map[uint64]decimal.Decimal {
	out := make(map[uint64]decimal.Decimal)
	for _, m := range movements {
		out[m.LoanID] = out[m.LoanID].Add(Contribution(m))
	}
	return out
}

// HasForgiveness reports whether any movement is a forgiveness adjustment.
func HasForgiveness(movements []Movement) bool {
	for _, m := range movements {
		if m.IsForgiveness() {
			return true
		}
	}
	return false
}
