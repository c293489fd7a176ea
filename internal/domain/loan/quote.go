package loan

import (
	"github.com/shopspring/decimal"
)

// Quote is a fixed-installment estimate. It is never persisted and does not
// create movements.
type Quote struct {
	Principal      decimal.Decimal `json:"principal"`
	MonthlyRate    decimal.Decimal `json:"monthly_rate"`
	Months         int             `json:"months"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

// NewQuote computes the annuity installment P*r*(1+r)^n / ((1+r)^n - 1),
// or P/n when r is zero.
func NewQuote(principal, monthlyRate decimal.Decimal, months int) (Quote, error) {
	if !principal.IsPositive() {
		return Quote{}, ErrInvalidPrincipal
	}
	if monthlyRate.IsNegative() || monthlyRate.GreaterThan(decimal.NewFromInt(1)) {
		return Quote{}, ErrInvalidRate
	}
	if months < 1 {
		return Quote{}, ErrInvalidTerm
	}

	n := decimal.NewFromInt(int64(months))
	var payment decimal.Decimal
	if monthlyRate.IsZero() {
		payment = principal.DivRound(n, 2)
	} else {
		factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(n)
		payment = principal.Mul(monthlyRate).Mul(factor).
			DivRound(factor.Sub(decimal.NewFromInt(1)), 2)
	}
	total := payment.Mul(n)

	return Quote{
		Principal:      principal,
		MonthlyRate:    monthlyRate,
		Months:         months,
		MonthlyPayment: payment,
		TotalPayment:   total,
		TotalInterest:  total.Sub(principal),
	}, nil
}
