package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePaymentInput struct {
	LoanID     string          `json:"loan_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       *string         `json:"note,omitempty"`
	Reference  *string         `json:"reference,omitempty"`
	OccurredAt *time.Time      `json:"occurred_at,omitempty"`
}
