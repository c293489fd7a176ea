package ledger

import (
	"time"

	"familyledger/internal/domain/ledger"

	"github.com/shopspring/decimal"
)

type MovementInput struct {
	LoanID     string          `json:"loan_id"`
	Kind       ledger.Kind     `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Note       *string         `json:"note,omitempty"`
	Reference  *string         `json:"reference,omitempty"`
	OccurredAt *time.Time      `json:"occurred_at,omitempty"`
}

type MovementDTO struct {
	MovementID string          `json:"movement_id"`
	LoanID     string          `json:"loan_id"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
	Note       *string         `json:"note,omitempty"`
	Reference  *string         `json:"reference,omitempty"`
}

type BalanceDTO struct {
	LoanID   string          `json:"loan_id"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
	Balance  decimal.Decimal `json:"balance"`
}

// ToMovementDTO renders m with the public id of the loan it belongs to.
func ToMovementDTO(m *ledger.Movement, loanID string) *MovementDTO {
	return &MovementDTO{
		MovementID: m.MovementID,
		LoanID:     loanID,
		Kind:       string(m.Kind),
		Amount:     m.Amount,
		OccurredAt: m.OccurredAt,
		Note:       m.Note,
		Reference:  m.Reference,
	}
}

// OccurredAt returns *at, or the zero time so the domain stamps the row.
func OccurredAt(at *time.Time) time.Time {
	if at == nil {
		return time.Time{}
	}
	return *at
}
