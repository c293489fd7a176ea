package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateLoanInput struct {
	OwnerID     string          `json:"owner_id"`
	Currency    string          `json:"currency"`
	Principal   decimal.Decimal `json:"principal"`
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
	StartDate   time.Time       `json:"start_date"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Note        *string         `json:"note,omitempty"`
}

type LoanDTO struct {
	LoanID      string          `json:"loan_id"`
	OwnerID     string          `json:"owner_id"`
	OwnerName   string          `json:"owner_name"`
	Currency    string          `json:"currency"`
	Principal   decimal.Decimal `json:"principal"`
	MonthlyRate decimal.Decimal `json:"monthly_rate"`
	StartDate   string          `json:"start_date"`
	DueDate     *string         `json:"due_date,omitempty"`
	Status      string          `json:"status"`
	Note        *string         `json:"note,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ReconcileDTO struct {
	LoanID  string          `json:"loan_id"`
	Status  string          `json:"status"`
	Balance decimal.Decimal `json:"balance"`
	Changed bool            `json:"changed"`
}

const dateLayout = "2006-01-02"
