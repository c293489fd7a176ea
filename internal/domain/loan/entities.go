package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusClosed    Status = "closed"
	StatusInArrears Status = "in-arrears"
	StatusForgiven  Status = "forgiven"
)

const DefaultCurrency = "COP"

// Table: loans. Balance is never stored here; it is derived from movements.
// Status is a plain varchar on every dialect and is checked by Validate.
type Loan struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID      string          `gorm:"column:loan_id;size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	OwnerID     uint64          `gorm:"column:owner_id;not null;index:idx_loans_owner" json:"-"`
	Currency    string          `gorm:"column:currency;size:3;not null;default:'COP'" json:"currency"`
	Principal   decimal.Decimal `gorm:"column:principal;type:decimal(18,2);not null" json:"principal"`
	MonthlyRate decimal.Decimal `gorm:"column:monthly_rate;type:decimal(7,6);not null;default:0" json:"monthly_rate"`
	StartDate   time.Time       `gorm:"column:start_date;type:date;not null" json:"start_date"`
	DueDate     *time.Time      `gorm:"column:due_date;type:date" json:"due_date,omitempty"`
	Status      Status          `gorm:"column:status;type:varchar(16);not null;default:'active'" json:"status"`
	Note        *string         `gorm:"column:note;type:text" json:"note,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Collectible reports whether payments may still be applied.
func (l *Loan) Collectible() bool { return l.Status == StatusActive }
