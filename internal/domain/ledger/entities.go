package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindDisbursementRecord Kind = "disbursement-record"
	KindPayment            Kind = "payment"
	KindInterest           Kind = "interest"
	KindCharge             Kind = "charge"
	KindAdjustment         Kind = "adjustment"
	// KindLegacyDisbursement is kept so old rows still load. It is never written
	// and contributes nothing to a balance.
	KindLegacyDisbursement Kind = "disbursement"
)

// ForgivenessReference tags the adjustment written by debt forgiveness so the
// loan status can be replayed from the ledger alone.
const ForgivenessReference = "forgiveness"

// Table: movements. Rows are insert-only.
type Movement struct {
	ID         uint64          `gorm:"primaryKey;column:id" json:"-"`
	MovementID string          `gorm:"column:movement_id;size:32;uniqueIndex:ux_movements_movement_id" json:"movement_id"`
	LoanID     uint64          `gorm:"column:loan_id;not null;index:idx_movements_loan" json:"-"`
	Kind       Kind            `gorm:"column:kind;type:varchar(20);not null" json:"kind"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	OccurredAt time.Time       `gorm:"column:occurred_at;not null" json:"occurred_at"`
	Note       *string         `gorm:"column:note;type:text" json:"note,omitempty"`
	Reference  *string         `gorm:"column:reference;size:128" json:"reference,omitempty"`
}

func (Movement) TableName() string { return "movements" }

// Writable reports whether new movements of kind k may be appended.
func (k Kind) Writable() bool {
	switch k {
	case KindDisbursementRecord, KindPayment, KindInterest, KindCharge, KindAdjustment:
		return true
	}
	return false
}

func (k Kind) Valid() bool { return k.Writable() || k == KindLegacyDisbursement }

func (m Movement) IsForgiveness() bool {
	return m.Kind == KindAdjustment && m.Reference != nil && *m.Reference == ForgivenessReference
}
