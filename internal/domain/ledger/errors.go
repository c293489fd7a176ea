package ledger

import "familyledger/internal/domain/failure"

var (
	ErrInvalidAmount    = failure.New(failure.KindValidation, "invalid_amount", "amount must be greater than zero")
	ErrZeroAdjustment   = failure.New(failure.KindValidation, "zero_adjustment", "adjustment amount must not be zero")
	ErrKindNotWritable  = failure.New(failure.KindValidation, "kind_not_writable", "movement kind cannot be written")
	ErrKindNotManual    = failure.New(failure.KindValidation, "kind_not_manual", "movement kind must be interest, charge or adjustment")
	ErrReferenceTooLong = failure.New(failure.KindValidation, "reference_too_long", "reference must be at most 128 characters")
	ErrAmountPrecision  = failure.New(failure.KindValidation, "amount_precision", "amount must have at most 2 decimal places")
	ErrExceedsBalance   = failure.New(failure.KindBusinessRule, "exceeds_balance", "amount exceeds current balance")
	ErrAlreadyDisbursed = failure.New(failure.KindBusinessRule, "already_disbursed", "loan already has its disbursement record")
)
