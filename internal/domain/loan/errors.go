package loan

import "familyledger/internal/domain/failure"

var (
	ErrNotFound          = failure.New(failure.KindNotFound, "loan_not_found", "loan not found")
	ErrInvalidPrincipal  = failure.New(failure.KindValidation, "invalid_principal", "principal must be greater than zero")
	ErrPrincipalCents    = failure.New(failure.KindValidation, "invalid_principal_precision", "principal must have at most 2 decimal places")
	ErrInvalidRate       = failure.New(failure.KindValidation, "invalid_rate", "monthly rate must be between 0 and 1")
	ErrInvalidCurrency   = failure.New(failure.KindValidation, "invalid_currency", "currency must be a 3-letter code")
	ErrInvalidDueDate    = failure.New(failure.KindValidation, "invalid_due_date", "due date must not precede start date")
	ErrInvalidStatus     = failure.New(failure.KindValidation, "invalid_status", "unknown loan status")
	ErrInvalidTerm       = failure.New(failure.KindValidation, "invalid_term", "term must be at least one month")
	ErrNotActive         = failure.New(failure.KindBusinessRule, "loan_not_active", "loan is not active")
	ErrInvalidTransition = failure.New(failure.KindBusinessRule, "invalid_transition", "loan status transition not allowed")
	ErrNoOutstandingDebt = failure.New(failure.KindBusinessRule, "no_outstanding_debt", "loan has no outstanding debt")
)
