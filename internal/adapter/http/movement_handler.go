package http

import (
	"time"

	"familyledger/internal/domain/ledger"
	"familyledger/internal/usecase/forgiveness"
	ledgeruc "familyledger/internal/usecase/ledger"
	"familyledger/internal/usecase/payment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// MovementHandler serves the ledger writes: payments, manual movements and
// debt forgiveness.
type MovementHandler struct {
	payments    *payment.Usecase
	ledger      *ledgeruc.Usecase
	forgiveness *forgiveness.Usecase
}

func NewMovementHandler(payments *payment.Usecase, movements *ledgeruc.Usecase, forgive *forgiveness.Usecase) *MovementHandler {
	return &MovementHandler{payments: payments, ledger: movements, forgiveness: forgive}
}

type createPaymentReq struct {
	Amount     decimal.Decimal `json:"amount"      validate:"positive,dec2"`
	Note       *string         `json:"note"        validate:"omitempty,max=500"`
	Reference  *string         `json:"reference"   validate:"omitempty,max=128"`
	OccurredAt *time.Time      `json:"occurred_at"`
}

type recordMovementReq struct {
	Kind       string          `json:"kind"        validate:"required,oneof=interest charge adjustment"`
	Amount     decimal.Decimal `json:"amount"      validate:"nonzero,dec2"`
	Note       *string         `json:"note"        validate:"omitempty,max=500"`
	Reference  *string         `json:"reference"   validate:"omitempty,max=128"`
	OccurredAt *time.Time      `json:"occurred_at"`
}

type forgiveReq struct {
	Note *string `json:"note" validate:"omitempty,max=500"`
}

func (h *MovementHandler) CreatePayment(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req createPaymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.payments.CreatePayment(c.Request().Context(), actor, payment.CreatePaymentInput{
		LoanID:     c.Param("loan_id"),
		Amount:     req.Amount,
		Note:       req.Note,
		Reference:  req.Reference,
		OccurredAt: req.OccurredAt,
	})
	return respondMovement(c, dto, err)
}

func (h *MovementHandler) RecordMovement(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req recordMovementReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.ledger.RecordMovement(c.Request().Context(), actor, ledgeruc.MovementInput{
		LoanID:     c.Param("loan_id"),
		Kind:       ledger.Kind(req.Kind),
		Amount:     req.Amount,
		Note:       req.Note,
		Reference:  req.Reference,
		OccurredAt: req.OccurredAt,
	})
	return respondMovement(c, dto, err)
}

func (h *MovementHandler) Forgive(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req forgiveReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.forgiveness.ForgiveLoanDebt(c.Request().Context(), actor, forgiveness.ForgiveInput{
		LoanID: c.Param("loan_id"),
		Note:   req.Note,
	})
	return respondMovement(c, dto, err)
}
