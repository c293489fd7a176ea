package http

import (
	"net/http"
	"strconv"
	"time"

	"familyledger/internal/domain/loan"
	ledgeruc "familyledger/internal/usecase/ledger"
	loanuc "familyledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type LoanHandler struct {
	loans  *loanuc.Usecase
	ledger *ledgeruc.Usecase
}

func NewLoanHandler(loans *loanuc.Usecase, ledger *ledgeruc.Usecase) *LoanHandler {
	return &LoanHandler{loans: loans, ledger: ledger}
}

type createLoanReq struct {
	OwnerID     string          `json:"owner_id"     validate:"required,hex32"`
	Currency    string          `json:"currency"     validate:"omitempty,len=3,uppercase"`
	Principal   decimal.Decimal `json:"principal"    validate:"positive,dec2"`
	MonthlyRate decimal.Decimal `json:"monthly_rate" validate:"rate"`
	StartDate   string          `json:"start_date"   validate:"omitempty,datetime=2006-01-02"`
	DueDate     string          `json:"due_date"     validate:"omitempty,datetime=2006-01-02"`
	Note        *string         `json:"note"         validate:"omitempty,max=500"`
}

type setLoanStatusReq struct {
	Status string `json:"status" validate:"required,oneof=active in-arrears closed forgiven"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req createLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := loanuc.CreateLoanInput{
		OwnerID:     req.OwnerID,
		Currency:    req.Currency,
		Principal:   req.Principal,
		MonthlyRate: req.MonthlyRate,
		Note:        req.Note,
	}
	// layouts were checked by the validator
	if req.StartDate != "" {
		in.StartDate, _ = time.Parse(dateLayout, req.StartDate)
	}
	if req.DueDate != "" {
		due, _ := time.Parse(dateLayout, req.DueDate)
		in.DueDate = &due
	}

	dto, err := h.loans.Create(c.Request().Context(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	dto, err := h.loans.Get(c.Request().Context(), actor, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// ListLoans returns the caller's loans, or for admins every loan, optionally
// narrowed with ?owner_id=.
func (h *LoanHandler) ListLoans(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.loans.List(c.Request().Context(), actor, c.QueryParam("owner_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) Balance(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	dto, err := h.ledger.ComputeBalance(c.Request().Context(), actor, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Movements(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.ledger.LoanMovements(c.Request().Context(), actor, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *LoanHandler) SetStatus(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req setLoanStatusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.loans.SetStatus(c.Request().Context(), actor, c.Param("loan_id"), loan.Status(req.Status))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Reconcile(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	dto, err := h.loans.Reconcile(c.Request().Context(), actor, c.Param("loan_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Quote: GET /loans/quote?principal=&monthly_rate=&months=
func (h *LoanHandler) Quote(c echo.Context) error {
	var details []FieldError
	amount, err := decimal.NewFromString(c.QueryParam("principal"))
	if err != nil {
		details = append(details, FieldError{Field: "principal", Message: "must be a decimal number"})
	}
	rate := decimal.Zero
	if raw := c.QueryParam("monthly_rate"); raw != "" {
		if rate, err = decimal.NewFromString(raw); err != nil {
			details = append(details, FieldError{Field: "monthly_rate", Message: "must be a decimal number"})
		}
	}
	months, err := strconv.Atoi(c.QueryParam("months"))
	if err != nil {
		details = append(details, FieldError{Field: "months", Message: "must be an integer"})
	}
	if len(details) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: details})
	}

	q, err := h.loans.Quote(amount, rate, months)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}
