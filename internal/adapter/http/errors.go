package http

import (
	"errors"
	"log/slog"
	"net/http"

	"familyledger/internal/adapter/middleware"
	"familyledger/internal/domain/failure"
	"familyledger/internal/domain/user"
	ledgeruc "familyledger/internal/usecase/ledger"

	"github.com/labstack/echo/v4"
)

// partialResponse is sent with 202 when the movement is stored but the
// follow-up status change failed.
type partialResponse struct {
	Movement *ledgeruc.MovementDTO `json:"movement"`
	Warning  string                `json:"warning"`
}

// respondError maps domain failures to HTTP codes. Unclassified errors are
// logged and reported as a bare 500.
func respondError(c echo.Context, err error) error {
	body := ErrorResponse{Error: err.Error()}
	var fe *failure.Error
	if errors.As(err, &fe) {
		body.Code = fe.Code
	}

	switch failure.KindOf(err) {
	case failure.KindValidation:
		return c.JSON(http.StatusUnprocessableEntity, body)
	case failure.KindNotFound:
		return c.JSON(http.StatusNotFound, body)
	case failure.KindBusinessRule:
		return c.JSON(http.StatusConflict, body)
	case failure.KindUnauthorized:
		return c.JSON(http.StatusUnauthorized, body)
	case failure.KindForbidden:
		return c.JSON(http.StatusForbidden, body)
	}

	slog.ErrorContext(c.Request().Context(), "request failed",
		"method", c.Request().Method, "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// respondMovement writes a movement created by a ledger write, turning a
// partial failure into 202 with the stored movement.
func respondMovement(c echo.Context, dto *ledgeruc.MovementDTO, err error) error {
	if err != nil {
		if dto != nil && errors.Is(err, failure.ErrPartialFailure) {
			return c.JSON(http.StatusAccepted, partialResponse{Movement: dto, Warning: err.Error()})
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// bindAndValidate reports false after writing a 400 or 422 response.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func principal(c echo.Context) (user.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return user.Principal{}, user.ErrUnauthenticated
	}
	return p, nil
}
