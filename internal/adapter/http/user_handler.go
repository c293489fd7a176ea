package http

import (
	"net/http"

	"familyledger/internal/domain/user"
	ledgeruc "familyledger/internal/usecase/ledger"
	useruc "familyledger/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users  *useruc.Usecase
	ledger *ledgeruc.Usecase
}

func NewUserHandler(users *useruc.Usecase, ledger *ledgeruc.Usecase) *UserHandler {
	return &UserHandler{users: users, ledger: ledger}
}

type createUserReq struct {
	Username    string `json:"username"     validate:"required,username"`
	Password    string `json:"password"     validate:"required"`
	DisplayName string `json:"display_name" validate:"required,max=120"`
	Role        string `json:"role"         validate:"omitempty,oneof=admin client"`
}

type setUserStatusReq struct {
	Active *bool `json:"active" validate:"required"`
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req createUserReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.users.Create(c.Request().Context(), actor, useruc.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        user.Role(req.Role),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.users.List(c.Request().Context(), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	dto, err := h.users.Get(c.Request().Context(), actor, c.Param("user_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) SetUserStatus(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req setUserStatusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.users.SetActive(c.Request().Context(), actor, c.Param("user_id"), *req.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) UserMovements(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	list, err := h.ledger.UserMovements(c.Request().Context(), actor, c.Param("user_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
