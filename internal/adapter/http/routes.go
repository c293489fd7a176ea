package http

import (
	"familyledger/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health    *Handler
	Auth      *AuthHandler
	Users     *UserHandler
	Loans     *LoanHandler
	Movements *MovementHandler
}

// RegisterRoutes mounts the API. authn must resolve the caller; idem guards
// every mutating route behind it.
func RegisterRoutes(e *echo.Echo, h Handlers, authn, idem echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	e.POST("/auth/login", h.Auth.Login)

	api := e.Group("", authn)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/me", h.Auth.Me)

	admin := middleware.RequireAdmin

	api.POST("/users", h.Users.CreateUser, admin, idem)
	api.GET("/users", h.Users.ListUsers, admin)
	api.GET("/users/:user_id", h.Users.GetUser, admin)
	api.PATCH("/users/:user_id/status", h.Users.SetUserStatus, admin, idem)
	api.GET("/users/:user_id/movements", h.Users.UserMovements)

	api.POST("/loans", h.Loans.CreateLoan, admin, idem)
	api.GET("/loans", h.Loans.ListLoans)
	api.GET("/loans/quote", h.Loans.Quote)
	api.GET("/loans/:loan_id", h.Loans.GetLoan)
	api.GET("/loans/:loan_id/balance", h.Loans.Balance)
	api.GET("/loans/:loan_id/movements", h.Loans.Movements)
	api.PATCH("/loans/:loan_id/status", h.Loans.SetStatus, admin, idem)
	api.POST("/loans/:loan_id/reconcile", h.Loans.Reconcile, admin, idem)

	api.POST("/loans/:loan_id/payments", h.Movements.CreatePayment, idem)
	api.POST("/loans/:loan_id/movements", h.Movements.RecordMovement, admin, idem)
	api.POST("/loans/:loan_id/forgive", h.Movements.Forgive, admin, idem)
}
