package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "familyledger/internal/adapter/http"
	"familyledger/internal/adapter/middleware"
	"familyledger/internal/adapter/repository/gormrepo"
	"familyledger/internal/config"
	"familyledger/internal/domain/user"
	"familyledger/internal/infrastructure/cache"
	"familyledger/internal/infrastructure/db"
	"familyledger/internal/infrastructure/logging"
	"familyledger/internal/usecase/auth"
	"familyledger/internal/usecase/forgiveness"
	ledgeruc "familyledger/internal/usecase/ledger"
	loanuc "familyledger/internal/usecase/loan"
	"familyledger/internal/usecase/payment"
	useruc "familyledger/internal/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogFormat)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	gdb, err := db.OpenGorm(cfg)
	if err != nil {
		return err
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			return err
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	tx := gormrepo.NewGormUoW(gdb)
	repos := tx.Repos()

	users := useruc.NewUsecase(repos.Users, user.PasswordPolicy{MinLength: cfg.MinPasswordLength}, cfg.BcryptCost)
	if cfg.BootstrapAdminUsername != "" {
		created, err := users.Bootstrap(context.Background(), cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword, cfg.BootstrapAdminName)
		if err != nil {
			return err
		}
		if created {
			logger.Info("bootstrap admin created", "username", cfg.BootstrapAdminUsername)
		}
	}

	authUC := auth.NewUsecase(repos.Users, cache.NewSessionStore(rdb), cfg.SessionTTL)
	ledgerUC := ledgeruc.NewUsecase(repos, tx)
	handlers := httpadp.Handlers{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "database", Probe: sqlDB.PingContext},
			httpadp.Check{Name: "redis", Probe: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		),
		Auth:      httpadp.NewAuthHandler(authUC),
		Users:     httpadp.NewUserHandler(users, ledgerUC),
		Loans:     httpadp.NewLoanHandler(loanuc.NewUsecase(repos, tx, cfg.DefaultCurrency), ledgerUC),
		Movements: httpadp.NewMovementHandler(payment.NewUsecase(repos, tx, logger), ledgerUC, forgiveness.NewUsecase(repos, tx, logger)),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))
	httpadp.RegisterRoutes(e, handlers,
		middleware.RequireAuth(authUC),
		middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		logger.Info("listening", "addr", addr, "db_driver", cfg.DBDriver)
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
