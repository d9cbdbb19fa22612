package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gasline-erp/gasline-erp/internal/app"
	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/ledger/accounts"
	"github.com/gasline-erp/gasline-erp/internal/ledger/categories"
	ledgerhttp "github.com/gasline-erp/gasline-erp/internal/ledger/http"
	"github.com/gasline-erp/gasline-erp/internal/platform/db"
	"github.com/gasline-erp/gasline-erp/internal/shared"
	"github.com/gasline-erp/gasline-erp/internal/shops"
	shopshttp "github.com/gasline-erp/gasline-erp/internal/shops/http"
	"github.com/gasline-erp/gasline-erp/internal/stock/cylinders"
	stockhttp "github.com/gasline-erp/gasline-erp/internal/stock/http"
	"github.com/gasline-erp/gasline-erp/internal/stock/regulators"
	"github.com/gasline-erp/gasline-erp/internal/stock/stoves"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	accountRegistry := accounts.NewRegistry(accounts.NewRepository(pool))
	if err := accountRegistry.Load(ctx); err != nil {
		logger.Error("load account registry", slog.Any("error", err))
		os.Exit(1)
	}
	categoryRegistry := categories.NewRegistry(categories.NewRepository(pool))
	if err := categoryRegistry.Load(ctx); err != nil {
		logger.Error("load category registry", slog.Any("error", err))
		os.Exit(1)
	}

	recorder := ledger.NewRecorder(accountRegistry, categoryRegistry)
	auditLogger := shared.NewAuditLogger(pool)

	cylinderService := cylinders.NewService(cylinders.NewRepository(pool), recorder, auditLogger)
	regulatorService := regulators.NewService(regulators.NewRepository(pool), recorder, auditLogger)
	stoveService := stoves.NewService(stoves.NewRepository(pool), recorder, auditLogger)
	shopService := shops.NewService(shops.NewRepository(pool), recorder, auditLogger)

	ledgerHandler := ledgerhttp.NewHandler(logger, ledger.NewRepository(pool))
	stockHandler := stockhttp.NewHandler(logger, cylinderService, regulatorService, stoveService)
	shopsHandler := shopshttp.NewHandler(logger, shopService)

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		LedgerHandler: ledgerHandler,
		StockHandler:  stockHandler,
		ShopsHandler:  shopsHandler,
		Pool:          pool,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
