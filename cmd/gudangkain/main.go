package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gudangkain/gudangkain/internal/app"
	"github.com/gudangkain/gudangkain/internal/auth"
	"github.com/gudangkain/gudangkain/internal/catalog"
	"github.com/gudangkain/gudangkain/internal/ledger"
	"github.com/gudangkain/gudangkain/internal/payroll"
	"github.com/gudangkain/gudangkain/internal/platform/cache"
	"github.com/gudangkain/gudangkain/internal/platform/db"
	"github.com/gudangkain/gudangkain/internal/sales"
	"github.com/gudangkain/gudangkain/internal/shared"
	"github.com/gudangkain/gudangkain/internal/sheetdb"
	"github.com/gudangkain/gudangkain/report"
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

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	// The table backend is required at startup; a server that cannot reach
	// its tables has nothing to serve.
	var store sheetdb.Store
	switch cfg.StoreDriver {
	case app.DriverWorkbook:
		workbook, err := sheetdb.NewWorkbook(cfg.WorkbookPath)
		if err != nil {
			logger.Error("open workbook", slog.String("path", cfg.WorkbookPath), slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := workbook.Close(); err != nil {
				logger.Warn("workbook close", slog.Any("error", err))
			}
		}()
		store = workbook
	case app.DriverPostgres:
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		pgStore, err := sheetdb.NewPostgresStore(ctx, pool)
		if err != nil {
			logger.Error("prepare postgres tables", slog.Any("error", err))
			os.Exit(1)
		}
		store = pgStore
	}
	store = sheetdb.NewCachedStore(store, redisClient, cfg.CacheTTL, logger)

	sessionManager := shared.NewSessionManager(redisClient, "gudangkain_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	gate := shared.NewWriteGate()

	reportClient := report.NewClient(cfg.GotenbergURL)
	if err := reportClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg unreachable, PDF export degraded", slog.Any("error", err))
	}
	renderer := report.NewRenderer(reportClient)

	authRepo := auth.NewRepository(store)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	catalogRepo := catalog.NewRepository(store)
	catalogService := catalog.NewService(catalogRepo, gate)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	ledgerRepo := ledger.NewRepository(store)
	ledgerService := ledger.NewService(ledgerRepo, gate)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	salesRepo := sales.NewRepository(store)
	salesService := sales.NewService(salesRepo, ledgerService, ledgerRepo, catalogService, gate)
	salesHandler := sales.NewHandler(logger, salesService, renderer)

	payrollRepo := payroll.NewRepository(store)
	payrollService := payroll.NewService(payrollRepo, gate, payroll.RerunPolicy(cfg.PayrollRerunPolicy))
	payrollHandler := payroll.NewHandler(logger, payrollService, renderer)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		AuthHandler:    authHandler,
		CatalogHandler: catalogHandler,
		LedgerHandler:  ledgerHandler,
		SalesHandler:   salesHandler,
		PayrollHandler: payrollHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("store", cfg.StoreDriver))
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
