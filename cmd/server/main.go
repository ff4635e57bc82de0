package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/config"
	"github.com/hingaguru/farmdesk/internal/repository"
	"github.com/hingaguru/farmdesk/internal/repository/memory"
	"github.com/hingaguru/farmdesk/internal/repository/mongodb"
	"github.com/hingaguru/farmdesk/internal/repository/sheets"
	"github.com/hingaguru/farmdesk/internal/scheduler"
	"github.com/hingaguru/farmdesk/internal/server/handlers"
	"github.com/hingaguru/farmdesk/internal/server/router"
	advisorsvc "github.com/hingaguru/farmdesk/internal/service/advisor"
	authsvc "github.com/hingaguru/farmdesk/internal/service/auth"
	"github.com/hingaguru/farmdesk/internal/service/bootstrap"
	cropsvc "github.com/hingaguru/farmdesk/internal/service/crop"
	dashboardsvc "github.com/hingaguru/farmdesk/internal/service/dashboard"
	employeesvc "github.com/hingaguru/farmdesk/internal/service/employee"
	farmlandsvc "github.com/hingaguru/farmdesk/internal/service/farmland"
	financesvc "github.com/hingaguru/farmdesk/internal/service/finance"
	tasksvc "github.com/hingaguru/farmdesk/internal/service/task"
	whatsappclient "github.com/hingaguru/farmdesk/pkg/clients/whatsapp"
	"github.com/hingaguru/farmdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level, cfg.Log.Format))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	store, err := openStore(startupCtx, cfg.Store)
	if err != nil {
		baseLogger.Fatal("failed to init store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close store", zap.Error(err))
		}
	}()
	baseLogger.Info("store ready", zap.String("driver", cfg.Store.Driver))

	var ledger sheets.Ledger
	if cfg.Sheets.Enabled() {
		sheetLedger, err := sheets.NewGoogleSheetLedger(startupCtx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets ledger", zap.Error(err))
		}
		ledger = sheetLedger
		baseLogger.Info("google sheets ledger enabled")
	} else {
		baseLogger.Warn("google sheets settings missing, ledger mirror disabled")
	}

	var notifier whatsappclient.Client
	if cfg.WhatsApp.Enabled() {
		notifier = whatsappclient.NewClient(cfg.WhatsApp)
		baseLogger.Info("whatsapp digest enabled")
	} else {
		baseLogger.Warn("whatsapp credentials missing, digest delivery disabled")
	}

	crops := cropsvc.NewService(store, baseLogger.Named("svc.crops"))
	defaultOwner, err := bootstrap.Run(startupCtx, store, crops, cfg.DefaultOwner, baseLogger.Named("bootstrap"))
	if err != nil {
		baseLogger.Fatal("failed to bootstrap default owner", zap.Error(err))
	}

	authService := authsvc.NewService(store, authsvc.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), baseLogger.Named("svc.auth"))
	dashboardService := dashboardsvc.NewService(store, baseLogger.Named("svc.dashboard"))

	advisor := advisorsvc.NewFromConfig(cfg.AI, baseLogger.Named("svc.advisor"))
	if cfg.AI.GeminiKey == "" && cfg.AI.OpenAIKey == "" && cfg.AI.AnthropicKey == "" {
		baseLogger.Warn("no ai api key configured, chat answers with canned replies")
	}

	engine := router.New(router.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		Production:   cfg.App.Production(),
		Tokens:       authService.Tokens(),
		DefaultOwner: defaultOwner,
	}, router.Handlers{
		Farmlands:    handlers.NewFarmlandHandler(farmlandsvc.NewService(store, baseLogger.Named("svc.farmlands")), baseLogger.Named("handlers.farmlands")),
		Employees:    handlers.NewEmployeeHandler(employeesvc.NewService(store, baseLogger.Named("svc.employees")), baseLogger.Named("handlers.employees")),
		Transactions: handlers.NewTransactionHandler(financesvc.NewService(store, ledger, baseLogger.Named("svc.finance")), baseLogger.Named("handlers.transactions")),
		Crops:        handlers.NewCropHandler(crops, baseLogger.Named("handlers.crops")),
		Tasks:        handlers.NewTaskHandler(tasksvc.NewService(store, baseLogger.Named("svc.tasks")), baseLogger.Named("handlers.tasks")),
		Auth:         handlers.NewAuthHandler(authService, baseLogger.Named("handlers.auth")),
		Dashboard:    handlers.NewDashboardHandler(dashboardService, baseLogger.Named("handlers.dashboard")),
		Assistant:    handlers.NewAssistantHandler(advisor, baseLogger.Named("handlers.assistant")),
	}, baseLogger.Named("router"))

	// Initialize Scheduler
	sched, err := scheduler.NewScheduler(cfg.Reporting, store, dashboardService, ledger, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.StoreConfig) (repository.Store, error) {
	if cfg.Driver == config.DriverMemory {
		return memory.NewStore(), nil
	}
	return mongodb.NewStore(ctx, cfg.MongoURI, cfg.DBName)
}
