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

	"github.com/mamadbah2/tilestock/internal/config"
	"github.com/mamadbah2/tilestock/internal/repository/mongodb"
	"github.com/mamadbah2/tilestock/internal/repository/sheets"
	"github.com/mamadbah2/tilestock/internal/scheduler"
	"github.com/mamadbah2/tilestock/internal/server/handlers"
	"github.com/mamadbah2/tilestock/internal/server/router"
	"github.com/mamadbah2/tilestock/internal/service/aggregator"
	alertsvc "github.com/mamadbah2/tilestock/internal/service/alerts"
	dashboardsvc "github.com/mamadbah2/tilestock/internal/service/dashboard"
	"github.com/mamadbah2/tilestock/internal/service/pages"
	reportingsvc "github.com/mamadbah2/tilestock/internal/service/reporting"
	"github.com/mamadbah2/tilestock/pkg/clients/inventoryapi"
	whatsappclient "github.com/mamadbah2/tilestock/pkg/clients/whatsapp"
	"github.com/mamadbah2/tilestock/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiClient := inventoryapi.NewClient(cfg.InventoryAPI)
	baseLogger.Info("inventory api client configured", zap.String("base_url", cfg.InventoryAPI.BaseURL))

	dashboardSvc := dashboardsvc.NewService(apiClient, aggregator.Options{
		LowStockThreshold: cfg.Dashboard.LowStockThreshold,
		ListLimit:         cfg.Dashboard.ListLimit,
	}, baseLogger.Named("svc.dashboard"))

	var (
		sinks     scheduler.Sinks
		snapshots handlers.SnapshotReader
	)

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks.Store = mongoRepo
		snapshots = mongoRepo
		baseLogger.Info("dashboard snapshot storage enabled")
	} else {
		baseLogger.Warn("MONGODB_URI missing, dashboard snapshots disabled")
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
		baseLogger.Info("low stock sheet export enabled")
	} else {
		baseLogger.Warn("google sheets credentials missing, low stock export disabled")
	}

	// Validate already checked the timezone.
	loc, _ := time.LoadLocation(cfg.Snapshot.Timezone)
	reportingSvc := reportingsvc.NewService(sheetsRepo, loc, baseLogger.Named("svc.reporting"))
	if sheetsRepo != nil {
		sinks.Exporter = reportingSvc
	}

	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		sinks.Notifier = alertsvc.NewNotifier(whatsClient, reportingSvc, cfg.WhatsApp.AlertRecipient, baseLogger.Named("svc.alerts"))
		baseLogger.Info("whatsapp low stock alerts enabled")
	} else {
		baseLogger.Warn("WHATSAPP_TOKEN missing, low stock alerts disabled")
	}

	sched, err := scheduler.NewScheduler(cfg.Snapshot, dashboardSvc, sinks, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	pagesHandler := handlers.NewPagesHandler(
		pages.NewProductsPage(apiClient, baseLogger.Named("pages.products")),
		pages.NewInventoryPage(apiClient, baseLogger.Named("pages.inventory")),
		pages.NewMovementsPage(apiClient, baseLogger.Named("pages.movements")),
		baseLogger.Named("handlers.pages"),
	)
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc, snapshots, baseLogger.Named("handlers.dashboard"))
	engine := router.New(dashboardHandler, pagesHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
