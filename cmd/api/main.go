package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abtweb/studio-api/internal/auth"
	"github.com/abtweb/studio-api/internal/config"
	"github.com/abtweb/studio-api/internal/http/handler"
	"github.com/abtweb/studio-api/internal/http/middleware"
	"github.com/abtweb/studio-api/internal/http/router"
	"github.com/abtweb/studio-api/internal/jobs"
	"github.com/abtweb/studio-api/internal/logger"
	"github.com/abtweb/studio-api/internal/recordstore"
	"github.com/abtweb/studio-api/internal/remote"
	"github.com/abtweb/studio-api/internal/repository"
	"github.com/abtweb/studio-api/internal/service"
	appsync "github.com/abtweb/studio-api/internal/sync"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Open the durable record store
	store, err := recordstore.Open(&cfg.Store, log)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}

	// Connect the optional remote mirror. The mirror is read-priority,
	// best-effort: the app runs fine without it.
	mirror, err := remote.NewMirror(&cfg.Remote, log)
	if err != nil {
		log.Warn("Remote mirror connection failed, continuing without it", zap.Error(err))
		mirror = nil
	} else if mirror != nil {
		log.Info("Remote mirror connected",
			zap.String("host", cfg.Remote.Host),
			zap.Int("query_timeout_seconds", cfg.Remote.QueryTimeout),
		)
	} else {
		log.Info("Remote mirror not configured, skipping")
	}

	// Initialize repositories
	quoteRepo := repository.NewQuoteRepository(store, mirror, log)
	customerRepo := repository.NewCustomerRepository(store, log)
	projectRepo := repository.NewProjectRepository(store, log)
	settingsRepo := repository.NewSettingsRepository(store, log)

	// Initialize services
	quoteService := service.NewQuoteService(quoteRepo, settingsRepo, log)
	customerService := service.NewCustomerService(customerRepo, quoteRepo, log)
	projectService := service.NewProjectService(projectRepo, quoteRepo, log)
	settingsService := service.NewSettingsService(settingsRepo, log)
	dashboardService := service.NewDashboardService(quoteRepo, customerService, projectService, log)
	exportService := service.NewExportService(quoteRepo, customerRepo, log)
	seedService := service.NewSeedService(store, quoteRepo, log)

	// Admin password gate
	gate := auth.NewGate(&cfg.Auth, store, log)

	// Start the aggregation coordinator: quote changes drive the derived
	// customer and project collections.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	coordinator := appsync.NewCoordinator(store, quoteRepo, customerRepo, projectRepo, &cfg.Sync, log)
	coordinator.Start(ctx)
	defer coordinator.Stop()

	// Initialize middleware and handlers
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	quoteHandler := handler.NewQuoteHandler(quoteService, log)
	customerHandler := handler.NewCustomerHandler(customerService, log)
	projectHandler := handler.NewProjectHandler(projectService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	authHandler := handler.NewAuthHandler(gate, log)
	settingsHandler := handler.NewSettingsHandler(settingsService, log)
	exportHandler := handler.NewExportHandler(exportService, log)
	seedHandler := handler.NewSeedHandler(seedService, coordinator, log)
	catalogHandler := handler.NewCatalogHandler(settingsService, log)

	rt := router.NewRouter(
		cfg,
		log,
		store,
		gate,
		rateLimiter,
		quoteHandler,
		customerHandler,
		projectHandler,
		dashboardHandler,
		authHandler,
		settingsHandler,
		exportHandler,
		seedHandler,
		catalogHandler,
	)

	// Schedule background jobs: the settings-driven auto-backup and the
	// hourly derived-data reconcile.
	scheduler := jobs.NewScheduler(log)
	if err := jobs.RegisterBackupJob(scheduler, store, cfg.Store.BackupDir, settingsService, log); err != nil {
		log.Error("Failed to register backup job", zap.Error(err))
	}
	if err := jobs.RegisterReconcileJob(scheduler, coordinator, log); err != nil {
		log.Error("Failed to register reconcile job", zap.Error(err))
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelShutdown()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
