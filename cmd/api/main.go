package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riseleads_backend/internal/adapters"
	"riseleads_backend/internal/assistant"
	"riseleads_backend/internal/dashboard"
	"riseleads_backend/internal/discovery"
	"riseleads_backend/internal/events"
	apphttp "riseleads_backend/internal/http"
	"riseleads_backend/internal/http/router"
	"riseleads_backend/internal/leadenrichment"
	"riseleads_backend/internal/leads"
	"riseleads_backend/internal/notification"
	"riseleads_backend/internal/scheduler"
	"riseleads_backend/platform/ai/gemini"
	"riseleads_backend/platform/config"
	"riseleads_backend/platform/logger"
	"riseleads_backend/platform/metrics"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "storage", cfg.StorageDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	collector := metrics.NewCollector("riseleads")
	collector.CountEvents(eventBus)

	var storage *leads.Storage
	if err := withRetry(ctx, log, "lead storage", 5, 2*time.Second, func() error {
		s, err := leads.OpenStorage(ctx, cfg, log)
		if err != nil {
			return err
		}
		storage = s
		return nil
	}); err != nil {
		log.Error("failed to open lead storage", "error", err)
		panic("failed to open lead storage: " + err.Error())
	}
	defer storage.Close()
	log.Info("lead storage ready", "driver", cfg.StorageDriver)

	var generator gemini.Generator
	searchModel := ""
	geminiClient, err := gemini.New(ctx, cfg, log)
	switch {
	case errors.Is(err, gemini.ErrDisabled):
		log.Warn("GEMINI_API_KEY not configured; search, outreach, scoring and chat disabled")
	case err != nil:
		log.Error("failed to initialize gemini client", "error", err)
		panic("failed to initialize gemini client: " + err.Error())
	default:
		generator = geminiClient
		searchModel = geminiClient.SearchModel()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events and owns the SSE stream
	notificationModule := notification.New(cfg, eventBus, log)
	notificationModule.RegisterHandlers(eventBus)
	defer notificationModule.Close()

	leadEnrichmentModule := leadenrichment.NewModule(cfg, log)
	leadEnricher := adapters.NewLeadEnrichmentAdapter(leadEnrichmentModule.Service())

	leadsModule, err := leads.NewModule(ctx, leads.Deps{
		Repository:  storage.Repository,
		Notifier:    notificationModule.Service(),
		EventBus:    eventBus,
		Enricher:    leadEnricher,
		Generator:   generator,
		PhoneRegion: cfg.GetPhoneDefaultRegion(),
	}, log)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}

	discoveryModule := discovery.NewModule(generator, searchModel, leadsModule.ManagementService(), log)
	assistantModule := assistant.NewModule(generator, log)
	dashboardModule := dashboard.NewModule(leadsModule.Store())

	group, groupCtx := errgroup.WithContext(ctx)

	if cfg.IsSchedulerEnabled() {
		schedulerClient, err := scheduler.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize scheduler client", "error", err)
			panic("failed to initialize scheduler client: " + err.Error())
		}
		defer func() { _ = schedulerClient.Close() }()
		leadsModule.SetEnrichmentScheduler(schedulerClient)

		worker, err := scheduler.NewWorker(cfg, leadsModule.ManagementService(), log)
		if err != nil {
			log.Error("failed to initialize scheduler worker", "error", err)
			panic("failed to initialize scheduler worker: " + err.Error())
		}
		group.Go(func() error {
			return worker.Run(groupCtx)
		})
		log.Info("async enrichment enabled", "queue", cfg.AsynqQueueName)
	} else {
		log.Warn("REDIS_URL not configured; async enrichment disabled")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Metrics:  collector,
		Modules: []apphttp.Module{
			leadsModule,
			discoveryModule,
			assistantModule,
			dashboardModule,
			notificationModule,
		},
	}
	if storage.Health != nil {
		app.Health = storage.Health
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	eventBus.Wait()
	log.Info("server stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
