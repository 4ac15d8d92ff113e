// Command lead-enrichment-backfill enriches every lead in the configured
// snapshot that has no enrichment yet. Run it while the API is stopped: the
// API keeps the pipeline in memory and would overwrite the backfilled snapshot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riseleads_backend/internal/adapters"
	"riseleads_backend/internal/events"
	"riseleads_backend/internal/leadenrichment"
	"riseleads_backend/internal/leads"
	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/config"
	"riseleads_backend/platform/logger"
)

const delayBetweenCalls = 300 * time.Millisecond

type leadEnricher interface {
	Enrich(ctx context.Context, id string) (domain.Lead, error)
}

// logNotifier sends store notifications to the log; there is no feed to read them.
type logNotifier struct {
	log *logger.Logger
}

func (n logNotifier) Notify(_ context.Context, title, message string, typ domain.AuditType) {
	n.log.Info("notification", "title", title, "message", message, "type", typ)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting lead enrichment backfill", "storage", cfg.StorageDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := leads.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open lead storage", "error", err)
		panic("failed to open lead storage: " + err.Error())
	}
	defer storage.Close()

	eventBus := events.NewInMemoryBus(log)
	enrichmentModule := leadenrichment.NewModule(cfg, log)

	leadsModule, err := leads.NewModule(ctx, leads.Deps{
		Repository:  storage.Repository,
		Notifier:    logNotifier{log: log},
		EventBus:    eventBus,
		Enricher:    adapters.NewLeadEnrichmentAdapter(enrichmentModule.Service()),
		PhoneRegion: cfg.GetPhoneDefaultRegion(),
	}, log)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}

	processed, succeeded := backfill(ctx, leadsModule.Store().List(), leadsModule.ManagementService(), delayBetweenCalls, log)
	eventBus.Wait()
	log.Info("lead enrichment backfill completed", "processed", processed, "updated", succeeded)
}

// backfill enriches the leads that are not enriched yet, one at a time. A failed
// lead is logged and skipped.
func backfill(ctx context.Context, all []domain.Lead, enricher leadEnricher, delay time.Duration, log *logger.Logger) (processed, succeeded int) {
	for _, lead := range all {
		if ctx.Err() != nil {
			log.Warn("backfill interrupted", "processed", processed)
			return processed, succeeded
		}
		if lead.IsEnriched() {
			continue
		}
		processed++

		if _, err := enricher.Enrich(ctx, lead.ID); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				continue
			}
			log.Error("failed to backfill lead enrichment", "leadId", lead.ID, "error", err)
			continue
		}
		succeeded++

		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
	}
	return processed, succeeded
}
