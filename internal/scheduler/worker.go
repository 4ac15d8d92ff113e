package scheduler

import (
	"context"
	"fmt"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/config"
	"riseleads_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// LeadEnricher runs the enrichment workflow for one lead.
type LeadEnricher interface {
	Enrich(ctx context.Context, id string) (domain.Lead, error)
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	enricher LeadEnricher
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, enricher LeadEnricher, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
		Logger: asynqLogger{log},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		enricher: enricher,
		log:      log,
	}

	mux.HandleFunc(TaskEnrichLead, w.handleEnrichLead)

	return w, nil
}

// Run processes tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return nil
	}

	// Start rather than Run: Run installs its own signal handling, and shutdown
	// is driven by ctx here.
	if err := w.server.Start(w.mux); err != nil {
		w.log.Error("scheduler worker failed to start", "error", err)
		return err
	}
	<-ctx.Done()
	w.server.Shutdown()
	w.log.Info("scheduler worker stopped")
	return nil
}

// handleEnrichLead retries collaborator and persistence failures. A lead that
// no longer exists, or already has an enrichment in flight, ends the task.
func (w *Worker) handleEnrichLead(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseEnrichLeadPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.LeadID == "" {
		return fmt.Errorf("%w: missing lead id", asynq.SkipRetry)
	}

	lead, err := w.enricher.Enrich(ctx, payload.LeadID)
	switch {
	case err == nil:
		w.log.Info("background enrichment completed", "leadId", lead.ID, "qualScore", lead.QualScore())
		return nil
	case apperr.Is(err, apperr.KindNotFound), apperr.Is(err, apperr.KindConflict), apperr.Is(err, apperr.KindValidation):
		w.log.Info("background enrichment skipped", "leadId", payload.LeadID, "reason", err.Error())
		return nil
	default:
		return err
	}
}

// asynqLogger routes asynq's internal logging through the app logger.
type asynqLogger struct {
	log *logger.Logger
}

func (l asynqLogger) Debug(args ...any) { l.log.Debug(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...any)  { l.log.Info(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...any)  { l.log.Warn(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...any) { l.log.Error(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...any) { l.log.Error(fmt.Sprint(args...)) }
