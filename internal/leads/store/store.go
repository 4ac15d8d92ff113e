// Package store owns the lead collection. Every mutation is written through to
// the repository as a full snapshot before it becomes visible, and the audit
// trail and user notifications are produced here so no caller can forget them.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"riseleads_backend/internal/events"
	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/internal/leads/repository"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/logger"

	"github.com/google/uuid"
)

// Notification texts.
const (
	titleDuplicate     = "Sync Warning"
	titleDiscovered    = "Lead Discovered"
	titleStorageFailed = "Storage Recovery"

	msgStorageFailed = "Saved pipeline could not be read. Starting with an empty pipeline."
	msgStorageKept   = "Saved pipeline could not be read. A copy was kept as %s and the pipeline starts empty."
)

// Notifier receives user-facing notifications.
type Notifier interface {
	Notify(ctx context.Context, title, message string, typ domain.AuditType)
}

// CreateResult reports what Create did. On a duplicate, Lead is the existing record.
type CreateResult struct {
	Lead      domain.Lead
	Duplicate bool
}

// Result reports whether the addressed lead existed. Operations on a missing id
// change nothing and return Found == false with a nil error.
type Result struct {
	Lead  domain.Lead
	Found bool
}

// Store is the single owner of the lead collection, ordered newest first.
type Store struct {
	mu       sync.RWMutex
	leads    []domain.Lead
	repo     repository.Repository
	notifier Notifier
	bus      events.Bus
	log      *logger.Logger
	now      func() time.Time

	corruptionReported bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store. Call Load before serving traffic.
func New(repo repository.Repository, notifier Notifier, bus events.Bus, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		leads:    []domain.Lead{},
		repo:     repo,
		notifier: notifier,
		bus:      bus,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted snapshot. A corrupt
// snapshot is not fatal: it is moved aside when the backend supports that, the
// store starts empty, and one alert notification is raised. If the snapshot
// cannot be moved aside Load fails, since the next save would destroy it.
// Any other repository error is returned.
func (s *Store) Load(ctx context.Context) error {
	leads, err := s.repo.Load(ctx)
	if err != nil && !errors.Is(err, repository.ErrCorrupt) {
		s.log.StorageError("load", driverName(s.repo), err)
		return err
	}

	kept := ""
	if err != nil {
		if q, ok := s.repo.(repository.Quarantiner); ok {
			loc, qerr := q.Quarantine(ctx, s.now().UTC().Format("20060102T150405Z"))
			if qerr != nil {
				s.log.StorageError("quarantine", driverName(s.repo), qerr)
				return apperr.Wrap(apperr.KindInternal, "failed to preserve unreadable snapshot", qerr).WithOp("store.load")
			}
			kept = loc
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.leads = []domain.Lead{}
		if !s.corruptionReported {
			s.corruptionReported = true
			s.log.Warn("lead snapshot unreadable, starting empty",
				slog.String("driver", driverName(s.repo)),
				slog.String("kept_as", kept),
				slog.String("error", err.Error()),
			)
			msg := msgStorageFailed
			if kept != "" {
				msg = fmt.Sprintf(msgStorageKept, kept)
			}
			s.notify(ctx, titleStorageFailed, msg, domain.AuditAlert)
		}
		return nil
	}

	if leads == nil {
		leads = []domain.Lead{}
	}
	s.leads = leads
	s.log.Info("lead snapshot loaded",
		slog.String("driver", driverName(s.repo)),
		slog.Int("leads", len(leads)),
	)
	return nil
}

// List returns a copy of every lead, newest first.
func (s *Store) List() []domain.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Lead, len(s.leads))
	for i, l := range s.leads {
		out[i] = l.Clone()
	}
	return out
}

// Get returns a copy of the lead with the given id.
func (s *Store) Get(id string) (domain.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.leads[i].Clone(), true
	}
	return domain.Lead{}, false
}

// Create adds a lead at the front of the collection unless it duplicates an
// existing one (same name, or same non-empty website). A duplicate is not an
// error: nothing is inserted and an info notification is raised instead.
func (s *Store) Create(ctx context.Context, lead domain.Lead) (CreateResult, error) {
	lead = lead.Clone()
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = domain.StatusNew
	}
	if !domain.IsKnownStatus(lead.Status) {
		return CreateResult{}, apperr.Validation("invalid lead status").WithDetails(lead.Status)
	}
	if lead.SavedAt.IsZero() {
		lead.SavedAt = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.leads {
		if lead.IsDuplicateOf(existing) {
			s.notify(ctx, titleDuplicate, "Duplicate lead detected: "+lead.Name, domain.AuditInfo)
			s.publish(ctx, events.LeadDuplicateRejected{
				BaseEvent:  events.NewBaseEvent(),
				Name:       lead.Name,
				ExistingID: existing.ID,
			})
			return CreateResult{Lead: existing.Clone(), Duplicate: true}, nil
		}
	}
	if s.indexOf(lead.ID) >= 0 {
		return CreateResult{}, apperr.Conflict("a lead with this id already exists")
	}

	next := make([]domain.Lead, 0, len(s.leads)+1)
	next = append(next, lead)
	next = append(next, s.leads...)
	if err := s.commit(ctx, "create", next); err != nil {
		return CreateResult{}, err
	}

	s.notify(ctx, titleDiscovered, lead.Name+" added to pipeline.", domain.AuditSuccess)
	s.publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Category:  lead.Category,
	})
	return CreateResult{Lead: lead.Clone()}, nil
}

// Update shallow-merges patch into the lead. Fields absent from the patch are
// untouched; an AuditLog in the patch replaces the whole log.
func (s *Store) Update(ctx context.Context, id string, patch domain.LeadPatch) (Result, error) {
	if patch.Status != nil && !domain.IsKnownStatus(*patch.Status) {
		return Result{}, apperr.Validation("invalid lead status").WithDetails(*patch.Status)
	}

	res, err := s.mutate(ctx, "update", id, func(l domain.Lead) domain.Lead {
		return patch.ApplyTo(l)
	})
	if err != nil || !res.Found {
		return res, err
	}
	s.publish(ctx, events.LeadUpdated{BaseEvent: events.NewBaseEvent(), LeadID: id})
	return res, nil
}

// Delete removes the lead and its audit log.
func (s *Store) Delete(ctx context.Context, id string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Result{}, nil
	}
	removed := s.leads[i]
	next := slices.Delete(slices.Clone(s.leads), i, i+1)
	if err := s.commit(ctx, "delete", next); err != nil {
		return Result{}, err
	}

	s.publish(ctx, events.LeadDeleted{BaseEvent: events.NewBaseEvent(), LeadID: id})
	return Result{Lead: removed.Clone(), Found: true}, nil
}

// mutate applies fn to the lead with the given id and persists the result.
func (s *Store) mutate(ctx context.Context, op, id string, fn func(domain.Lead) domain.Lead) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Result{}, nil
	}

	updated := fn(s.leads[i].Clone())
	updated.ID = s.leads[i].ID
	updated.SavedAt = s.leads[i].SavedAt

	next := slices.Clone(s.leads)
	next[i] = updated
	if err := s.commit(ctx, op, next); err != nil {
		return Result{}, err
	}
	return Result{Lead: updated.Clone(), Found: true}, nil
}

// commit persists next and, only if that succeeds, makes it current. The save
// is detached from ctx cancellation so a client disconnect cannot abort a write
// midway. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, op string, next []domain.Lead) error {
	if err := s.repo.Save(context.WithoutCancel(ctx), next); err != nil {
		s.log.StorageError(op, driverName(s.repo), err)
		return apperr.Wrap(apperr.KindInternal, "failed to persist leads", err).WithOp("store." + op)
	}
	s.leads = next
	return nil
}

// indexOf returns the position of id or -1. Callers hold s.mu.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.leads, func(l domain.Lead) bool { return l.ID == id })
}

func (s *Store) notify(ctx context.Context, title, message string, typ domain.AuditType) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, title, message, typ)
	}
}

func (s *Store) publish(ctx context.Context, event events.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, event)
	}
}

func driverName(repo repository.Repository) string {
	if d, ok := repo.(repository.Driver); ok {
		return d.Driver()
	}
	return "custom"
}
