package store

import (
	"context"
	"strings"
	"unicode/utf8"

	"riseleads_backend/internal/events"
	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/apperr"
)

// MaxNoteLength bounds a manual note, in characters.
const MaxNoteLength = 2000

// ChangeStatus moves the lead to status and records the change in its audit log.
// Every known status is reachable from every other; setting the current status
// again is accepted and logged like any other change.
func (s *Store) ChangeStatus(ctx context.Context, id string, status domain.Status) (Result, error) {
	if !domain.IsKnownStatus(status) {
		return Result{}, apperr.Validation("invalid lead status").WithDetails(status)
	}

	var previous domain.Status
	res, err := s.mutate(ctx, "change_status", id, func(l domain.Lead) domain.Lead {
		previous = l.Status
		l.Status = status
		l.AuditLog = domain.PrependAudit(l.AuditLog,
			domain.NewAuditEntry(domain.StatusChangeEvent(status), domain.AuditInfo, s.now()))
		return l
	})
	if err != nil || !res.Found {
		return res, err
	}

	s.publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    id,
		OldStatus: string(previous),
		NewStatus: string(status),
	})
	return res, nil
}

// RecordEnrichment replaces the lead's enrichment bundle wholesale, marks it as
// enriched and logs a success entry. A second enrichment overwrites the first.
func (s *Store) RecordEnrichment(ctx context.Context, id string, data *domain.EnrichedData) (Result, error) {
	if data == nil {
		return Result{}, apperr.Validation("enrichment data is required")
	}

	res, err := s.mutate(ctx, "record_enrichment", id, func(l domain.Lead) domain.Lead {
		enriched := data.Clone()
		enriched.IsEnriched = true
		l.EnrichedData = enriched
		l.AuditLog = domain.PrependAudit(l.AuditLog,
			domain.NewAuditEntry(domain.EventEnrichmentHarvested, domain.AuditSuccess, s.now()))
		return l
	})
	if err != nil || !res.Found {
		return res, err
	}

	s.publish(ctx, events.LeadEnriched{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      id,
		QualScore:   res.Lead.QualScore(),
		QualSegment: string(res.Lead.EnrichedData.QualSegment),
	})
	return res, nil
}

// RecordOutreach logs that an outreach script was compiled for the lead.
func (s *Store) RecordOutreach(ctx context.Context, id, language string) (Result, error) {
	res, err := s.mutate(ctx, "record_outreach", id, func(l domain.Lead) domain.Lead {
		l.AuditLog = domain.PrependAudit(l.AuditLog,
			domain.NewAuditEntry(domain.EventOutreachCompiled, domain.AuditInfo, s.now()))
		return l
	})
	if err != nil || !res.Found {
		return res, err
	}

	s.publish(ctx, events.OutreachGenerated{BaseEvent: events.NewBaseEvent(), LeadID: id, Language: language})
	return res, nil
}

// RecordNote appends an operator note to the audit log.
func (s *Store) RecordNote(ctx context.Context, id, text string) (Result, error) {
	body := strings.TrimSpace(text)
	if body == "" {
		return Result{}, apperr.Validation("note body is required")
	}
	if utf8.RuneCountInString(body) > MaxNoteLength {
		return Result{}, apperr.Validation("note body is too long")
	}

	res, err := s.mutate(ctx, "record_note", id, func(l domain.Lead) domain.Lead {
		l.AuditLog = domain.PrependAudit(l.AuditLog,
			domain.NewAuditEntry(domain.NoteEvent(body), domain.AuditInfo, s.now()))
		return l
	})
	if err != nil || !res.Found {
		return res, err
	}

	s.publish(ctx, events.LeadNoteAdded{BaseEvent: events.NewBaseEvent(), LeadID: id})
	return res, nil
}

// RecordScore stores an AI success-probability assessment and logs it.
func (s *Store) RecordScore(ctx context.Context, id string, score int, reason string) (Result, error) {
	score = domain.ClampScore(score)

	res, err := s.mutate(ctx, "record_score", id, func(l domain.Lead) domain.Lead {
		l.Score = &score
		l.ScoreReason = reason
		l.AuditLog = domain.PrependAudit(l.AuditLog,
			domain.NewAuditEntry(domain.ScoreEvent(score), domain.AuditInfo, s.now()))
		return l
	})
	if err != nil || !res.Found {
		return res, err
	}

	s.publish(ctx, events.LeadScored{BaseEvent: events.NewBaseEvent(), LeadID: id, Score: score})
	return res, nil
}
