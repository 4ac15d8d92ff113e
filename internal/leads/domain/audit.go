package domain

import (
	"fmt"
	"strings"
	"time"
)

// AuditType classifies an audit entry or notification.
type AuditType string

const (
	AuditInfo    AuditType = "info"
	AuditSuccess AuditType = "success"
	AuditAlert   AuditType = "alert"
)

// NotePrefix marks audit entries that are free-text notes written by an operator.
const NotePrefix = "[NOTE] "

// Fixed audit event texts.
const (
	EventEnrichmentHarvested = "Intelligence Data Harvested"
	EventOutreachCompiled    = "Outreach Protocol Compiled"
)

// AuditEntry is one immutable line of a lead's timeline.
type AuditEntry struct {
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Type      AuditType `json:"type"`
}

// NewAuditEntry stamps an entry at the given instant.
func NewAuditEntry(event string, typ AuditType, at time.Time) AuditEntry {
	return AuditEntry{Event: event, Timestamp: at.UTC(), Type: typ}
}

// IsNote reports whether the entry is a manual note.
func (e AuditEntry) IsNote() bool {
	return strings.HasPrefix(e.Event, NotePrefix)
}

// DisplayEvent returns the event text without the note marker.
func (e AuditEntry) DisplayEvent() string {
	return strings.TrimPrefix(e.Event, NotePrefix)
}

// StatusChangeEvent is the audit text written for a status change.
func StatusChangeEvent(s Status) string {
	return fmt.Sprintf("Phase shift to %s", s)
}

// NoteEvent is the audit text written for a manual note.
func NoteEvent(text string) string {
	return NotePrefix + text
}

// ScoreEvent is the audit text written when a success probability is assessed.
func ScoreEvent(score int) string {
	return fmt.Sprintf("Success probability assessed: %d", score)
}

// PrependAudit returns a new log with entry at index 0. The input is not modified.
func PrependAudit(log []AuditEntry, entry AuditEntry) []AuditEntry {
	out := make([]AuditEntry, 0, len(log)+1)
	out = append(out, entry)
	return append(out, log...)
}
