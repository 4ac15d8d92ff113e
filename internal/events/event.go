// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"riseleads_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform values
var NewBaseEvent = events.NewBaseEvent

const AllEvents = events.AllEvents

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadCreated is published when a lead is added to the pipeline.
type LeadCreated struct {
	BaseEvent
	LeadID   string `json:"leadId"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadDuplicateRejected is published when an insert is refused as a duplicate.
type LeadDuplicateRejected struct {
	BaseEvent
	Name       string `json:"name"`
	ExistingID string `json:"existingId"`
}

func (e LeadDuplicateRejected) EventName() string { return "leads.lead.duplicate_rejected" }

// LeadUpdated is published after a generic partial update.
type LeadUpdated struct {
	BaseEvent
	LeadID string `json:"leadId"`
}

func (e LeadUpdated) EventName() string { return "leads.lead.updated" }

// LeadDeleted is published when a lead and its timeline are removed.
type LeadDeleted struct {
	BaseEvent
	LeadID string `json:"leadId"`
}

func (e LeadDeleted) EventName() string { return "leads.lead.deleted" }

// LeadStatusChanged is published on every status change, including no-op ones.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    string `json:"leadId"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.lead.status_changed" }

// LeadEnriched is published when an enrichment result has been merged.
type LeadEnriched struct {
	BaseEvent
	LeadID      string `json:"leadId"`
	QualScore   int    `json:"qualScore"`
	QualSegment string `json:"qualSegment"`
}

func (e LeadEnriched) EventName() string { return "leads.lead.enriched" }

// OutreachGenerated is published when an outreach script has been produced.
type OutreachGenerated struct {
	BaseEvent
	LeadID   string `json:"leadId"`
	Language string `json:"language"`
}

func (e OutreachGenerated) EventName() string { return "leads.outreach.generated" }

// LeadNoteAdded is published when an operator writes a note.
type LeadNoteAdded struct {
	BaseEvent
	LeadID string `json:"leadId"`
}

func (e LeadNoteAdded) EventName() string { return "leads.note.added" }

// LeadScored is published when an AI success probability is recorded.
type LeadScored struct {
	BaseEvent
	LeadID string `json:"leadId"`
	Score  int    `json:"score"`
}

func (e LeadScored) EventName() string { return "leads.lead.scored" }

// CollaboratorFailed is published when an external collaborator call fails.
type CollaboratorFailed struct {
	BaseEvent
	Collaborator string `json:"collaborator"`
	LeadID       string `json:"leadId,omitempty"`
	Reason       string `json:"reason"`
}

func (e CollaboratorFailed) EventName() string { return "collaborators.call.failed" }

// =============================================================================
// Notification Events
// =============================================================================

// NotificationPushed is published when the feed receives a notification.
type NotificationPushed struct {
	BaseEvent
	NotificationID string `json:"notificationId"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	Type           string `json:"type"`
}

func (e NotificationPushed) EventName() string { return "notifications.pushed" }
