package transport

import (
	"time"

	"riseleads_backend/internal/leads/domain"
)

// Request DTOs
type CreateLeadRequest struct {
	ID       string   `json:"id,omitempty" validate:"omitempty,max=500"`
	Name     string   `json:"name" validate:"required,min=1,max=200"`
	Address  string   `json:"address" validate:"max=300"`
	Phone    string   `json:"phone,omitempty" validate:"omitempty,max=40"`
	Website  string   `json:"website,omitempty" validate:"omitempty,max=500"`
	Rating   *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Reviews  *int     `json:"reviews,omitempty" validate:"omitempty,min=0"`
	MapsURL  string   `json:"mapsUrl,omitempty" validate:"omitempty,max=500"`
	Status   string   `json:"status,omitempty" validate:"omitempty,oneof=New Contacted Replied Closed"`
	Category string   `json:"category" validate:"max=200"`
}

type UpdateLeadRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Address  *string  `json:"address,omitempty" validate:"omitempty,max=300"`
	Phone    *string  `json:"phone,omitempty" validate:"omitempty,max=40"`
	Website  *string  `json:"website,omitempty" validate:"omitempty,max=500"`
	Rating   *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Reviews  *int     `json:"reviews,omitempty" validate:"omitempty,min=0"`
	MapsURL  *string  `json:"mapsUrl,omitempty" validate:"omitempty,max=500"`
	Category *string  `json:"category,omitempty" validate:"omitempty,max=200"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=New Contacted Replied Closed"`
}

type CreateNoteRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

type OutreachRequest struct {
	Service  string `json:"service,omitempty" validate:"omitempty,max=200"`
	Language string `json:"language,omitempty" validate:"omitempty,oneof=en es zh"`
}

// Response DTOs
type CreateLeadResponse struct {
	Lead      domain.Lead `json:"lead"`
	Duplicate bool        `json:"duplicate"`
}

type LeadListResponse struct {
	Items []domain.Lead `json:"items"`
	Total int           `json:"total"`
}

type AuditLogResponse struct {
	LeadID string              `json:"leadId"`
	Items  []domain.AuditEntry `json:"items"`
}

type OutreachResponse struct {
	Lead   domain.Lead `json:"lead"`
	Script string      `json:"script"`
}

type EnrichmentQueuedResponse struct {
	LeadID   string    `json:"leadId"`
	Queued   bool      `json:"queued"`
	QueuedAt time.Time `json:"queuedAt"`
}
