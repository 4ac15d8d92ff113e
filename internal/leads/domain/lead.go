package domain

import (
	"slices"
	"time"
)

// Lead is a prospective business contact tracked through the pipeline.
type Lead struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	Phone        string        `json:"phone,omitempty"`
	Website      string        `json:"website,omitempty"`
	Rating       *float64      `json:"rating,omitempty"`
	Reviews      *int          `json:"reviews,omitempty"`
	MapsURL      string        `json:"mapsUrl,omitempty"`
	Status       Status        `json:"status"`
	Category     string        `json:"category"`
	SavedAt      time.Time     `json:"savedAt"`
	Score        *int          `json:"score,omitempty"`
	ScoreReason  string        `json:"scoreReason,omitempty"`
	EnrichedData *EnrichedData `json:"enrichedData,omitempty"`
	AuditLog     []AuditEntry  `json:"auditLog"`
}

// IsDuplicateOf reports whether two leads describe the same business: the names
// match exactly, or both carry the same non-empty website.
func (l Lead) IsDuplicateOf(other Lead) bool {
	if l.Name == other.Name {
		return true
	}
	return l.Website != "" && l.Website == other.Website
}

// IsEnriched reports whether a completed enrichment is attached.
func (l Lead) IsEnriched() bool {
	return l.EnrichedData != nil && l.EnrichedData.IsEnriched
}

// QualScore is the canonical ranking score: the enrichment qualification score.
func (l Lead) QualScore() int {
	return l.EnrichedData.Score()
}

// Industry returns the enriched industry, falling back to the category.
func (l Lead) Industry() string {
	if l.EnrichedData != nil && l.EnrichedData.Industry != "" {
		return l.EnrichedData.Industry
	}
	return l.Category
}

// Clone returns a deep copy so callers never alias store memory.
func (l Lead) Clone() Lead {
	out := l
	if l.Rating != nil {
		v := *l.Rating
		out.Rating = &v
	}
	if l.Reviews != nil {
		v := *l.Reviews
		out.Reviews = &v
	}
	if l.Score != nil {
		v := *l.Score
		out.Score = &v
	}
	out.EnrichedData = l.EnrichedData.Clone()
	out.AuditLog = slices.Clone(l.AuditLog)
	if out.AuditLog == nil {
		out.AuditLog = []AuditEntry{}
	}
	return out
}

// LeadPatch is a partial update. Nil fields are left untouched. A non-nil
// AuditLog replaces the whole log. ID and SavedAt cannot be patched.
type LeadPatch struct {
	Name         *string
	Address      *string
	Phone        *string
	Website      *string
	Rating       *float64
	Reviews      *int
	MapsURL      *string
	Status       *Status
	Category     *string
	Score        *int
	ScoreReason  *string
	EnrichedData *EnrichedData
	AuditLog     *[]AuditEntry
}

// IsEmpty reports whether the patch changes nothing.
func (p LeadPatch) IsEmpty() bool {
	return p == LeadPatch{}
}

// ApplyTo returns a copy of l with the patch merged in.
func (p LeadPatch) ApplyTo(l Lead) Lead {
	out := l.Clone()
	setIf(&out.Name, p.Name)
	setIf(&out.Address, p.Address)
	setIf(&out.Phone, p.Phone)
	setIf(&out.Website, p.Website)
	setIf(&out.MapsURL, p.MapsURL)
	setIf(&out.Status, p.Status)
	setIf(&out.Category, p.Category)
	setIf(&out.ScoreReason, p.ScoreReason)
	if p.Rating != nil {
		v := *p.Rating
		out.Rating = &v
	}
	if p.Reviews != nil {
		v := *p.Reviews
		out.Reviews = &v
	}
	if p.Score != nil {
		v := *p.Score
		out.Score = &v
	}
	if p.EnrichedData != nil {
		out.EnrichedData = p.EnrichedData.Clone()
	}
	if p.AuditLog != nil {
		out.AuditLog = slices.Clone(*p.AuditLog)
		if out.AuditLog == nil {
			out.AuditLog = []AuditEntry{}
		}
	}
	return out
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
