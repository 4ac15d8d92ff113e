// Package dashboard summarises the lead pipeline.
package dashboard

import (
	"cmp"
	"slices"

	"riseleads_backend/internal/leads/domain"
)

const (
	highValueThreshold = 80
	topLeadCount       = 3
	unknownIndustry    = "Unknown Sector"
)

// LeadLister returns a snapshot of every lead.
type LeadLister interface {
	List() []domain.Lead
}

// Bucket is one slice of a breakdown chart.
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Stats struct {
	Total     int                   `json:"total"`
	HighValue int                   `json:"highValue"`
	Closed    int                   `json:"closed"`
	ByStatus  map[domain.Status]int `json:"byStatus"`
	TopLeads  []domain.Lead         `json:"topLeads"`
	Industry  []Bucket              `json:"industryBreakdown"`
}

// Compute builds pipeline statistics. Industry buckets are ordered by size,
// then name, so the response is stable.
func Compute(leads []domain.Lead) Stats {
	stats := Stats{
		Total:    len(leads),
		ByStatus: make(map[domain.Status]int, len(domain.AllStatuses)),
		TopLeads: []domain.Lead{},
		Industry: []Bucket{},
	}
	for _, s := range domain.AllStatuses {
		stats.ByStatus[s] = 0
	}

	industries := map[string]int{}
	var scored []domain.Lead
	for _, lead := range leads {
		stats.ByStatus[lead.Status]++
		if lead.Status == domain.StatusClosed {
			stats.Closed++
		}
		score := lead.QualScore()
		if score > highValueThreshold {
			stats.HighValue++
		}
		if score > 0 {
			scored = append(scored, lead)
		}

		industry := unknownIndustry
		if lead.EnrichedData != nil && lead.EnrichedData.Industry != "" {
			industry = lead.EnrichedData.Industry
		}
		industries[industry]++
	}

	slices.SortStableFunc(scored, func(a, b domain.Lead) int {
		return cmp.Compare(b.QualScore(), a.QualScore())
	})
	if len(scored) > topLeadCount {
		scored = scored[:topLeadCount]
	}
	stats.TopLeads = append(stats.TopLeads, scored...)

	for name, value := range industries {
		stats.Industry = append(stats.Industry, Bucket{Name: name, Value: value})
	}
	slices.SortFunc(stats.Industry, func(a, b Bucket) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return stats
}
