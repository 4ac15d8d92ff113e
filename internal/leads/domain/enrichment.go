package domain

import "slices"

// QualSegment is the qualitative bucket of a qualification score.
type QualSegment string

const (
	SegmentLow      QualSegment = "Low"
	SegmentMedium   QualSegment = "Medium"
	SegmentGood     QualSegment = "Good"
	SegmentVeryGood QualSegment = "Very Good"
)

// HighValueScore is the qualification score above which a lead counts as high value.
const HighValueScore = 80

// SegmentForScore buckets a 0-100 qualification score.
func SegmentForScore(score int) QualSegment {
	switch {
	case score > 85:
		return SegmentVeryGood
	case score > 70:
		return SegmentGood
	case score > 55:
		return SegmentMedium
	default:
		return SegmentLow
	}
}

// ClampScore bounds a score to 0..100.
func ClampScore(score int) int {
	return max(0, min(100, score))
}

// EnrichedData is the firmographic bundle attached by an enrichment provider.
// Every field is optional; providers may return partial data.
type EnrichedData struct {
	Revenue       string      `json:"revenue,omitempty"`
	Employees     *int        `json:"employees,omitempty"`
	Industry      string      `json:"industry,omitempty"`
	Location      string      `json:"location,omitempty"`
	QualScore     *int        `json:"qualScore,omitempty"`
	QualSegment   QualSegment `json:"qualSegment,omitempty"`
	BuyingSignals []string    `json:"buyingSignals,omitempty"`
	LinkedIn      string      `json:"linkedin,omitempty"`
	Facebook      string      `json:"facebook,omitempty"`
	Twitter       string      `json:"twitter,omitempty"`
	TechStack     []string    `json:"techStack,omitempty"`
	LastFunded    string      `json:"lastFunded,omitempty"`
	IsEnriched    bool        `json:"isEnriched,omitempty"`
}

// Clone returns a deep copy.
func (d *EnrichedData) Clone() *EnrichedData {
	if d == nil {
		return nil
	}
	out := *d
	if d.Employees != nil {
		v := *d.Employees
		out.Employees = &v
	}
	if d.QualScore != nil {
		v := *d.QualScore
		out.QualScore = &v
	}
	out.BuyingSignals = slices.Clone(d.BuyingSignals)
	out.TechStack = slices.Clone(d.TechStack)
	return &out
}

// Score returns the qualification score, or 0 when absent.
func (d *EnrichedData) Score() int {
	if d == nil || d.QualScore == nil {
		return 0
	}
	return *d.QualScore
}

// Assessment is an AI success-probability score with its growth thesis. It is
// kept apart from EnrichedData.QualScore, which drives ranking.
type Assessment struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}
