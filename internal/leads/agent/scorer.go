package agent

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/ai/gemini"

	"google.golang.org/genai"
)

// Fallback assessment used when the model answer cannot be parsed.
const (
	FallbackScore  = 50
	FallbackReason = "Manual validation required."
)

var scoreSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score":  {Type: genai.TypeNumber},
		"reason": {Type: genai.TypeString},
	},
	Required: []string{"score", "reason"},
}

// LeadScorer assesses a lead's fit for high-ticket services.
type LeadScorer struct {
	gen gemini.Generator
}

// NewLeadScorer creates a scorer on top of a generator.
func NewLeadScorer(gen gemini.Generator) *LeadScorer {
	return &LeadScorer{gen: gen}
}

// Score asks the model for a 0-100 score. Transport failures are returned;
// an unparseable answer yields the fallback assessment.
func (s *LeadScorer) Score(ctx context.Context, lead domain.Lead) (domain.Assessment, error) {
	resp, err := s.gen.Generate(ctx, gemini.Request{Prompt: buildScorePrompt(lead), Schema: scoreSchema})
	if err != nil {
		return domain.Assessment{}, err
	}
	return parseAssessment(resp.Text), nil
}

func parseAssessment(text string) domain.Assessment {
	var raw struct {
		Score  *float64 `json:"score"`
		Reason string   `json:"reason"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil || raw.Score == nil {
		return domain.Assessment{Score: FallbackScore, Reason: FallbackReason}
	}
	return domain.Assessment{
		Score:  domain.ClampScore(int(math.Round(*raw.Score))),
		Reason: strings.TrimSpace(raw.Reason),
	}
}
