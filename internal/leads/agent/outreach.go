// Package agent holds the AI collaborators that write outreach and score leads.
package agent

import (
	"context"
	"fmt"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/ai/gemini"
	"riseleads_backend/platform/apperr"
)

// OutreachWriter drafts outreach scripts.
type OutreachWriter struct {
	gen gemini.Generator
}

// NewOutreachWriter creates a writer on top of a generator.
func NewOutreachWriter(gen gemini.Generator) *OutreachWriter {
	return &OutreachWriter{gen: gen}
}

// GenerateOutreach returns a script for the lead described by leadContext.
// An empty model answer is a failure, never a placeholder script.
func (w *OutreachWriter) GenerateOutreach(ctx context.Context, leadContext, service string, lang domain.Language) (string, error) {
	resp, err := w.gen.Generate(ctx, gemini.Request{Prompt: buildOutreachPrompt(leadContext, service, lang)})
	if err != nil {
		return "", err
	}
	if resp.Text == "" {
		return "", apperr.Upstream("strategy synthesis failed", fmt.Errorf("outreach: %w", gemini.ErrEmptyResponse))
	}
	return resp.Text, nil
}
