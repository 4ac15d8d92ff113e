// Package assistant answers free-form sales questions with search grounding.
package assistant

import (
	"context"
	"fmt"
	"time"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/ai/gemini"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/logger"

	"github.com/google/uuid"
)

const (
	roleAssistant      = "assistant"
	defaultSourceTitle = "Market Intelligence Source"
	emptyAnswer        = "Command refused: Unexpected data structure."
)

// ChatRequest is one user turn.
type ChatRequest struct {
	Prompt   string          `json:"prompt" validate:"required,max=4000"`
	Language domain.Language `json:"language" validate:"omitempty,oneof=en es zh"`
}

// Source is a cited web page.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Message is the assistant's reply.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Sources   []Source  `json:"sources"`
}

type Service struct {
	gen gemini.Generator
	log *logger.Logger
	now func() time.Time
}

// NewService creates the assistant. A nil generator makes Chat report
// unavailable.
func NewService(gen gemini.Generator, log *logger.Logger) *Service {
	return &Service{gen: gen, log: log, now: time.Now}
}

func (s *Service) Chat(ctx context.Context, req ChatRequest) (Message, error) {
	if s.gen == nil {
		return Message{}, apperr.Unavailable("AI assistant is not configured", nil)
	}
	lang := req.Language
	if !domain.IsKnownLanguage(lang) {
		lang = domain.DefaultLanguage
	}

	resp, err := s.gen.Generate(ctx, gemini.Request{
		Prompt:            req.Prompt,
		SystemInstruction: systemInstruction(lang),
		GoogleSearch:      true,
	})
	if err != nil {
		s.log.CollaboratorError("assistant", "", err)
		return Message{}, err
	}

	content := resp.Text
	if content == "" {
		content = emptyAnswer
	}
	return Message{
		ID:        uuid.NewString(),
		Role:      roleAssistant,
		Content:   content,
		Timestamp: s.now().UTC(),
		Sources:   citedSources(resp.Sources),
	}, nil
}

func systemInstruction(lang domain.Language) string {
	return fmt.Sprintf("You are the RISE LEADS Command Intelligence. You assist high-level sales professionals "+
		"with lead discovery, market analysis, and conversion strategies. "+
		"You have access to real-time search grounding. Language: %s.", lang)
}

// citedSources keeps web sources that point somewhere.
func citedSources(in []gemini.Source) []Source {
	out := make([]Source, 0, len(in))
	for _, src := range in {
		if src.URI == "" || src.URI == "#" {
			continue
		}
		title := src.Title
		if title == "" {
			title = defaultSourceTitle
		}
		out = append(out, Source{Title: title, URI: src.URI})
	}
	return out
}
