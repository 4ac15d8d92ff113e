// Package gemini wraps the Google GenAI client with the rate limit, timeout and
// circuit breaker every collaborator call goes through.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/breaker"
	"riseleads_backend/platform/config"
	"riseleads_backend/platform/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("gemini: no API key configured")

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("gemini: empty response")

// Source kinds reported in grounding metadata.
const (
	SourceWeb  = "web"
	SourceMaps = "maps"
)

// LatLng is an optional retrieval hint for maps grounding.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Request describes a single generation call.
type Request struct {
	// Model overrides the default reasoning model.
	Model             string
	Prompt            string
	SystemInstruction string
	GoogleSearch      bool
	GoogleMaps        bool
	Location          *LatLng
	// Schema requests a JSON response matching the schema.
	Schema *genai.Schema
}

// Source is one grounding chunk.
type Source struct {
	Kind    string `json:"kind"`
	Title   string `json:"title,omitempty"`
	URI     string `json:"uri,omitempty"`
	Address string `json:"address,omitempty"`
}

// Response is the text answer plus its grounding sources.
type Response struct {
	Text    string
	Sources []Source
}

// Generator is implemented by Client and by test fakes.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Client performs rate-limited generation calls.
type Client struct {
	models         *genai.Models
	limiter        *rate.Limiter
	breaker        *breaker.Breaker
	timeout        time.Duration
	searchModel    string
	reasoningModel string
	log            *logger.Logger
}

// New creates a client. It returns ErrDisabled when the key is empty so callers
// can run without AI features.
func New(ctx context.Context, cfg config.AIConfig, log *logger.Logger) (*Client, error) {
	if !cfg.IsAIEnabled() {
		return nil, ErrDisabled
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	rpm := cfg.GetAIRequestsPerMinute()
	if rpm <= 0 {
		rpm = 60
	}
	return &Client{
		models:         gc.Models,
		limiter:        rate.NewLimiter(rate.Limit(float64(rpm)/60.0), max(1, rpm/10)),
		breaker:        breaker.New(breaker.DefaultConfig("gemini"), log),
		timeout:        cfg.GetAITimeout(),
		searchModel:    cfg.GetGeminiSearchModel(),
		reasoningModel: cfg.GetGeminiReasoningModel(),
		log:            log,
	}, nil
}

// SearchModel is the model that supports maps grounding.
func (c *Client) SearchModel() string { return c.searchModel }

// Generate runs one request. Transport failures are returned as upstream
// errors, an open breaker or exhausted rate budget as unavailable.
func (c *Client) Generate(ctx context.Context, req Request) (Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Response{}, ctxErr
		}
		return Response{}, apperr.Unavailable("AI request budget exhausted", err)
	}

	model := req.Model
	if model == "" {
		model = c.reasoningModel
	}

	resp, err := breaker.Do(c.breaker, func() (*genai.GenerateContentResponse, error) {
		callCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		return c.models.GenerateContent(callCtx, model, genai.Text(req.Prompt), buildConfig(req))
	})
	if err != nil {
		return Response{}, callError(ctx, err)
	}

	return Response{Text: strings.TrimSpace(resp.Text()), Sources: groundingSources(resp)}, nil
}

// callError maps a failed call. A caller that gave up gets its own context
// error back unwrapped, so it is never reported as an upstream failure.
func callError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return ctxErr
	}
	if errors.Is(err, breaker.ErrOpen) {
		return apperr.Unavailable("AI service temporarily unavailable", err)
	}
	return apperr.Upstream("AI request failed", err)
}

func buildConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.GoogleMaps {
		cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
	}
	if req.GoogleSearch {
		cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}
	if req.Location != nil {
		cfg.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(req.Location.Latitude),
					Longitude: genai.Ptr(req.Location.Longitude),
				},
			},
		}
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema
	}
	return cfg
}

func groundingSources(resp *genai.GenerateContentResponse) []Source {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	chunks := resp.Candidates[0].GroundingMetadata.GroundingChunks
	sources := make([]Source, 0, len(chunks))
	for _, chunk := range chunks {
		switch {
		case chunk == nil:
		case chunk.Maps != nil:
			sources = append(sources, Source{Kind: SourceMaps, Title: chunk.Maps.Title, URI: chunk.Maps.URI, Address: chunk.Maps.Text})
		case chunk.Web != nil:
			sources = append(sources, Source{Kind: SourceWeb, Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}
	return sources
}
