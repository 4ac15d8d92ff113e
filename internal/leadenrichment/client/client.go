// Package client provides the enrichment providers: an HTTP client for a
// firmographic enrichment API and a simulated provider for local use.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"riseleads_backend/platform/logger"
)

const (
	defaultHTTPTimeout = 15 * time.Second
	maxResponseBytes   = 1 << 20
)

// Result is the raw provider answer. Any field may be missing.
type Result struct {
	Revenue       string
	Employees     *int
	Industry      string
	Location      string
	QualScore     *int
	QualSegment   string
	BuyingSignals []string
	LinkedIn      string
	Facebook      string
	Twitter       string
	TechStack     []string
	LastFunded    string
}

// FlexNumber handles JSON values that can be either string or number.
type FlexNumber float64

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexNumber(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		str = strings.TrimSpace(str)
		if str == "" {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		*f = FlexNumber(parsed)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexNumber", string(data))
}

// ToIntPtr rounds the value to an int pointer.
func (f *FlexNumber) ToIntPtr() *int {
	if f == nil {
		return nil
	}
	v := int(float64(*f) + 0.5)
	return &v
}

type apiResponse struct {
	Revenue       string      `json:"revenue"`
	Employees     *FlexNumber `json:"employees"`
	Industry      string      `json:"industry"`
	Location      string      `json:"location"`
	QualScore     *FlexNumber `json:"qualScore"`
	QualSegment   string      `json:"qualSegment"`
	BuyingSignals []string    `json:"buyingSignals"`
	LinkedIn      string      `json:"linkedin"`
	Facebook      string      `json:"facebook"`
	Twitter       string      `json:"twitter"`
	TechStack     []string    `json:"techStack"`
	LastFunded    string      `json:"lastFunded"`
}

// Client calls an HTTP enrichment API: GET <baseURL>?name=..&website=..
// with an optional bearer key. The response is the EnrichedData JSON shape.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *logger.Logger
}

// New creates a new enrichment API client.
func New(baseURL, apiKey string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		log:        log,
	}
}

// Name identifies the provider in logs.
func (c *Client) Name() string { return "http" }

// Enrich fetches firmographics for a business.
func (c *Client) Enrich(ctx context.Context, name, website string) (Result, error) {
	params := url.Values{}
	params.Set("name", name)
	if website != "" {
		params.Set("website", website)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("enrichment request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, fmt.Errorf("read enrichment response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("enrichment provider returned %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return Result{}, fmt.Errorf("decode enrichment response: %w", err)
	}
	if c.log != nil {
		c.log.Debug("enrichment fetched", "name", name, "status", resp.StatusCode)
	}

	return Result{
		Revenue:       payload.Revenue,
		Employees:     payload.Employees.ToIntPtr(),
		Industry:      payload.Industry,
		Location:      payload.Location,
		QualScore:     payload.QualScore.ToIntPtr(),
		QualSegment:   payload.QualSegment,
		BuyingSignals: payload.BuyingSignals,
		LinkedIn:      payload.LinkedIn,
		Facebook:      payload.Facebook,
		Twitter:       payload.Twitter,
		TechStack:     payload.TechStack,
		LastFunded:    payload.LastFunded,
	}, nil
}
