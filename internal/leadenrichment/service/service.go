// Package service provides lead enrichment with caching, circuit breaking and
// normalisation of partial provider answers.
package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"riseleads_backend/internal/leadenrichment/client"
	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/breaker"
	"riseleads_backend/platform/logger"

	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheTTL    = 24 * time.Hour
	defaultCallTimeout = 60 * time.Second
)

// Provider fetches raw firmographics for a business.
type Provider interface {
	Name() string
	Enrich(ctx context.Context, name, website string) (client.Result, error)
}

type cacheEntry struct {
	data      *domain.EnrichedData
	expiresAt time.Time
}

// Service handles enrichment lookups.
type Service struct {
	provider Provider
	breaker  *breaker.Breaker
	log      *logger.Logger
	cache    map[string]cacheEntry
	cacheMu  sync.RWMutex
	cacheTTL time.Duration
	timeout  time.Duration
	inflight singleflight.Group
	now      func() time.Time
}

// New creates a new lead enrichment service. A non-positive ttl uses 24h.
func New(provider Provider, ttl time.Duration, log *logger.Logger) *Service {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{
		provider: provider,
		breaker:  breaker.New(breaker.DefaultConfig("enrichment-"+provider.Name()), log),
		log:      log,
		cache:    make(map[string]cacheEntry),
		cacheTTL: ttl,
		timeout:  defaultCallTimeout,
		now:      time.Now,
	}
}

// Enrich returns the enrichment bundle for a business. The result always has
// IsEnriched set, a score clamped to 0..100, and a segment derived from the
// score when the provider did not send one.
func (s *Service) Enrich(ctx context.Context, name, website string) (*domain.EnrichedData, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("business name is required for enrichment")
	}
	key := cacheKey(name, website)
	if cached := s.getFromCache(key); cached != nil {
		return cached, nil
	}

	// Concurrent lookups for the same business share one provider call. The
	// shared call is not bound to any single caller's cancellation; each caller
	// stops waiting when its own ctx ends.
	ch := s.inflight.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		raw, err := breaker.Do(s.breaker, func() (client.Result, error) {
			return s.provider.Enrich(callCtx, name, website)
		})
		if errors.Is(err, breaker.ErrOpen) {
			return nil, apperr.Unavailable("enrichment provider temporarily unavailable", err)
		}
		if err != nil {
			return nil, apperr.Upstream("enrichment failed", err)
		}
		data := normalize(raw)
		s.setCache(key, data)
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.EnrichedData).Clone(), nil
	}
}

func normalize(raw client.Result) *domain.EnrichedData {
	data := &domain.EnrichedData{
		Revenue:       raw.Revenue,
		Industry:      raw.Industry,
		Location:      raw.Location,
		QualSegment:   domain.QualSegment(raw.QualSegment),
		BuyingSignals: slices.Clone(raw.BuyingSignals),
		LinkedIn:      raw.LinkedIn,
		Facebook:      raw.Facebook,
		Twitter:       raw.Twitter,
		TechStack:     slices.Clone(raw.TechStack),
		LastFunded:    raw.LastFunded,
		IsEnriched:    true,
	}
	if raw.Employees != nil && *raw.Employees >= 0 {
		v := *raw.Employees
		data.Employees = &v
	}
	if raw.QualScore != nil {
		score := domain.ClampScore(*raw.QualScore)
		data.QualScore = &score
		if !isKnownSegment(data.QualSegment) {
			data.QualSegment = domain.SegmentForScore(score)
		}
	} else if !isKnownSegment(data.QualSegment) {
		data.QualSegment = ""
	}
	return data
}

func isKnownSegment(seg domain.QualSegment) bool {
	switch seg {
	case domain.SegmentLow, domain.SegmentMedium, domain.SegmentGood, domain.SegmentVeryGood:
		return true
	}
	return false
}

func (s *Service) getFromCache(key string) *domain.EnrichedData {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	entry, ok := s.cache[key]
	if !ok || s.now().After(entry.expiresAt) {
		return nil
	}
	return entry.data.Clone()
}

func (s *Service) setCache(key string, data *domain.EnrichedData) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache[key] = cacheEntry{
		data:      data.Clone(),
		expiresAt: s.now().Add(s.cacheTTL),
	}
}

func cacheKey(name, website string) string {
	return strings.ToLower(name) + "|" + strings.ToLower(strings.TrimSpace(website))
}
