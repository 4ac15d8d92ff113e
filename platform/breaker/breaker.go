// Package breaker wraps sony/gobreaker with the settings used for every
// external collaborator (AI models, enrichment providers).
// This is part of the platform layer and contains no business logic.
package breaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"riseleads_backend/platform/logger"

	"github.com/sony/gobreaker"
)

// ErrOpen is returned when the breaker refuses a call.
var ErrOpen = errors.New("circuit breaker open")

// Config controls when a breaker trips.
type Config struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultConfig trips after 5 requests in a 30s window with a failure ratio of
// 60% or more, and probes again after 60s.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      2,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// Breaker guards calls to one collaborator.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a breaker. State changes are logged.
func New(cfg Config, log *logger.Logger) *Breaker {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.Warn("circuit breaker state changed",
					slog.String("breaker", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
			}
		},
		// A caller that gave up is not evidence the collaborator is unhealthy.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &Breaker{cb: cb}
}

// State returns the current breaker state name.
func (b *Breaker) State() string {
	return b.cb.State().String()
}

// Do runs fn through the breaker. Refused calls return an error wrapping ErrOpen.
func Do[T any](b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	out, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, errors.Join(ErrOpen, err)
	}
	if err != nil {
		return zero, err
	}
	typed, _ := out.(T)
	return typed, nil
}
