package client

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

var (
	simulatedIndustries = []string{"Internet Software", "Health & Wellness", "Legal Services", "E-commerce", "Construction"}
	simulatedLocations  = []string{"New York, USA", "London, UK", "California, USA", "Florida, USA", "Sydney, AU"}
	simulatedSignals    = []string{"Google Ads Buyer", "High Web Traffic", "Recent Hiring", "Legacy Tech Stack", "Strong Social Presence"}
	simulatedTechStack  = []string{"React", "Google Workspace", "Salesforce", "HubSpot", "Stripe"}
)

// Simulated fabricates plausible firmographics without any network call.
// Scores fall in 40..99.
type Simulated struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSimulated creates a simulated provider. A zero seed picks a random one.
func NewSimulated(seed uint64) *Simulated {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Simulated{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Name identifies the provider in logs.
func (s *Simulated) Name() string { return "simulated" }

// Enrich returns a randomised profile for the business.
func (s *Simulated) Enrich(ctx context.Context, name, _ string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slug := strings.Join(strings.Fields(strings.ToLower(name)), "-")
	score := s.rnd.IntN(60) + 40
	employees := s.rnd.IntN(450) + 15

	signals := append([]string(nil), simulatedSignals...)
	s.rnd.Shuffle(len(signals), func(i, j int) { signals[i], signals[j] = signals[j], signals[i] })

	lastFunded := "Profitable"
	if score > 80 {
		lastFunded = "Series B"
	}

	return Result{
		Revenue:       fmt.Sprintf("$%.1fM - $%.1fM", s.rnd.Float64()*8+0.5, s.rnd.Float64()*15+9),
		Employees:     &employees,
		Industry:      simulatedIndustries[s.rnd.IntN(len(simulatedIndustries))],
		Location:      simulatedLocations[s.rnd.IntN(len(simulatedLocations))],
		QualScore:     &score,
		BuyingSignals: signals[:3],
		LinkedIn:      "https://linkedin.com/company/" + slug,
		Facebook:      "https://facebook.com/" + strings.Replace(slug, "-", "", 1),
		TechStack:     append([]string(nil), simulatedTechStack...),
		LastFunded:    lastFunded,
	}, nil
}
