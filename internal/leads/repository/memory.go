package repository

import (
	"context"
	"sync"

	"riseleads_backend/internal/leads/domain"
)

// Memory keeps the snapshot in process. Nothing survives a restart.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Driver() string { return "memory" }

func (m *Memory) Load(_ context.Context) ([]domain.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Decode(m.data)
}

// Save stores an encoded copy so later mutations by the caller are not observed.
func (m *Memory) Save(_ context.Context, leads []domain.Lead) error {
	data, err := Encode(leads, nowFunc())
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}
