// Package events re-exports the platform event bus so internal modules can
// import events from one place. The implementation lives in platform/events.
package events

import (
	platformevents "riseleads_backend/platform/events"
	"riseleads_backend/platform/logger"
)

// InMemoryBus is the platform in-process bus.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
