package inapp

import (
	"sync"
	"time"

	"riseleads_backend/internal/leads/domain"
)

// DefaultLimit is the number of notifications the feed retains.
const DefaultLimit = 20

// Notification is a transient, user-facing message about a store mutation.
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      domain.AuditType `json:"type"`
	Read      bool             `json:"read"`
	Timestamp time.Time        `json:"timestamp"`
}

// Feed is a bounded, most-recent-first list of notifications. Only the newest
// limit notifications are kept; older ones are dropped on insert. The feed is
// not persisted.
type Feed struct {
	mu    sync.RWMutex
	items []Notification
	limit int
}

// NewFeed creates a feed that retains at most limit notifications.
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Feed{items: make([]Notification, 0, limit), limit: limit}
}

// Add prepends n and trims the tail beyond the limit.
func (f *Feed) Add(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make([]Notification, 0, min(len(f.items)+1, f.limit))
	next = append(next, n)
	for _, item := range f.items {
		if len(next) == f.limit {
			break
		}
		next = append(next, item)
	}
	f.items = next
}

// List returns a copy of the feed, newest first.
func (f *Feed) List() []Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}

// MarkRead flags a notification as read and reports whether it exists.
func (f *Feed) MarkRead(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead flags every notification as read.
func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		f.items[i].Read = true
	}
}

// Clear empties the feed.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = f.items[:0]
}

// CountUnread returns the number of unread notifications.
func (f *Feed) CountUnread() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	count := 0
	for _, item := range f.items {
		if !item.Read {
			count++
		}
	}
	return count
}

// Limit returns the retention bound.
func (f *Feed) Limit() int {
	return f.limit
}
