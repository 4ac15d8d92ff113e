package inapp

import (
	"context"
	"time"

	"riseleads_backend/internal/events"
	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/internal/notification/sse"
	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	feed *Feed
	sse  *sse.Service
	bus  events.Bus
	log  *logger.Logger
	now  func() time.Time
}

func NewService(feed *Feed, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		feed: feed,
		bus:  bus,
		log:  log,
		now:  time.Now,
	}
}

// SetSSE injects the SSE service (circular dependency avoidance).
func (s *Service) SetSSE(sseSvc *sse.Service) {
	s.sse = sseSvc
}

// Push records a notification in the feed and fans it out to live clients.
func (s *Service) Push(ctx context.Context, title, message string, typ domain.AuditType) Notification {
	if typ == "" {
		typ = domain.AuditInfo
	}
	notif := Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Type:      typ,
		Timestamp: s.now().UTC(),
	}
	s.feed.Add(notif)

	if s.sse != nil {
		s.sse.Publish(sse.Event{
			Type:    sse.EventNotification,
			Message: title,
			Data:    notif,
		})
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.NotificationPushed{
			BaseEvent:      events.NewBaseEvent(),
			NotificationID: notif.ID,
			Title:          title,
			Message:        message,
			Type:           string(typ),
		})
	}
	if s.log != nil {
		s.log.Debug("notification pushed", "title", title, "type", typ)
	}
	return notif
}

// Notify is Push without a result, for callers that only emit.
func (s *Service) Notify(ctx context.Context, title, message string, typ domain.AuditType) {
	s.Push(ctx, title, message, typ)
}

func (s *Service) List() []Notification {
	return s.feed.List()
}

func (s *Service) CountUnread() int {
	return s.feed.CountUnread()
}

func (s *Service) MarkRead(id string) error {
	if !s.feed.MarkRead(id) {
		return apperr.NotFound("notification not found")
	}
	return nil
}

func (s *Service) MarkAllRead() {
	s.feed.MarkAllRead()
}

func (s *Service) Clear() {
	s.feed.Clear()
}
