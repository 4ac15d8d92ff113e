// Package notification owns the user-facing notification feed and the live
// event stream. It subscribes to domain events and inverts the dependency:
// domain modules only emit events and never talk to SSE clients directly.
package notification

import (
	"context"

	"riseleads_backend/internal/events"
	apphttp "riseleads_backend/internal/http"
	notifhandler "riseleads_backend/internal/notification/handler"
	"riseleads_backend/internal/notification/inapp"
	"riseleads_backend/internal/notification/sse"
	"riseleads_backend/platform/config"
	"riseleads_backend/platform/logger"
)

// Module wires the feed, its HTTP handler and the SSE stream.
type Module struct {
	inapp   *inapp.Service
	sse     *sse.Service
	handler *notifhandler.HTTPHandler
	log     *logger.Logger
}

// New creates the notification module. The feed keeps at most
// cfg.GetNotificationLimit() entries.
func New(cfg config.NotificationConfig, bus events.Bus, log *logger.Logger) *Module {
	sseSvc := sse.New(log)
	inappSvc := inapp.NewService(inapp.NewFeed(cfg.GetNotificationLimit()), bus, log)
	inappSvc.SetSSE(sseSvc)

	return &Module{
		inapp:   inappSvc,
		sse:     sseSvc,
		handler: notifhandler.NewHTTPHandler(inappSvc, sseSvc),
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notifications"
}

// Service returns the in-app notification service, which also serves as the
// lead store's notifier.
func (m *Module) Service() *inapp.Service {
	return m.inapp
}

// SSE returns the live event stream.
func (m *Module) SSE() *sse.Service {
	return m.sse
}

// Close disconnects all stream clients.
func (m *Module) Close() {
	m.sse.Close()
}

// RegisterHandlers subscribes the stream to the lead events clients render live.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), m)
	bus.Subscribe(events.LeadUpdated{}.EventName(), m)
	bus.Subscribe(events.LeadDeleted{}.EventName(), m)
	bus.Subscribe(events.LeadStatusChanged{}.EventName(), m)
	bus.Subscribe(events.LeadEnriched{}.EventName(), m)
	bus.Subscribe(events.LeadNoteAdded{}.EventName(), m)
	bus.Subscribe(events.OutreachGenerated{}.EventName(), m)
	bus.Subscribe(events.LeadScored{}.EventName(), m)
	bus.Subscribe(events.CollaboratorFailed{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the SSE stream.
func (m *Module) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCreated:
		m.sse.Publish(sse.Event{Type: sse.EventLeadCreated, LeadID: e.LeadID, Message: e.Name, Data: e})
	case events.LeadUpdated:
		m.sse.Publish(sse.Event{Type: sse.EventLeadUpdated, LeadID: e.LeadID, Data: e})
	case events.LeadNoteAdded:
		m.sse.Publish(sse.Event{Type: sse.EventLeadUpdated, LeadID: e.LeadID, Message: "note added", Data: e})
	case events.OutreachGenerated:
		m.sse.Publish(sse.Event{Type: sse.EventLeadUpdated, LeadID: e.LeadID, Message: "outreach compiled", Data: e})
	case events.LeadScored:
		m.sse.Publish(sse.Event{Type: sse.EventLeadUpdated, LeadID: e.LeadID, Message: "score assessed", Data: e})
	case events.LeadDeleted:
		m.sse.Publish(sse.Event{Type: sse.EventLeadDeleted, LeadID: e.LeadID, Data: e})
	case events.LeadStatusChanged:
		m.sse.Publish(sse.Event{Type: sse.EventLeadStatusChanged, LeadID: e.LeadID, Message: e.NewStatus, Data: e})
	case events.LeadEnriched:
		m.sse.Publish(sse.Event{Type: sse.EventLeadEnriched, LeadID: e.LeadID, Data: e})
	case events.CollaboratorFailed:
		m.sse.Publish(sse.Event{Type: sse.EventCollaboratorError, LeadID: e.LeadID, Message: e.Collaborator + " failed", Data: e})
	default:
		m.log.Debug("notification module ignoring event", "event", event.EventName())
	}
	return nil
}

// RegisterRoutes mounts the feed and stream routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/notifications"))
}

var (
	_ apphttp.Module = (*Module)(nil)
	_ events.Handler = (*Module)(nil)
)
