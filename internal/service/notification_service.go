package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/supportstack/helpdesk/internal/events"
)

// NotificationService emits notifications for domain events. Currently a
// structured-log sink; a mail or webhook sender would subscribe the same way.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketTriaged, n.handleTicketTriaged)
	n.dispatcher.Subscribe(events.EventTicketReplySent, n.handleReplySent)
}

func (n *NotificationService) handleTicketCreated(_ context.Context, event events.Event) error {
	n.logger.Info("notify: ticket created",
		zap.String("ticket_id", event.TicketID),
	)
	return nil
}

func (n *NotificationService) handleTicketTriaged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketTriagedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("notify: ticket triaged",
		zap.String("ticket_id", event.TicketID),
		zap.String("decision", payload.Decision),
		zap.Float64("confidence", payload.Confidence),
	)
	return nil
}

func (n *NotificationService) handleReplySent(_ context.Context, event events.Event) error {
	n.logger.Info("notify: reply sent",
		zap.String("ticket_id", event.TicketID),
	)
	return nil
}
