package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/supportstack/helpdesk/internal/domain"
	"github.com/supportstack/helpdesk/internal/events"
	"github.com/supportstack/helpdesk/internal/repository"
	apperrors "github.com/supportstack/helpdesk/pkg/util"
)

// TriageQueue accepts tickets for background triage.
type TriageQueue interface {
	Enqueue(ctx context.Context, ticketID string) error
}

// TicketService coordinates ticket workflows around the triage pipeline.
type TicketService struct {
	tickets    repository.TicketRepository
	audits     repository.AuditRepository
	queue      TriageQueue
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	AuditRepo  repository.AuditRepository
	Queue      TriageQueue
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		audits:     deps.AuditRepo,
		queue:      deps.Queue,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    domain.TicketCategory
}

// CreateTicket persists a new ticket, records TICKET_CREATED, and hands the
// ticket to the triage queue. It returns as soon as the ticket and its first
// audit entry are durable; triage proceeds detached and the caller observes
// its outcome via ticket status and the audit trail.
func (s *TicketService) CreateTicket(ctx context.Context, userID string, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Status:      domain.TicketStatusOpen,
		CreatedBy:   userID,
	}
	if ticket.Category == "" {
		ticket.Category = domain.CategoryOther
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	if err := s.audits.Append(ctx, &domain.AuditLogEntry{
		TicketID: ticket.ID,
		TraceID:  uuid.NewString(),
		Actor:    domain.ActorUser,
		Action:   domain.AuditTicketCreated,
		Meta:     map[string]any{"userId": userID},
	}); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    domain.ActorUser,
		Payload: events.TicketCreatedPayload{
			Title:     ticket.Title,
			CreatedBy: userID,
		},
	})

	if s.queue != nil {
		if err := s.queue.Enqueue(ctx, ticket.ID); err != nil {
			// the ticket stays open with no suggestion; the stuck-ticket
			// sweeper will pick it up and retry
			s.logger.Warn("failed to enqueue triage",
				zap.String("ticket_id", ticket.ID), zap.Error(err))
		}
	}

	return ticket, nil
}

// ListTickets returns tickets visible to the principal. Requesters only see
// their own when mine is set; agents and admins see everything.
func (s *TicketService) ListTickets(ctx context.Context, principal *domain.User, status *domain.TicketStatus, category *domain.TicketCategory, mine bool, limit, offset int) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{
		Status:   status,
		Category: category,
		Limit:    limit,
		Offset:   offset,
	}
	if mine && principal.Role == domain.RoleUser {
		filter.CreatedBy = &principal.ID
	}
	return s.tickets.List(ctx, filter)
}

// GetTicket fetches a ticket, enforcing requester ownership.
func (s *TicketService) GetTicket(ctx context.Context, principal *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticketId": ticketID})
		}
		return nil, err
	}
	if principal.Role == domain.RoleUser && ticket.CreatedBy != principal.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// ListAuditLogs returns a ticket's audit trail ordered ascending by time.
func (s *TicketService) ListAuditLogs(ctx context.Context, principal *domain.User, ticketID string) ([]domain.AuditLogEntry, error) {
	if _, err := s.GetTicket(ctx, principal, ticketID); err != nil {
		return nil, err
	}
	return s.audits.ListByTicket(ctx, ticketID)
}

// Reply sends an agent reply on a ticket waiting for a human, resolving it
// and recording REPLY_SENT with a truncated preview.
func (s *TicketService) Reply(ctx context.Context, agent *domain.User, ticketID, reply string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticketId": ticketID})
		}
		return nil, err
	}
	if ticket.Status != domain.TicketStatusWaitingHuman {
		return nil, apperrors.NewValidationError("ticket is not waiting for human response", nil)
	}

	ticket.Status = domain.TicketStatusResolved
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	replyPreview := preview(reply, 100)
	if err := s.audits.Append(ctx, &domain.AuditLogEntry{
		TicketID: ticket.ID,
		TraceID:  uuid.NewString(),
		Actor:    domain.ActorAgent,
		Action:   domain.AuditReplySent,
		Meta: map[string]any{
			"agentId":      agent.ID,
			"replyPreview": replyPreview,
		},
	}); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketReplySent,
		TicketID: ticket.ID,
		Actor:    domain.ActorAgent,
		Payload: events.TicketReplySentPayload{
			AgentID:      agent.ID,
			ReplyPreview: replyPreview,
		},
	})

	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
