package events

import (
	"time"

	"github.com/supportstack/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketTriaged   EventType = "ticket_triaged"
	EventTicketReplySent EventType = "ticket_reply_sent"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	TicketID  string            `json:"ticket_id"`
	Actor     domain.AuditActor `json:"actor"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   interface{}       `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title     string `json:"title"`
	CreatedBy string `json:"created_by"`
}

// TicketTriagedPayload payload.
type TicketTriagedPayload struct {
	TraceID      string                `json:"trace_id"`
	Decision     string                `json:"decision"`
	Category     domain.TicketCategory `json:"category"`
	Confidence   float64               `json:"confidence"`
	SuggestionID string                `json:"suggestion_id"`
}

// TicketReplySentPayload payload.
type TicketReplySentPayload struct {
	AgentID      string `json:"agent_id"`
	ReplyPreview string `json:"reply_preview"`
}
