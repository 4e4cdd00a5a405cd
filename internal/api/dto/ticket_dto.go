package dto

import (
	"time"

	"github.com/supportstack/helpdesk/internal/domain"
)

// CreateTicketRequest payload for filing a ticket.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    domain.TicketCategory `json:"category,omitempty"`
}

// ReplyRequest payload for an agent reply.
type ReplyRequest struct {
	Reply string `json:"reply"`
}

// TicketResponse serializes a ticket.
type TicketResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     domain.TicketCategory `json:"category"`
	Status       domain.TicketStatus   `json:"status"`
	CreatedBy    string                `json:"created_by"`
	AssigneeID   *string               `json:"assignee_id,omitempty"`
	SuggestionID *string               `json:"suggestion_id,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// AuditLogResponse serializes one audit trail entry.
type AuditLogResponse struct {
	ID      string             `json:"id"`
	TraceID string             `json:"trace_id"`
	Actor   domain.AuditActor  `json:"actor"`
	Action  domain.AuditAction `json:"action"`
	Meta    map[string]any     `json:"meta,omitempty"`
	Ts      time.Time          `json:"timestamp"`
}

// SuggestionResponse serializes a triage suggestion.
type SuggestionResponse struct {
	ID                string                `json:"id"`
	TicketID          string                `json:"ticket_id"`
	PredictedCategory domain.TicketCategory `json:"predicted_category"`
	ArticleIDs        []string              `json:"article_ids"`
	DraftReply        string                `json:"draft_reply"`
	Confidence        float64               `json:"confidence"`
	AutoClosed        bool                  `json:"auto_closed"`
	Model             domain.ModelInfo      `json:"model_info"`
	CreatedAt         time.Time             `json:"created_at"`
}

// TriageResponse serializes a triage trigger result.
type TriageResponse struct {
	Decision string `json:"decision"`
	TraceID  string `json:"trace_id"`
}
