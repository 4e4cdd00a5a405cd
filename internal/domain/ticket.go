package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen         TicketStatus = "open"
	TicketStatusTriaged      TicketStatus = "triaged"
	TicketStatusWaitingHuman TicketStatus = "waiting_human"
	TicketStatusResolved     TicketStatus = "resolved"
	TicketStatusClosed       TicketStatus = "closed"
)

// TicketCategory enumerates support categories assigned by triage.
type TicketCategory string

const (
	CategoryBilling  TicketCategory = "billing"
	CategoryTech     TicketCategory = "tech"
	CategoryShipping TicketCategory = "shipping"
	CategoryOther    TicketCategory = "other"
)

// Ticket is the aggregate for support requests. Tickets are never deleted;
// only creation, triage, and the agent reply flow mutate them.
type Ticket struct {
	ID           string
	Title        string
	Description  string
	Category     TicketCategory
	Status       TicketStatus
	CreatedBy    string
	AssigneeID   *string
	SuggestionID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
