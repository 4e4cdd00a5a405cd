package domain

import "time"

// AuditActor identifies who performed an audited action.
type AuditActor string

const (
	ActorSystem AuditActor = "system"
	ActorAgent  AuditActor = "agent"
	ActorUser   AuditActor = "user"
)

// AuditAction is the closed set of auditable actions.
type AuditAction string

const (
	AuditTicketCreated   AuditAction = "TICKET_CREATED"
	AuditLogStarted      AuditAction = "AUDIT_LOG_STARTED"
	AuditAgentClassified AuditAction = "AGENT_CLASSIFIED"
	AuditKBRetrieved     AuditAction = "KB_RETRIEVED"
	AuditDraftGenerated  AuditAction = "DRAFT_GENERATED"
	AuditAutoClosed      AuditAction = "AUTO_CLOSED"
	AuditAssignedToHuman AuditAction = "ASSIGNED_TO_HUMAN"
	AuditReplySent       AuditAction = "REPLY_SENT"
	AuditTriageFailed    AuditAction = "TRIAGE_FAILED"
)

// AuditLogEntry is an append-only record of one step of ticket processing.
// Entries sharing a trace id belong to the same triage run and are ordered
// by timestamp for timeline reconstruction. Entries are never updated or
// deleted: a partial trace is the record of exactly how far a run got.
type AuditLogEntry struct {
	ID       string
	TicketID string
	TraceID  string
	Actor    AuditActor
	Action   AuditAction
	Meta     map[string]any
	Ts       time.Time
}
