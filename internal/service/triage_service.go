package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/supportstack/helpdesk/internal/domain"
	"github.com/supportstack/helpdesk/internal/events"
	"github.com/supportstack/helpdesk/internal/observability"
	"github.com/supportstack/helpdesk/internal/repository"
	"github.com/supportstack/helpdesk/internal/triage"
	apperrors "github.com/supportstack/helpdesk/pkg/util"
)

// Retriever finds knowledge-base articles relevant to free text.
type Retriever interface {
	Retrieve(ctx context.Context, searchText string) ([]domain.Article, error)
}

// RunLock guards against concurrent triage runs for the same ticket.
// Implementations may degrade to always granting the lock.
type RunLock interface {
	TryLock(ctx context.Context, ticketID string) (release func(), ok bool, err error)
}

// TriageResult is the outcome returned to triage callers.
type TriageResult struct {
	Decision triage.Decision
	TraceID  string
}

// TriageService runs the classify, retrieve, draft, decide pipeline for a
// ticket, appending one audit entry per step. It is the only component that
// moves tickets out of the open status.
type TriageService struct {
	tickets     repository.TicketRepository
	suggestions repository.SuggestionRepository
	audits      repository.AuditRepository
	settings    repository.SettingsRepository
	retriever   Retriever
	lock        RunLock
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger

	draftPreviewLen int
}

// TriageDependencies bundles collaborators for the triage service.
type TriageDependencies struct {
	TicketRepo     repository.TicketRepository
	SuggestionRepo repository.SuggestionRepository
	AuditRepo      repository.AuditRepository
	SettingsRepo   repository.SettingsRepository
	Retriever      Retriever
	RunLock        RunLock
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger

	DraftPreviewLength int
}

// NewTriageService constructs the service.
func NewTriageService(deps TriageDependencies) *TriageService {
	previewLen := deps.DraftPreviewLength
	if previewLen <= 0 {
		previewLen = 100
	}
	return &TriageService{
		tickets:         deps.TicketRepo,
		suggestions:     deps.SuggestionRepo,
		audits:          deps.AuditRepo,
		settings:        deps.SettingsRepo,
		retriever:       deps.Retriever,
		lock:            deps.RunLock,
		dispatcher:      deps.Dispatcher,
		metrics:         deps.Metrics,
		logger:          deps.Logger,
		draftPreviewLen: previewLen,
	}
}

// TriageTicket executes one triage run. Each run gets a fresh trace id and
// produces a fresh suggestion; prior suggestions are kept. Failures anywhere
// in the pipeline are recorded once as TRIAGE_FAILED and the original error
// is returned to the caller. No rollback: audit entries for completed steps
// stand as the record of how far the run got.
func (s *TriageService) TriageTicket(ctx context.Context, ticketID string) (*TriageResult, error) {
	if s.lock != nil {
		release, ok, err := s.lock.TryLock(ctx, ticketID)
		if err != nil {
			s.logger.Warn("triage run lock unavailable; proceeding without it",
				zap.String("ticket_id", ticketID), zap.Error(err))
		} else if !ok {
			return nil, apperrors.NewConflict("triage already in progress for ticket", map[string]any{
				"ticketId": ticketID,
			})
		} else {
			defer release()
		}
	}

	traceID := uuid.NewString()
	start := time.Now()

	decision, err := s.run(ctx, ticketID, traceID, start)
	if err != nil {
		s.recordFailure(ctx, ticketID, traceID, err)
		if s.metrics != nil {
			s.metrics.RecordTriage("failed")
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordTriage(string(decision))
	}
	return &TriageResult{Decision: decision, TraceID: traceID}, nil
}

func (s *TriageService) run(ctx context.Context, ticketID, traceID string, start time.Time) (triage.Decision, error) {
	if err := s.audit(ctx, ticketID, traceID, domain.AuditLogStarted, map[string]any{
		"traceId": traceID,
	}); err != nil {
		return "", err
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("ticket", map[string]any{"ticketId": ticketID})
		}
		return "", err
	}

	classification := triage.Classify(ticket)
	if err := s.audit(ctx, ticketID, traceID, domain.AuditAgentClassified, map[string]any{
		"predictedCategory": classification.PredictedCategory,
		"confidence":        classification.Confidence,
	}); err != nil {
		return "", err
	}

	articles, err := s.retriever.Retrieve(ctx, ticket.Title+" "+ticket.Description)
	if err != nil {
		return "", err
	}
	articleIDs := make([]string, 0, len(articles))
	for _, article := range articles {
		articleIDs = append(articleIDs, article.ID)
	}
	if err := s.audit(ctx, ticketID, traceID, domain.AuditKBRetrieved, map[string]any{
		"articleIds": articleIDs,
	}); err != nil {
		return "", err
	}

	draft := triage.DraftReply(ticket, articles)
	if err := s.audit(ctx, ticketID, traceID, domain.AuditDraftGenerated, map[string]any{
		"draftPreview": preview(draft.Reply, s.draftPreviewLen),
	}); err != nil {
		return "", err
	}

	// settings are read fresh here, once per run: admin changes between runs
	// must take effect without a restart.
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	decision := triage.Decide(classification.Confidence, settings)

	suggestion := &domain.Suggestion{
		TicketID:          ticket.ID,
		PredictedCategory: classification.PredictedCategory,
		ArticleIDs:        draft.Citations,
		DraftReply:        draft.Reply,
		Confidence:        classification.Confidence,
		AutoClosed:        decision == triage.DecisionAutoClosed,
		Model:             triage.ModelMetadata(time.Since(start)),
	}
	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		return "", err
	}

	if decision == triage.DecisionAutoClosed {
		ticket.Status = domain.TicketStatusResolved
	} else {
		ticket.Status = domain.TicketStatusWaitingHuman
	}
	ticket.SuggestionID = &suggestion.ID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return "", err
	}

	action := domain.AuditAutoClosed
	if decision == triage.DecisionAssignedToHuman {
		action = domain.AuditAssignedToHuman
	}
	if err := s.audit(ctx, ticketID, traceID, action, map[string]any{
		"confidence":   classification.Confidence,
		"threshold":    settings.ConfidenceThreshold,
		"suggestionId": suggestion.ID,
	}); err != nil {
		return "", err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketTriaged,
		TicketID: ticket.ID,
		Actor:    domain.ActorSystem,
		Payload: events.TicketTriagedPayload{
			TraceID:      traceID,
			Decision:     string(decision),
			Category:     classification.PredictedCategory,
			Confidence:   classification.Confidence,
			SuggestionID: suggestion.ID,
		},
	})

	s.logger.Info("triage complete",
		zap.String("ticket_id", ticket.ID),
		zap.String("trace_id", traceID),
		zap.String("decision", string(decision)),
		zap.Float64("confidence", classification.Confidence),
	)
	return decision, nil
}

// GetSuggestion returns the latest suggestion for a ticket.
func (s *TriageService) GetSuggestion(ctx context.Context, ticketID string) (*domain.Suggestion, error) {
	suggestion, err := s.suggestions.GetLatestByTicket(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("suggestion", map[string]any{"ticketId": ticketID})
		}
		return nil, err
	}
	return suggestion, nil
}

func (s *TriageService) recordFailure(ctx context.Context, ticketID, traceID string, cause error) {
	err := s.audit(ctx, ticketID, traceID, domain.AuditTriageFailed, map[string]any{
		"error": cause.Error(),
	})
	if err != nil {
		s.logger.Error("failed to record triage failure",
			zap.String("ticket_id", ticketID),
			zap.String("trace_id", traceID),
			zap.Error(err),
		)
	}
}

func (s *TriageService) audit(ctx context.Context, ticketID, traceID string, action domain.AuditAction, meta map[string]any) error {
	return s.audits.Append(ctx, &domain.AuditLogEntry{
		TicketID: ticketID,
		TraceID:  traceID,
		Actor:    domain.ActorSystem,
		Action:   action,
		Meta:     meta,
	})
}

func (s *TriageService) publish(ctx context.Context, event events.Event) {
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

func preview(body string, max int) string {
	if len(body) <= max {
		return body
	}
	return body[:max] + "..."
}
