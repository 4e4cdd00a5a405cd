package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/supportstack/helpdesk/internal/domain"
	"github.com/supportstack/helpdesk/internal/events"
	"github.com/supportstack/helpdesk/internal/triage"
	apperrors "github.com/supportstack/helpdesk/pkg/util"
)

type triageFixture struct {
	tickets     *memTicketRepo
	suggestions *memSuggestionRepo
	audits      *memAuditRepo
	settings    *memSettingsRepo
	retriever   *stubRetriever
	dispatcher  events.Dispatcher
	service     *TriageService
}

func newTriageFixture(t *testing.T) *triageFixture {
	t.Helper()
	f := &triageFixture{
		tickets:     newMemTicketRepo(),
		suggestions: &memSuggestionRepo{},
		audits:      &memAuditRepo{},
		settings:    newMemSettingsRepo(),
		retriever:   &stubRetriever{},
		dispatcher:  events.NewInMemoryDispatcher(),
	}
	f.service = NewTriageService(TriageDependencies{
		TicketRepo:     f.tickets,
		SuggestionRepo: f.suggestions,
		AuditRepo:      f.audits,
		SettingsRepo:   f.settings,
		Retriever:      f.retriever,
		Dispatcher:     f.dispatcher,
		Logger:         zap.NewNop(),
	})
	return f
}

func (f *triageFixture) seedTicket(t *testing.T, title, description string) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Category:    domain.CategoryOther,
		Status:      domain.TicketStatusOpen,
		CreatedBy:   "user-1",
	}
	require.NoError(t, f.tickets.Create(context.Background(), ticket))
	return ticket
}

func TestTriageAutoClosesHighConfidenceTicket(t *testing.T) {
	f := newTriageFixture(t)
	f.retriever.articles = []domain.Article{
		{ID: "a1", Title: "Resetting your password", Status: domain.ArticleStatusPublished},
	}
	ticket := f.seedTicket(t, "Cannot login", "Getting error 500 when trying to login")

	result, err := f.service.TriageTicket(context.Background(), ticket.ID)

	require.NoError(t, err)
	assert.Equal(t, triage.DecisionAutoClosed, result.Decision)
	assert.NotEmpty(t, result.TraceID)

	updated, err := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, updated.Status)
	require.NotNil(t, updated.SuggestionID)

	suggestion, err := f.suggestions.GetLatestByTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated.SuggestionID, suggestion.ID)
	assert.Equal(t, domain.CategoryTech, suggestion.PredictedCategory)
	assert.Equal(t, 0.9, suggestion.Confidence)
	assert.True(t, suggestion.AutoClosed)
	assert.Equal(t, []string{"a1"}, suggestion.ArticleIDs)
	assert.Contains(t, suggestion.DraftReply, "1) Resetting your password")

	assert.Equal(t, []domain.AuditAction{
		domain.AuditLogStarted,
		domain.AuditAgentClassified,
		domain.AuditKBRetrieved,
		domain.AuditDraftGenerated,
		domain.AuditAutoClosed,
	}, f.audits.actions(ticket.ID))
}

func TestTriageEscalatesLowConfidenceTicket(t *testing.T) {
	f := newTriageFixture(t)
	ticket := f.seedTicket(t, "Question about my invoice", "Where do I find it?")

	result, err := f.service.TriageTicket(context.Background(), ticket.ID)

	require.NoError(t, err)
	assert.Equal(t, triage.DecisionAssignedToHuman, result.Decision)

	updated, err := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusWaitingHuman, updated.Status)
	require.NotNil(t, updated.SuggestionID)

	actions := f.audits.actions(ticket.ID)
	assert.Equal(t, domain.AuditAssignedToHuman, actions[len(actions)-1])
}

func TestTriageEscalatesWhenThresholdRaised(t *testing.T) {
	f := newTriageFixture(t)
	f.settings.settings.ConfidenceThreshold = 0.95
	ticket := f.seedTicket(t, "Cannot login", "Getting error 500 when trying to login")

	result, err := f.service.TriageTicket(context.Background(), ticket.ID)

	require.NoError(t, err)
	assert.Equal(t, triage.DecisionAssignedToHuman, result.Decision)
}

func TestTriageReadsSettingsFreshEachRun(t *testing.T) {
	f := newTriageFixture(t)
	ticket := f.seedTicket(t, "Cannot login", "Getting error 500 when trying to login")

	_, err := f.service.TriageTicket(context.Background(), ticket.ID)
	require.NoError(t, err)

	f.settings.settings.AutoCloseEnabled = false
	result, err := f.service.TriageTicket(context.Background(), ticket.ID)
	require.NoError(t, err)

	assert.Equal(t, triage.DecisionAssignedToHuman, result.Decision)
	assert.Equal(t, 2, f.settings.getCount)
}

func TestTriageUnknownTicketRecordsFailure(t *testing.T) {
	f := newTriageFixture(t)

	_, err := f.service.TriageTicket(context.Background(), "missing-ticket")

	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	assert.Equal(t, []domain.AuditAction{
		domain.AuditLogStarted,
		domain.AuditTriageFailed,
	}, f.audits.actions("missing-ticket"))
}

func TestTriageRetrievalFailureRecordedAfterLastCompletedStep(t *testing.T) {
	f := newTriageFixture(t)
	retrieveErr := errors.New("search backend down")
	f.retriever.err = retrieveErr
	ticket := f.seedTicket(t, "Cannot login", "error 500")

	_, err := f.service.TriageTicket(context.Background(), ticket.ID)

	require.ErrorIs(t, err, retrieveErr)
	assert.Equal(t, []domain.AuditAction{
		domain.AuditLogStarted,
		domain.AuditAgentClassified,
		domain.AuditTriageFailed,
	}, f.audits.actions(ticket.ID))

	// failed run leaves the ticket untouched
	updated, getErr := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.TicketStatusOpen, updated.Status)
	assert.Nil(t, updated.SuggestionID)
}

func TestTriageRerunKeepsPriorSuggestions(t *testing.T) {
	f := newTriageFixture(t)
	ticket := f.seedTicket(t, "Cannot login", "Getting error 500 when trying to login")

	first, err := f.service.TriageTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	second, err := f.service.TriageTicket(context.Background(), ticket.ID)
	require.NoError(t, err)

	assert.NotEqual(t, first.TraceID, second.TraceID)
	assert.Len(t, f.suggestions.suggestions, 2)

	// the ticket points at the newest suggestion
	updated, err := f.tickets.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	latest, err := f.suggestions.GetLatestByTicket(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, latest.ID, *updated.SuggestionID)
}

func TestTriageConflictsWhenRunInProgress(t *testing.T) {
	f := newTriageFixture(t)
	lock := &stubRunLock{held: true}
	f.service.lock = lock
	ticket := f.seedTicket(t, "Cannot login", "error 500")

	_, err := f.service.TriageTicket(context.Background(), ticket.ID)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	assert.Empty(t, f.audits.actions(ticket.ID))
}

func TestTriageProceedsWhenLockErrors(t *testing.T) {
	f := newTriageFixture(t)
	f.service.lock = &stubRunLock{err: errors.New("redis unavailable")}
	ticket := f.seedTicket(t, "Cannot login", "Getting error 500 when trying to login")

	result, err := f.service.TriageTicket(context.Background(), ticket.ID)

	require.NoError(t, err)
	assert.Equal(t, triage.DecisionAutoClosed, result.Decision)
}

func TestTriageReleasesLockAfterRun(t *testing.T) {
	f := newTriageFixture(t)
	lock := &stubRunLock{}
	f.service.lock = lock
	ticket := f.seedTicket(t, "Cannot login", "error 500")

	_, err := f.service.TriageTicket(context.Background(), ticket.ID)

	require.NoError(t, err)
	assert.True(t, lock.released)
}

func TestTriagePublishesTriagedEvent(t *testing.T) {
	f := newTriageFixture(t)
	var got events.Event
	f.dispatcher.Subscribe(events.EventTicketTriaged, func(_ context.Context, event events.Event) error {
		got = event
		return nil
	})
	ticket := f.seedTicket(t, "Cannot login", "Getting error 500 when trying to login")

	result, err := f.service.TriageTicket(context.Background(), ticket.ID)
	require.NoError(t, err)

	assert.Equal(t, events.EventTicketTriaged, got.Type)
	assert.Equal(t, ticket.ID, got.TicketID)
	payload, ok := got.Payload.(events.TicketTriagedPayload)
	require.True(t, ok)
	assert.Equal(t, result.TraceID, payload.TraceID)
	assert.Equal(t, string(triage.DecisionAutoClosed), payload.Decision)
}

func TestGetSuggestionNotFound(t *testing.T) {
	f := newTriageFixture(t)

	_, err := f.service.GetSuggestion(context.Background(), "no-such-ticket")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestPreviewTruncatesLongBodies(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, preview(short, 100))

	long := ""
	for i := 0; i < 30; i++ {
		long += "abcde"
	}
	got := preview(long, 100)
	assert.Len(t, got, 103)
	assert.Equal(t, "...", got[100:])
}
