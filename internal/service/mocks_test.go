package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/supportstack/helpdesk/internal/domain"
	"github.com/supportstack/helpdesk/internal/repository"
)

// In-memory fakes backing service tests. Each mirrors the Postgres
// implementation's contract, including pgx.ErrNoRows on missing rows and
// server-side id assignment on insert.

type memTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket

	createErr error
	getErr    error
	updateErr error
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: map[string]domain.Ticket{}}
}

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := ticket
	return &copied, nil
}

func (r *memTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && ticket.Category != *filter.Category {
			continue
		}
		if filter.CreatedBy != nil && ticket.CreatedBy != *filter.CreatedBy {
			continue
		}
		out = append(out, ticket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memTicketRepo) ListStuck(_ context.Context, olderThan time.Time, limit int) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Ticket{}
	for _, ticket := range r.tickets {
		if ticket.Status == domain.TicketStatusOpen && ticket.SuggestionID == nil && ticket.CreatedAt.Before(olderThan) {
			out = append(out, ticket)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type memSuggestionRepo struct {
	mu          sync.Mutex
	suggestions []domain.Suggestion

	createErr error
}

func (r *memSuggestionRepo) Create(_ context.Context, suggestion *domain.Suggestion) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	suggestion.ID = uuid.NewString()
	suggestion.CreatedAt = time.Now()
	r.suggestions = append(r.suggestions, *suggestion)
	return nil
}

func (r *memSuggestionRepo) GetLatestByTicket(_ context.Context, ticketID string) (*domain.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.suggestions) - 1; i >= 0; i-- {
		if r.suggestions[i].TicketID == ticketID {
			copied := r.suggestions[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditLogEntry

	failOn domain.AuditAction
	err    error
}

func (r *memAuditRepo) Append(_ context.Context, entry *domain.AuditLogEntry) error {
	if r.failOn != "" && entry.Action == r.failOn {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uuid.NewString()
	entry.Ts = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memAuditRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.AuditLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.AuditLogEntry{}
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *memAuditRepo) actions(ticketID string) []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.AuditAction{}
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			out = append(out, entry.Action)
		}
	}
	return out
}

type memSettingsRepo struct {
	mu       sync.Mutex
	settings domain.Settings
	getCount int

	getErr error
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{settings: domain.DefaultSettings()}
}

func (r *memSettingsRepo) Get(_ context.Context) (domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCount++
	if r.getErr != nil {
		return domain.Settings{}, r.getErr
	}
	return r.settings, nil
}

func (r *memSettingsRepo) Update(_ context.Context, settings domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
	return nil
}

type stubRetriever struct {
	articles []domain.Article
	err      error
}

func (s *stubRetriever) Retrieve(context.Context, string) ([]domain.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.articles, nil
}

type stubRunLock struct {
	held     bool
	err      error
	released bool
}

func (s *stubRunLock) TryLock(context.Context, string) (func(), bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	if s.held {
		return nil, false, nil
	}
	return func() { s.released = true }, true, nil
}

type memArticleRepo struct {
	mu       sync.Mutex
	articles map[string]domain.Article

	hasIndex bool
	probeErr error
}

func newMemArticleRepo(hasIndex bool) *memArticleRepo {
	return &memArticleRepo{articles: map[string]domain.Article{}, hasIndex: hasIndex}
}

func (r *memArticleRepo) Create(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	article.ID = uuid.NewString()
	article.UpdatedAt = time.Now()
	r.articles[article.ID] = *article
	return nil
}

func (r *memArticleRepo) Update(_ context.Context, article *domain.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[article.ID]; !ok {
		return pgx.ErrNoRows
	}
	article.UpdatedAt = time.Now()
	r.articles[article.ID] = *article
	return nil
}

func (r *memArticleRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.articles, id)
	return nil
}

func (r *memArticleRepo) GetByID(_ context.Context, id string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	article, ok := r.articles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := article
	return &copied, nil
}

func (r *memArticleRepo) List(_ context.Context, status *domain.ArticleStatus, query string) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Article{}
	for _, article := range r.articles {
		if status != nil && article.Status != *status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(article.Title+" "+article.Body), strings.ToLower(query)) {
			continue
		}
		out = append(out, article)
	}
	return out, nil
}

func (r *memArticleRepo) SearchRanked(_ context.Context, query string, limit int) ([]domain.Article, error) {
	return r.search(strings.Fields(query), limit)
}

func (r *memArticleRepo) SearchSubstring(_ context.Context, patterns []string, limit int) ([]domain.Article, error) {
	return r.search(patterns, limit)
}

func (r *memArticleRepo) search(terms []string, limit int) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Article{}
	for _, article := range r.articles {
		if article.Status != domain.ArticleStatusPublished {
			continue
		}
		haystack := strings.ToLower(article.Title + " " + article.Body + " " + strings.Join(article.Tags, " "))
		for _, term := range terms {
			if strings.Contains(haystack, strings.ToLower(term)) {
				out = append(out, article)
				break
			}
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *memArticleRepo) HasSearchIndex(context.Context) (bool, error) {
	if r.probeErr != nil {
		return false, r.probeErr
	}
	return r.hasIndex, nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type recordingQueue struct {
	mu        sync.Mutex
	enqueued  []string
	returnErr error
}

func (q *recordingQueue) Enqueue(_ context.Context, ticketID string) error {
	if q.returnErr != nil {
		return q.returnErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enqueued = append(q.enqueued, ticketID)
	return nil
}
