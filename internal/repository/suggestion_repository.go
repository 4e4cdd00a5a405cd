package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportstack/helpdesk/internal/domain"
)

// SuggestionRepository persists triage outputs. Suggestions are immutable,
// so only insert and read operations exist.
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *domain.Suggestion) error
	GetLatestByTicket(ctx context.Context, ticketID string) (*domain.Suggestion, error)
}

type suggestionRepository struct {
	pool *pgxpool.Pool
}

// NewSuggestionRepository instantiates repository.
func NewSuggestionRepository(pool *pgxpool.Pool) SuggestionRepository {
	return &suggestionRepository{pool: pool}
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *domain.Suggestion) error {
	const query = `
        INSERT INTO suggestions (ticket_id, predicted_category, article_ids, draft_reply,
            confidence, auto_closed, model_provider, model_name, prompt_version, latency_ms)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		suggestion.TicketID,
		suggestion.PredictedCategory,
		suggestion.ArticleIDs,
		suggestion.DraftReply,
		suggestion.Confidence,
		suggestion.AutoClosed,
		suggestion.Model.Provider,
		suggestion.Model.Model,
		suggestion.Model.PromptVersion,
		suggestion.Model.LatencyMs,
	).Scan(&suggestion.ID, &suggestion.CreatedAt)
}

func (r *suggestionRepository) GetLatestByTicket(ctx context.Context, ticketID string) (*domain.Suggestion, error) {
	const query = `
        SELECT id, ticket_id, predicted_category, article_ids, draft_reply,
               confidence, auto_closed, model_provider, model_name, prompt_version, latency_ms, created_at
        FROM suggestions WHERE ticket_id=$1
        ORDER BY created_at DESC LIMIT 1`

	var suggestion domain.Suggestion
	if err := r.pool.QueryRow(ctx, query, ticketID).Scan(
		&suggestion.ID,
		&suggestion.TicketID,
		&suggestion.PredictedCategory,
		&suggestion.ArticleIDs,
		&suggestion.DraftReply,
		&suggestion.Confidence,
		&suggestion.AutoClosed,
		&suggestion.Model.Provider,
		&suggestion.Model.Model,
		&suggestion.Model.PromptVersion,
		&suggestion.Model.LatencyMs,
		&suggestion.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &suggestion, nil
}
