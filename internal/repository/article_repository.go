package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportstack/helpdesk/internal/domain"
)

// ArticleRepository encapsulates knowledge-base persistence and both search
// strategies the retriever can select between.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	List(ctx context.Context, status *domain.ArticleStatus, query string) ([]domain.Article, error)
	SearchRanked(ctx context.Context, query string, limit int) ([]domain.Article, error)
	SearchSubstring(ctx context.Context, patterns []string, limit int) ([]domain.Article, error)
	HasSearchIndex(ctx context.Context) (bool, error)
}

type articleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository instantiates repository.
func NewArticleRepository(pool *pgxpool.Pool) ArticleRepository {
	return &articleRepository{pool: pool}
}

const articleColumns = `id, title, body, tags, status, updated_at`

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	const query = `
        INSERT INTO articles (title, body, tags, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, updated_at`
	return r.pool.QueryRow(ctx, query,
		article.Title,
		article.Body,
		article.Tags,
		article.Status,
	).Scan(&article.ID, &article.UpdatedAt)
}

func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	const query = `
        UPDATE articles SET title=$1, body=$2, tags=$3, status=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		article.Title,
		article.Body,
		article.Tags,
		article.Status,
		article.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE id=$1`, articleColumns)
	var article domain.Article
	if err := scanArticle(r.pool.QueryRow(ctx, query, id), &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context, status *domain.ArticleStatus, searchQuery string) ([]domain.Article, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if status != nil {
		args = append(args, *status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if strings.TrimSpace(searchQuery) != "" {
		args = append(args, searchQuery)
		clauses = append(clauses, fmt.Sprintf("%s @@ plainto_tsquery('english', $%d)", searchVector, len(args)))
	}
	query := fmt.Sprintf(`SELECT %s FROM articles WHERE %s ORDER BY updated_at DESC`,
		articleColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// searchVector matches the expression indexed by idx_articles_search.
const searchVector = `to_tsvector('english', title || ' ' || body || ' ' || array_to_string(tags, ' '))`

// SearchRanked runs full-text search over published articles ordered by
// relevance score descending.
func (r *articleRepository) SearchRanked(ctx context.Context, searchQuery string, limit int) ([]domain.Article, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM articles
        WHERE status=$1 AND %s @@ plainto_tsquery('english', $2)
        ORDER BY ts_rank(%s, plainto_tsquery('english', $2)) DESC
        LIMIT $3`, articleColumns, searchVector, searchVector)

	rows, err := r.pool.Query(ctx, query, domain.ArticleStatusPublished, searchQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// SearchSubstring returns published articles whose title, body, or tags
// contain any of the patterns, case-insensitive, first matches in storage
// order. Used when full-text search is unavailable.
func (r *articleRepository) SearchSubstring(ctx context.Context, patterns []string, limit int) ([]domain.Article, error) {
	if len(patterns) == 0 {
		return []domain.Article{}, nil
	}

	args := []any{domain.ArticleStatusPublished}
	ors := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		args = append(args, "%"+pattern+"%")
		n := len(args)
		ors = append(ors, fmt.Sprintf(
			"(title ILIKE $%d OR body ILIKE $%d OR array_to_string(tags, ' ') ILIKE $%d)", n, n, n))
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
        SELECT %s FROM articles
        WHERE status=$1 AND (%s)
        LIMIT $%d`, articleColumns, strings.Join(ors, " OR "), len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanArticles(rows)
}

// HasSearchIndex probes whether the full-text index is provisioned.
func (r *articleRepository) HasSearchIndex(ctx context.Context) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname='idx_articles_search')`
	var exists bool
	if err := r.pool.QueryRow(ctx, query).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanArticle(row pgx.Row, article *domain.Article) error {
	return row.Scan(
		&article.ID,
		&article.Title,
		&article.Body,
		&article.Tags,
		&article.Status,
		&article.UpdatedAt,
	)
}

func scanArticles(rows pgx.Rows) ([]domain.Article, error) {
	var result []domain.Article
	for rows.Next() {
		var article domain.Article
		if err := scanArticle(rows, &article); err != nil {
			return nil, err
		}
		result = append(result, article)
	}
	return result, rows.Err()
}
