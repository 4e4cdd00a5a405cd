package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/supportstack/helpdesk/internal/domain"
	"github.com/supportstack/helpdesk/internal/repository"
)

// maxRetrievedArticles caps how many articles a triage run may cite.
const maxRetrievedArticles = 3

// KBService manages knowledge-base articles and serves retrieval for triage.
type KBService struct {
	articles repository.ArticleRepository
	logger   *zap.Logger

	probeOnce sync.Once
	ranked    bool
}

// NewKBService constructs the service.
func NewKBService(articles repository.ArticleRepository, logger *zap.Logger) *KBService {
	return &KBService{articles: articles, logger: logger}
}

// ArticleInput describes article create/update payloads.
type ArticleInput struct {
	Title  string
	Body   string
	Tags   []string
	Status domain.ArticleStatus
}

// CreateArticle adds a knowledge-base entry.
func (s *KBService) CreateArticle(ctx context.Context, input ArticleInput) (*domain.Article, error) {
	article := &domain.Article{
		Title:  strings.TrimSpace(input.Title),
		Body:   input.Body,
		Tags:   input.Tags,
		Status: input.Status,
	}
	if article.Status == "" {
		article.Status = domain.ArticleStatusDraft
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// UpdateArticle replaces an article's content and status.
func (s *KBService) UpdateArticle(ctx context.Context, id string, input ArticleInput) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	article.Title = strings.TrimSpace(input.Title)
	article.Body = input.Body
	article.Tags = input.Tags
	if input.Status != "" {
		article.Status = input.Status
	}
	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// DeleteArticle removes an article.
func (s *KBService) DeleteArticle(ctx context.Context, id string) error {
	return s.articles.Delete(ctx, id)
}

// ListArticles returns articles, optionally filtered by status and search query.
func (s *KBService) ListArticles(ctx context.Context, status *domain.ArticleStatus, query string) ([]domain.Article, error) {
	return s.articles.List(ctx, status, query)
}

// Retrieve returns up to three published articles relevant to the search
// text. The strategy is chosen once by probing the store: ranked full-text
// search when the index is provisioned, case-insensitive substring matching
// otherwise. An empty result is a normal outcome, not an error.
func (s *KBService) Retrieve(ctx context.Context, searchText string) ([]domain.Article, error) {
	s.probeOnce.Do(func() {
		ok, err := s.articles.HasSearchIndex(ctx)
		if err != nil {
			s.logger.Warn("search index probe failed; using substring fallback", zap.Error(err))
			return
		}
		s.ranked = ok
	})

	if s.ranked {
		articles, err := s.articles.SearchRanked(ctx, searchText, maxRetrievedArticles)
		if err != nil {
			return nil, err
		}
		return articles, nil
	}

	patterns := substringPatterns(searchText)
	if len(patterns) == 0 {
		return []domain.Article{}, nil
	}
	return s.articles.SearchSubstring(ctx, patterns, maxRetrievedArticles)
}

// substringPatterns tokenizes search text into words longer than 3
// characters for the fallback strategy.
func substringPatterns(text string) []string {
	fields := strings.Fields(text)
	patterns := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) > 3 {
			patterns = append(patterns, field)
		}
	}
	return patterns
}
