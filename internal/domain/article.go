package domain

import "time"

// ArticleStatus distinguishes drafts from published knowledge-base content.
// Only published articles are eligible for triage retrieval.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
)

// Article is a knowledge-base entry surfaced to users via drafted replies.
type Article struct {
	ID        string
	Title     string
	Body      string
	Tags      []string
	Status    ArticleStatus
	UpdatedAt time.Time
}
