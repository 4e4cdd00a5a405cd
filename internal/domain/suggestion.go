package domain

import "time"

// ModelInfo records which engine produced a suggestion.
type ModelInfo struct {
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	PromptVersion string `json:"prompt_version"`
	LatencyMs     int64  `json:"latency_ms"`
}

// Suggestion is the persisted output of one triage run. Suggestions are
// immutable; a re-run creates a new record and repoints the ticket, older
// suggestions are kept for history.
type Suggestion struct {
	ID                string
	TicketID          string
	PredictedCategory TicketCategory
	ArticleIDs        []string
	DraftReply        string
	Confidence        float64
	AutoClosed        bool
	Model             ModelInfo
	CreatedAt         time.Time
}
