package dto

import (
	"time"

	"github.com/supportstack/helpdesk/internal/domain"
)

// ArticleRequest payload for creating or updating a knowledge-base article.
type ArticleRequest struct {
	Title  string               `json:"title"`
	Body   string               `json:"body"`
	Tags   []string             `json:"tags"`
	Status domain.ArticleStatus `json:"status,omitempty"`
}

// ArticleResponse serializes an article.
type ArticleResponse struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Body      string               `json:"body"`
	Tags      []string             `json:"tags"`
	Status    domain.ArticleStatus `json:"status"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// SettingsRequest payload for updating triage configuration.
type SettingsRequest struct {
	AutoCloseEnabled    bool    `json:"auto_close_enabled"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	SLAHours            int     `json:"sla_hours"`
}

// SettingsResponse serializes the singleton configuration.
type SettingsResponse struct {
	AutoCloseEnabled    bool    `json:"auto_close_enabled"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	SLAHours            int     `json:"sla_hours"`
}
