package triage

import (
	"time"

	"github.com/supportstack/helpdesk/internal/domain"
)

const (
	modelProvider = "stub"
	modelName     = "deterministic-keyword-matcher"
	promptVersion = "1.0"
)

// ModelMetadata describes the engine that produced a suggestion.
func ModelMetadata(latency time.Duration) domain.ModelInfo {
	return domain.ModelInfo{
		Provider:      modelProvider,
		Model:         modelName,
		PromptVersion: promptVersion,
		LatencyMs:     latency.Milliseconds(),
	}
}
