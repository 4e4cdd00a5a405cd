package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supportstack/helpdesk/internal/domain"
)

func TestDecideAutoClosesAboveThreshold(t *testing.T) {
	settings := domain.DefaultSettings()

	assert.Equal(t, DecisionAutoClosed, Decide(0.9, settings))
}

func TestDecideEscalatesBelowThreshold(t *testing.T) {
	settings := domain.DefaultSettings()

	assert.Equal(t, DecisionAssignedToHuman, Decide(0.5, settings))
}

func TestDecideThresholdIsInclusive(t *testing.T) {
	settings := domain.Settings{AutoCloseEnabled: true, ConfidenceThreshold: 0.9}

	assert.Equal(t, DecisionAutoClosed, Decide(0.9, settings))
}

func TestDecideEscalatesWhenAutoCloseDisabled(t *testing.T) {
	settings := domain.Settings{AutoCloseEnabled: false, ConfidenceThreshold: 0.78}

	assert.Equal(t, DecisionAssignedToHuman, Decide(0.95, settings))
}

func TestModelMetadata(t *testing.T) {
	info := ModelMetadata(1500000000) // 1.5s in nanoseconds

	assert.Equal(t, "stub", info.Provider)
	assert.Equal(t, "deterministic-keyword-matcher", info.Model)
	assert.Equal(t, "1.0", info.PromptVersion)
	assert.Equal(t, int64(1500), info.LatencyMs)
}
