package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supportstack/helpdesk/internal/domain"
)

func TestClassifyNoMatches(t *testing.T) {
	ticket := &domain.Ticket{Title: "General question", Description: "How do I update my profile?"}

	got := Classify(ticket)

	assert.Equal(t, domain.CategoryOther, got.PredictedCategory)
	assert.Equal(t, 0.3, got.Confidence)
}

func TestClassifySingleKeyword(t *testing.T) {
	ticket := &domain.Ticket{Title: "Question about my invoice", Description: "Where can I find it?"}

	got := Classify(ticket)

	assert.Equal(t, domain.CategoryBilling, got.PredictedCategory)
	assert.Equal(t, 0.5, got.Confidence)
}

func TestClassifyCountsDistinctKeywordsOnce(t *testing.T) {
	// "refund" appears three times but is one matched keyword.
	ticket := &domain.Ticket{
		Title:       "refund refund refund",
		Description: "I want a refund",
	}

	got := Classify(ticket)

	assert.Equal(t, domain.CategoryBilling, got.PredictedCategory)
	assert.Equal(t, 0.5, got.Confidence)
}

func TestClassifyMultipleKeywords(t *testing.T) {
	ticket := &domain.Ticket{
		Title:       "Cannot login",
		Description: "Getting error 500 when trying to login",
	}

	got := Classify(ticket)

	// matches: error, login, 500
	assert.Equal(t, domain.CategoryTech, got.PredictedCategory)
	assert.Equal(t, 0.9, got.Confidence)
}

func TestClassifyConfidenceCap(t *testing.T) {
	ticket := &domain.Ticket{
		Title:       "error bug crash login password",
		Description: "technical server 500 404",
	}

	got := Classify(ticket)

	assert.Equal(t, domain.CategoryTech, got.PredictedCategory)
	assert.Equal(t, 0.95, got.Confidence)
}

func TestClassifyCaseInsensitive(t *testing.T) {
	ticket := &domain.Ticket{Title: "REFUND Please", Description: "Wrong CHARGE on my card"}

	got := Classify(ticket)

	assert.Equal(t, domain.CategoryBilling, got.PredictedCategory)
	assert.Equal(t, 0.7, got.Confidence)
}

func TestClassifyTieGoesToEarlierCategory(t *testing.T) {
	// One billing keyword and one shipping keyword; billing is listed first.
	ticket := &domain.Ticket{Title: "refund", Description: "tracking"}

	got := Classify(ticket)

	assert.Equal(t, domain.CategoryBilling, got.PredictedCategory)
	assert.Equal(t, 0.5, got.Confidence)
}

func TestClassifyHigherCountWinsRegardlessOfOrder(t *testing.T) {
	ticket := &domain.Ticket{
		Title:       "invoice",
		Description: "package never did arrive, delivery is late",
	}

	got := Classify(ticket)

	assert.Equal(t, domain.CategoryShipping, got.PredictedCategory)
}

func TestClassifyMatchesInsideWords(t *testing.T) {
	// Substring matching: "billing" contains "bill".
	ticket := &domain.Ticket{Title: "billing question", Description: ""}

	got := Classify(ticket)

	assert.Equal(t, domain.CategoryBilling, got.PredictedCategory)
	assert.Equal(t, 0.5, got.Confidence)
}

func TestClassifyAnyTechKeywordClearsHalfConfidence(t *testing.T) {
	words := []string{"error", "bug", "crash", "login", "password", "technical", "server", "500", "404"}
	for _, word := range words {
		ticket := &domain.Ticket{Title: "Problem with " + word, Description: ""}
		got := Classify(ticket)
		assert.Equal(t, domain.CategoryTech, got.PredictedCategory, word)
		assert.GreaterOrEqual(t, got.Confidence, 0.5, word)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	ticket := &domain.Ticket{Title: "server crash", Description: "bug after login"}

	first := Classify(ticket)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(ticket))
	}
}
