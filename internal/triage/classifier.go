package triage

import (
	"math"
	"strings"

	"github.com/supportstack/helpdesk/internal/domain"
)

// Classification is the outcome of categorizing a ticket.
type Classification struct {
	PredictedCategory domain.TicketCategory `json:"predictedCategory"`
	Confidence        float64               `json:"confidence"`
}

// categoryKeywords lists keyword stems per category. Order matters: when two
// categories match the same number of keywords, the earlier one wins.
var categoryKeywords = []struct {
	category domain.TicketCategory
	words    []string
}{
	{domain.CategoryBilling, []string{"refund", "invoice", "charge", "payment", "bill", "price", "cost"}},
	{domain.CategoryTech, []string{"error", "bug", "crash", "login", "password", "technical", "server", "500", "404"}},
	{domain.CategoryShipping, []string{"delivery", "shipment", "tracking", "package", "order", "arrive", "late"}},
}

const baseConfidence = 0.3

// Classify categorizes a ticket by counting which keywords appear in its
// title and description. Confidence grows 0.2 per matched keyword, capped at
// 0.95. No matches yields "other" at the base confidence. Pure function.
func Classify(ticket *domain.Ticket) Classification {
	text := strings.ToLower(ticket.Title + " " + ticket.Description)

	predicted := domain.CategoryOther
	best := 0
	for _, entry := range categoryKeywords {
		matches := 0
		for _, word := range entry.words {
			if strings.Contains(text, word) {
				matches++
			}
		}
		if matches > best {
			best = matches
			predicted = entry.category
		}
	}

	confidence := baseConfidence
	if best > 0 {
		confidence = math.Min(baseConfidence+float64(best)*0.2, 0.95)
	}

	return Classification{
		PredictedCategory: predicted,
		Confidence:        math.Round(confidence*100) / 100,
	}
}
