package triage

import (
	"fmt"
	"strings"

	"github.com/supportstack/helpdesk/internal/domain"
)

// Draft is a templated reply plus the articles it cites, in citation order.
type Draft struct {
	Reply     string
	Citations []string
}

// DraftReply renders the reply template for a ticket and its retrieved
// articles. Fully deterministic: same ticket and articles, same output.
func DraftReply(ticket *domain.Ticket, articles []domain.Article) Draft {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi, thank you for contacting us about your issue: %q.\n\n", ticket.Title)

	if len(articles) > 0 {
		b.WriteString("Based on our knowledge base, here are some articles that might help:\n")
		for i, article := range articles {
			fmt.Fprintf(&b, "%d) %s\n", i+1, article.Title)
		}
		b.WriteString("\n")
	}

	b.WriteString("Please let us know if this information helps resolve your issue. ")
	b.WriteString("If you need further assistance, our support team will be happy to help.\n\n")
	b.WriteString("Best regards,\nSupport Team")

	citations := make([]string, 0, len(articles))
	for _, article := range articles {
		citations = append(citations, article.ID)
	}

	return Draft{Reply: b.String(), Citations: citations}
}
