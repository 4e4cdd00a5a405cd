package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportstack/helpdesk/internal/api/dto"
	"github.com/supportstack/helpdesk/internal/service"
)

// AgentHandler exposes triage operations to support agents.
type AgentHandler struct {
	triage *service.TriageService
}

// NewAgentHandler constructs handler.
func NewAgentHandler(triageService *service.TriageService) *AgentHandler {
	return &AgentHandler{triage: triageService}
}

// GetSuggestion GET /agent/suggestion/:ticketId.
func (h *AgentHandler) GetSuggestion(c *fiber.Ctx) error {
	suggestion, err := h.triage.GetSuggestion(c.Context(), c.Params("ticketId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SuggestionResponse{
		ID:                suggestion.ID,
		TicketID:          suggestion.TicketID,
		PredictedCategory: suggestion.PredictedCategory,
		ArticleIDs:        suggestion.ArticleIDs,
		DraftReply:        suggestion.DraftReply,
		Confidence:        suggestion.Confidence,
		AutoClosed:        suggestion.AutoClosed,
		Model:             suggestion.Model,
		CreatedAt:         suggestion.CreatedAt,
	}})
}

// TriggerTriage POST /agent/triage/:ticketId. Runs the pipeline
// synchronously so agents can re-triage a ticket and see the outcome.
func (h *AgentHandler) TriggerTriage(c *fiber.Ctx) error {
	result, err := h.triage.TriageTicket(c.Context(), c.Params("ticketId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TriageResponse{
		Decision: string(result.Decision),
		TraceID:  result.TraceID,
	}})
}
