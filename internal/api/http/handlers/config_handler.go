package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportstack/helpdesk/internal/api/dto"
	"github.com/supportstack/helpdesk/internal/domain"
	"github.com/supportstack/helpdesk/internal/service"
	apperrors "github.com/supportstack/helpdesk/pkg/util"
)

// ConfigHandler exposes the singleton triage configuration.
type ConfigHandler struct {
	settings *service.SettingsService
}

// NewConfigHandler constructs handler.
func NewConfigHandler(settingsService *service.SettingsService) *ConfigHandler {
	return &ConfigHandler{settings: settingsService}
}

// GetConfig GET /config.
func (h *ConfigHandler) GetConfig(c *fiber.Ctx) error {
	settings, err := h.settings.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": settingsResponse(settings)})
}

// UpdateConfig PUT /config.
func (h *ConfigHandler) UpdateConfig(c *fiber.Ctx) error {
	var req dto.SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	settings, err := h.settings.Update(c.Context(), domain.Settings{
		AutoCloseEnabled:    req.AutoCloseEnabled,
		ConfidenceThreshold: req.ConfidenceThreshold,
		SLAHours:            req.SLAHours,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": settingsResponse(settings)})
}

func settingsResponse(settings domain.Settings) dto.SettingsResponse {
	return dto.SettingsResponse{
		AutoCloseEnabled:    settings.AutoCloseEnabled,
		ConfidenceThreshold: settings.ConfidenceThreshold,
		SLAHours:            settings.SLAHours,
	}
}
