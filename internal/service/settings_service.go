package service

import (
	"context"

	"github.com/supportstack/helpdesk/internal/domain"
	"github.com/supportstack/helpdesk/internal/repository"
	apperrors "github.com/supportstack/helpdesk/pkg/util"
)

// SettingsService reads and updates the singleton triage configuration.
type SettingsService struct {
	settings repository.SettingsRepository
}

// NewSettingsService constructs the service.
func NewSettingsService(settings repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns current settings, creating defaults on first access.
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.settings.Get(ctx)
}

// Update validates and persists new settings. The decision engine reads the
// store on every run, so updates apply to the next triage immediately.
func (s *SettingsService) Update(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	if settings.ConfidenceThreshold < 0 || settings.ConfidenceThreshold > 1 {
		return domain.Settings{}, apperrors.NewValidationError("confidence threshold must be between 0 and 1", nil)
	}
	if settings.SLAHours <= 0 {
		return domain.Settings{}, apperrors.NewValidationError("sla hours must be positive", nil)
	}
	if err := s.settings.Update(ctx, settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}
