package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportstack/helpdesk/internal/domain"
)

// SettingsRepository reads and writes the singleton triage configuration.
// Get creates the default row on first access so callers always see a value.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, settings domain.Settings) error
}

type settingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository instantiates repository.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{pool: pool}
}

func (r *settingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	const query = `SELECT auto_close_enabled, confidence_threshold, sla_hours FROM settings WHERE id=1`

	var settings domain.Settings
	err := r.pool.QueryRow(ctx, query).Scan(
		&settings.AutoCloseEnabled,
		&settings.ConfidenceThreshold,
		&settings.SLAHours,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		settings = domain.DefaultSettings()
		if err := r.Update(ctx, settings); err != nil {
			return domain.Settings{}, err
		}
		return settings, nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings domain.Settings) error {
	const query = `
        INSERT INTO settings (id, auto_close_enabled, confidence_threshold, sla_hours)
        VALUES (1, $1, $2, $3)
        ON CONFLICT (id) DO UPDATE
            SET auto_close_enabled=EXCLUDED.auto_close_enabled,
                confidence_threshold=EXCLUDED.confidence_threshold,
                sla_hours=EXCLUDED.sla_hours`
	_, err := r.pool.Exec(ctx, query,
		settings.AutoCloseEnabled,
		settings.ConfidenceThreshold,
		settings.SLAHours,
	)
	return err
}
