package repository

import (
	"context"
	"errors"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/recordstore"
	"go.uber.org/zap"
)

// SettingsRepository persists the singleton settings object.
type SettingsRepository struct {
	store  *recordstore.Store
	logger *zap.Logger
}

func NewSettingsRepository(store *recordstore.Store, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{store: store, logger: logger}
}

// Get returns the saved settings, falling back to defaults when nothing has
// been saved or the record is malformed.
func (r *SettingsRepository) Get(ctx context.Context) domain.Settings {
	var settings domain.Settings
	err := r.store.Get(ctx, recordstore.KeySettings, &settings)
	switch {
	case err == nil:
		return settings
	case errors.Is(err, recordstore.ErrKeyNotFound):
	default:
		r.logger.Warn("Failed to load settings, using defaults", zap.Error(err))
	}
	return domain.DefaultSettings()
}

// Save persists the settings object.
func (r *SettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	return r.store.Set(ctx, recordstore.KeySettings, settings)
}

// Reset restores and persists the factory defaults.
func (r *SettingsRepository) Reset(ctx context.Context) (domain.Settings, error) {
	defaults := domain.DefaultSettings()
	if err := r.Save(ctx, defaults); err != nil {
		return domain.Settings{}, err
	}
	return defaults, nil
}
