package service

import (
	"context"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/repository"
	"go.uber.org/zap"
)

// SettingsService owns the singleton admin settings object.
type SettingsService struct {
	settings *repository.SettingsRepository
	logger   *zap.Logger
}

func NewSettingsService(settings *repository.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{settings: settings, logger: logger}
}

// Get returns the current settings, defaults when nothing is saved.
func (s *SettingsService) Get(ctx context.Context) domain.Settings {
	return s.settings.Get(ctx)
}

// Save replaces the settings object wholesale.
func (s *SettingsService) Save(ctx context.Context, settings domain.Settings) error {
	if err := s.settings.Save(ctx, settings); err != nil {
		return err
	}
	s.logger.Info("Settings saved", zap.String("company", settings.Company.Name))
	return nil
}

// AutoBackup returns the configured backup cadence.
func (s *SettingsService) AutoBackup(ctx context.Context) string {
	return s.settings.Get(ctx).System.AutoBackup
}

// Reset restores the factory defaults.
func (s *SettingsService) Reset(ctx context.Context) (domain.Settings, error) {
	defaults, err := s.settings.Reset(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	s.logger.Info("Settings reset to defaults")
	return defaults, nil
}
