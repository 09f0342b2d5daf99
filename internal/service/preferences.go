package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/localpass/passgen/internal/model"
	"github.com/localpass/passgen/internal/repository"
)

// PreferencesService loads and saves settings without ever failing:
// unreadable preferences become defaults and failed saves are logged.
type PreferencesService struct {
	repo repository.PreferencesRepository
}

// NewPreferencesService creates a new PreferencesService.
func NewPreferencesService(repo repository.PreferencesRepository) *PreferencesService {
	return &PreferencesService{repo: repo}
}

// Load returns the stored settings for profile, or the defaults.
func (s *PreferencesService) Load(ctx context.Context, profile string) model.Settings {
	settings, err := s.repo.Load(ctx, profile)
	if err != nil {
		if !errors.Is(err, repository.ErrPreferencesNotFound) {
			slog.Warn("loading preferences failed, using defaults", "profile", profile, "error", err)
		}
		return model.DefaultSettings()
	}
	return model.Normalize(settings)
}

// Save stores settings for profile.
func (s *PreferencesService) Save(ctx context.Context, profile string, settings model.Settings) {
	if err := s.repo.Save(ctx, profile, settings); err != nil {
		slog.Warn("saving preferences failed", "profile", profile, "error", err)
	}
}
