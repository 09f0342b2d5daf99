package service

import (
	"context"
	"sync"

	"github.com/localpass/passgen/internal/model"
)

// Listener is told about every settings change that produced a new password.
type Listener func(profile string, resp model.SettingsResponse)

// SettingsService runs the settings pipeline for stored profiles:
// change -> validate -> persist -> regenerate -> notify.
type SettingsService struct {
	prefs     *PreferencesService
	generator *GeneratorService

	mu        sync.RWMutex
	listeners []Listener
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(prefs *PreferencesService, generator *GeneratorService) *SettingsService {
	return &SettingsService{prefs: prefs, generator: generator}
}

// Subscribe registers l to be called after each successful change.
func (s *SettingsService) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Current returns the settings stored for profile with fallbacks applied.
func (s *SettingsService) Current(ctx context.Context, profile string) model.Settings {
	return ApplyFallbacks(s.prefs.Load(ctx, profile))
}

// Update overlays req onto the stored settings and runs the pipeline.
func (s *SettingsService) Update(ctx context.Context, profile string, req model.GenerateRequest) (model.SettingsResponse, error) {
	return s.OnSettingChanged(ctx, profile, req.Apply(s.Current(ctx, profile)))
}

// OnSettingChanged validates next, persists it, generates a password from it
// and notifies listeners. Nothing is persisted when validation fails.
func (s *SettingsService) OnSettingChanged(ctx context.Context, profile string, next model.Settings) (model.SettingsResponse, error) {
	next = model.Normalize(ApplyFallbacks(next))
	if err := validateSettings(next); err != nil {
		return model.SettingsResponse{}, err
	}

	s.prefs.Save(ctx, profile, next)

	result, err := s.generator.GenerateWithSettings(next)
	if err != nil {
		return model.SettingsResponse{}, err
	}

	resp := model.SettingsResponse{Settings: next, Result: result}
	s.notify(profile, resp)
	return resp, nil
}

// Regenerate produces a new password from the stored settings.
func (s *SettingsService) Regenerate(ctx context.Context, profile string) (model.SettingsResponse, error) {
	settings := s.Current(ctx, profile)

	result, err := s.generator.GenerateWithSettings(settings)
	if err != nil {
		return model.SettingsResponse{}, err
	}
	return model.SettingsResponse{Settings: settings, Result: result}, nil
}

// Reset restores the default settings for profile.
func (s *SettingsService) Reset(ctx context.Context, profile string) (model.SettingsResponse, error) {
	return s.OnSettingChanged(ctx, profile, model.DefaultSettings())
}

func (s *SettingsService) notify(profile string, resp model.SettingsResponse) {
	s.mu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(profile, resp)
	}
}

// ApplyFallbacks repairs settings that the generator would reject outright:
// an empty symbol set becomes the default set, and when every class is
// excluded all of them are included again.
func ApplyFallbacks(settings model.Settings) model.Settings {
	if settings.AllowedSymbols == "" {
		settings.AllowedSymbols = model.DefaultAllowedSymbols
	}
	if !settings.AnyIncluded() {
		settings.IncludeLowercase = true
		settings.IncludeUppercase = true
		settings.IncludeDigits = true
		settings.IncludeSymbols = true
	}
	return settings
}
