package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/localpass/passgen/internal/model"
)

// DefaultProfile names the preferences used when no profile is given.
const DefaultProfile = "default"

var (
	ErrPreferencesNotFound  = errors.New("preferences not found")
	ErrMalformedPreferences = errors.New("malformed preferences document")
)

// PreferencesRepository loads and stores generator settings per profile.
type PreferencesRepository interface {
	Load(ctx context.Context, profile string) (model.Settings, error)
	Save(ctx context.Context, profile string, settings model.Settings) error
}

// decodeSettings parses a settings document. Fields absent from the document
// keep their default values.
func decodeSettings(data []byte) (model.Settings, error) {
	settings := model.DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return model.DefaultSettings(), fmt.Errorf("%w: %v", ErrMalformedPreferences, err)
	}
	return model.Normalize(settings), nil
}
