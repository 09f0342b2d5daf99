package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/localpass/passgen/internal/model"
)

// DefaultPreferencesPath is where preferences are kept when no path is configured.
const DefaultPreferencesPath = "user_prefs.json"

// FilePreferences stores settings in a JSON file holding one document per profile.
type FilePreferences struct {
	path string
	mu   sync.Mutex
}

// NewFilePreferences creates a FilePreferences backed by the file at path.
func NewFilePreferences(path string) *FilePreferences {
	if path == "" {
		path = DefaultPreferencesPath
	}
	return &FilePreferences{path: path}
}

// Path returns the backing file path.
func (r *FilePreferences) Path() string {
	return r.path
}

// Load reads the settings stored for profile.
func (r *FilePreferences) Load(ctx context.Context, profile string) (model.Settings, error) {
	if err := ctx.Err(); err != nil {
		return model.Settings{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return model.Settings{}, err
	}

	raw, ok := doc[profile]
	if !ok {
		return model.Settings{}, ErrPreferencesNotFound
	}

	return decodeSettings(raw)
}

// Save writes settings for profile, keeping other profiles intact.
// A malformed file is replaced.
func (r *FilePreferences) Save(ctx context.Context, profile string, settings model.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if errors.Is(err, ErrMalformedPreferences) {
		doc = make(map[string]json.RawMessage)
	} else if err != nil {
		return err
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	doc[profile] = raw

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	return writeFileAtomic(r.path, data)
}

// read returns the profiles in the file; a missing file holds none.
func (r *FilePreferences) read() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPreferences, err)
	}
	return doc, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}
