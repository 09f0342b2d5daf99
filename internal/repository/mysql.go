package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/localpass/passgen/internal/model"
)

const preferencesSchema = `
	CREATE TABLE IF NOT EXISTS preferences (
		profile    VARCHAR(191) NOT NULL PRIMARY KEY,
		settings   JSON         NOT NULL,
		updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

const upsertPreferencesQuery = `
	INSERT INTO preferences (profile, settings)
	VALUES (?, ?)
	ON DUPLICATE KEY UPDATE settings = VALUES(settings)`

// MySQLPreferences stores settings as JSON documents in a MySQL table.
type MySQLPreferences struct {
	db *sql.DB
}

// NewMySQLPreferences creates a new MySQLPreferences.
func NewMySQLPreferences(db *sql.DB) *MySQLPreferences {
	return &MySQLPreferences{db: db}
}

// Migrate creates the preferences table if it does not exist.
func (r *MySQLPreferences) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, preferencesSchema)
	return err
}

// Load retrieves the settings stored for profile.
func (r *MySQLPreferences) Load(ctx context.Context, profile string) (model.Settings, error) {
	query := `SELECT settings FROM preferences WHERE profile = ?`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, profile).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Settings{}, ErrPreferencesNotFound
		}
		return model.Settings{}, err
	}

	return decodeSettings(raw)
}

// Save inserts or replaces the settings for profile.
func (r *MySQLPreferences) Save(ctx context.Context, profile string, settings model.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	_, err = r.db.ExecContext(ctx, upsertPreferencesQuery, profile, raw)
	return err
}
