package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/timeaxis/timeaxis/internal/models"
)

// Setting keys. Values are JSON-serialized records.
const (
	keyLanguage       = "language"
	keySettings       = "settings"
	keyActiveProvider = "active_provider"
)

// ErrSettingNotFound is returned when a key has never been written.
var ErrSettingNotFound = errors.New("setting not found")

// SettingsRepository is the persisted key-value settings store.
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// get unmarshals the value for key into v.
func (r *SettingsRepository) get(ctx context.Context, key string, v any) error {
	var valueJSON string
	err := r.db.QueryRowContext(ctx, `
		SELECT value_json FROM kv_settings WHERE key = ?
	`, key).Scan(&valueJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSettingNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(valueJSON), v); err != nil {
		return fmt.Errorf("failed to decode setting %s: %w", key, err)
	}
	return nil
}

// set upserts the JSON-serialized value for key.
func (r *SettingsRepository) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO kv_settings (key, value_json, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value_json = excluded.value_json, updated_at = excluded.updated_at
	`, key, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// Language returns the persisted UI language, defaulting to English.
func (r *SettingsRepository) Language(ctx context.Context) (string, error) {
	var lang string
	err := r.get(ctx, keyLanguage, &lang)
	if errors.Is(err, ErrSettingNotFound) {
		return "en", nil
	}
	if err != nil {
		return "", err
	}
	if lang != "en" && lang != "zh" {
		return "en", nil
	}
	return lang, nil
}

// SetLanguage persists the UI language.
func (r *SettingsRepository) SetLanguage(ctx context.Context, lang string) error {
	if lang != "en" && lang != "zh" {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return r.set(ctx, keyLanguage, lang)
}

// Settings returns the persisted display settings, defaulting when unset.
func (r *SettingsRepository) Settings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	err := r.get(ctx, keySettings, &s)
	if errors.Is(err, ErrSettingNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

// SetSettings persists the display settings.
func (r *SettingsRepository) SetSettings(ctx context.Context, s models.Settings) error {
	return r.set(ctx, keySettings, s)
}

// ActiveProviderID returns the selected provider id, or "" when unset.
func (r *SettingsRepository) ActiveProviderID(ctx context.Context) (string, error) {
	var id string
	err := r.get(ctx, keyActiveProvider, &id)
	if errors.Is(err, ErrSettingNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// SetActiveProviderID persists the selected provider id.
func (r *SettingsRepository) SetActiveProviderID(ctx context.Context, id string) error {
	return r.set(ctx, keyActiveProvider, id)
}
