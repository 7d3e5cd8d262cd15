package store

import (
	"database/sql"
	"errors"
	"strconv"
)

// Setting keys for engine tuning. The engine's thresholds are tuned
// constants, not invariants, so they live in the settings table where
// the API can adjust them.
const (
	SettingStabilizerWindow    = "stabilizer.window"
	SettingStabilizerAgreement = "stabilizer.min_agreement"
	SettingStabilizerCooldown  = "stabilizer.cooldown_ms"
	SettingThumbOffset         = "classifier.thumb_offset"
	SettingPinchDistance       = "classifier.pinch_distance"
	SettingDepthBound          = "confidence.depth_bound"
)

// TuningKeys lists every recognized tuning key.
var TuningKeys = []string{
	SettingStabilizerWindow,
	SettingStabilizerAgreement,
	SettingStabilizerCooldown,
	SettingThumbOffset,
	SettingPinchDistance,
	SettingDepthBound,
}

// SettingsRepository provides key-value settings storage.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string

	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	return value, nil
}

// Set stores a setting value, replacing any existing value for the key.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// All retrieves every stored setting.
func (r *SettingsRepository) All() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

// GetInt retrieves a setting as an integer, falling back to def when
// the key is missing or malformed.
func (r *SettingsRepository) GetInt(key string, def int) int {
	value, err := r.Get(key)
	if err != nil {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

// GetFloat retrieves a setting as a float, falling back to def when
// the key is missing or malformed.
func (r *SettingsRepository) GetFloat(key string, def float64) float64 {
	value, err := r.Get(key)
	if err != nil {
		return def
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return f
}
