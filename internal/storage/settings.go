package storage

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// SettingsStore persists the flat user settings object. The contents are
// opaque: no keys are interpreted here.
type SettingsStore struct {
	FilePath string

	log zerolog.Logger
}

// NewSettingsStore creates a settings store for the given file path
func NewSettingsStore(filePath string, logger zerolog.Logger) *SettingsStore {
	return &SettingsStore{
		FilePath: filePath,
		log:      logger.With().Str("component", "settings").Logger(),
	}
}

// Load returns the stored settings, or an empty map when the file is missing or corrupt
func (s *SettingsStore) Load() map[string]any {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error().Err(err).Msg("error loading settings")
		}
		return map[string]any{}
	}

	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil || settings == nil {
		s.log.Error().Err(err).Msg("error loading settings")
		return map[string]any{}
	}

	s.log.Info().Msg("loaded user settings")
	return settings
}

// Save overwrites the settings file
func (s *SettingsStore) Save(settings map[string]any) error {
	if settings == nil {
		settings = map[string]any{}
	}

	if dir := filepath.Dir(s.FilePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return errors.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(s.FilePath, data, 0o644); err != nil {
		s.log.Error().Err(err).Msg("error saving settings")
		return errors.Errorf("failed to write settings: %w", err)
	}

	s.log.Info().Msg("saved user settings")
	return nil
}
