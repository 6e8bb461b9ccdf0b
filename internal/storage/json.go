package storage

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

//go:embed defaults/shortcuts.json
var defaultTemplate []byte

// ErrTemplateMissing means the default template could not be read or is empty.
// This is a broken installation, not a user mistake.
var ErrTemplateMissing = errors.Base("default template missing or empty")

// JSONStore handles JSON file persistence of the launcher tree.
//
// There is no locking and no atomic replace: a concurrent writer to FilePath
// is overwritten by the next Save.
type JSONStore struct {
	FilePath string
	// TemplatePath overrides the bundled default template when set
	TemplatePath string
	// Fatal is called when the default template is unusable. It defaults
	// to logging at fatal level, which exits the process.
	Fatal func(err error)
	// Backups, when set, receives a copy of every saved tree tagged SessionID
	Backups   *BackupManager
	SessionID string
	// OnSave runs after every successful save
	OnSave func()

	log zerolog.Logger
}

// NewJSONStore creates a new JSON store for the given file path
func NewJSONStore(filePath string, logger zerolog.Logger) *JSONStore {
	s := &JSONStore{
		FilePath: filePath,
		log:      logger.With().Str("component", "store").Logger(),
	}
	s.Fatal = func(err error) {
		s.log.Fatal().Err(err).Msg("cannot load default template")
	}
	return s
}

// Load loads the tree from FilePath. A missing or unreadable file falls back
// to the default template; the caller always receives a usable tree.
func (s *JSONStore) Load() *model.Folder {
	data, err := os.ReadFile(s.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info().Str("path", s.FilePath).Msg("no config file found, using defaults")
		} else {
			s.log.Error().Err(err).Str("path", s.FilePath).Msg("error reading config")
		}
		return s.LoadDefaults()
	}

	root, err := model.ParseRoot(data)
	if err != nil {
		s.log.Error().Err(err).Str("path", s.FilePath).Msg("error loading config")
		return s.LoadDefaults()
	}

	s.log.Info().Int("items", root.Len()).Msg("loaded top-level items")
	return root
}

// LoadDefaults decodes the default template and persists it to FilePath
func (s *JSONStore) LoadDefaults() *model.Folder {
	data, err := s.ReadTemplate()
	if err != nil {
		s.Fatal(err)
		return model.NewRoot()
	}

	root, err := model.ParseRoot(data)
	if err != nil {
		s.Fatal(errors.Errorf("%w: %v", ErrTemplateMissing, err))
		return model.NewRoot()
	}
	if root.Len() == 0 {
		s.Fatal(errors.Errorf("%w: template has no items", ErrTemplateMissing))
		return model.NewRoot()
	}

	if err := s.Save(root); err != nil {
		s.log.Warn().Err(err).Msg("could not persist default template")
	}
	return root
}

// ReadTemplate returns the raw default template
func (s *JSONStore) ReadTemplate() ([]byte, error) {
	data := defaultTemplate
	if s.TemplatePath != "" {
		var err error
		data, err = os.ReadFile(s.TemplatePath)
		if err != nil {
			return nil, errors.Errorf("%w: %v", ErrTemplateMissing, err)
		}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.WithStack(ErrTemplateMissing)
	}
	return data, nil
}

// Save overwrites FilePath with the encoded tree. On failure the previous
// file content is left as the OS left it and the caller keeps its tree.
func (s *JSONStore) Save(root *model.Folder) error {
	dir := filepath.Dir(s.FilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.log.Error().Err(err).Msg("error saving config")
			return errors.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := model.MarshalRoot(root)
	if err != nil {
		s.log.Error().Err(err).Msg("error saving config")
		return err
	}

	if err := os.WriteFile(s.FilePath, data, 0o644); err != nil {
		s.log.Error().Err(err).Msg("error saving config")
		return errors.Errorf("failed to write file: %w", err)
	}

	s.log.Info().Int("items", root.Len()).Str("path", s.FilePath).Msg("saved items to config")

	// a failed backup never fails the save
	if s.Backups != nil {
		if _, err := s.Backups.CreateBackup(root, s.FilePath, s.SessionID); err != nil {
			s.log.Warn().Err(err).Msg("backup failed")
		}
	}
	if s.OnSave != nil {
		s.OnSave()
	}
	return nil
}

// FileExists checks if the tree file exists
func (s *JSONStore) FileExists() bool {
	_, err := os.Stat(s.FilePath)
	return err == nil
}
