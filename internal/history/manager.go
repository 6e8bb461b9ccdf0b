// Package history persists command line and search input history as TOML
// files under the launcher config directory.
package history

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gitlab.com/tozd/go/errors"
)

// Manager handles loading and saving history to TOML files
type Manager struct {
	dir string
}

// HistoryFile represents the structure of a history TOML file
type HistoryFile struct {
	Entries []string `toml:"entries"`
}

// NewManager creates a history manager storing files in dir, creating it if needed
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Errorf("failed to create history directory: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the directory history files are kept in
func (m *Manager) Dir() string {
	return m.dir
}

// Load loads history entries from a TOML file. A missing or corrupt file
// yields no entries.
func (m *Manager) Load(filename string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.WithStack(err)
	}

	var histFile HistoryFile
	if err := toml.Unmarshal(data, &histFile); err != nil {
		return []string{}, nil
	}
	return histFile.Entries, nil
}

// Save saves history entries to a TOML file
func (m *Manager) Save(filename string, entries []string) error {
	data, err := toml.Marshal(HistoryFile{Entries: entries})
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(filepath.Join(m.dir, filename), data, 0o644))
}
