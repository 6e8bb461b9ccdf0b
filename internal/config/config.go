package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gitlab.com/tozd/go/errors"
)

const appDirName = "launcher"

// Config holds application configuration
type Config struct {
	ShortcutsFile    string            `toml:"shortcuts_file"`
	SettingsFile     string            `toml:"settings_file"`
	TemplateFile     string            `toml:"template_file"` // empty: bundled template
	IconsDir         string            `toml:"icons_dir"`
	LogFile          string            `toml:"log_file"`
	BackupDir        string            `toml:"backup_dir"` // "off" disables backups
	LogLevel         string            `toml:"log_level"`
	Theme            string            `toml:"theme"`
	SearchMode       string            `toml:"search_mode"`
	ExportDateFormat string            `toml:"export_date_format"` // strftime
	ClipboardCommand string            `toml:"clipboard_command"`  // for {{clipboard}} in args
	WeekStart        string            `toml:"week_start"`         // for {{weekday(n)}} in args
	Settings         map[string]string `toml:"settings"`

	// Session settings (not persisted to TOML, overrides persisted settings)
	sessionSettings map[string]string
	path            string
}

// Load loads the config file from the standard location
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return defaultConfig(""), nil // Return default if can't find config dir
	}

	return LoadFromFile(configPath)
}

// LoadFromFile loads config from a specific file
func LoadFromFile(filePath string) (*Config, error) {
	config := defaultConfig(filepath.Dir(filePath))
	config.path = filePath

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, errors.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, errors.Errorf("failed to parse config file: %w", err)
	}

	// Keys set to "" in the file fall back to defaults again
	config.applyDefaults(filepath.Dir(filePath))
	return config, nil
}

// GetConfigDir returns the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", appDirName), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultShortcutsFile returns the standard user tree file location
func DefaultShortcutsFile() string {
	dir, err := GetConfigDir()
	if err != nil {
		return "shortcuts.json"
	}
	return filepath.Join(dir, "shortcuts.json")
}

// defaultConfig returns the default configuration rooted at dir
func defaultConfig(dir string) *Config {
	c := &Config{}
	c.applyDefaults(dir)
	return c
}

func (c *Config) applyDefaults(dir string) {
	if dir == "" {
		dir = "."
		if d, err := GetConfigDir(); err == nil {
			dir = d
		}
	}
	if c.ShortcutsFile == "" {
		c.ShortcutsFile = filepath.Join(dir, "shortcuts.json")
	}
	if c.SettingsFile == "" {
		c.SettingsFile = filepath.Join(dir, "settings.json")
	}
	if c.IconsDir == "" {
		c.IconsDir = filepath.Join(dir, "icons")
	}
	if c.BackupDir == "" {
		c.BackupDir = filepath.Join(dir, "backups")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dir, "launcher.log")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Theme == "" {
		c.Theme = "cga"
	}
	if c.SearchMode == "" {
		c.SearchMode = "substring"
	}
	if c.ExportDateFormat == "" {
		c.ExportDateFormat = "%Y-%m-%d %H:%M"
	}
	if c.WeekStart == "" {
		c.WeekStart = "monday"
	}
	if c.Settings == nil {
		c.Settings = make(map[string]string)
	}
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
}

// BackupsEnabled reports whether saved trees are copied to BackupDir
func (c *Config) BackupsEnabled() bool {
	return c.BackupDir != "off"
}

// WeekStartDay returns WeekStart as a day number, 0 = Sunday. Unknown names
// mean Monday.
func (c *Config) WeekStartDay() int {
	switch strings.ToLower(c.WeekStart) {
	case "sunday", "sun", "0":
		return 0
	case "saturday", "sat", "6":
		return 6
	default:
		return 1
	}
}

// EnsureDirs creates the directories of the configured files
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{filepath.Dir(c.ShortcutsFile), filepath.Dir(c.LogFile), c.IconsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Set sets a session configuration value
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = make(map[string]string)
	}
	c.sessionSettings[key] = value
}

// Get retrieves a configuration value, checking session settings first (which override persisted settings)
// Returns empty string if not found in either source
func (c *Config) Get(key string) string {
	if val, ok := c.sessionSettings[key]; ok {
		return val
	}
	if val, ok := c.Settings[key]; ok {
		return val
	}
	return ""
}

// GetAll returns all configuration values (both persisted and session)
// Session settings override persisted settings with the same key
func (c *Config) GetAll() map[string]string {
	result := make(map[string]string)
	for k, v := range c.Settings {
		result[k] = v
	}
	for k, v := range c.sessionSettings {
		result[k] = v
	}
	return result
}

// Save persists the configuration to the TOML file it was loaded from
// Note: This only persists the Settings map, not session settings
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		var err error
		if configPath, err = GetConfigPath(); err != nil {
			return errors.Errorf("failed to get config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return errors.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return errors.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.Errorf("failed to write config file: %w", err)
	}

	return nil
}
