package theme

import (
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
	"gitlab.com/tozd/go/errors"
)

// ErrThemeNotFound is returned when no theme file exists for a name
var ErrThemeNotFound = errors.Base("theme file not found")

// ThemeConfig represents the raw TOML theme configuration. Colors accept
// palette names ("light_cyan"), hex or rgb() values.
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

// Dirs returns the search paths for theme files
func Dirs() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "launcher", "themes"),
			filepath.Join(home, ".local", "share", "launcher", "themes"),
		)
	}
	return paths
}

func findThemeFile(themeName string, dirs []string) (string, error) {
	filename := themeName + ".toml"
	for _, dir := range dirs {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.Errorf("%s: %w", filename, ErrThemeNotFound)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, errors.Errorf("failed to parse theme file: %w", err)
	}

	return configToTheme(config), nil
}

// LoadTheme loads a theme by name from the given directories
func LoadTheme(themeName string, dirs []string) (*Theme, error) {
	filePath, err := findThemeFile(themeName, dirs)
	if err != nil {
		return nil, err
	}
	return LoadThemeFromFile(filePath)
}

// configToTheme overlays the configured colors on the classic theme
func configToTheme(config ThemeConfig) *Theme {
	t := Classic()
	c := &t.Colors
	slots := map[string]*tcell.Color{
		"background":        &c.Background,
		"header_text":       &c.HeaderText,
		"header_background": &c.HeaderBackground,
		"breadcrumb":        &c.Breadcrumb,
		"item_text":         &c.ItemText,
		"item_background":   &c.ItemBackground,
		"item_selected":     &c.ItemSelected,
		"folder_icon":       &c.FolderIcon,
		"shortcut_icon":     &c.ShortcutIcon,
		"broken_shortcut":   &c.BrokenShortcut,
		"result_path":       &c.ResultPath,
		"search_label":      &c.SearchLabel,
		"search_text":       &c.SearchText,
		"command_prompt":    &c.CommandPrompt,
		"command_text":      &c.CommandText,
		"help_border":       &c.HelpBorder,
		"help_title":        &c.HelpTitle,
		"help_content":      &c.HelpContent,
		"status_message":    &c.StatusMessage,
		"status_error":      &c.StatusError,
	}
	for key, value := range config.Colors {
		if slot, ok := slots[key]; ok && value != "" {
			*slot = ParseColorString(value)
		}
	}

	if config.Name != "" {
		t.Name = config.Name
	}
	return t
}

// LoadThemeOrDefault loads a theme by name, falling back to the classic
// CGA theme when it cannot be found.
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "", "cga":
		return Classic()
	case "default":
		return Default()
	}

	theme, err := LoadTheme(themeName, Dirs())
	if err != nil {
		return Classic()
	}
	return theme
}
