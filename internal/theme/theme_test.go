package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestParseColorString(t *testing.T) {
	tests := []struct {
		input    string
		expected tcell.Color
	}{
		{"light_cyan", tcell.NewRGBColor(0x55, 0xff, 0xff)},
		{"YELLOW", tcell.NewRGBColor(0xff, 0xff, 0x55)},
		{"#0000AA", tcell.NewRGBColor(0, 0, 0xaa)},
		{"#f00", tcell.NewRGBColor(0xff, 0, 0)},
		{"rgb(170, 85, 0)", tcell.NewRGBColor(170, 85, 0)},
		{"rgb(1,2)", tcell.ColorDefault},
		{"#12", tcell.ColorDefault},
		{"chartreuse", tcell.ColorDefault},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseColorString(tt.input))
		})
	}
}

func TestPaletteHasSixteenColors(t *testing.T) {
	assert.Len(t, Palette, 16)
	for name := range Palette {
		assert.NotEqual(t, tcell.ColorDefault, CGA(name), name)
	}
}

func TestLoadThemeOverlaysClassic(t *testing.T) {
	dir := t.TempDir()
	content := `
name = "amber"

[colors]
item_text = "#FFAA00"
folder_icon = "brown"
no_such_slot = "white"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "amber.toml"), []byte(content), 0o644))

	th, err := LoadTheme("amber", []string{filepath.Join(dir, "missing"), dir})
	require.NoError(t, err)

	assert.Equal(t, "amber", th.Name)
	assert.Equal(t, tcell.NewRGBColor(0xff, 0xaa, 0), th.Colors.ItemText)
	assert.Equal(t, CGA("brown"), th.Colors.FolderIcon)
	assert.Equal(t, Classic().Colors.Background, th.Colors.Background)
}

func TestLoadThemeMissing(t *testing.T) {
	_, err := LoadTheme("nope", []string{t.TempDir()})
	assert.True(t, errors.Is(err, ErrThemeNotFound))
}

func TestLoadThemeOrDefault(t *testing.T) {
	assert.Equal(t, "cga", LoadThemeOrDefault("").Name)
	assert.Equal(t, "default", LoadThemeOrDefault("default").Name)
	assert.Equal(t, "cga", LoadThemeOrDefault("does-not-exist-anywhere").Name)
}
