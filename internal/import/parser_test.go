package import_parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/export"
	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

func sampleTree() *model.Folder {
	root := model.NewRoot()
	games := model.NewFolder("Games", "G")
	games.Add(model.NewShortcut("Doom", "D", "doom", "-warp 1"))
	root.Add(games)
	root.Add(model.NewShortcut("Editor", "E", "nano", ""))
	return root
}

func shortcut(t *testing.T, f *model.Folder, path ...string) *model.Shortcut {
	t.Helper()
	for _, name := range path[:len(path)-1] {
		sub, ok := f.Subfolder(name)
		require.True(t, ok, "folder %s", name)
		f = sub
	}
	item, ok := f.Get(path[len(path)-1])
	require.True(t, ok, "item %s", path[len(path)-1])
	sc, ok := item.(*model.Shortcut)
	require.True(t, ok, "%s is not a shortcut", path[len(path)-1])
	return sc
}

func TestMarkdownRoundTrip(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, export.Markdown(&sb, sampleTree(), export.Options{DateFormat: "%Y"}))

	root, err := ImportFile("tree.md", sb.String(), FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, []string{"Editor", "Games"}, root.Names())
	doom := shortcut(t, root, "Games", "Doom")
	assert.Equal(t, "doom", doom.Target)
	assert.Equal(t, "-warp 1", doom.Args)
	assert.Equal(t, "D", doom.Icon)
	assert.Equal(t, "nano", shortcut(t, root, "Editor").Target)
}

func TestMarkdownPlainBulletsAreFolders(t *testing.T) {
	content := `Some notes

* Work
  * Mail -> ` + "`" + `"/opt/Mail App/mail" --offline` + "`" + `
`
	root, err := (&MarkdownParser{}).Parse(content)
	require.NoError(t, err)

	mail := shortcut(t, root, "Work", "Mail")
	assert.Equal(t, "/opt/Mail App/mail", mail.Target)
	assert.Equal(t, "--offline", mail.Args)
}

func TestIndentedText(t *testing.T) {
	content := `# my launcher
Games/
  Action
    Doom = doom -warp 1
  Quake = quake
	Heretic = heretic
Editor = nano
`
	root, err := ImportFile("list.txt", content, FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, "doom", shortcut(t, root, "Games", "Action", "Doom").Target)
	assert.Equal(t, "quake", shortcut(t, root, "Games", "Quake").Target)
	assert.Equal(t, "heretic", shortcut(t, root, "Games", "Heretic").Target, "a tab counts as two spaces")
	assert.Equal(t, "nano", shortcut(t, root, "Editor").Target)
}

func TestIndentedTextRejectsChildOfShortcut(t *testing.T) {
	_, err := (&IndentedTextParser{}).Parse("Editor = nano\n  Config = vi\n")
	assert.True(t, errors.Is(err, ErrUnderShortcut))
	assert.Contains(t, err.Error(), "line 2")
}

func TestYAMLRoundTrip(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, export.YAML(&sb, sampleTree()))

	root, err := ImportFile("tree.yml", sb.String(), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, "-warp 1", shortcut(t, root, "Games", "Doom").Args)
}

func TestJSON(t *testing.T) {
	data, err := model.MarshalRoot(sampleTree())
	require.NoError(t, err)

	root, err := ImportFile("x", string(data), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "nano", shortcut(t, root, "Editor").Target)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]ImportFormat{
		"":       FormatAuto,
		"md":     FormatMarkdown,
		"txt":    FormatIndentedText,
		"YAML":   FormatYAML,
		"json":   FormatJSON,
		"indent": "",
	} {
		got, err := ParseFormat(in)
		if want == "" {
			assert.True(t, errors.Is(err, ErrUnsupportedFormat), in)
			continue
		}
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		in, target, args string
	}{
		{"nano", "nano", ""},
		{"  doom -warp 1 ", "doom", "-warp 1"},
		{`"C:\Program Files\app.exe" /x`, `C:\Program Files\app.exe`, "/x"},
		{"'unterminated arg", "'unterminated", "arg"},
		{"", "", ""},
	}
	for _, tt := range tests {
		target, args := splitCommand(tt.in)
		assert.Equal(t, tt.target, target, tt.in)
		assert.Equal(t, tt.args, args, tt.in)
	}
}
