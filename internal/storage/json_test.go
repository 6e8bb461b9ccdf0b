package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

func newTestStore(t *testing.T) (*JSONStore, *[]error) {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "launcher", "shortcuts.json"), zerolog.Nop())
	var fatal []error
	store.Fatal = func(err error) {
		fatal = append(fatal, err)
	}
	return store, &fatal
}

func TestLoadMissingFileUsesAndPersistsDefaults(t *testing.T) {
	store, fatal := newTestStore(t)
	require.False(t, store.FileExists())

	root := store.Load()

	assert.Empty(t, *fatal)
	assert.Equal(t, []string{"Games", "Scripts", "Tools"}, root.Names())
	games, ok := root.Subfolder("Games")
	require.True(t, ok)
	assert.Equal(t, []string{"Action", "Puzzle"}, games.Names())

	assert.True(t, store.FileExists(), "defaults should be persisted on first run")
	reloaded := store.Load()
	assert.Equal(t, root, reloaded)
}

func TestLoadCorruptFileFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", "{ this is not json"},
		{"wrong shape", `{"Games": "folder"}`},
		{"null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, fatal := newTestStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(store.FilePath), 0o755))
			require.NoError(t, os.WriteFile(store.FilePath, []byte(tt.content), 0o644))

			root := store.Load()

			assert.Empty(t, *fatal)
			assert.True(t, root.Has("Tools"))
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	store, _ := newTestStore(t)
	root := store.Load()

	tools, ok := root.Subfolder("Tools")
	require.True(t, ok)
	tools.Add(model.NewShortcut("Editor", "", "nano", ""))
	require.NoError(t, store.Save(root))

	reloaded := store.Load()
	tools, ok = reloaded.Subfolder("Tools")
	require.True(t, ok)
	editor, ok := tools.Get("Editor")
	require.True(t, ok)
	assert.Equal(t, "nano", editor.(*model.Shortcut).Target)
	assert.Equal(t, "E", editor.Common().Icon)
}

func TestSaveFailureKeepsTree(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := NewJSONStore(filepath.Join(blocker, "shortcuts.json"), zerolog.Nop())
	root := model.NewRoot()
	root.Add(model.NewFolder("Tools", "T"))

	err := store.Save(root)
	assert.Error(t, err)
	assert.True(t, root.Has("Tools"))
}

func TestLoadDefaultsMissingTemplateIsFatal(t *testing.T) {
	store, fatal := newTestStore(t)
	store.TemplatePath = filepath.Join(t.TempDir(), "missing.json")

	root := store.Load()

	require.Len(t, *fatal, 1)
	assert.True(t, errors.Is((*fatal)[0], ErrTemplateMissing))
	assert.Equal(t, 0, root.Len())
}

func TestLoadDefaultsEmptyTemplateIsFatal(t *testing.T) {
	store, fatal := newTestStore(t)
	store.TemplatePath = filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(store.TemplatePath, []byte("  \n"), 0o644))

	store.LoadDefaults()

	require.Len(t, *fatal, 1)
	assert.True(t, errors.Is((*fatal)[0], ErrTemplateMissing))
}

func TestLoadDefaultsTemplateWithoutItemsIsFatal(t *testing.T) {
	store, fatal := newTestStore(t)
	store.TemplatePath = filepath.Join(t.TempDir(), "template.json")
	require.NoError(t, os.WriteFile(store.TemplatePath, []byte("{}\n"), 0o644))

	root := store.LoadDefaults()

	require.Len(t, *fatal, 1)
	assert.True(t, errors.Is((*fatal)[0], ErrTemplateMissing))
	assert.Equal(t, 0, root.Len())
	_, err := os.Stat(store.FilePath)
	assert.True(t, os.IsNotExist(err), "nothing is persisted from a broken template")
}

func TestLoadDefaultsCustomTemplate(t *testing.T) {
	store, fatal := newTestStore(t)
	store.TemplatePath = filepath.Join(t.TempDir(), "template.json")
	require.NoError(t, os.WriteFile(store.TemplatePath,
		[]byte(`{"Apps": {"type": "folder", "icon": "A", "items": {}}}`), 0o644))

	root := store.LoadDefaults()

	assert.Empty(t, *fatal)
	assert.Equal(t, []string{"Apps"}, root.Names())
}

func TestSettingsPassThrough(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"), zerolog.Nop())
	assert.Equal(t, map[string]any{}, store.Load())

	settings := map[string]any{
		"columns": float64(8),
		"theme":   "cga",
		"nested":  map[string]any{"anything": true},
	}
	require.NoError(t, store.Save(settings))
	assert.Equal(t, settings, store.Load())
}

func TestSettingsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("[broken"), 0o644))

	store := NewSettingsStore(path, zerolog.Nop())
	assert.Equal(t, map[string]any{}, store.Load())
}
