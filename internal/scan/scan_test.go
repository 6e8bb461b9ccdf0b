package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFolderCollectsExecutables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "games")
	touch(t, filepath.Join(dir, "doom_2.exe"))
	touch(t, filepath.Join(dir, "sub", "quake-launcher.exe"))
	touch(t, filepath.Join(dir, "sub", "unins000-uninstall.exe"))
	touch(t, filepath.Join(dir, "CrashReporter.exe"))
	touch(t, filepath.Join(dir, "readme.txt"))

	res, err := Folder(dir, Options{})
	require.NoError(t, err)

	assert.Equal(t, "games Apps", res.Name)
	assert.Equal(t, "G", res.Folder.Icon)
	assert.Equal(t, []string{"Doom 2", "Quake Launcher"}, res.Folder.Names())

	scItem, _ := res.Folder.Get("Quake Launcher")
	sc, ok := scItem.(*model.Shortcut)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "sub", "quake-launcher.exe"), sc.Target)
	assert.Equal(t, "Q", sc.Icon)
	assert.Equal(t, "", sc.Args)
}

func TestFolderDocs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "manuals")
	touch(t, filepath.Join(dir, "user_guide.txt"))

	res, err := Folder(dir, Options{Ext: "txt"})
	require.NoError(t, err)
	assert.Equal(t, "manuals Docs", res.Name)
	assert.True(t, res.Folder.Has("User Guide"))
}

func TestFolderNoMatches(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "update.exe"))

	_, err := Folder(dir, Options{})
	assert.True(t, errors.Is(err, ErrNoMatches))
}

func TestFolderMissingDirectory(t *testing.T) {
	_, err := Folder(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.True(t, errors.Is(err, ErrNotDirectory))
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"doom_2-launcher", "Doom 2 Launcher"},
		{"SETUP", "Setup"},
		{"already Nice", "Already Nice"},
		{"_edge_", "Edge"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanName(tt.in))
		})
	}
}
