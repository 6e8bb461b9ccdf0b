package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func sampleTree() *Folder {
	root := NewRoot()
	games := NewFolder("Games", "G")
	games.Add(NewFolder("Action", "A"))
	games.Add(NewFolder("Puzzle", ""))
	games.Add(NewShortcut("Doom", "doom.bmp", "/usr/games/doom", "-warp 1 1"))
	root.Add(games)
	root.Add(NewFolder("Tools", "T"))
	root.Add(NewShortcut("Web", "🌐", "https://example.com", ""))
	return root
}

func TestDefaultIcon(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"editor", "E"},
		{"Games", "G"},
		{"über", "Ü"},
		{"1st", "1"},
		{"", "?"},
		{"\xffbad", "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultIcon(tt.name))
		})
	}
}

func TestNewItemsFallBackToDefaultIcon(t *testing.T) {
	assert.Equal(t, "N", NewShortcut("nano", "", "nano", "").Icon)
	assert.Equal(t, "P", NewFolder("photos", "").Icon)
	assert.Equal(t, "x", NewFolder("photos", "x").Icon)
}

func TestFolderAddOverwrites(t *testing.T) {
	f := NewFolder("Tools", "T")
	f.Add(NewShortcut("Editor", "", "nano", ""))
	f.Add(NewShortcut("Editor", "", "vim", ""))

	require.Equal(t, 1, f.Len())
	item, ok := f.Get("Editor")
	require.True(t, ok)
	assert.Equal(t, "vim", item.(*Shortcut).Target)
}

func TestFolderRemove(t *testing.T) {
	f := NewFolder("Tools", "T")
	f.Add(NewShortcut("Editor", "", "nano", ""))

	assert.True(t, f.Remove("Editor"))
	assert.False(t, f.Remove("Editor"))
	assert.Equal(t, 0, f.Len())
}

func TestFolderNamesOrder(t *testing.T) {
	f := NewRoot()
	for _, name := range []string{"beta", "Alpha", "gamma", "alpha"} {
		f.Add(NewShortcut(name, "", "x", ""))
	}
	assert.Equal(t, []string{"Alpha", "alpha", "beta", "gamma"}, f.Names())
}

func TestSubfolder(t *testing.T) {
	root := sampleTree()

	games, ok := root.Subfolder("Games")
	require.True(t, ok)
	assert.Equal(t, "Games", games.Name)

	_, ok = root.Subfolder("Web")
	assert.False(t, ok)
	_, ok = root.Subfolder("Missing")
	assert.False(t, ok)
}

func TestWalkVisitsEveryItemWithAncestors(t *testing.T) {
	root := sampleTree()

	var visited []string
	root.Walk(func(item Item, path []string) {
		visited = append(visited, joinPath(path, NameOf(item)))
	})

	assert.Equal(t, []string{
		"Games",
		"Games/Action",
		"Games/Doom",
		"Games/Puzzle",
		"Tools",
		"Web",
	}, visited)

	folders, shortcuts := root.Count()
	assert.Equal(t, 4, folders)
	assert.Equal(t, 2, shortcuts)
}

func joinPath(path []string, name string) string {
	out := ""
	for _, p := range path {
		out += p + "/"
	}
	return out + name
}

func TestDecodeDefaults(t *testing.T) {
	item, err := Decode("editor", map[string]any{"path": "nano"})
	require.NoError(t, err)

	sc, ok := item.(*Shortcut)
	require.True(t, ok, "missing type should decode as shortcut")
	assert.Equal(t, "E", sc.Icon)
	assert.Equal(t, "nano", sc.Target)
	assert.Equal(t, "", sc.Args)
}

func TestDecodeFolderWithoutItems(t *testing.T) {
	item, err := Decode("Tools", map[string]any{"type": "folder"})
	require.NoError(t, err)

	f, ok := item.(*Folder)
	require.True(t, ok)
	assert.NotNil(t, f.Children)
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, "T", f.Icon)
}

func TestDecodeNested(t *testing.T) {
	raw := map[string]any{
		"type": "folder",
		"icon": "G",
		"items": map[string]any{
			"Action": map[string]any{
				"type":  "folder",
				"icon":  "A",
				"items": map[string]any{},
			},
			"Doom": map[string]any{
				"type": "shortcut",
				"icon": "D",
				"path": "/usr/games/doom",
				"args": "-warp 1 1",
			},
		},
	}

	item, err := Decode("Games", raw)
	require.NoError(t, err)

	games := item.(*Folder)
	require.Equal(t, 2, games.Len())
	_, ok := games.Subfolder("Action")
	assert.True(t, ok)
	doom, _ := games.Get("Doom")
	assert.Equal(t, "-warp 1 1", doom.(*Shortcut).Args)
}

func TestDecodeEmptyName(t *testing.T) {
	_, err := Decode("", map[string]any{"type": "folder"})
	assert.True(t, errors.Is(err, ErrEmptyName))
}

func TestDecodeRejectsMalformedChildren(t *testing.T) {
	_, err := Decode("Games", map[string]any{
		"type":  "folder",
		"items": map[string]any{"Broken": "not an object"},
	})
	assert.Error(t, err)

	_, err = Decode("Games", map[string]any{
		"type":  "folder",
		"items": []any{"a"},
	})
	assert.Error(t, err)
}

func TestEncodeShapes(t *testing.T) {
	sc := NewShortcut("Editor", "E", "nano", "-w")
	assert.Equal(t, map[string]any{
		"type": "shortcut",
		"icon": "E",
		"path": "nano",
		"args": "-w",
	}, Encode(sc))

	f := NewFolder("Tools", "T")
	raw := Encode(f)
	assert.Equal(t, "folder", raw["type"])
	assert.Equal(t, map[string]any{}, raw["items"])
	assert.NotContains(t, raw, "path")
	assert.NotContains(t, raw, "args")
}

func TestRoundTrip(t *testing.T) {
	root := sampleTree()

	decoded, err := DecodeRoot(EncodeRoot(root))
	require.NoError(t, err)
	assert.Equal(t, root, decoded)
}

func TestParseAndMarshalRoot(t *testing.T) {
	root := sampleTree()

	data, err := MarshalRoot(root)
	require.NoError(t, err)

	parsed, err := ParseRoot(data)
	require.NoError(t, err)
	assert.Equal(t, root, parsed)
}

func TestParseRootErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", "{not json"},
		{"null", "null"},
		{"array", "[1,2]"},
		{"non-object entry", `{"Games": 3}`},
		{"empty name", `{"": {"type": "folder"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoot([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
