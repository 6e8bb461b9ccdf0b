package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

func testTree() *model.Folder {
	root := model.NewRoot()
	games := model.NewFolder("Games", "G")
	action := model.NewFolder("Action", "A")
	action.Add(model.NewShortcut("Doom", "", "doom", ""))
	games.Add(action)
	games.Add(model.NewFolder("Puzzle", "P"))
	root.Add(games)
	root.Add(model.NewShortcut("Editor", "", "nano", ""))
	return root
}

func TestDescendAndAscend(t *testing.T) {
	root := testTree()
	nav := New()

	require.True(t, nav.Descend(root, "Games"))
	require.True(t, nav.Descend(root, "Action"))
	assert.Equal(t, []string{"Games", "Action"}, nav.Path())
	assert.Equal(t, "Action", nav.Resolve(root).Name)

	assert.True(t, nav.Ascend())
	assert.Equal(t, "Games", nav.Resolve(root).Name)
	assert.True(t, nav.Ascend())
	assert.True(t, nav.AtRoot())
	assert.Same(t, root, nav.Resolve(root))
}

func TestAscendAtRootIsNoop(t *testing.T) {
	nav := New()
	assert.False(t, nav.Ascend())
	assert.Empty(t, nav.Path())
}

func TestDescendIntoNonFolderIsNoop(t *testing.T) {
	root := testTree()
	nav := New()

	assert.False(t, nav.Descend(root, "Editor"), "shortcut")
	assert.False(t, nav.Descend(root, "Missing"), "absent")
	assert.True(t, nav.AtRoot())

	require.True(t, nav.Descend(root, "Games"))
	require.True(t, nav.Descend(root, "Action"))
	assert.False(t, nav.Descend(root, "Doom"))
	assert.Equal(t, 2, nav.Depth())
}

func TestResolveStopsAtLastFolder(t *testing.T) {
	root := testTree()
	nav := New()

	nav.SetPath([]string{"Games", "Missing", "Deeper"})
	assert.Equal(t, "Games", nav.Resolve(root).Name)
	assert.False(t, nav.Resolved(root))

	nav.SetPath([]string{"Editor"})
	assert.Same(t, root, nav.Resolve(root))

	nav.SetPath([]string{"Games", "Puzzle"})
	assert.True(t, nav.Resolved(root))
}

func TestDescendDropsStaleTail(t *testing.T) {
	root := testTree()
	nav := New()
	nav.SetPath([]string{"Games", "Deleted"})

	require.True(t, nav.Descend(root, "Puzzle"))
	assert.Equal(t, []string{"Games", "Puzzle"}, nav.Path())
}

func TestPathIsACopy(t *testing.T) {
	root := testTree()
	nav := New()
	nav.Descend(root, "Games")

	p := nav.Path()
	p[0] = "Changed"
	assert.Equal(t, []string{"Games"}, nav.Path())
}

func TestBreadcrumb(t *testing.T) {
	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{"root", nil, "HOME"},
		{"one level", []string{"Games"}, "HOME > Games"},
		{"two levels", []string{"Games", "Action"}, "HOME > Games > Action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := New()
			nav.SetPath(tt.path)
			assert.Equal(t, tt.expected, nav.Breadcrumb())
		})
	}
}
