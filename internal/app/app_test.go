package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
	"github.com/Bladetrain3r/Magic-Launcher/internal/session"
	"github.com/Bladetrain3r/Magic-Launcher/internal/socket"
	"github.com/Bladetrain3r/Magic-Launcher/internal/storage"
	"github.com/Bladetrain3r/Magic-Launcher/internal/theme"
	"github.com/Bladetrain3r/Magic-Launcher/internal/ui"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple command",
			input:    "reload",
			expected: []string{"reload"},
		},
		{
			name:     "command with arguments",
			input:    "add Editor nano",
			expected: []string{"add", "Editor", "nano"},
		},
		{
			name:     "double quoted string",
			input:    `export markdown "my file.md"`,
			expected: []string{"export", "markdown", "my file.md"},
		},
		{
			name:     "single quoted string",
			input:    "rename Doom 'Doom II'",
			expected: []string{"rename", "Doom", "Doom II"},
		},
		{
			name:     "quoted args after target",
			input:    `add "Text Editor" vim "-u NONE" V`,
			expected: []string{"add", "Text Editor", "vim", "-u NONE", "V"},
		},
		{
			name:     "escaped quotes",
			input:    `edit Say args "\"hello world\""`,
			expected: []string{"edit", "Say", "args", `"hello world"`},
		},
		{
			name:     "escaped backslash",
			input:    `sub target "C:\\Games\\doom.exe" doom`,
			expected: []string{"sub", "target", `C:\Games\doom.exe`, "doom"},
		},
		{
			name:     "multiple spaces",
			input:    "cd    Games/Action",
			expected: []string{"cd", "Games/Action"},
		},
		{
			name:     "tabs and spaces",
			input:    "dup\tDoom\t  ",
			expected: []string{"dup", "Doom"},
		},
		{
			name:     "empty quoted string",
			input:    `edit Doom args ""`,
			expected: []string{"edit", "Doom", "args", ""},
		},
		{
			name:     "url target",
			input:    `add Docs "https://example.com/path?query=value&other=123"`,
			expected: []string{"add", "Docs", "https://example.com/path?query=value&other=123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCommand(tt.input))
		})
	}
}

func TestQuoteArgRoundTrips(t *testing.T) {
	for _, name := range []string{"Doom", "Baldur's Gate", `say "hi"`, "Game copy 2", ""} {
		parts := parseCommand("rename " + quoteArg(name) + " x")
		require.Len(t, parts, 3, name)
		assert.Equal(t, name, parts[1])
	}
}

type fakeLauncher struct {
	launched []string
}

func (f *fakeLauncher) Launch(target, args string) error {
	f.launched = append(f.launched, strings.TrimSpace(target+" "+args))
	return nil
}

const fixture = `{
  "Games": {"type": "folder", "icon": "G", "items": {
    "Action": {"type": "folder", "icon": "A", "items": {
      "Doom": {"type": "shortcut", "icon": "D", "path": "doom", "args": "-warp 1"}
    }},
    "Broken": {"type": "shortcut", "icon": "B", "path": "/missing/game", "args": ""}
  }},
  "Tools": {"type": "folder", "icon": "T", "items": {
    "Editor": {"type": "shortcut", "icon": "E", "path": "nano", "args": ""}
  }}
}
`

type harness struct {
	app      *App
	store    *storage.JSONStore
	launcher *fakeLauncher
	sim      tcell.SimulationScreen
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	file := filepath.Join(t.TempDir(), "shortcuts.json")
	root, err := model.ParseRoot([]byte(fixture))
	require.NoError(t, err)

	store := storage.NewJSONStore(file, zerolog.Nop())
	require.NoError(t, store.Save(root))

	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFromTcell(sim, theme.Classic())
	require.NoError(t, err)
	sim.SetSize(80, 24)
	screen.Sync()
	t.Cleanup(func() { screen.Close() })

	launcher := &fakeLauncher{}
	a := New(Options{
		Screen:   screen,
		Session:  session.New(store, zerolog.Nop()),
		Launcher: launcher,
		Check:    func(target string) bool { return !strings.HasPrefix(target, "/missing") },
		Logger:   zerolog.Nop(),
	})
	return &harness{app: a, store: store, launcher: launcher, sim: sim}
}

func (h *harness) keys(keys ...tcell.Key) {
	for _, k := range keys {
		h.app.handleRawEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
	}
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.app.handleRawEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (h *harness) command(cmd string) {
	h.typeText(":" + cmd)
	h.keys(tcell.KeyEnter)
}

func (h *harness) reloaded() *model.Folder {
	return h.store.Load()
}

func (h *harness) tools(t *testing.T) *model.Folder {
	t.Helper()
	tools, ok := h.reloaded().Subfolder("Tools")
	require.True(t, ok)
	return tools
}

func (h *harness) lastMessage() ui.Message {
	m, _ := h.app.messages.Latest()
	return m
}

func TestNavigateAndLaunch(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "HOME", h.app.sess.Breadcrumb())
	h.keys(tcell.KeyEnter)
	assert.Equal(t, "HOME > Games", h.app.sess.Breadcrumb())

	// Action sorts before Broken
	h.keys(tcell.KeyEnter)
	assert.Equal(t, "HOME > Games > Action", h.app.sess.Breadcrumb())

	h.keys(tcell.KeyEnter)
	assert.Equal(t, []string{"doom -warp 1"}, h.launcher.launched)

	h.keys(tcell.KeyBackspace2)
	assert.Equal(t, "HOME > Games", h.app.sess.Breadcrumb())
	item, _ := h.app.selected()
	assert.Equal(t, "Action", model.NameOf(item), "the folder we came from stays selected")
}

func TestBrokenShortcutIsNotLaunched(t *testing.T) {
	h := newHarness(t)
	h.command("cd Games")

	h.typeText("j")
	h.keys(tcell.KeyEnter)

	assert.Empty(t, h.launcher.launched)
	assert.True(t, h.lastMessage().Error)
	assert.Contains(t, h.lastMessage().Text, "Broken shortcut: Broken")
	assert.True(t, h.app.list.Entries()[1].Broken)
}

func TestLaunchExpandsPlaceholders(t *testing.T) {
	h := newHarness(t)

	h.app.launch(model.NewShortcut("Quake", "", "quake", "+exec {{name|lower}}.cfg"))
	assert.Equal(t, []string{"quake +exec quake.cfg"}, h.launcher.launched)

	h.app.launch(model.NewShortcut("Bad", "", "quake", "{{nope}}"))
	assert.Len(t, h.launcher.launched, 1)
	assert.True(t, h.lastMessage().Error)
	assert.Contains(t, h.lastMessage().Text, "Bad placeholder in Bad")
}

func TestLiveSearchAndOpenResult(t *testing.T) {
	h := newHarness(t)

	h.typeText("/doo")
	require.Len(t, h.app.results, 1)
	assert.Equal(t, "Doom (Games > Action)", h.app.list.Entries()[0].Label)

	h.keys(tcell.KeyEnter) // closes the bar, keeps results
	assert.False(t, h.app.search.IsActive())
	h.keys(tcell.KeyEnter) // opens the result

	assert.Nil(t, h.app.results)
	assert.Equal(t, "HOME > Games > Action", h.app.sess.Breadcrumb())
	assert.Equal(t, []string{"doom -warp 1"}, h.launcher.launched)
}

func TestFilterCommand(t *testing.T) {
	h := newHarness(t)

	h.command("filter kind:shortcut in:Games")
	require.Len(t, h.app.results, 2)
	assert.Equal(t, "Doom (Games > Action)", h.app.list.Entries()[0].Label)
	assert.Equal(t, "2 found", h.lastMessage().Text)

	h.command("filter kind:app")
	assert.True(t, h.lastMessage().Error)
	assert.Len(t, h.app.results, 2, "a bad filter keeps the previous results")
}

func TestSearchEscapeRestoresListing(t *testing.T) {
	h := newHarness(t)
	h.typeText("/zzz")
	assert.NotNil(t, h.app.results)
	assert.Equal(t, 0, h.app.list.Len())

	h.keys(tcell.KeyEscape)
	assert.Nil(t, h.app.results)
	assert.Equal(t, 2, h.app.list.Len())
}

func TestAddCommandPersists(t *testing.T) {
	h := newHarness(t)
	h.command("cd Tools")
	h.command(`add "Text Editor" vim "-u NONE"`)

	sc, ok := h.tools(t).Children["Text Editor"].(*model.Shortcut)
	require.True(t, ok)
	assert.Equal(t, "vim", sc.Target)
	assert.Equal(t, "-u NONE", sc.Args)
	assert.Equal(t, "T", sc.Icon)

	item, _ := h.app.selected()
	assert.Equal(t, "Text Editor", model.NameOf(item))
}

func TestMkdirRenameEdit(t *testing.T) {
	h := newHarness(t)
	h.command("mkdir Scripts S")
	h.command(`rename Scripts "My Scripts"`)
	h.command("cd Tools")
	h.command("edit Editor target vim")

	root := h.reloaded()
	assert.True(t, root.Has("My Scripts"))
	assert.False(t, root.Has("Scripts"))
	assert.Equal(t, "vim", h.tools(t).Children["Editor"].(*model.Shortcut).Target)
}

func TestDuplicateAndDeleteKeys(t *testing.T) {
	h := newHarness(t)
	h.command("cd Tools")

	h.typeText("D")
	assert.True(t, h.tools(t).Has("Editor copy"))

	h.app.list.SelectByLabel("Editor")
	h.typeText("d")
	assert.Equal(t, "Editor", h.app.pendingDelete)
	assert.True(t, h.tools(t).Has("Editor"), "first d only asks for confirmation")

	h.typeText("d")
	assert.False(t, h.tools(t).Has("Editor"))
	assert.Equal(t, []string{"Editor copy"}, h.tools(t).Names())
}

func TestDeleteConfirmationResetsOnOtherKey(t *testing.T) {
	h := newHarness(t)
	h.typeText("d")
	h.typeText("j")
	h.typeText("d")
	assert.Equal(t, "Tools", h.app.pendingDelete)
	assert.True(t, h.reloaded().Has("Games"))
}

func TestSubstituteCommand(t *testing.T) {
	h := newHarness(t)
	h.command("sub path nano vim")

	assert.Equal(t, "vim", h.tools(t).Children["Editor"].(*model.Shortcut).Target)
	assert.Contains(t, h.lastMessage().Text, "Replaced 1 target values")
}

func TestUnknownAndBadCommands(t *testing.T) {
	h := newHarness(t)

	h.command("frobnicate")
	assert.True(t, h.lastMessage().Error)

	h.command("cd Nope")
	assert.True(t, h.lastMessage().Error)
	assert.Equal(t, "HOME", h.app.sess.Breadcrumb())

	h.command("delete Missing")
	assert.Contains(t, h.lastMessage().Text, "no such item")

	h.command("add OnlyName")
	assert.Contains(t, h.lastMessage().Text, "Usage")
}

func TestEmptyNamesRefused(t *testing.T) {
	h := newHarness(t)

	h.command(`rename Tools ""`)
	assert.Contains(t, h.lastMessage().Text, "name is empty")
	h.command(`mkdir ""`)
	assert.Contains(t, h.lastMessage().Text, "name is empty")
	h.command(`add "" nano`)
	assert.Contains(t, h.lastMessage().Text, "name is empty")

	root := h.reloaded()
	assert.False(t, root.Has(""))
	assert.True(t, h.tools(t).Has("Editor"))
}

func TestMutationsRefusedInResults(t *testing.T) {
	h := newHarness(t)
	h.typeText("/ed")
	h.keys(tcell.KeyEnter)
	h.typeText("D")

	assert.True(t, h.lastMessage().Error)
	assert.Equal(t, 1, h.tools(t).Len())
}

func TestExportCommand(t *testing.T) {
	h := newHarness(t)
	out := filepath.Join(t.TempDir(), "tree.md")
	h.command("export md " + out)

	assert.False(t, h.lastMessage().Error, h.lastMessage().Text)
	assert.FileExists(t, out)
}

func TestImportCommandMergesIntoCurrentFolder(t *testing.T) {
	h := newHarness(t)
	list := filepath.Join(t.TempDir(), "more.txt")
	require.NoError(t, os.WriteFile(list, []byte("Htop = htop\nTop = top -d 1\n"), 0o644))

	h.command("cd Tools")
	h.command("import " + list)

	assert.Equal(t, "Imported 2 items", h.lastMessage().Text)
	tools, _ := h.store.Load().Subfolder("Tools")
	assert.Equal(t, []string{"Editor", "Htop", "Top"}, tools.Names())

	h.command("import " + filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, h.lastMessage().Error)
}

func TestReloadNotificationKeepsFolder(t *testing.T) {
	h := newHarness(t)
	h.command("cd Tools")

	root := h.store.Load()
	tools, _ := root.Subfolder("Tools")
	tools.Add(model.NewShortcut("Htop", "", "htop", ""))
	require.NoError(t, h.store.Save(root))

	h.app.handleNotification(socket.Message{Command: socket.CommandReload, Text: "launcher add"})
	assert.Equal(t, "HOME > Tools", h.app.sess.Breadcrumb())
	assert.Equal(t, []string{"Editor", "Htop"}, h.app.sess.Current().Names())
	assert.Equal(t, "Reloaded after launcher add", h.lastMessage().Text)

	// the current folder disappears
	root.Remove("Tools")
	require.NoError(t, h.store.Save(root))
	h.app.handleNotification(socket.Message{Command: socket.CommandReload})
	assert.Equal(t, "HOME", h.app.sess.Breadcrumb())
	assert.Equal(t, "Shortcuts file changed, reloaded", h.lastMessage().Text)

	h.app.handleNotification(socket.Message{Command: socket.CommandStatus, Text: "hello"})
	assert.Equal(t, "hello", h.lastMessage().Text)
}

func TestRenderShowsBreadcrumbAndItems(t *testing.T) {
	h := newHarness(t)
	h.command("cd Games")
	h.app.render()

	cells, w, _ := h.sim.GetContents()
	row := func(y int) string {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			if r := cells[y*w+x].Runes; len(r) > 0 {
				sb.WriteRune(r[0])
			}
		}
		return sb.String()
	}

	assert.Contains(t, row(0), "Magic Launcher")
	assert.Contains(t, row(1), "HOME > Games")
	assert.Contains(t, row(3), "Action/")
	assert.Contains(t, row(4), "Broken !")
}

func TestHelpOverlayToggle(t *testing.T) {
	h := newHarness(t)
	h.typeText("?")
	assert.True(t, h.app.help.IsVisible())
	h.typeText("j")
	assert.True(t, h.app.help.IsVisible(), "keys are swallowed while help is open")
	h.keys(tcell.KeyEscape)
	assert.False(t, h.app.help.IsVisible())

	h.typeText("q")
	assert.True(t, h.app.quit)
}
