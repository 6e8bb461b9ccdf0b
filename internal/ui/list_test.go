package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bladetrain3r/Magic-Launcher/internal/theme"
)

func simScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFromTcell(sim, theme.Classic())
	require.NoError(t, err)
	sim.SetSize(w, h)
	screen.Sync()
	t.Cleanup(func() { screen.Close() })
	return screen, sim
}

func rowText(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		}
	}
	return sb.String()
}

func TestItemListSelectionClamps(t *testing.T) {
	l := NewItemList()
	assert.Equal(t, -1, l.Selected())

	l.SetEntries([]Entry{{Label: "Games"}, {Label: "Tools"}})
	l.SelectPrev()
	assert.Equal(t, 0, l.Selected())
	l.SelectNext()
	l.SelectNext()
	assert.Equal(t, 1, l.Selected())

	l.SetEntries([]Entry{{Label: "Games"}})
	assert.Equal(t, 0, l.Selected())

	assert.True(t, l.SelectByLabel("Games"))
	assert.False(t, l.SelectByLabel("Missing"))
}

func TestItemListRender(t *testing.T) {
	screen, sim := simScreen(t, 60, 5)

	l := NewItemList()
	l.SetEntries([]Entry{
		{Icon: "G", Label: "Games", Folder: true},
		{Icon: "D", Label: "Doom", Detail: "(Games > Action)", Broken: true},
	})
	l.Render(screen, 0, 5)
	screen.Show()

	assert.Contains(t, rowText(sim, 0), " G ")
	assert.Contains(t, rowText(sim, 0), " Games/ ")
	assert.Contains(t, rowText(sim, 1), "Doom !")
	assert.Contains(t, rowText(sim, 1), "(Games > Action)")
}

func TestItemListScrollsToSelection(t *testing.T) {
	screen, sim := simScreen(t, 40, 3)

	var entries []Entry
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		entries = append(entries, Entry{Icon: strings.ToUpper(name), Label: name})
	}
	l := NewItemList()
	l.SetEntries(entries)
	l.Select(4)
	l.Render(screen, 0, 3)
	screen.Show()

	assert.Contains(t, rowText(sim, 2), " e ")
	assert.Contains(t, rowText(sim, 0), " c ")
}

func TestHelpScreenShowsBindings(t *testing.T) {
	screen, sim := simScreen(t, 60, 20)

	h := NewHelpScreen()
	h.SetKeybindings(nil, []string{":add <name> <target>"})
	assert.False(t, h.IsVisible())

	h.Toggle()
	h.Render(screen)
	screen.Show()

	found := false
	for y := 0; y < 20; y++ {
		if strings.Contains(rowText(sim, y), ":add <name> <target>") {
			found = true
		}
	}
	assert.True(t, found)
}
