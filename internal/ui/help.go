package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// KeyBindingInfo represents a keybinding for display
type KeyBindingInfo interface {
	GetKey() string
	GetDescription() string
}

// HelpScreen is a boxed overlay listing keybindings and commands, or any
// other lines such as the message log.
type HelpScreen struct {
	visible bool
	title   string
	lines   []string
}

// NewHelpScreen creates a hidden overlay
func NewHelpScreen() *HelpScreen {
	return &HelpScreen{}
}

// SetKeybindings fills the overlay with keybindings followed by commands
func (h *HelpScreen) SetKeybindings(keybindings []KeyBindingInfo, commands []string) {
	lines := []string{"Keys:", ""}
	for _, kb := range keybindings {
		lines = append(lines, fmt.Sprintf("  %-10s %s", kb.GetKey(), kb.GetDescription()))
	}
	lines = append(lines, "", "Commands:", "")
	for _, c := range commands {
		lines = append(lines, "  "+c)
	}
	h.Show(" Keybindings (? to close) ", lines)
	h.visible = false
}

// Show replaces the overlay content and makes it visible
func (h *HelpScreen) Show(title string, lines []string) {
	h.title = title
	h.lines = lines
	h.visible = true
}

// Toggle toggles the help screen visibility
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
}

// Hide closes the overlay
func (h *HelpScreen) Hide() {
	h.visible = false
}

// IsVisible returns whether the help screen is visible
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Lines returns the current overlay content
func (h *HelpScreen) Lines() []string {
	return h.lines
}

// Render renders the overlay
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	startX, startY := 4, 1
	boxWidth := screen.GetWidth() - 2*startX
	maxY := screen.GetHeight() - 2
	if boxWidth < 10 || maxY <= startY+3 {
		return
	}

	hline := func(y int, left, right rune) {
		screen.SetCell(startX, y, left, borderStyle)
		for i := 1; i < boxWidth-1; i++ {
			screen.SetCell(startX+i, y, '─', borderStyle)
		}
		screen.SetCell(startX+boxWidth-1, y, right, borderStyle)
	}
	row := func(y int, text string, style tcell.Style) {
		for i := 0; i < boxWidth; i++ {
			screen.SetCell(startX+i, y, ' ', contentStyle)
		}
		screen.SetCell(startX, y, '│', borderStyle)
		screen.DrawStringLimited(startX+2, y, text, boxWidth-4, style)
		screen.SetCell(startX+boxWidth-1, y, '│', borderStyle)
	}

	hline(startY, '┌', '┐')
	row(startY+1, h.title, titleStyle)
	hline(startY+2, '├', '┤')

	y := startY + 3
	for _, line := range h.lines {
		if y >= maxY {
			break
		}
		row(y, line, contentStyle)
		y++
	}
	hline(y, '└', '┘')
}
