package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Bladetrain3r/Magic-Launcher/internal/history"
)

// CommandMode manages command line input (`:command`)
type CommandMode struct {
	active bool
	input  *Input
}

// NewCommandMode creates a command line without history persistence
func NewCommandMode() *CommandMode {
	return &CommandMode{input: NewInput(":", nil)}
}

// NewCommandModeWithHistory creates a command line whose history is kept
// in command.toml. A broken history file only costs the old entries.
func NewCommandModeWithHistory(manager *history.Manager) *CommandMode {
	h, _ := NewHistoryWithManager(50, manager, "command.toml")
	return &CommandMode{input: NewInput(":", h)}
}

// Start enters command mode with an optional prefilled text
func (c *CommandMode) Start(prefill string) {
	c.active = true
	c.input.Reset()
	c.input.SetText(prefill)
}

// Stop exits command mode
func (c *CommandMode) Stop() {
	c.active = false
}

// IsActive returns whether command mode is active
func (c *CommandMode) IsActive() bool {
	return c.active
}

// HandleKey processes a key press in command mode. done is true once the
// line was submitted or cancelled; a cancelled line yields an empty command.
func (c *CommandMode) HandleKey(ev *tcell.EventKey) (command string, done bool) {
	switch c.input.HandleKey(ev) {
	case InputSubmitted:
		c.Stop()
		return strings.TrimSpace(c.input.Text()), true
	case InputCancelled:
		c.Stop()
		return "", true
	}
	return "", false
}

// GetInput returns the current command input
func (c *CommandMode) GetInput() string {
	return strings.TrimSpace(c.input.Text())
}

// Render renders the command line
func (c *CommandMode) Render(screen *Screen, y int) {
	if !c.active {
		return
	}
	c.input.Render(screen, y, screen.CommandPromptStyle(), screen.CommandTextStyle())
}
