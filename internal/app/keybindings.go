package app

import (
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
	"github.com/Bladetrain3r/Magic-Launcher/internal/session"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Special     []tcell.Key
	Label       string // how the key is shown in help
	Description string
	Handler     func(*App)
}

// GetKey returns the key label shown in help
func (kb *KeyBinding) GetKey() string {
	if kb.Label != "" {
		return kb.Label
	}
	return string(kb.Key)
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

func (kb *KeyBinding) matches(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyRune {
		return kb.Key != 0 && ev.Rune() == kb.Key
	}
	return slices.Contains(kb.Special, ev.Key())
}

// InitializeKeybindings sets up all the key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         'j',
			Special:     []tcell.Key{tcell.KeyDown},
			Label:       "j Down",
			Description: "Move down",
			Handler:     func(app *App) { app.list.SelectNext() },
		},
		{
			Key:         'k',
			Special:     []tcell.Key{tcell.KeyUp},
			Label:       "k Up",
			Description: "Move up",
			Handler:     func(app *App) { app.list.SelectPrev() },
		},
		{
			Key:         'g',
			Special:     []tcell.Key{tcell.KeyHome},
			Label:       "g Home",
			Description: "First item",
			Handler:     func(app *App) { app.list.Select(0) },
		},
		{
			Key:         'G',
			Special:     []tcell.Key{tcell.KeyEnd},
			Label:       "G End",
			Description: "Last item",
			Handler:     func(app *App) { app.list.Select(app.list.Len() - 1) },
		},
		{
			Key:         'l',
			Special:     []tcell.Key{tcell.KeyEnter, tcell.KeyRight},
			Label:       "l Enter",
			Description: "Open folder or launch shortcut",
			Handler:     func(app *App) { app.open() },
		},
		{
			Key:         'h',
			Special:     []tcell.Key{tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyLeft, tcell.KeyEscape},
			Label:       "h Bksp Esc",
			Description: "Back to parent folder / leave results",
			Handler:     func(app *App) { app.back() },
		},
		{
			Key:         '~',
			Label:       "~",
			Description: "Go to HOME",
			Handler:     func(app *App) { app.home() },
		},
		{
			Key:         '/',
			Special:     []tcell.Key{tcell.KeyCtrlF},
			Label:       "/ Ctrl+F",
			Description: "Search all folders",
			Handler: func(app *App) {
				app.search.Start(string(app.sess.SearchMode()))
			},
		},
		{
			Key:         'a',
			Description: "Add shortcut (:add)",
			Handler:     func(app *App) { app.command.Start("add ") },
		},
		{
			Key:         'f',
			Description: "New folder (:mkdir)",
			Handler:     func(app *App) { app.command.Start("mkdir ") },
		},
		{
			Key:         'r',
			Description: "Rename selected (:rename)",
			Handler: func(app *App) {
				if name, ok := app.selectedName(); ok {
					app.command.Start("rename " + quoteArg(name) + " ")
				}
			},
		},
		{
			Key:         'e',
			Description: "Edit selected (:edit <field> <value>)",
			Handler: func(app *App) {
				if name, ok := app.selectedName(); ok {
					app.command.Start("edit " + quoteArg(name) + " ")
				}
			},
		},
		{
			Key:         'D',
			Description: "Duplicate selected",
			Handler: func(app *App) {
				if name, ok := app.selectedName(); ok {
					app.duplicate(name)
				}
			},
		},
		{
			Key:         'd',
			Special:     []tcell.Key{tcell.KeyDelete},
			Label:       "dd Del",
			Description: "Delete selected (press twice)",
			Handler: func(app *App) {
				name, ok := app.selectedName()
				if !ok {
					return
				}
				if app.pendingDelete != name {
					app.pendingDelete = name
					app.SetStatus("Delete '" + name + "'? Press d again to confirm")
					return
				}
				app.pendingDelete = ""
				app.delete(name)
			},
		},
		{
			Key:         'p',
			Description: "Properties of selected",
			Handler: func(app *App) {
				if item, _ := app.selected(); item != nil {
					app.help.Show(" Properties ", splitLines(session.Properties(item)))
				}
			},
		},
		{
			Key:         'm',
			Description: "Message log",
			Handler: func(app *App) {
				app.help.Show(" Messages ", app.messages.Lines())
			},
		},
		{
			Key:         ':',
			Description: "Command line",
			Handler:     func(app *App) { app.command.Start("") },
		},
		{
			Key:         '?',
			Special:     []tcell.Key{tcell.KeyF1},
			Label:       "? F1",
			Description: "Toggle help",
			Handler:     func(app *App) { app.help.Toggle() },
		},
		{
			Key:         'R',
			Special:     []tcell.Key{tcell.KeyCtrlR},
			Label:       "R Ctrl+R",
			Description: "Reload shortcuts file",
			Handler:     func(app *App) { app.reload() },
		},
		{
			Key:         'q',
			Special:     []tcell.Key{tcell.KeyCtrlC},
			Label:       "q Ctrl+C",
			Description: "Quit",
			Handler:     func(app *App) { app.Quit() },
		},
	}
}

// handleKeypress dispatches a key in normal mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	for i := range a.keys {
		if a.keys[i].matches(ev) {
			a.keys[i].Handler(a)
			return
		}
	}
}

// selectedName returns the name of the selected item of the current folder.
// Search results must be opened before they can be changed.
func (a *App) selectedName() (string, bool) {
	if a.results != nil {
		a.SetError("Open the result first (Enter), then edit it in its folder", nil)
		return "", false
	}
	item, _ := a.selected()
	if item == nil {
		return "", false
	}
	return model.NameOf(item), true
}
