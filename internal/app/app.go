// Package app is the interactive launcher: a tcell event loop over a
// session, with vim-style keys and a ":" command line.
package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Bladetrain3r/Magic-Launcher/internal/history"
	"github.com/Bladetrain3r/Magic-Launcher/internal/launch"
	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
	"github.com/Bladetrain3r/Magic-Launcher/internal/search"
	"github.com/Bladetrain3r/Magic-Launcher/internal/session"
	"github.com/Bladetrain3r/Magic-Launcher/internal/socket"
	"github.com/Bladetrain3r/Magic-Launcher/internal/template"
	"github.com/Bladetrain3r/Magic-Launcher/internal/ui"
)

const appName = "Magic Launcher"

// Options wires the collaborators of an App
type Options struct {
	Screen   *ui.Screen
	Session  *session.Session
	Launcher launch.Launcher
	// Check reports whether a shortcut target can be launched; default launch.Check
	Check func(target string) bool
	// History persists command and search input; nil keeps it in memory
	History          *history.Manager
	ExportDateFormat string
	// Placeholders configures {{...}} expansion in shortcut arguments
	Placeholders template.Context
	// Notifications carries messages from other launcher processes
	Notifications <-chan socket.Message
	Logger        zerolog.Logger
}

// App is the main application controller
type App struct {
	screen   *ui.Screen
	sess     *session.Session
	launcher launch.Launcher
	check    func(string) bool

	list     *ui.ItemList
	search   *ui.SearchBar
	command  *ui.CommandMode
	help     *ui.HelpScreen
	messages *ui.MessageLogger
	keys     []KeyBinding

	// results is non-nil while search results replace the folder listing
	results          []search.Result
	pendingDelete    string
	exportDateFormat string
	notifications    <-chan socket.Message
	placeholders     template.Context
	quit             bool
	log              zerolog.Logger
}

// New creates an App over an open session
func New(opts Options) *App {
	check := opts.Check
	if check == nil {
		check = launch.Check
	}

	a := &App{
		screen:           opts.Screen,
		sess:             opts.Session,
		launcher:         opts.Launcher,
		check:            check,
		list:             ui.NewItemList(),
		help:             ui.NewHelpScreen(),
		messages:         ui.NewMessageLogger(100),
		exportDateFormat: opts.ExportDateFormat,
		notifications:    opts.Notifications,
		placeholders:     opts.Placeholders,
		log:              opts.Logger.With().Str("component", "app").Logger(),
	}
	if opts.History != nil {
		a.command = ui.NewCommandModeWithHistory(opts.History)
		a.search = ui.NewSearchBarWithHistory(opts.History)
	} else {
		a.command = ui.NewCommandMode()
		a.search = ui.NewSearchBar()
	}

	a.keys = a.InitializeKeybindings()
	infos := make([]ui.KeyBindingInfo, len(a.keys))
	for i := range a.keys {
		infos[i] = &a.keys[i]
	}
	a.help.SetKeybindings(infos, commandHelp)

	a.refresh()
	a.SetStatus(fmt.Sprintf("%s ready", appName))
	return a
}

// Run starts the main event loop and returns when the user quits
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	a.render()
	for !a.quit {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			a.handleRawEvent(ev)
		case msg := <-a.notifications:
			a.handleNotification(msg)
			a.render()
		case <-ticker.C:
			a.render()
		}
	}
	return nil
}

// handleNotification applies a message from another launcher process
func (a *App) handleNotification(msg socket.Message) {
	switch msg.Command {
	case socket.CommandReload:
		a.reloadInPlace(msg.Text)
	case socket.CommandStatus:
		a.SetStatus(msg.Text)
	}
}

// reloadInPlace reloads the tree after an outside change, staying in the
// current folder while it still exists
func (a *App) reloadInPlace(who string) {
	path := a.sess.Path()
	a.sess.Reload()
	if err := a.sess.Navigate(path); err != nil {
		a.log.Debug().Strs("path", path).Msg("folder gone after reload")
	}
	if a.results != nil {
		a.search.Stop()
		a.results = nil
	}
	a.refresh()
	if who == "" {
		a.SetStatus("Shortcuts file changed, reloaded")
	} else {
		a.SetStatus("Reloaded after " + who)
	}
}

// Close closes the screen
func (a *App) Close() error {
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetStatus shows an informational message
func (a *App) SetStatus(msg string) {
	a.messages.Add(msg, false)
}

// SetError shows an error message and logs it
func (a *App) SetError(msg string, err error) {
	if err != nil {
		a.log.Error().Err(err).Msg(msg)
		msg = msg + ": " + err.Error()
	}
	a.messages.Add(msg, true)
}

// refresh rebuilds the list from the current folder or the search results
func (a *App) refresh() {
	var entries []ui.Entry
	if a.results != nil {
		for _, r := range a.results {
			entries = append(entries, a.entryFor(r.Item, r.DisplayName))
		}
	} else {
		current := a.sess.Current()
		for _, name := range current.Names() {
			item, _ := current.Get(name)
			entries = append(entries, a.entryFor(item, name))
		}
	}
	a.list.SetEntries(entries)
}

func (a *App) entryFor(item model.Item, label string) ui.Entry {
	e := ui.Entry{Icon: item.Common().Icon, Label: label}
	switch it := item.(type) {
	case *model.Folder:
		e.Folder = true
	case *model.Shortcut:
		e.Broken = !a.check(it.Target)
	}
	return e
}

// selected returns the item under the cursor and, in search mode, its result
func (a *App) selected() (model.Item, *search.Result) {
	i := a.list.Selected()
	if i < 0 {
		return nil, nil
	}
	if a.results != nil {
		return a.results[i].Item, &a.results[i]
	}
	current := a.sess.Current()
	names := current.Names()
	if i >= len(names) {
		return nil, nil
	}
	item, _ := current.Get(names[i])
	return item, nil
}

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	width := a.screen.GetWidth()
	height := a.screen.GetHeight()

	header := fmt.Sprintf(" %s ", appName)
	a.screen.DrawString(0, 0, ui.PadStringToWidth(header, width), a.screen.HeaderStyle())

	location := " " + a.sess.Breadcrumb()
	if a.results != nil {
		location = fmt.Sprintf(" Search results (%d)", len(a.results))
	}
	a.screen.FillRow(1, a.screen.BreadcrumbStyle())
	a.screen.DrawStringLimited(0, 1, location, width, a.screen.BreadcrumbStyle())

	listTop, listBottom := 3, height-2
	if a.list.Len() == 0 {
		msg := "  This folder is empty. Press 'a' to add a shortcut or 'f' for a folder."
		if a.results != nil {
			msg = "  No results"
		}
		a.screen.DrawStringLimited(0, listTop, msg, width, a.screen.StatusMessageStyle())
	} else {
		a.list.Render(a.screen, listTop, listBottom)
	}

	statusY := height - 1
	switch {
	case a.command.IsActive():
		a.command.Render(a.screen, statusY)
	case a.search.IsActive():
		a.search.Render(a.screen, statusY)
	default:
		a.renderStatus(statusY, width)
	}

	a.help.Render(a.screen)
	a.screen.Show()
}

func (a *App) renderStatus(y, width int) {
	style := a.screen.StatusMessageStyle()
	a.screen.FillRow(y, style)

	msg, ok := a.messages.Latest()
	if !ok || time.Since(msg.Timestamp) > 5*time.Second {
		if item, _ := a.selected(); item != nil {
			a.screen.DrawStringLimited(1, y, describe(item), width-1, style)
		}
		return
	}
	if msg.Error {
		style = a.screen.StatusErrorStyle()
	}
	a.screen.DrawStringLimited(1, y, msg.Text, width-1, style)
}

func describe(item model.Item) string {
	switch it := item.(type) {
	case *model.Folder:
		return fmt.Sprintf("%s: folder, %d items", it.Name, it.Len())
	case *model.Shortcut:
		if it.Args != "" {
			return fmt.Sprintf("%s: %s %s", it.Name, it.Target, it.Args)
		}
		return fmt.Sprintf("%s: %s", it.Name, it.Target)
	}
	return ""
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.command.IsActive() {
		if cmd, done := a.command.HandleKey(ev); done {
			a.handleCommand(cmd)
		}
		return
	}

	if a.search.IsActive() {
		a.handleSearchKey(ev)
		return
	}

	if a.help.IsVisible() {
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyEnter || ev.Rune() == '?' || ev.Rune() == 'q' {
			a.help.Hide()
		}
		return
	}

	if ev.Key() != tcell.KeyRune || ev.Rune() != 'd' {
		a.pendingDelete = ""
	}
	a.handleKeypress(ev)
}

// handleSearchKey runs the query on every change so results are live
func (a *App) handleSearchKey(ev *tcell.EventKey) {
	// arrows walk the results once there is a query, history before that
	if (ev.Key() == tcell.KeyUp || ev.Key() == tcell.KeyDown) && a.search.Query() != "" {
		if ev.Key() == tcell.KeyDown {
			a.list.SelectNext()
		} else {
			a.list.SelectPrev()
		}
		return
	}

	changed, result := a.search.HandleKey(ev)
	switch result {
	case ui.InputCancelled:
		a.clearSearch()
		return
	case ui.InputSubmitted:
		a.search.Stop()
		if len(a.results) == 0 {
			a.clearSearch()
		}
		return
	}
	if changed {
		a.runSearch(a.search.Query())
	}
}

func (a *App) runSearch(query string) {
	if query == "" {
		a.results = nil
	} else {
		a.results = a.sess.Search(query)
		if a.results == nil {
			a.results = []search.Result{}
		}
	}
	a.search.SetResultCount(len(a.results))
	a.list.Select(0)
	a.refresh()
}

func (a *App) clearSearch() {
	a.search.Stop()
	a.results = nil
	a.refresh()
}

// open acts on the selected item: enter a folder or launch a shortcut. In
// search results a folder is entered and a shortcut is launched from where
// it lives.
func (a *App) open() {
	item, result := a.selected()
	if item == nil {
		return
	}

	if result != nil {
		if err := a.sess.OpenResult(*result); err != nil {
			a.SetError("Cannot open result", err)
			return
		}
		a.results = nil
		a.refresh()
		if _, ok := item.(*model.Folder); ok {
			a.list.Select(0)
			return
		}
		a.list.SelectByLabel(model.NameOf(item))
	}

	switch it := item.(type) {
	case *model.Folder:
		if result == nil && a.sess.Descend(it.Name) {
			a.list.Select(0)
			a.refresh()
		}
	case *model.Shortcut:
		a.launch(it)
	}
}

func (a *App) launch(sc *model.Shortcut) {
	if !a.check(sc.Target) {
		a.SetError(fmt.Sprintf("Broken shortcut: %s (%s)", sc.Name, sc.Target), nil)
		return
	}
	if a.launcher == nil {
		a.SetError("No launcher configured", nil)
		return
	}
	args, err := template.ShortcutArgs(sc, a.placeholders)
	if err != nil {
		a.SetError("Bad placeholder in "+sc.Name, err)
		return
	}
	if err := a.launcher.Launch(sc.Target, args); err != nil {
		a.SetError("Failed to launch "+sc.Name, err)
		return
	}
	a.SetStatus("Launched " + sc.Name)
}

// back leaves search results, or goes up one folder keeping the folder we
// came from selected
func (a *App) back() {
	if a.results != nil {
		a.clearSearch()
		return
	}
	path := a.sess.Path()
	if !a.sess.Ascend() {
		return
	}
	a.refresh()
	a.list.SelectByLabel(path[len(path)-1])
}

func (a *App) home() {
	a.results = nil
	_ = a.sess.Navigate(nil)
	a.list.Select(0)
	a.refresh()
}

// afterMutation refreshes the list and keeps name selected when given
func (a *App) afterMutation(name string) {
	if a.results != nil && a.search.Query() != "" {
		a.results = a.sess.Search(a.search.Query())
	}
	a.refresh()
	if name != "" {
		a.list.SelectByLabel(name)
	}
}
