package app

import (
	"os"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/edit"
	"github.com/Bladetrain3r/Magic-Launcher/internal/export"
	import_parser "github.com/Bladetrain3r/Magic-Launcher/internal/import"
	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
	"github.com/Bladetrain3r/Magic-Launcher/internal/scan"
	"github.com/Bladetrain3r/Magic-Launcher/internal/search"
	"github.com/Bladetrain3r/Magic-Launcher/internal/session"
)

var commandHelp = []string{
	`:add <name> <target> ["args"] [icon]   add a shortcut here`,
	`:mkdir <name> [icon]                   add a folder here`,
	`:rename <old> <new>                    rename an item`,
	`:edit <name> name|icon|target|args <value>`,
	`:dup <name>   :delete <name>`,
	`:sub target|args|icon <old> <new>     replace a value everywhere`,
	`:cd <a/b/c>   :find <query>   :mode substring|fuzzy`,
	`:filter <expr>   e.g. kind:shortcut in:Games -target:steam`,
	`:scan <dir> [ext]                      add a folder of found files`,
	`:export markdown|yaml <file>   :import <file>`,
	`:props <name>   :messages   :reload   :q`,
	`Quote names with spaces: :rename "Old Name" "New Name"`,
}

// parseCommand splits a command line into words. Single or double quotes
// group words, and backslash escapes the next character inside quotes.
func parseCommand(input string) []string {
	var parts []string
	var current strings.Builder
	inWord := false
	var quote rune

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			switch {
			case r == '\\' && i+1 < len(runes):
				i++
				current.WriteRune(runes[i])
			case r == quote:
				quote = 0
			default:
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				parts = append(parts, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		parts = append(parts, current.String())
	}
	return parts
}

// quoteArg quotes s for the command line when it holds spaces or quotes
func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"'\\") {
		return s
	}
	return strconv.Quote(s)
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}
	name, args := parts[0], parts[1:]

	need := func(n int, usage string) bool {
		if len(args) < n {
			a.SetError("Usage: :"+usage, nil)
			return false
		}
		return true
	}

	switch name {
	case "q", "quit", "q!", "quit!", "wq":
		a.Quit()
	case "w", "write":
		if err := a.sess.Save(); err != nil {
			a.SetError("Failed to save", err)
		} else {
			a.SetStatus("Saved")
		}
	case "add":
		if need(2, "add <name> <target> [args] [icon]") {
			a.addShortcut(args)
		}
	case "mkdir", "folder":
		if need(1, "mkdir <name> [icon]") {
			icon := ""
			if len(args) > 1 {
				icon = args[1]
			}
			a.add(model.NewFolder(args[0], icon))
		}
	case "rename", "mv":
		if need(2, "rename <old> <new>") {
			a.rename(args[0], args[1])
		}
	case "edit":
		if need(3, "edit <name> name|icon|target|args <value>") {
			a.editField(args[0], args[1], strings.Join(args[2:], " "))
		}
	case "dup", "duplicate":
		if need(1, "dup <name>") {
			a.duplicate(args[0])
		}
	case "delete", "del", "rm":
		if need(1, "delete <name>") {
			a.delete(args[0])
		}
	case "sub", "substitute":
		if need(3, "sub target|args|icon <old> <new>") {
			a.substitute(args[0], args[1], args[2])
		}
	case "cd":
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		a.cd(path)
	case "find", "search":
		if need(1, "find <query>") {
			a.runSearch(strings.Join(args, " "))
			a.SetStatus(strconv.Itoa(len(a.results)) + " found")
		}
	case "filter", "query":
		if need(1, "filter <expr>") {
			a.filter(args)
		}
	case "mode":
		if need(1, "mode substring|fuzzy") {
			mode := search.ParseMode(args[0])
			a.sess.SetSearchMode(mode)
			a.SetStatus("Search mode: " + string(mode))
		}
	case "props", "properties":
		if need(1, "props <name>") {
			item, ok := a.sess.Current().Get(args[0])
			if !ok {
				a.SetError("No item named "+args[0], nil)
				return
			}
			a.help.Show(" Properties ", splitLines(session.Properties(item)))
		}
	case "scan":
		if need(1, "scan <dir> [ext]") {
			ext := ""
			if len(args) > 1 {
				ext = args[1]
			}
			a.scan(args[0], ext)
		}
	case "export":
		if need(2, "export markdown|yaml <file>") {
			a.export(args[0], args[1])
		}
	case "import":
		if need(1, "import <file>") {
			a.importFile(args[0])
		}
	case "messages":
		a.help.Show(" Messages ", a.messages.Lines())
	case "reload":
		a.reload()
	case "help":
		a.help.Toggle()
	default:
		a.SetError("Unknown command: "+name, nil)
	}
}

func (a *App) addShortcut(args []string) {
	var cmdArgs, icon string
	if len(args) > 2 {
		cmdArgs = args[2]
	}
	if len(args) > 3 {
		icon = args[3]
	}
	a.add(model.NewShortcut(args[0], icon, args[1], cmdArgs))
}

func (a *App) add(item model.Item) {
	if a.results != nil {
		a.clearSearch()
	}
	if err := a.sess.Add(item); err != nil {
		a.reportMutation("Cannot add", err)
	} else {
		a.SetStatus("Added " + model.NameOf(item))
	}
	a.afterMutation(model.NameOf(item))
}

func (a *App) rename(oldName, newName string) {
	if err := a.sess.Rename(oldName, newName); err != nil {
		a.reportMutation("Cannot rename "+oldName, err)
	} else {
		a.SetStatus("Renamed " + oldName + " to " + newName)
	}
	a.afterMutation(newName)
}

func (a *App) editField(name, field, value string) {
	item, ok := a.sess.Current().Get(name)
	if !ok {
		a.SetError("No item named "+name, nil)
		return
	}
	upd := edit.UpdateOf(item)
	switch strings.ToLower(field) {
	case "name":
		upd.Name = value
	case "icon":
		upd.Icon = value
	case "target", "path":
		upd.Target = value
	case "args":
		upd.Args = value
	default:
		a.SetError("Unknown field "+field+" (name, icon, target, args)", nil)
		return
	}
	if _, isFolder := item.(*model.Folder); isFolder && (upd.Target != "" || upd.Args != "") {
		a.SetError("Folders have no target or args", nil)
		return
	}

	updated, err := a.sess.Update(name, upd)
	if err != nil {
		a.reportMutation("Cannot edit "+name, err)
		a.afterMutation(name)
		return
	}
	a.SetStatus("Updated " + model.NameOf(updated))
	a.afterMutation(model.NameOf(updated))
}

func (a *App) duplicate(name string) {
	dup, err := a.sess.Duplicate(name)
	if err != nil {
		a.reportMutation("Cannot duplicate "+name, err)
		a.afterMutation(name)
		return
	}
	a.SetStatus("Duplicated " + name + " as " + model.NameOf(dup))
	a.afterMutation(model.NameOf(dup))
}

func (a *App) delete(name string) {
	selected := a.list.Selected()
	if err := a.sess.Delete(name); err != nil {
		a.reportMutation("Cannot delete "+name, err)
	} else {
		a.SetStatus("Deleted " + name)
	}
	a.afterMutation("")
	a.list.Select(selected)
}

func (a *App) substitute(fieldName, oldValue, newValue string) {
	field, err := edit.ParseField(fieldName)
	if err != nil {
		a.SetError("Cannot substitute", err)
		return
	}
	n, err := a.sess.Substitute(field, oldValue, newValue)
	if err != nil {
		a.SetError("Failed to save", err)
	} else {
		a.SetStatus("Replaced " + strconv.Itoa(n) + " " + string(field) + " values")
	}
	a.afterMutation("")
}

func (a *App) cd(path string) {
	if err := a.sess.Navigate(session.SplitPath(path)); err != nil {
		a.SetError("Cannot open folder", err)
		return
	}
	a.results = nil
	a.list.Select(0)
	a.refresh()
}

func (a *App) scan(dir, ext string) {
	res, err := scan.Folder(dir, scan.Options{Ext: ext})
	if err != nil {
		a.SetError("Scan failed", err)
		return
	}
	if err := a.sess.AddTo(nil, res.Folder); err != nil {
		a.SetError("Failed to save", err)
	} else {
		a.SetStatus("Added " + strconv.Itoa(res.Folder.Len()) + " shortcuts to '" + res.Name + "'")
	}
	a.afterMutation("")
}

func (a *App) export(formatName, file string) {
	format, err := export.ParseFormat(formatName)
	if err != nil {
		a.SetError("Cannot export", err)
		return
	}
	opts := export.Options{DateFormat: a.exportDateFormat}
	if err := export.ToFile(a.sess.Root(), file, format, opts); err != nil {
		a.SetError("Export failed", err)
		return
	}
	a.SetStatus("Exported to " + file)
}

func (a *App) importFile(file string) {
	data, err := os.ReadFile(file)
	if err != nil {
		a.SetError("Cannot import", err)
		return
	}
	src, err := import_parser.ImportFile(file, string(data), import_parser.FormatAuto)
	if err != nil {
		a.SetError("Cannot import", err)
		return
	}
	if a.results != nil {
		a.clearSearch()
	}
	n, err := a.sess.Merge(a.sess.Path(), src)
	if err != nil {
		a.SetError("Failed to save", err)
	} else {
		a.SetStatus("Imported " + strconv.Itoa(n) + " items")
	}
	a.afterMutation("")
}

// filter shows the items matching a filter expression as search results.
// Words are re-quoted so quoted values survive command parsing.
func (a *App) filter(args []string) {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = arg
		if strings.ContainsAny(arg, " \t") {
			quoted[i] = `"` + arg + `"`
		}
	}
	results, err := a.sess.Query(strings.Join(quoted, " "))
	if err != nil {
		a.SetError("Bad filter", err)
		return
	}
	if results == nil {
		results = []search.Result{}
	}
	a.results = results
	a.list.Select(0)
	a.refresh()
	a.SetStatus(strconv.Itoa(len(results)) + " found")
}

func (a *App) reload() {
	a.sess.Reload()
	a.results = nil
	a.list.Select(0)
	a.refresh()
	a.SetStatus("Reloaded")
}

// reportMutation separates caller mistakes from failed saves in the status line
func (a *App) reportMutation(msg string, err error) {
	switch {
	case errors.Is(err, edit.ErrNotFound):
		a.SetError(msg+": no such item", nil)
	case errors.Is(err, model.ErrEmptyName):
		a.SetError(msg+": name is empty", nil)
	default:
		a.SetError(msg, err)
	}
}
