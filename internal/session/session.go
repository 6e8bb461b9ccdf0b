// Package session ties the launcher tree, its store and the navigator
// together. Every mutation is applied to the folder the navigator addresses
// and is followed by a save.
package session

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/edit"
	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
	"github.com/Bladetrain3r/Magic-Launcher/internal/navigator"
	"github.com/Bladetrain3r/Magic-Launcher/internal/search"
	"github.com/Bladetrain3r/Magic-Launcher/internal/storage"
)

// ErrNotFolder is returned when a path does not lead to a folder
var ErrNotFolder = errors.Base("not a folder")

// Store is the persistence the session needs
type Store interface {
	Load() *model.Folder
	Save(root *model.Folder) error
}

// Session owns the single in-memory copy of the tree
type Session struct {
	store Store
	root  *model.Folder
	nav   *navigator.Navigator
	mode  search.Mode
	log   zerolog.Logger
}

// New loads the tree from store and positions the navigator at HOME
func New(store Store, logger zerolog.Logger) *Session {
	s := &Session{
		store: store,
		nav:   navigator.New(),
		mode:  search.ModeSubstring,
		log:   logger.With().Str("component", "session").Logger(),
	}
	s.root = store.Load()
	return s
}

var _ Store = (*storage.JSONStore)(nil)

// Root returns the HOME folder
func (s *Session) Root() *model.Folder {
	return s.root
}

// Reload replaces the tree with a fresh load and returns to HOME
func (s *Session) Reload() {
	s.root = s.store.Load()
	s.nav.Reset()
}

// Save persists the whole tree. On failure the in-memory tree is kept so the
// caller can retry.
func (s *Session) Save() error {
	if err := s.store.Save(s.root); err != nil {
		return errors.Errorf("saving shortcuts: %w", err)
	}
	return nil
}

// Current returns the folder the navigator addresses
func (s *Session) Current() *model.Folder {
	return s.nav.Resolve(s.root)
}

// Path returns the navigator path
func (s *Session) Path() []string {
	return s.nav.Path()
}

// Breadcrumb renders the navigator path
func (s *Session) Breadcrumb() string {
	return s.nav.Breadcrumb()
}

// Descend enters a subfolder of the current folder
func (s *Session) Descend(name string) bool {
	return s.nav.Descend(s.root, name)
}

// Ascend goes up one level
func (s *Session) Ascend() bool {
	return s.nav.Ascend()
}

// Navigate moves to the folder at path. The navigator is left unchanged when
// path does not lead to a folder.
func (s *Session) Navigate(path []string) error {
	probe := navigator.New()
	probe.SetPath(path)
	if !probe.Resolved(s.root) {
		return errors.Errorf("%w: %s", ErrNotFolder, navigator.Breadcrumb(path))
	}
	s.nav.SetPath(path)
	return nil
}

// SetSearchMode selects substring or fuzzy matching for Search
func (s *Session) SetSearchMode(mode search.Mode) {
	s.mode = mode
}

// SearchMode returns the active matcher mode
func (s *Session) SearchMode() search.Mode {
	return s.mode
}

// Search finds items anywhere in the tree by name
func (s *Session) Search(query string) []search.Result {
	results := search.SearchWith(s.root, search.NewMatcher(s.mode, query))
	s.log.Debug().Str("query", query).Int("results", len(results)).Msg("search")
	return results
}

// Query finds items matching a filter expression such as
// `kind:shortcut in:Games -target:steam`
func (s *Session) Query(query string) ([]search.Result, error) {
	expr, err := search.ParseQuery(query)
	if err != nil {
		return nil, err
	}
	results := search.Select(s.root, expr)
	s.log.Debug().Str("query", query).Stringer("expr", expr).Int("results", len(results)).Msg("query")
	return results, nil
}

// OpenResult navigates to a search result. For a folder the navigator enters
// it; for a shortcut it moves to the folder containing it.
func (s *Session) OpenResult(r search.Result) error {
	path := r.Path
	if _, ok := r.Item.(*model.Folder); ok {
		path = append(append([]string{}, r.Path...), model.NameOf(r.Item))
	}
	return s.Navigate(path)
}

// Add inserts item into the current folder, replacing an item of the same name
func (s *Session) Add(item model.Item) error {
	if err := edit.Add(s.Current(), item); err != nil {
		return err
	}
	s.log.Info().Str("name", model.NameOf(item)).Str("folder", s.Breadcrumb()).Msg("added item")
	return s.Save()
}

// AddTo inserts item into the folder at path, leaving the navigator alone
func (s *Session) AddTo(path []string, item model.Item) error {
	probe := navigator.New()
	probe.SetPath(path)
	if !probe.Resolved(s.root) {
		return errors.Errorf("%w: %s", ErrNotFolder, navigator.Breadcrumb(path))
	}
	if err := edit.Add(probe.Resolve(s.root), item); err != nil {
		return err
	}
	s.log.Info().Str("name", model.NameOf(item)).Str("folder", navigator.Breadcrumb(path)).Msg("added item")
	return s.Save()
}

// Merge adds every top-level item of src to the folder at path and saves
// once. Items whose name is taken replace the existing ones.
func (s *Session) Merge(path []string, src *model.Folder) (int, error) {
	probe := navigator.New()
	probe.SetPath(path)
	if !probe.Resolved(s.root) {
		return 0, errors.Errorf("%w: %s", ErrNotFolder, navigator.Breadcrumb(path))
	}
	dest := probe.Resolve(s.root)
	names := src.Names()
	for _, name := range names {
		if name == "" || model.NameOf(src.Children[name]) == "" {
			return 0, errors.WithStack(model.ErrEmptyName)
		}
	}
	for _, name := range names {
		if err := edit.Add(dest, src.Children[name]); err != nil {
			return 0, err
		}
	}
	s.log.Info().Int("items", len(names)).Str("folder", navigator.Breadcrumb(path)).Msg("merged items")
	return len(names), s.Save()
}

// Rename renames an item of the current folder
func (s *Session) Rename(oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	if err := edit.Rename(s.Current(), oldName, newName); err != nil {
		return err
	}
	s.log.Info().Str("from", oldName).Str("to", newName).Msg("renamed item")
	return s.Save()
}

// Update replaces the fields of an item of the current folder
func (s *Session) Update(name string, upd edit.Update) (model.Item, error) {
	item, err := edit.Apply(s.Current(), name, upd)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("name", name).Msg("edited item")
	return item, s.Save()
}

// Duplicate copies an item of the current folder under a fresh name
func (s *Session) Duplicate(name string) (model.Item, error) {
	current := s.Current()
	item, ok := current.Get(name)
	if !ok {
		return nil, errors.Errorf("%w: %q", edit.ErrNotFound, name)
	}
	dup := edit.Duplicate(current, item)
	s.log.Info().Str("name", name).Str("copy", model.NameOf(dup)).Msg("duplicated item")
	return dup, s.Save()
}

// Delete removes an item of the current folder
func (s *Session) Delete(name string) error {
	if err := edit.Delete(s.Current(), name); err != nil {
		return err
	}
	s.log.Info().Str("name", name).Msg("deleted item")
	return s.Save()
}

// Substitute replaces an exact field value across the whole tree
func (s *Session) Substitute(field edit.Field, oldValue, newValue string) (int, error) {
	n := edit.Substitute(s.root, field, oldValue, newValue)
	s.log.Info().Str("field", string(field)).Int("changed", n).Msg("substituted values")
	return n, s.Save()
}

// Properties describes an item the way the properties dialog does
func Properties(item model.Item) string {
	var sb strings.Builder
	base := item.Common()
	fmt.Fprintf(&sb, "Name: %s\n", base.Name)
	switch it := item.(type) {
	case *model.Folder:
		fmt.Fprintf(&sb, "Type: Folder\n")
		fmt.Fprintf(&sb, "Icon: %s\n", base.Icon)
		fmt.Fprintf(&sb, "Items: %d", it.Len())
	case *model.Shortcut:
		fmt.Fprintf(&sb, "Type: Shortcut\n")
		fmt.Fprintf(&sb, "Icon: %s\n", base.Icon)
		fmt.Fprintf(&sb, "Path: %s\n", it.Target)
		fmt.Fprintf(&sb, "Args: %s", it.Args)
	}
	return sb.String()
}

// SplitPath parses a "/"-separated folder path. Empty segments are dropped, so
// "" and "/" both mean HOME.
func SplitPath(p string) []string {
	var path []string
	for _, seg := range strings.Split(p, "/") {
		if seg = strings.TrimSpace(seg); seg != "" {
			path = append(path, seg)
		}
	}
	return path
}
