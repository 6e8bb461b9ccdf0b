// Package model contains the launcher item tree: folders and shortcuts
package model

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind discriminates the two item variants
type Kind string

const (
	KindFolder   Kind = "folder"
	KindShortcut Kind = "shortcut"
)

// Item is a node in the launcher tree. The only implementations are
// *Folder and *Shortcut; callers switch on the concrete type.
type Item interface {
	Kind() Kind
	Common() *Base
	sealed()
}

// Base holds the attributes shared by every item
type Base struct {
	Name string
	Icon string
}

// Common returns the shared attributes of the item
func (b *Base) Common() *Base { return b }

func (*Base) sealed() {}

// Shortcut is a leaf item referencing a launch target
type Shortcut struct {
	Base
	Target string // path, bare command name or URL
	Args   string
}

// Kind implements Item
func (*Shortcut) Kind() Kind { return KindShortcut }

// Folder owns its children, keyed by name
type Folder struct {
	Base
	Children map[string]Item
}

// Kind implements Item
func (*Folder) Kind() Kind { return KindFolder }

// NewFolder creates an empty folder. An empty icon falls back to the default icon for name.
func NewFolder(name, icon string) *Folder {
	return &Folder{
		Base:     Base{Name: name, Icon: iconOrDefault(icon, name)},
		Children: make(map[string]Item),
	}
}

// NewShortcut creates a shortcut. An empty icon falls back to the default icon for name.
func NewShortcut(name, icon, target, args string) *Shortcut {
	return &Shortcut{
		Base:   Base{Name: name, Icon: iconOrDefault(icon, name)},
		Target: target,
		Args:   args,
	}
}

// NewRoot creates the unnamed HOME folder that holds the top-level items
func NewRoot() *Folder {
	return &Folder{Children: make(map[string]Item)}
}

// FallbackIcon is the icon of items whose name does not start with a valid character
const FallbackIcon = "?"

// DefaultIcon returns the uppercase first character of name, or FallbackIcon
func DefaultIcon(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || r == utf8.RuneError {
		return FallbackIcon
	}
	return string(unicode.ToUpper(r))
}

func iconOrDefault(icon, name string) string {
	if icon == "" {
		return DefaultIcon(name)
	}
	return icon
}

// NameOf returns the name of an item
func NameOf(it Item) string {
	return it.Common().Name
}

// Add inserts item under its own name, replacing any existing entry with that name
func (f *Folder) Add(item Item) {
	if f.Children == nil {
		f.Children = make(map[string]Item)
	}
	f.Children[item.Common().Name] = item
}

// Remove removes the child with the given name, reporting whether it existed
func (f *Folder) Remove(name string) bool {
	if _, ok := f.Children[name]; !ok {
		return false
	}
	delete(f.Children, name)
	return true
}

// Get returns the child with the given name
func (f *Folder) Get(name string) (Item, bool) {
	item, ok := f.Children[name]
	return item, ok
}

// Has reports whether a child with the given name exists
func (f *Folder) Has(name string) bool {
	_, ok := f.Children[name]
	return ok
}

// Subfolder returns the child with the given name if it is a folder
func (f *Folder) Subfolder(name string) (*Folder, bool) {
	sub, ok := f.Children[name].(*Folder)
	return sub, ok
}

// Names returns the child names in traversal order (sorted, case-insensitive first)
func (f *Folder) Names() []string {
	names := make([]string, 0, len(f.Children))
	for name := range f.Children {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return names
}

// Len returns the number of direct children
func (f *Folder) Len() int {
	return len(f.Children)
}

// Walk visits every item below f depth-first in traversal order. The path passed
// to fn holds the names of the item's ancestors below f.
func (f *Folder) Walk(fn func(item Item, path []string)) {
	walk(f, nil, fn)
}

func walk(f *Folder, path []string, fn func(Item, []string)) {
	for _, name := range f.Names() {
		item := f.Children[name]
		fn(item, path)
		if sub, ok := item.(*Folder); ok {
			walk(sub, append(slices.Clone(path), name), fn)
		}
	}
}

// Count returns the number of folders and shortcuts below f
func (f *Folder) Count() (folders, shortcuts int) {
	f.Walk(func(item Item, _ []string) {
		switch item.(type) {
		case *Folder:
			folders++
		case *Shortcut:
			shortcuts++
		}
	})
	return folders, shortcuts
}
