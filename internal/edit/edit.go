// Package edit mutates folders of the launcher tree: add, rename, duplicate,
// delete, in-place edits and bulk field substitution.
//
// Mutation is permissive. Adding or renaming onto an existing name replaces
// that entry. None of these functions persist anything.
package edit

import (
	"fmt"

	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// ErrNotFound is returned when the named item does not exist in the folder
var ErrNotFound = errors.Base("item not found")

// Add inserts item into parent under its own name, replacing any item with that name
func Add(parent *model.Folder, item model.Item) error {
	if model.NameOf(item) == "" {
		return errors.WithStack(model.ErrEmptyName)
	}
	ensureIcon(item)
	parent.Add(item)
	return nil
}

// Rename moves the item stored under oldName to newName, updating its name.
// Renaming to the same name is a no-op.
func Rename(parent *model.Folder, oldName, newName string) error {
	if newName == "" {
		return errors.WithStack(model.ErrEmptyName)
	}
	if oldName == newName {
		return nil
	}
	item, ok := parent.Get(oldName)
	if !ok {
		return errors.Errorf("%w: %q", ErrNotFound, oldName)
	}
	parent.Remove(oldName)
	item.Common().Name = newName
	ensureIcon(item)
	parent.Add(item)
	return nil
}

// Delete removes the named item from parent
func Delete(parent *model.Folder, name string) error {
	if !parent.Remove(name) {
		return errors.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// CopyName returns the first of "name copy", "name copy 2", "name copy 3", ...
// that is not taken in parent
func CopyName(parent *model.Folder, name string) string {
	candidate := name + " copy"
	for n := 2; parent.Has(candidate); n++ {
		candidate = fmt.Sprintf("%s copy %d", name, n)
	}
	return candidate
}

// Duplicate inserts a copy of item into parent under a fresh name and returns
// it. A duplicated folder starts out empty.
func Duplicate(parent *model.Folder, item model.Item) model.Item {
	name := CopyName(parent, model.NameOf(item))

	var dup model.Item
	switch it := item.(type) {
	case *model.Folder:
		dup = model.NewFolder(name, it.Icon)
	case *model.Shortcut:
		dup = model.NewShortcut(name, it.Icon, it.Target, it.Args)
	}
	parent.Add(dup)
	return dup
}

// Update holds the editable fields of an item. Target and Args are ignored for folders.
type Update struct {
	Name   string
	Icon   string
	Target string
	Args   string
}

// UpdateOf returns the current fields of item, as a starting point for Apply
func UpdateOf(item model.Item) Update {
	upd := Update{Name: item.Common().Name, Icon: item.Common().Icon}
	if sc, ok := item.(*model.Shortcut); ok {
		upd.Target = sc.Target
		upd.Args = sc.Args
	}
	return upd
}

// Apply replaces the fields of the named item, moving it if the name changed.
// An empty icon becomes the default icon for the new name.
func Apply(parent *model.Folder, name string, upd Update) (model.Item, error) {
	item, ok := parent.Get(name)
	if !ok {
		return nil, errors.Errorf("%w: %q", ErrNotFound, name)
	}
	if upd.Name == "" {
		return nil, errors.WithStack(model.ErrEmptyName)
	}

	item.Common().Icon = upd.Icon
	if sc, ok := item.(*model.Shortcut); ok {
		sc.Target = upd.Target
		sc.Args = upd.Args
	}
	if err := Rename(parent, name, upd.Name); err != nil {
		return nil, err
	}
	ensureIcon(item)
	return item, nil
}

func ensureIcon(item model.Item) {
	base := item.Common()
	if base.Icon == "" {
		base.Icon = model.DefaultIcon(base.Name)
	}
}
