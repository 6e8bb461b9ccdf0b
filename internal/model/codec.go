package model

import (
	"encoding/json"

	"gitlab.com/tozd/go/errors"
)

// Keys used in the tree file
const (
	KeyType  = "type"
	KeyIcon  = "icon"
	KeyItems = "items"
	KeyPath  = "path"
	KeyArgs  = "args"
)

// ErrEmptyName is returned when an item would be stored without a name
var ErrEmptyName = errors.Base("item name is empty")

// Decode converts an untyped node into an Item. Missing fields take their
// defaults: icon is the uppercase first character of name, type is shortcut,
// items is empty.
func Decode(name string, raw map[string]any) (Item, error) {
	if name == "" {
		return nil, errors.WithStack(ErrEmptyName)
	}
	return decode(name, raw)
}

func decode(name string, raw map[string]any) (Item, error) {
	icon := stringField(raw, KeyIcon)

	if Kind(stringField(raw, KeyType)) == KindFolder {
		folder := NewFolder(name, icon)
		children, err := objectField(raw, KeyItems)
		if err != nil {
			return nil, errors.Errorf("folder %q: %w", name, err)
		}
		for childName, childRaw := range children {
			node, ok := childRaw.(map[string]any)
			if !ok {
				return nil, errors.Errorf("item %q in %q: expected object, got %T", childName, name, childRaw)
			}
			child, err := decode(childName, node)
			if err != nil {
				return nil, err
			}
			folder.Add(child)
		}
		return folder, nil
	}

	return NewShortcut(name, icon, stringField(raw, KeyPath), stringField(raw, KeyArgs)), nil
}

// Encode converts an Item into its untyped form
func Encode(item Item) map[string]any {
	raw := map[string]any{
		KeyType: string(item.Kind()),
		KeyIcon: item.Common().Icon,
	}
	switch it := item.(type) {
	case *Folder:
		raw[KeyItems] = encodeChildren(it)
	case *Shortcut:
		raw[KeyPath] = it.Target
		raw[KeyArgs] = it.Args
	}
	return raw
}

func encodeChildren(f *Folder) map[string]any {
	children := make(map[string]any, len(f.Children))
	for name, child := range f.Children {
		children[name] = Encode(child)
	}
	return children
}

// DecodeRoot decodes the top-level mapping of a tree file into the HOME folder
func DecodeRoot(raw map[string]any) (*Folder, error) {
	root := NewRoot()
	for name, value := range raw {
		node, ok := value.(map[string]any)
		if !ok {
			return nil, errors.Errorf("item %q: expected object, got %T", name, value)
		}
		item, err := Decode(name, node)
		if err != nil {
			return nil, err
		}
		root.Add(item)
	}
	return root, nil
}

// EncodeRoot encodes the HOME folder into the top-level mapping of a tree file
func EncodeRoot(root *Folder) map[string]any {
	return encodeChildren(root)
}

// ParseRoot parses tree file contents
func ParseRoot(data []byte) (*Folder, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Errorf("failed to parse JSON: %w", err)
	}
	if raw == nil {
		return nil, errors.New("tree file is empty")
	}
	return DecodeRoot(raw)
}

// MarshalRoot renders the tree as indented JSON
func MarshalRoot(root *Folder) ([]byte, error) {
	data, err := json.MarshalIndent(EncodeRoot(root), "", "  ")
	if err != nil {
		return nil, errors.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

func objectField(raw map[string]any, key string) (map[string]any, error) {
	value, ok := raw[key]
	if !ok || value == nil {
		return nil, nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, errors.Errorf("%q: expected object, got %T", key, value)
	}
	return obj, nil
}
