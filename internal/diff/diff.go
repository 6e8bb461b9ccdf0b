// Package diff compares two launcher trees item by item
package diff

import (
	"strings"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// Compare returns the items added, deleted and modified going from older to newer.
// Items are matched by path, so a rename shows up as a delete and an add.
func Compare(older, newer *model.Folder) *DiffResult {
	before := flatten(older)
	after := flatten(newer)

	result := &DiffResult{
		NewItems:      make(map[string]*ItemData),
		DeletedItems:  make(map[string]*ItemData),
		ModifiedItems: make(map[string]*ItemChange),
	}

	for path, item := range after {
		prev, ok := before[path]
		if !ok {
			result.NewItems[path] = item
			continue
		}
		if change := compareItems(prev, item); change != nil {
			result.ModifiedItems[path] = change
		}
	}
	for path, item := range before {
		if _, ok := after[path]; !ok {
			result.DeletedItems[path] = item
		}
	}
	return result
}

func flatten(root *model.Folder) map[string]*ItemData {
	items := make(map[string]*ItemData)
	if root == nil {
		return items
	}
	root.Walk(func(item model.Item, path []string) {
		data := &ItemData{
			Path: strings.Join(append(append([]string{}, path...), model.NameOf(item)), "/"),
			Kind: string(item.Kind()),
			Icon: item.Common().Icon,
		}
		if sc, ok := item.(*model.Shortcut); ok {
			data.Target = sc.Target
			data.Args = sc.Args
		}
		items[data.Path] = data
	})
	return items
}

func compareItems(older, newer *ItemData) *ItemChange {
	fields := make(map[string][2]string)
	check := func(name, a, b string) {
		if a != b {
			fields[name] = [2]string{a, b}
		}
	}
	check("type", older.Kind, newer.Kind)
	check("icon", older.Icon, newer.Icon)
	check("path", older.Target, newer.Target)
	check("args", older.Args, newer.Args)

	if len(fields) == 0 {
		return nil
	}
	return &ItemChange{Item: newer, OldItem: older, Fields: fields}
}
