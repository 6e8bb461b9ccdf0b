// Package search finds items anywhere in the launcher tree by name
package search

import (
	"slices"
	"strings"

	"github.com/Bladetrain3r/Magic-Launcher/internal/model"
)

// Result is a matching item together with the folders leading to it
type Result struct {
	DisplayName string
	Item        model.Item
	Path        []string // ancestor folder names from the root
}

// Search returns every item below root whose name contains query,
// case-insensitively. Results are in traversal order.
func Search(root *model.Folder, query string) []Result {
	return SearchWith(root, NewSubstringMatcher(query))
}

// SearchWith returns every item below root accepted by m. A matching folder is
// still descended into, so its children can match on their own.
func SearchWith(root *model.Folder, m Matcher) []Result {
	var results []Result
	root.Walk(func(item model.Item, path []string) {
		name := model.NameOf(item)
		if !m.Matches(name) {
			return
		}
		results = append(results, Result{
			DisplayName: DisplayName(name, path),
			Item:        item,
			Path:        slices.Clone(path),
		})
	})
	return results
}

// DisplayName renders a result name, e.g. "Action (Games)" or "Doom (Games > Action)"
func DisplayName(name string, path []string) string {
	if len(path) == 0 {
		return name
	}
	return name + " (" + strings.Join(path, " > ") + ")"
}
