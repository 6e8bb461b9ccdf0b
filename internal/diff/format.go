package diff

import (
	"fmt"
	"slices"
	"strings"
)

// BuildDiffLines converts a DiffResult into display lines, sections in the
// order new, deleted, modified followed by a summary
func BuildDiffLines(result *DiffResult) []DiffLine {
	var lines []DiffLine

	if len(result.NewItems) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeNewSection, Content: "New Items:"})
		for _, path := range sortedKeys(result.NewItems) {
			lines = append(lines, formatItem(DiffTypeNewItem, "+", result.NewItems[path])...)
		}
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
	}

	if len(result.DeletedItems) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeDeletedSection, Content: "Deleted Items:"})
		for _, path := range sortedKeys(result.DeletedItems) {
			lines = append(lines, formatItem(DiffTypeDeletedItem, "-", result.DeletedItems[path])...)
		}
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
	}

	if len(result.ModifiedItems) > 0 {
		lines = append(lines, DiffLine{Type: DiffTypeModifiedSection, Content: "Modified Items:"})
		for _, path := range sortedKeys(result.ModifiedItems) {
			lines = append(lines, formatModifiedItem(result.ModifiedItems[path])...)
		}
		lines = append(lines, DiffLine{Type: DiffTypeBlank})
	}

	lines = append(lines, DiffLine{
		Type: DiffTypeSummary,
		Content: fmt.Sprintf("%d modified, %d added, %d deleted",
			len(result.ModifiedItems), len(result.NewItems), len(result.DeletedItems)),
	})
	return lines
}

func formatItem(lineType DiffLineType, mark string, item *ItemData) []DiffLine {
	lines := []DiffLine{{
		Type:    lineType,
		Content: fmt.Sprintf("%s %s (%s)", mark, item.Path, item.Kind),
		Indent:  1,
	}}
	if item.Target != "" {
		lines = append(lines, DiffLine{
			Type:    DiffTypeItemDetail,
			Content: "path: " + strings.TrimSpace(item.Target+" "+item.Args),
			Indent:  2,
		})
	}
	return lines
}

func formatModifiedItem(change *ItemChange) []DiffLine {
	lines := []DiffLine{{
		Type:    DiffTypeModifiedItem,
		Content: "~ " + change.Item.Path,
		Indent:  1,
	}}
	names := make([]string, 0, len(change.Fields))
	for name := range change.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		v := change.Fields[name]
		lines = append(lines, DiffLine{
			Type:    DiffTypeItemDetail,
			Content: fmt.Sprintf("%s: %q -> %q", name, v[0], v[1]),
			Indent:  2,
		})
	}
	return lines
}

// String renders a line with two spaces per indent level
func (l DiffLine) String() string {
	return strings.Repeat("  ", l.Indent) + l.Content
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
