package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Entry is one row of the item list
type Entry struct {
	Icon   string
	Label  string
	Detail string // shown dimmed after the label, e.g. the folder a result lives in
	Folder bool
	Broken bool
}

// ItemList shows the items of the current folder, or search results, one
// per row with a selection cursor.
type ItemList struct {
	entries  []Entry
	selected int
	offset   int
}

// NewItemList creates an empty list
func NewItemList() *ItemList {
	return &ItemList{}
}

// SetEntries replaces the rows, keeping the selection in range
func (l *ItemList) SetEntries(entries []Entry) {
	l.entries = entries
	l.clamp()
}

// Entries returns the rows
func (l *ItemList) Entries() []Entry {
	return l.entries
}

// Len returns the number of rows
func (l *ItemList) Len() int {
	return len(l.entries)
}

// Selected returns the selected row index, or -1 for an empty list
func (l *ItemList) Selected() int {
	if len(l.entries) == 0 {
		return -1
	}
	return l.selected
}

// Select moves the selection to index i, clamped to the list
func (l *ItemList) Select(i int) {
	l.selected = i
	l.clamp()
}

// SelectByLabel selects the first row with the given label
func (l *ItemList) SelectByLabel(label string) bool {
	for i, e := range l.entries {
		if e.Label == label {
			l.selected = i
			return true
		}
	}
	return false
}

// SelectNext moves the selection down one row
func (l *ItemList) SelectNext() { l.Select(l.selected + 1) }

// SelectPrev moves the selection up one row
func (l *ItemList) SelectPrev() { l.Select(l.selected - 1) }

func (l *ItemList) clamp() {
	if l.selected >= len(l.entries) {
		l.selected = len(l.entries) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Render draws rows from y=top up to but not including y=bottom, scrolling
// to keep the selection visible.
func (l *ItemList) Render(screen *Screen, top, bottom int) {
	height := bottom - top
	if height <= 0 {
		return
	}
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+height {
		l.offset = l.selected - height + 1
	}

	width := screen.GetWidth()
	colors := screen.Theme.Colors
	for row := 0; row < height && l.offset+row < len(l.entries); row++ {
		i := l.offset + row
		e := l.entries[i]
		y := top + row

		bg := colors.Background
		if i == l.selected {
			bg = colors.ItemSelected
		}
		screen.FillRow(y, tcell.StyleDefault.Background(bg))

		iconColor := colors.ShortcutIcon
		if e.Folder {
			iconColor = colors.FolderIcon
		}
		iconStyle := tcell.StyleDefault.Foreground(colors.Background).Background(iconColor).Bold(true)
		x := screen.DrawString(1, y, " "+TruncateToWidth(e.Icon, 2)+" ", iconStyle)
		x++

		labelStyle := tcell.StyleDefault.Foreground(colors.ItemText).Background(colors.ItemBackground)
		if i == l.selected {
			labelStyle = labelStyle.Background(colors.ItemSelected).Bold(true)
		}
		label := " " + e.Label + " "
		if e.Folder {
			label = " " + e.Label + "/ "
		}
		if e.Broken {
			labelStyle = labelStyle.Foreground(colors.BrokenShortcut)
			label += "! "
		}
		x = screen.DrawStringLimited(x, y, label, width-x, labelStyle)

		if e.Detail != "" && x+2 < width {
			detailStyle := tcell.StyleDefault.Foreground(colors.ResultPath).Background(bg)
			screen.DrawStringLimited(x+1, y, e.Detail, width-x-1, detailStyle)
		}
	}
}
