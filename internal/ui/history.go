package ui

import (
	"github.com/Bladetrain3r/Magic-Launcher/internal/history"
)

// History keeps previous inputs of a line editor and lets the user walk
// back and forth through them.
type History struct {
	entries   []string // oldest first
	index     int      // -1 when not navigating
	max       int
	temporary string // input typed before navigation started
	manager   *history.Manager
	filename  string
}

// NewHistory creates an in-memory history of at most max entries
func NewHistory(max int) *History {
	return &History{index: -1, max: max}
}

// NewHistoryWithManager creates a history persisted to filename. Loading
// errors leave the history empty but still persisted.
func NewHistoryWithManager(max int, manager *history.Manager, filename string) (*History, error) {
	h := NewHistory(max)
	h.manager = manager
	h.filename = filename

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	if len(entries) > max {
		entries = entries[len(entries)-max:]
	}
	h.entries = entries
	return h, nil
}

// Add appends entry, skipping empty input and repeats of the latest entry
func (h *History) Add(entry string) {
	if entry == "" {
		return
	}
	h.Reset()
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
	if h.manager != nil && h.filename != "" {
		_ = h.manager.Save(h.filename, h.entries)
	}
}

// Previous steps back in history. The first step remembers current so Next
// can restore it.
func (h *History) Previous(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.index < 0:
		h.temporary = current
		h.index = len(h.entries) - 1
	case h.index > 0:
		h.index--
	}
	return h.entries[h.index], true
}

// Next steps forward; past the newest entry it returns the remembered input
func (h *History) Next() (string, bool) {
	if h.index < 0 {
		return "", false
	}
	h.index++
	if h.index >= len(h.entries) {
		temp := h.temporary
		h.Reset()
		return temp, true
	}
	return h.entries[h.index], true
}

// Reset stops navigating
func (h *History) Reset() {
	h.index = -1
	h.temporary = ""
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}
