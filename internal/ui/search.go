package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Bladetrain3r/Magic-Launcher/internal/history"
)

// SearchBar is the live query line shown while searching. The results
// themselves are produced by the caller on every change.
type SearchBar struct {
	active  bool
	input   *Input
	results int
	mode    string
}

// NewSearchBar creates a search bar without history persistence
func NewSearchBar() *SearchBar {
	return &SearchBar{input: NewInput("Search: ", nil)}
}

// NewSearchBarWithHistory creates a search bar whose history is kept in search.toml
func NewSearchBarWithHistory(manager *history.Manager) *SearchBar {
	h, _ := NewHistoryWithManager(50, manager, "search.toml")
	return &SearchBar{input: NewInput("Search: ", h)}
}

// Start opens the bar with an empty query
func (s *SearchBar) Start(mode string) {
	s.active = true
	s.mode = mode
	s.results = 0
	s.input.Reset()
}

// Stop closes the bar
func (s *SearchBar) Stop() {
	s.active = false
}

// IsActive returns whether the bar is open
func (s *SearchBar) IsActive() bool {
	return s.active
}

// Query returns the current query text
func (s *SearchBar) Query() string {
	return s.input.Text()
}

// SetResultCount updates the count shown at the end of the bar
func (s *SearchBar) SetResultCount(n int) {
	s.results = n
}

// HandleKey edits the query. changed reports whether the query text moved,
// result reports submit or cancel.
func (s *SearchBar) HandleKey(ev *tcell.EventKey) (changed bool, result InputResult) {
	before := s.input.Text()
	result = s.input.HandleKey(ev)
	if result == InputCancelled {
		s.Stop()
	}
	return s.input.Text() != before, result
}

// Render draws the bar on row y
func (s *SearchBar) Render(screen *Screen, y int) {
	if !s.active {
		return
	}
	s.input.Render(screen, y, screen.SearchLabelStyle(), screen.SearchTextStyle())

	summary := fmt.Sprintf(" %d found [%s] ", s.results, s.mode)
	x := screen.GetWidth() - StringWidth(summary)
	if x > StringWidth(s.input.Prompt)+len(s.input.Text())+1 {
		screen.DrawString(x, y, summary, screen.SearchLabelStyle())
	}
}
