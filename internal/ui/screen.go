package ui

import (
	"github.com/gdamore/tcell/v2"
	"gitlab.com/tozd/go/errors"

	"github.com/Bladetrain3r/Magic-Launcher/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a terminal screen using the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFromTcell(tcellScreen, t)
}

// NewScreenFromTcell wraps and initializes an existing tcell screen, such as
// a simulation screen.
func NewScreenFromTcell(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, errors.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Classic()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear fills the screen with the theme background
func (s *Screen) Clear() {
	s.tcellScreen.SetStyle(s.BackgroundStyle())
	s.tcellScreen.Clear()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// FillRow paints a whole row with blanks in style
func (s *Screen) FillRow(y int, style tcell.Style) {
	for x := 0; x < s.width; x++ {
		s.SetCell(x, y, ' ', style)
	}
}

// DrawString draws text at the given position and returns the column after
// it. Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(x, y, r, style)
		x += w
	}
	return x
}

// DrawStringLimited draws text truncated to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateToWidthWithEllipsis(text, maxWidth), style)
}

// PollEvent polls for the next event (key press, resize, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Sync refreshes the size after a resize and redraws everything
func (s *Screen) Sync() {
	s.Size()
	s.tcellScreen.Sync()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	s.width, s.height = s.tcellScreen.Size()
	return s.width, s.height
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	w, _ := s.Size()
	return w
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, h := s.Size()
	return h
}

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.Theme.Colors.Background)
}

// HeaderStyle returns the style of the title bar
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HeaderText, s.Theme.Colors.HeaderBackground).Bold(true)
}

// BreadcrumbStyle returns the style of the location line
func (s *Screen) BreadcrumbStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.Breadcrumb, tcell.ColorBlack)
}

// SearchLabelStyle returns the style for the search prompt
func (s *Screen) SearchLabelStyle() tcell.Style {
	return s.Theme.Style(s.Theme.Colors.SearchLabel).Bold(true)
}

// SearchTextStyle returns the style for search text
func (s *Screen) SearchTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.SearchText, tcell.ColorBlack)
}

// CommandPromptStyle returns the style for command prompt
func (s *Screen) CommandPromptStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.CommandPrompt, tcell.ColorBlack).Bold(true)
}

// CommandTextStyle returns the style for command text
func (s *Screen) CommandTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.CommandText, tcell.ColorBlack)
}

// HelpStyle returns the style for help content
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, tcell.ColorBlack)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, tcell.ColorBlack)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, tcell.ColorBlack).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMessage, tcell.ColorBlack)
}

// StatusErrorStyle returns the style for error messages
func (s *Screen) StatusErrorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusError, tcell.ColorBlack).Bold(true)
}
