package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	Background tcell.Color

	// Title bar and breadcrumb
	HeaderText       tcell.Color
	HeaderBackground tcell.Color
	Breadcrumb       tcell.Color

	// Item list
	ItemText       tcell.Color
	ItemBackground tcell.Color
	ItemSelected   tcell.Color
	FolderIcon     tcell.Color
	ShortcutIcon   tcell.Color
	BrokenShortcut tcell.Color
	ResultPath     tcell.Color

	// Search bar and command line
	SearchLabel   tcell.Color
	SearchText    tcell.Color
	CommandPrompt tcell.Color
	CommandText   tcell.Color

	// Help overlay
	HelpBorder  tcell.Color
	HelpTitle   tcell.Color
	HelpContent tcell.Color

	// Status line
	StatusMessage tcell.Color
	StatusError   tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a theme using terminal defaults
func Default() *Theme {
	d := tcell.ColorDefault
	return &Theme{
		Name: "default",
		Colors: Colors{
			Background: d, HeaderText: d, HeaderBackground: d, Breadcrumb: d,
			ItemText: d, ItemBackground: d, ItemSelected: d,
			FolderIcon: d, ShortcutIcon: d, BrokenShortcut: d, ResultPath: d,
			SearchLabel: d, SearchText: d, CommandPrompt: d, CommandText: d,
			HelpBorder: d, HelpTitle: d, HelpContent: d,
			StatusMessage: d, StatusError: d,
		},
	}
}

// Classic returns the 16 colour CGA look: dark gray desk, blue labels,
// yellow folders.
func Classic() *Theme {
	return &Theme{
		Name: "cga",
		Colors: Colors{
			Background:       CGA("dark_gray"),
			HeaderText:       CGA("black"),
			HeaderBackground: CGA("light_gray"),
			Breadcrumb:       CGA("light_cyan"),
			ItemText:         CGA("white"),
			ItemBackground:   CGA("blue"),
			ItemSelected:     CGA("cyan"),
			FolderIcon:       CGA("yellow"),
			ShortcutIcon:     CGA("light_gray"),
			BrokenShortcut:   CGA("red"),
			ResultPath:       CGA("light_gray"),
			SearchLabel:      CGA("white"),
			SearchText:       CGA("light_green"),
			CommandPrompt:    CGA("yellow"),
			CommandText:      CGA("light_green"),
			HelpBorder:       CGA("white"),
			HelpTitle:        CGA("yellow"),
			HelpContent:      CGA("light_gray"),
			StatusMessage:    CGA("light_green"),
			StatusError:      CGA("light_red"),
		},
	}
}

// Style returns the foreground/background pair on the theme background
func (t *Theme) Style(fg tcell.Color) tcell.Style {
	return ColorPairToStyle(fg, t.Colors.Background)
}
