package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Widths below are display columns, not bytes: wide runes (CJK, emoji)
// take two columns, combining marks and control characters none.

// RuneWidth returns the display width of a single rune
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s to at most maxWidth columns without splitting a rune
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := 0
	for i, r := range s {
		width += RuneWidth(r)
		if width > maxWidth {
			return s[:i]
		}
	}
	return s
}

// TruncateToWidthWithEllipsis truncates s and ends it with "..." when it
// does not fit in maxWidth columns
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return TruncateToWidth(s, maxWidth)
	}
	return TruncateToWidth(s, maxWidth-3) + "..."
}

// PadStringToWidth right-pads s with spaces to width columns
func PadStringToWidth(s string, width int) string {
	if pad := width - StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
