package ui

import (
	"github.com/gdamore/tcell/v2"
)

// InputResult tells the caller what a key did to an input line
type InputResult int

const (
	InputEditing InputResult = iota
	InputSubmitted
	InputCancelled
)

// Input is a single-line editor with history, shared by the command line
// and the search bar. The cursor is a rune index.
type Input struct {
	Prompt  string
	text    []rune
	cursor  int
	history *History
}

// NewInput creates an input line; history may be nil
func NewInput(prompt string, h *History) *Input {
	if h == nil {
		h = NewHistory(50)
	}
	return &Input{Prompt: prompt, history: h}
}

// Reset clears the text and history navigation
func (in *Input) Reset() {
	in.text = nil
	in.cursor = 0
	in.history.Reset()
}

// Text returns the current input
func (in *Input) Text() string {
	return string(in.text)
}

// SetText replaces the input and moves the cursor to its end
func (in *Input) SetText(s string) {
	in.text = []rune(s)
	in.cursor = len(in.text)
}

// Cursor returns the cursor position in runes
func (in *Input) Cursor() int {
	return in.cursor
}

// HandleKey applies a key to the line. Enter submits and records the text
// in history, Escape cancels, Backspace on an empty line cancels too.
func (in *Input) HandleKey(ev *tcell.EventKey) InputResult {
	switch ev.Key() {
	case tcell.KeyEscape:
		return InputCancelled
	case tcell.KeyEnter:
		in.history.Add(in.Text())
		return InputSubmitted
	case tcell.KeyUp:
		if prev, ok := in.history.Previous(in.Text()); ok {
			in.SetText(prev)
		}
	case tcell.KeyDown:
		if next, ok := in.history.Next(); ok {
			in.SetText(next)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(in.text) == 0 {
			return InputCancelled
		}
		if in.cursor > 0 {
			in.text = append(in.text[:in.cursor-1], in.text[in.cursor:]...)
			in.cursor--
		}
	case tcell.KeyDelete:
		if in.cursor < len(in.text) {
			in.text = append(in.text[:in.cursor], in.text[in.cursor+1:]...)
		}
	case tcell.KeyLeft:
		if in.cursor > 0 {
			in.cursor--
		}
	case tcell.KeyRight:
		if in.cursor < len(in.text) {
			in.cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		in.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		in.cursor = len(in.text)
	case tcell.KeyCtrlU:
		in.text = append([]rune{}, in.text[in.cursor:]...)
		in.cursor = 0
	case tcell.KeyCtrlK:
		in.text = in.text[:in.cursor]
	case tcell.KeyCtrlW:
		in.deleteWordBackwards()
	case tcell.KeyRune:
		r := ev.Rune()
		in.text = append(in.text[:in.cursor], append([]rune{r}, in.text[in.cursor:]...)...)
		in.cursor++
	}
	return InputEditing
}

func (in *Input) deleteWordBackwards() {
	pos := in.cursor
	for pos > 0 && (in.text[pos-1] == ' ' || in.text[pos-1] == '\t') {
		pos--
	}
	for pos > 0 && in.text[pos-1] != ' ' && in.text[pos-1] != '\t' {
		pos--
	}
	in.text = append(in.text[:pos], in.text[in.cursor:]...)
	in.cursor = pos
}

// Render draws the prompt and text on row y, with the cursor cell inverted
func (in *Input) Render(screen *Screen, y int, promptStyle, textStyle tcell.Style) {
	width := screen.GetWidth()
	screen.FillRow(y, textStyle)
	x := screen.DrawString(0, y, in.Prompt, promptStyle)

	for i, r := range in.text {
		style := textStyle
		if i == in.cursor {
			style = style.Reverse(true)
		}
		if x >= width {
			return
		}
		screen.SetCell(x, y, r, style)
		x += RuneWidth(r)
	}
	if in.cursor == len(in.text) && x < width {
		screen.SetCell(x, y, ' ', textStyle.Reverse(true))
	}
}
