// Package buffer implements the single-line editable text unit shared by
// documents and single-line edit fields.
package buffer

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-edit/status"
	"github.com/lixenwraith/vi-edit/terminal"
)

var (
	ErrAlreadyInitialized = errors.New("buffer: already initialized")
	ErrNotInitialized     = errors.New("buffer: not initialized")
	ErrIndexOutOfBounds   = errors.New("buffer: index out of bounds")
)

// Line is one editable line of text with its own edit cursor
// Columns are runes: index i addresses the i-th rune of the text
// Invariant: 0 <= cursor <= len(text)
type Line struct {
	text   []rune
	cursor int

	hlStart, hlEnd int

	ink, paper terminal.ColorID
	x, y       int

	state status.Tracker
}

// New returns an initialized line holding text with the cursor at 0
func New(text string) *Line {
	l := &Line{}
	_ = l.Init(text, 0, 0)
	return l
}

// Init sets the initial text and anchor, only once per line
func (l *Line) Init(text string, x, y int) error {
	if l.state.IsInitialized() {
		return ErrAlreadyInitialized
	}
	l.text = []rune(text)
	l.cursor = 0
	l.x, l.y = x, y
	l.ink, l.paper = terminal.ColorText, terminal.ColorPaper
	l.state.MarkInitialized()
	l.state.SetReady(true)
	return nil
}

// Status exposes the line's lifecycle flags
func (l *Line) Status() *status.Tracker {
	return &l.state
}

// Len returns the text length in runes
func (l *Line) Len() int {
	return len(l.text)
}

// String returns the text
func (l *Line) String() string {
	return string(l.text)
}

// Runes returns a copy of the text
func (l *Line) Runes() []rune {
	return append([]rune(nil), l.text...)
}

// Slice returns text[from:to] clamped to the line, empty when the range is empty
func (l *Line) Slice(from, to int) string {
	from = max(from, 0)
	to = min(to, len(l.text))
	if from >= to {
		return ""
	}
	return string(l.text[from:to])
}

// SetText replaces the text and clamps the cursor
func (l *Line) SetText(text string) {
	l.text = []rune(text)
	l.cursor = min(l.cursor, len(l.text))
}

// Cursor returns the edit offset
func (l *Line) Cursor() int {
	return l.cursor
}

// SetCursor moves the edit offset, clamped to [0, Len]
func (l *Line) SetCursor(pos int) {
	l.cursor = max(0, min(pos, len(l.text)))
}

// InsertChar inserts ch at the cursor and advances the cursor
func (l *Line) InsertChar(ch rune) error {
	if !l.state.IsInitialized() {
		return ErrNotInitialized
	}
	l.text = append(l.text, 0)
	copy(l.text[l.cursor+1:], l.text[l.cursor:])
	l.text[l.cursor] = ch
	l.cursor++
	return nil
}

// InsertString inserts s at the cursor and advances the cursor past it
func (l *Line) InsertString(s string) error {
	for _, r := range s {
		if err := l.InsertChar(r); err != nil {
			return err
		}
	}
	return nil
}

// DeleteCharBackward removes the rune before the cursor, no-op at 0
func (l *Line) DeleteCharBackward() {
	if l.cursor == 0 {
		return
	}
	l.text = append(l.text[:l.cursor-1], l.text[l.cursor:]...)
	l.cursor--
}

// DeleteForward removes up to n runes starting at the cursor and returns how many were removed
func (l *Line) DeleteForward(n int) int {
	if n <= 0 || l.cursor >= len(l.text) {
		return 0
	}
	n = min(n, len(l.text)-l.cursor)
	l.text = append(l.text[:l.cursor], l.text[l.cursor+n:]...)
	return n
}

func (l *Line) MoveCursorLeft() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *Line) MoveCursorRight() {
	if l.cursor < len(l.text) {
		l.cursor++
	}
}

func (l *Line) MoveCursorHome() {
	l.cursor = 0
}

func (l *Line) MoveCursorEnd() {
	l.cursor = len(l.text)
}

// CharAt returns the rune at index
func (l *Line) CharAt(index int) (rune, error) {
	if index < 0 || index >= len(l.text) {
		return 0, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfBounds, index, len(l.text))
	}
	return l.text[index], nil
}

// PadTo appends spaces until the line is at least n runes long
func (l *Line) PadTo(n int) {
	for len(l.text) < n {
		l.text = append(l.text, ' ')
	}
}

// Truncate drops everything from index on, clamping the cursor
func (l *Line) Truncate(index int) {
	if index < 0 {
		index = 0
	}
	if index >= len(l.text) {
		return
	}
	l.text = l.text[:index]
	l.cursor = min(l.cursor, index)
}

// Split cuts the line at index and returns the tail, the line keeps the head
func (l *Line) Split(index int) string {
	index = max(0, min(index, len(l.text)))
	tail := string(l.text[index:])
	l.Truncate(index)
	return tail
}

// Append adds s after the last rune without moving the cursor
func (l *Line) Append(s string) {
	l.text = append(l.text, []rune(s)...)
}

// SetHighlight stores the selection range as given
// Readers clamp when drawing; an empty or inverted range highlights nothing
func (l *Line) SetHighlight(start, end int) {
	l.hlStart, l.hlEnd = start, end
}

// Highlight returns the stored selection range
func (l *Line) Highlight() (start, end int) {
	return l.hlStart, l.hlEnd
}

// ClearHighlight empties the selection
func (l *Line) ClearHighlight() {
	l.hlStart, l.hlEnd = 0, 0
}

// SetColors sets the ink and paper slots used when the line is drawn
func (l *Line) SetColors(ink, paper terminal.ColorID) {
	l.ink, l.paper = ink, paper
}

// Colors returns the ink and paper slots
func (l *Line) Colors() (ink, paper terminal.ColorID) {
	return l.ink, l.paper
}

// SetAnchor sets the logical position the line is drawn at
func (l *Line) SetAnchor(x, y int) {
	l.x, l.y = x, y
}

// Anchor returns the logical position
func (l *Line) Anchor() (x, y int) {
	return l.x, l.y
}
