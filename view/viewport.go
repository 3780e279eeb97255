// Package view maps a document onto a fixed-size terminal window.
//
// The viewport keeps two coordinate pairs: the scroll offset
// (currentLine, currentColumn) of the window's top-left cell into the
// document, and the screen cursor (cursorX, cursorY) inside the window.
// The document position under the cursor is always
// (currentColumn+cursorX, currentLine+cursorY). The cursor moves freely in the
// interior; only at a window edge does the scroll offset change instead.
package view

import (
	"github.com/lixenwraith/vi-edit/constant"
	"github.com/lixenwraith/vi-edit/document"
	"github.com/lixenwraith/vi-edit/keymap"
	"github.com/lixenwraith/vi-edit/status"
	"github.com/lixenwraith/vi-edit/terminal"
)

// Viewport is the scrollable editing window over one document
type Viewport struct {
	win  *terminal.Window
	doc  *document.Document
	keys *keymap.Dispatcher

	state status.Tracker

	width, height int

	currentLine, currentColumn int
	cursorX, cursorY           int
	oldCursorX, oldCursorY     int

	frame       uint32
	cursorDrawn bool
}

// New creates a viewport over doc drawn into win and registers the editing keys
func New(win *terminal.Window, doc *document.Document) *Viewport {
	v := &Viewport{
		win:    win,
		doc:    doc,
		keys:   keymap.New(),
		width:  win.W,
		height: win.H,
	}
	v.registerKeys()
	v.state.MarkInitialized()
	v.state.SetReady(true)
	return v
}

func (v *Viewport) registerKeys() {
	v.keys.Register("up", []terminal.Key{terminal.KeyUp}, func(terminal.Key) { v.MoveUp() })
	v.keys.Register("down", []terminal.Key{terminal.KeyDown}, func(terminal.Key) { v.MoveDown() })
	v.keys.Register("left", []terminal.Key{terminal.KeyLeft}, func(terminal.Key) { v.MoveLeft() })
	v.keys.Register("right", []terminal.Key{terminal.KeyRight}, func(terminal.Key) { v.MoveRight() })
	v.keys.Register("page_up", []terminal.Key{terminal.KeyPageUp}, func(terminal.Key) { v.PageUp() })
	v.keys.Register("page_down", []terminal.Key{terminal.KeyPageDown}, func(terminal.Key) { v.PageDown() })
	v.keys.Register("home", []terminal.Key{terminal.KeyHome}, func(terminal.Key) { v.Home() })
	v.keys.Register("end", []terminal.Key{terminal.KeyEnd}, func(terminal.Key) { v.End() })
	v.keys.Register("backspace", []terminal.Key{terminal.KeyBackspace}, func(terminal.Key) { v.Backspace() })
	v.keys.Register("delete", []terminal.Key{terminal.KeyDelete}, func(terminal.Key) { v.Delete() })
	v.keys.Register("enter", []terminal.Key{terminal.KeyEnter}, func(terminal.Key) { v.Enter() })
	v.keys.Register("tab", []terminal.Key{terminal.KeyTab}, func(terminal.Key) { v.Tab() })
}

// Keys exposes the viewport's binding table
func (v *Viewport) Keys() *keymap.Dispatcher { return v.keys }

// Status exposes the viewport's flags
func (v *Viewport) Status() *status.Tracker { return &v.state }

// Window returns the window the viewport draws into
func (v *Viewport) Window() *terminal.Window { return v.win }

// Document returns the viewed document
func (v *Viewport) Document() *document.Document { return v.doc }

// SetDocument switches to doc and scrolls back to the origin
func (v *Viewport) SetDocument(doc *document.Document) {
	v.doc = doc
	v.currentLine, v.currentColumn = 0, 0
	v.cursorX, v.cursorY = 0, 0
	v.oldCursorX, v.oldCursorY = 0, 0
}

// Resize moves the window and clamps the screen cursor into it
func (v *Viewport) Resize(width, height, x, y int) {
	v.win.Resize(width, height, x, y)
	v.width, v.height = v.win.W, v.win.H
	v.cursorX = max(0, min(v.cursorX, v.width-1))
	v.cursorY = max(0, min(v.cursorY, v.height-1))
	v.oldCursorX, v.oldCursorY = v.cursorX, v.cursorY
}

// Size returns the window dimensions
func (v *Viewport) Size() (width, height int) { return v.width, v.height }

// CurrentLine is the document line shown on the top row
func (v *Viewport) CurrentLine() int { return v.currentLine }

// CurrentColumn is the document column shown in the leftmost cell
func (v *Viewport) CurrentColumn() int { return v.currentColumn }

// Cursor returns the screen cursor relative to the window
func (v *Viewport) Cursor() (x, y int) { return v.cursorX, v.cursorY }

// DocLine is the document line under the cursor
func (v *Viewport) DocLine() int { return v.currentLine + v.cursorY }

// DocColumn is the document column under the cursor
func (v *Viewport) DocColumn() int { return v.currentColumn + v.cursorX }

// TotalLines returns the document's line count
func (v *Viewport) TotalLines() int {
	if v.doc == nil {
		return 0
	}
	return v.doc.TotalLines()
}

func (v *Viewport) empty() bool {
	return v.width <= 0 || v.height <= 0
}

// MoveUp moves the cursor up a row, scrolling when it is on the top row
func (v *Viewport) MoveUp() {
	if v.empty() {
		return
	}
	if v.cursorY > 0 {
		v.cursorY--
		return
	}
	if v.currentLine > 0 {
		v.currentLine--
	}
}

// MoveDown moves the cursor down a row, scrolling when it is on the bottom row
// Scrolling stops once the last document line is at the top of the window
func (v *Viewport) MoveDown() {
	if v.empty() {
		return
	}
	if v.cursorY < v.height-1 {
		v.cursorY++
		return
	}
	if v.currentLine < v.TotalLines()-1 {
		v.currentLine++
	}
}

// MoveRight moves the cursor right a column
// On the right edge the view jumps a full stride with the cursor cell held
func (v *Viewport) MoveRight() {
	if v.empty() {
		return
	}
	if v.cursorX < v.width-1 {
		v.cursorX++
		return
	}
	v.currentColumn += constant.HorizontalStride
}

// MoveLeft moves the cursor left a column
// On the left edge the view retreats up to a stride and the cursor cell shifts
// right by the same amount, keeping the document column in place
func (v *Viewport) MoveLeft() {
	if v.empty() {
		return
	}
	if v.cursorX > 0 {
		v.cursorX--
		return
	}
	if v.currentColumn > 0 {
		d := min(v.currentColumn, constant.HorizontalStride, v.width-1)
		v.currentColumn -= d
		v.cursorX += d
	}
}

// PageUp repeats MoveUp for a window height less one row
func (v *Viewport) PageUp() {
	for range max(v.height-1, 1) {
		v.MoveUp()
	}
}

// PageDown repeats MoveDown for a window height less one row
func (v *Viewport) PageDown() {
	for range max(v.height-1, 1) {
		v.MoveDown()
	}
}

// Home moves to column 0 of the cursor line
func (v *Viewport) Home() {
	v.gotoColumn(0)
}

// End moves just past the last character of the cursor line
func (v *Viewport) End() {
	n := 0
	if l := v.doc.Line(v.DocLine()); l != nil {
		n = l.Len()
	}
	v.gotoColumn(n)
}

// gotoColumn places the cursor on document column col
// When col is off screen the view is realigned on a stride boundary
func (v *Viewport) gotoColumn(col int) {
	if v.empty() {
		return
	}
	col = max(col, 0)
	if col < v.currentColumn || col >= v.currentColumn+v.width {
		cc := col - col%constant.HorizontalStride
		if col-cc >= v.width {
			cc = col - (v.width - 1)
		}
		v.currentColumn = cc
	}
	v.cursorX = col - v.currentColumn
}

// advance moves the cursor one document column right after an insert
// At the right edge the view jumps a stride and the cursor cell pays it back
func (v *Viewport) advance() {
	if v.cursorX < v.width-1 {
		v.cursorX++
		return
	}
	shift := min(constant.HorizontalStride, v.width)
	v.currentColumn += shift
	v.cursorX = v.cursorX + 1 - shift
}

// retreat moves the cursor one document column left, no-op at column 0
func (v *Viewport) retreat() {
	if v.cursorX > 0 {
		v.cursorX--
		return
	}
	if v.currentColumn > 0 {
		d := min(v.currentColumn, constant.HorizontalStride, v.width)
		v.currentColumn -= d
		v.cursorX = d - 1
	}
}

// InsertChar writes ch at the cursor position, padding the line with spaces
// when the cursor is past its end, and advances the cursor
func (v *Viewport) InsertChar(ch rune) {
	if v.empty() || v.doc == nil {
		return
	}
	col := v.DocColumn()
	line := v.doc.EnsureLine(v.DocLine())
	line.PadTo(col)
	line.SetCursor(col)
	if err := line.InsertChar(ch); err != nil {
		return
	}
	v.doc.MarkDirty()
	v.advance()
}

// Tab inserts spaces up to the next multiple of four columns
func (v *Viewport) Tab() {
	v.InsertChar(' ')
	for v.DocColumn()%4 != 0 {
		v.InsertChar(' ')
	}
}

// Backspace deletes the character left of the cursor
// At column 0 the cursor line is joined onto the previous line
func (v *Viewport) Backspace() {
	if v.empty() || v.doc == nil {
		return
	}
	row, col := v.DocLine(), v.DocColumn()
	line := v.doc.Line(row)

	if col == 0 {
		if row == 0 {
			return
		}
		prev := v.doc.Line(row - 1)
		joinAt := 0
		if prev != nil {
			joinAt = prev.Len()
			if line != nil {
				prev.Append(line.String())
				v.doc.EraseLine(row)
			}
		}
		v.MoveUp()
		v.gotoColumn(joinAt)
		return
	}

	if line != nil && col <= line.Len() {
		line.SetCursor(col)
		line.DeleteCharBackward()
		v.doc.MarkDirty()
	}
	v.retreat()
}

// Delete removes the character under the cursor
// At or past the end of the line the next line is joined on
func (v *Viewport) Delete() {
	if v.empty() || v.doc == nil {
		return
	}
	row, col := v.DocLine(), v.DocColumn()
	line := v.doc.Line(row)
	if line == nil {
		return
	}
	if col < line.Len() {
		line.SetCursor(col)
		line.DeleteForward(1)
		v.doc.MarkDirty()
		return
	}
	next := v.doc.Line(row + 1)
	if next == nil {
		return
	}
	line.PadTo(col)
	line.Append(next.String())
	v.doc.EraseLine(row + 1)
}

// Enter splits the cursor line at the cursor and moves to the start of the new line
func (v *Viewport) Enter() {
	if v.empty() || v.doc == nil {
		return
	}
	row, col := v.DocLine(), v.DocColumn()
	line := v.doc.EnsureLine(row)
	tail := line.Split(col)
	v.doc.InsertLine(row+1, tail)
	v.MoveDown()
	v.gotoColumn(0)
}

// InsertText inserts s at the cursor, newlines split lines
func (v *Viewport) InsertText(s string) {
	for _, r := range s {
		switch r {
		case '\n':
			v.Enter()
		case '\r':
		case '\t':
			v.Tab()
		default:
			v.InsertChar(r)
		}
	}
}

// HandleInput runs key through the binding table, unbound printable keys are typed
// Returns true when the view needs a redraw
func (v *Viewport) HandleInput(key terminal.Key) bool {
	if key == terminal.KeyNone {
		return false
	}
	if v.keys.Dispatch(key) > 0 {
		return true
	}
	if key.IsRune() {
		v.InsertChar(key.Rune())
		return true
	}
	return false
}

// HandleMouse places the cursor on a left click and scrolls on the wheel
func (v *Viewport) HandleMouse(m terminal.MouseState) bool {
	if !m.Valid || v.empty() || !v.win.Contains(m.X, m.Y) {
		return false
	}
	switch {
	case m.Pressed(terminal.WheelUp):
		for range 3 {
			if v.currentLine > 0 {
				v.currentLine--
			}
		}
		return true
	case m.Pressed(terminal.WheelDown):
		for range 3 {
			if v.currentLine < v.TotalLines()-1 {
				v.currentLine++
			}
		}
		return true
	case m.Pressed(terminal.ButtonLeft):
		v.cursorX = m.X - v.win.X
		v.cursorY = m.Y - v.win.Y
		return true
	}
	return false
}
