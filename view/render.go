package view

import (
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-edit/constant"
	"github.com/lixenwraith/vi-edit/terminal"
)

// Render redraws every row of the window from the document
// Each row shows line[currentColumn : currentColumn+width] padded with spaces
// Returns the first drawing error, rows after a failure are still attempted
func (v *Viewport) Render() error {
	if v.empty() {
		return nil
	}
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for row := 0; row < v.height; row++ {
		text := v.rowText(row)
		keep(v.win.Blit(0, row, text))
		keep(v.drawHighlight(row))
	}

	v.oldCursorX, v.oldCursorY = v.cursorX, v.cursorY
	if v.cursorDrawn {
		keep(v.drawCell(v.cursorX, v.cursorY, true))
	}
	return firstErr
}

// rowText returns the visible slice of the line on screen row, padded to the window width
// Every document column maps to one cell, see cellRune
func (v *Viewport) rowText(row int) string {
	text := ""
	if v.doc != nil {
		if l := v.doc.Line(v.currentLine + row); l != nil {
			runes := []rune(l.Slice(v.currentColumn, v.currentColumn+v.width))
			for i, r := range runes {
				runes[i] = cellRune(r)
			}
			text = string(runes)
		}
	}
	return runewidth.FillRight(text, v.width)
}

// cellRune is the rune drawn for r
// Tabs, control and zero-width characters have no cell of their own and draw as a blank
func cellRune(r rune) rune {
	if unicode.IsControl(r) || runewidth.RuneWidth(r) == 0 {
		return ' '
	}
	return r
}

// drawHighlight applies the highlight colors to the visible part of a line's
// selection, the stored range is clamped to the line
func (v *Viewport) drawHighlight(row int) error {
	if v.doc == nil {
		return nil
	}
	l := v.doc.Line(v.currentLine + row)
	if l == nil {
		return nil
	}
	start, end := l.Highlight()
	start = max(0, min(start, l.Len()))
	end = max(0, min(end, l.Len()))
	if start >= end {
		return nil
	}
	start = max(start, v.currentColumn)
	end = min(end, v.currentColumn+v.width)
	if start >= end {
		return nil
	}
	return v.win.SetAttributes(start-v.currentColumn, row, end-start, terminal.AttrNone,
		terminal.ColorHighlight, terminal.ColorHighlightPaper)
}

// charAt returns the document character shown at a screen cell, space when none
func (v *Viewport) charAt(x, y int) rune {
	if v.doc == nil {
		return ' '
	}
	l := v.doc.Line(v.currentLine + y)
	if l == nil {
		return ' '
	}
	r, err := l.CharAt(v.currentColumn + x)
	if err != nil {
		return ' '
	}
	return cellRune(r)
}

// drawCell draws the document character at a screen cell, reversed when on is set
func (v *Viewport) drawCell(x, y int, on bool) error {
	r := v.charAt(x, y)
	if on && constant.CursorGlyph != 0 {
		r = constant.CursorGlyph
	}
	attrs := terminal.AttrNone
	if on {
		attrs = terminal.AttrReverse
	}
	return v.win.BlitStyled(x, y, string(r), v.win.Ink, v.win.Paper, attrs)
}

// Tick advances the frame counter, every BlinkInterval ticks the cursor glyph toggles
// Returns true when the overlay changed and the window needs presenting
func (v *Viewport) Tick() bool {
	v.frame++
	if v.frame%constant.BlinkInterval != 0 {
		return false
	}
	v.cursorDrawn = !v.cursorDrawn
	v.DrawCursor()
	return true
}

// DrawCursor restores the character at the previous cursor cell, then draws the
// cursor in its current blink phase and records the cell as the previous one
func (v *Viewport) DrawCursor() error {
	if v.empty() {
		return nil
	}
	if err := v.drawCell(v.oldCursorX, v.oldCursorY, false); err != nil {
		return err
	}
	if err := v.drawCell(v.cursorX, v.cursorY, v.cursorDrawn); err != nil {
		return err
	}
	v.oldCursorX, v.oldCursorY = v.cursorX, v.cursorY
	return nil
}

// CursorVisible reports the blink phase
func (v *Viewport) CursorVisible() bool { return v.cursorDrawn }

// ShowCursor forces the blink phase on and restarts the cadence
// Called after input so the cursor is visible while typing
func (v *Viewport) ShowCursor() {
	v.cursorDrawn = true
	v.frame = 0
}
