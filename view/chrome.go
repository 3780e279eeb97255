package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-edit/constant"
	"github.com/lixenwraith/vi-edit/terminal"
)

// GutterWidth returns the columns needed to number total lines, separator included
func GutterWidth(total int) int {
	return max(len(strconv.Itoa(max(total, 1))), constant.GutterMinDigits) + 1
}

// Gutter draws 1-based line numbers beside a viewport
type Gutter struct {
	win *terminal.Window
}

// NewGutter creates a gutter drawing into win
func NewGutter(win *terminal.Window) *Gutter {
	return &Gutter{win: win}
}

// Window returns the gutter's window
func (g *Gutter) Window() *terminal.Window { return g.win }

// Render numbers the rows for lines first..first+height-1, rows past total show '~'
// The cursor row is drawn bold
func (g *Gutter) Render(first, total, cursorRow int) error {
	digits := g.win.W - 1
	if digits <= 0 {
		return nil
	}
	var firstErr error
	for row := 0; row < g.win.H; row++ {
		idx := first + row
		label := "~"
		if idx < total {
			label = strconv.Itoa(idx + 1)
		}
		text := fmt.Sprintf("%*s ", digits, label)
		attrs := terminal.AttrNone
		if row == cursorRow {
			attrs = terminal.AttrBold
		}
		if err := g.win.BlitStyled(0, row, text, terminal.ColorGutter, terminal.ColorGutterPaper, attrs); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// StatusInfo is what the status line shows
type StatusInfo struct {
	Filename string
	Dirty    bool
	Line     int // 1-based
	Column   int // 1-based
	Total    int
	Message  string
}

// StatusLine draws a single row summary under the viewport
type StatusLine struct {
	win *terminal.Window
}

// NewStatusLine creates a status line drawing into win
func NewStatusLine(win *terminal.Window) *StatusLine {
	return &StatusLine{win: win}
}

// Window returns the status line's window
func (s *StatusLine) Window() *terminal.Window { return s.win }

// Format lays info out in width cells: name and dirty marker on the left,
// position on the right, the message between them truncated to fit
func (info StatusInfo) Format(width int) string {
	if width <= 0 {
		return ""
	}
	name := info.Filename
	if name == "" {
		name = "[No Name]"
	}
	left := " " + name
	if info.Dirty {
		left += " [+]"
	}
	right := fmt.Sprintf("Ln %d, Col %d  %d lines ", info.Line, info.Column, info.Total)

	leftW := runewidth.StringWidth(left)
	rightW := runewidth.StringWidth(right)
	if leftW+rightW > width {
		// Position wins over the name on narrow screens
		if rightW >= width {
			return runewidth.Truncate(right, width, "")
		}
		left = runewidth.Truncate(left, width-rightW, "…")
		leftW = runewidth.StringWidth(left)
	}

	middle := ""
	if room := width - leftW - rightW; room > 2 && info.Message != "" {
		middle = runewidth.Truncate("  "+info.Message, room, "…")
	}
	gap := width - leftW - runewidth.StringWidth(middle) - rightW
	return left + middle + strings.Repeat(" ", max(gap, 0)) + right
}

// Render draws info across the first row of the window
func (s *StatusLine) Render(info StatusInfo) error {
	if s.win.H == 0 {
		return nil
	}
	return s.win.BlitStyled(0, 0, info.Format(s.win.W), terminal.ColorStatus, terminal.ColorStatusPaper, terminal.AttrNone)
}
