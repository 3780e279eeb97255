package terminal

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ErrOutsideWindow is returned for draws addressed past the window bounds
var ErrOutsideWindow = errors.New("terminal: position outside window")

// Window is a rectangular area of the screen with default ink and paper
// Coordinates passed to its methods are window-relative
type Window struct {
	scr        tcell.Screen
	pal        *Palette
	X, Y       int
	W, H       int
	Ink, Paper ColorID
}

// NewWindow creates a window over scr, the palette resolves ink/paper slots
func NewWindow(scr tcell.Screen, pal *Palette, w, h, x, y int, ink, paper ColorID) *Window {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Window{scr: scr, pal: pal, X: x, Y: y, W: w, H: h, Ink: ink, Paper: paper}
}

// Sub creates a window at (x,y) relative to w sharing its screen, palette and colors
func (w *Window) Sub(width, height, x, y int) *Window {
	return NewWindow(w.scr, w.pal, width, height, w.X+x, w.Y+y, w.Ink, w.Paper)
}

// Resize moves and resizes the window
func (w *Window) Resize(width, height, x, y int) {
	w.W, w.H, w.X, w.Y = max(width, 0), max(height, 0), x, y
}

// Contains reports whether absolute screen coordinates fall inside the window
func (w *Window) Contains(absX, absY int) bool {
	return absX >= w.X && absX < w.X+w.W && absY >= w.Y && absY < w.Y+w.H
}

// Blit draws text at (x,y) with the window's colors
func (w *Window) Blit(x, y int, text string) error {
	return w.BlitStyled(x, y, text, w.Ink, w.Paper, AttrNone)
}

// BlitStyled draws text at (x,y), clipping at the right edge
// Wide runes advance by their display width
func (w *Window) BlitStyled(x, y int, text string, ink, paper ColorID, attrs Attr) error {
	if y < 0 || y >= w.H {
		return ErrOutsideWindow
	}
	st := attrs.Apply(w.pal.Pair(ink, paper))
	col := x
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > w.W {
			break
		}
		if col >= 0 {
			w.scr.SetContent(w.X+col, w.Y+y, r, nil, st)
		}
		col += rw
	}
	return nil
}

// SetAttributes restyles n cells starting at (x,y) without changing their runes
func (w *Window) SetAttributes(x, y, n int, attrs Attr, ink, paper ColorID) error {
	if y < 0 || y >= w.H || x < 0 || x >= w.W {
		return ErrOutsideWindow
	}
	st := attrs.Apply(w.pal.Pair(ink, paper))
	end := min(x+n, w.W)
	for col := x; col < end; col++ {
		r, comb, _, _ := w.scr.GetContent(w.X+col, w.Y+y)
		if r == 0 {
			r = ' '
		}
		w.scr.SetContent(w.X+col, w.Y+y, r, comb, st)
	}
	return nil
}

// Rune returns the rune currently drawn at (x,y), space when outside
func (w *Window) Rune(x, y int) rune {
	if x < 0 || y < 0 || x >= w.W || y >= w.H {
		return ' '
	}
	r, _, _, _ := w.scr.GetContent(w.X+x, w.Y+y)
	if r == 0 {
		return ' '
	}
	return r
}

// Clear fills the window with spaces in the window's colors
func (w *Window) Clear() {
	st := w.pal.Pair(w.Ink, w.Paper)
	for y := 0; y < w.H; y++ {
		for x := 0; x < w.W; x++ {
			w.scr.SetContent(w.X+x, w.Y+y, ' ', nil, st)
		}
	}
}

// Box draws a single-line border on the window's outer cells
func (w *Window) Box(ink, paper ColorID) {
	if w.W < 2 || w.H < 2 {
		return
	}
	st := w.pal.Pair(ink, paper)
	right, bottom := w.X+w.W-1, w.Y+w.H-1
	for x := w.X + 1; x < right; x++ {
		w.scr.SetContent(x, w.Y, tcell.RuneHLine, nil, st)
		w.scr.SetContent(x, bottom, tcell.RuneHLine, nil, st)
	}
	for y := w.Y + 1; y < bottom; y++ {
		w.scr.SetContent(w.X, y, tcell.RuneVLine, nil, st)
		w.scr.SetContent(right, y, tcell.RuneVLine, nil, st)
	}
	w.scr.SetContent(w.X, w.Y, tcell.RuneULCorner, nil, st)
	w.scr.SetContent(right, w.Y, tcell.RuneURCorner, nil, st)
	w.scr.SetContent(w.X, bottom, tcell.RuneLLCorner, nil, st)
	w.scr.SetContent(right, bottom, tcell.RuneLRCorner, nil, st)
}

// Separator draws a horizontal rule across row y joined to the border
func (w *Window) Separator(y int, ink, paper ColorID) error {
	if y <= 0 || y >= w.H-1 {
		return ErrOutsideWindow
	}
	st := w.pal.Pair(ink, paper)
	for x := 1; x < w.W-1; x++ {
		w.scr.SetContent(w.X+x, w.Y+y, tcell.RuneHLine, nil, st)
	}
	w.scr.SetContent(w.X, w.Y+y, tcell.RuneLTee, nil, st)
	w.scr.SetContent(w.X+w.W-1, w.Y+y, tcell.RuneRTee, nil, st)
	return nil
}

// Present flushes pending cell changes to the terminal
func (w *Window) Present() {
	w.scr.Show()
}
