// Package dialog implements modal windows that take all input while active.
//
// A Control is a bordered window with optional title, status text, up to two
// buttons and a vertical scrollbar. One input event is processed per call:
// key bindings first, then buttons under the mouse. FileBrowser drives a
// Control as an explicit state machine and Stack keeps the active dialogs.
package dialog

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-edit/constant"
	"github.com/lixenwraith/vi-edit/keymap"
	"github.com/lixenwraith/vi-edit/status"
	"github.com/lixenwraith/vi-edit/terminal"
)

var (
	ErrNotInitialized = errors.New("dialog: not initialized")
	ErrTooManyButtons = errors.New("dialog: button capacity reached")
)

// Drawable is anything that redraws itself into its window
type Drawable interface {
	Draw() error
}

// InputHandler consumes one key and the mouse state of the same event
type InputHandler interface {
	Process(key terminal.Key, mouse terminal.MouseState) (int, error)
}

// Rect is a screen rectangle in absolute coordinates
type Rect struct {
	X, Y, W, H int
}

// ContainsStrict reports whether (x,y) is inside r excluding its 1-cell border
func (r Rect) ContainsStrict(x, y int) bool {
	return x > r.X && x < r.X+r.W-1 && y > r.Y && y < r.Y+r.H-1
}

// Button is a clickable labelled box
type Button struct {
	Label   string
	Rect    Rect
	OnClick func()
}

const buttonHeight = 3

// ContentFunc draws the main content into area, relative to the dialog window
type ContentFunc func(win *terminal.Window, area Rect) error

// Control is the base modal window
type Control struct {
	win   *terminal.Window
	keys  *keymap.Dispatcher
	state status.Tracker

	title      string
	statusText string
	statusInk  terminal.ColorID
	buttons    []Button

	scrollbar bool
	scrollPos int

	content ContentFunc
}

// Init attaches the control to its window
func (c *Control) Init(win *terminal.Window) error {
	if win == nil {
		return ErrNotInitialized
	}
	c.win = win
	c.win.Ink, c.win.Paper = terminal.ColorDialog, terminal.ColorDialogPaper
	c.keys = keymap.New()
	c.title, c.statusText, c.statusInk = "", "", terminal.ColorDialog
	c.buttons = nil
	c.scrollbar, c.scrollPos = false, 0
	c.content = nil
	c.state.Reset()
	c.state.MarkInitialized()
	c.state.SetReady(true)
	c.layoutButtons()
	return nil
}

// Status exposes the control's flags
func (c *Control) Status() *status.Tracker { return &c.state }

// Keys exposes the control's binding table, nil before Init
func (c *Control) Keys() *keymap.Dispatcher { return c.keys }

// Window returns the dialog window, nil before Init
func (c *Control) Window() *terminal.Window { return c.win }

// SetTitle sets the text on the top row, empty removes the title band
func (c *Control) SetTitle(title string) { c.title = title }

// Title returns the title text
func (c *Control) Title() string { return c.title }

// SetStatus sets the text above the buttons, empty removes the status band
func (c *Control) SetStatus(text string) {
	c.statusText = text
	c.statusInk = terminal.ColorDialog
}

// SetError sets status text drawn in the error color and flags the control
func (c *Control) SetError(text string) {
	c.statusText = text
	c.statusInk = terminal.ColorError
	c.state.SetError(text != "")
}

// StatusText returns the status text
func (c *Control) StatusText() string { return c.statusText }

// SetContent sets the drawer for the area left inside the bands
func (c *Control) SetContent(fn ContentFunc) { c.content = fn }

// EnableScrollbar reserves the rightmost content column for a scrollbar
func (c *Control) EnableScrollbar(on bool) { c.scrollbar = on }

// SetScroll sets the scrollbar position clamped to 0..100
func (c *Control) SetScroll(pos int) {
	c.scrollPos = max(0, min(pos, constant.ScrollbarMax))
}

// ScrollPos returns the scrollbar position
func (c *Control) ScrollPos() int { return c.scrollPos }

// AddButton adds a button, the first is laid out on the left and the second on the right
func (c *Control) AddButton(label string, onClick func()) error {
	if !c.state.IsInitialized() {
		return ErrNotInitialized
	}
	if len(c.buttons) >= constant.MaxButtons {
		return ErrTooManyButtons
	}
	c.buttons = append(c.buttons, Button{Label: label, OnClick: onClick})
	c.layoutButtons()
	return nil
}

// Buttons returns the laid-out buttons
func (c *Control) Buttons() []Button {
	return append([]Button(nil), c.buttons...)
}

// Resize moves the dialog window and lays the buttons out again
func (c *Control) Resize(width, height, x, y int) {
	if c.win == nil {
		return
	}
	c.win.Resize(width, height, x, y)
	c.layoutButtons()
}

func (c *Control) layoutButtons() {
	if c.win == nil {
		return
	}
	y := c.win.Y + c.win.H - 1 - buttonHeight
	for i := range c.buttons {
		b := &c.buttons[i]
		w := runewidth.StringWidth(b.Label) + 2 + 2*constant.ButtonPadding
		x := c.win.X + 2
		if i == 1 {
			x = c.win.X + c.win.W - 2 - w
		}
		b.Rect = Rect{X: x, Y: y, W: w, H: buttonHeight}
	}
}

// ContentArea returns the window-relative area left for content
func (c *Control) ContentArea() Rect {
	if c.win == nil {
		return Rect{}
	}
	top, bottom := 1, c.win.H-1
	if c.title != "" {
		top += 2
	}
	if len(c.buttons) > 0 {
		bottom -= buttonHeight
	}
	if c.statusText != "" {
		bottom -= 2
	}
	w := c.win.W - 2
	if c.scrollbar {
		w--
	}
	return Rect{X: 1, Y: top, W: max(w, 0), H: max(bottom-top, 0)}
}

// Process runs key through the bindings, then fires any button the mouse is
// pressing inside of, and returns how many actions ran
func (c *Control) Process(key terminal.Key, mouse terminal.MouseState) (int, error) {
	if !c.state.IsInitialized() {
		return 0, ErrNotInitialized
	}
	fired := c.keys.Dispatch(key)
	if !mouse.Valid || !mouse.Pressed(terminal.ButtonLeft) {
		return fired, nil
	}
	for _, b := range c.buttons {
		if b.Rect.ContainsStrict(mouse.X, mouse.Y) {
			if b.OnClick != nil {
				b.OnClick()
			}
			fired++
		}
	}
	return fired, nil
}

// Draw paints the frame, title, status, buttons, scrollbar and content in that order
func (c *Control) Draw() error {
	if !c.state.IsInitialized() {
		return ErrNotInitialized
	}
	w := c.win
	w.Clear()
	w.Box(terminal.ColorDialog, terminal.ColorDialogPaper)
	inner := w.W - 2

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.title != "" {
		keep(w.Separator(2, terminal.ColorDialog, terminal.ColorDialogPaper))
		keep(w.BlitStyled(1, 1, center(c.title, inner), terminal.ColorDialog, terminal.ColorDialogPaper, terminal.AttrBold))
	}

	statusRow := w.H - 2
	if len(c.buttons) > 0 {
		statusRow -= buttonHeight
	}
	if c.statusText != "" {
		keep(w.Separator(statusRow-1, terminal.ColorDialog, terminal.ColorDialogPaper))
		keep(w.BlitStyled(1, statusRow, runewidth.Truncate(c.statusText, inner, "…"), c.statusInk, terminal.ColorDialogPaper, terminal.AttrNone))
	}

	for _, b := range c.buttons {
		bw := w.Sub(b.Rect.W, b.Rect.H, b.Rect.X-w.X, b.Rect.Y-w.Y)
		bw.Box(terminal.ColorDialog, terminal.ColorDialogPaper)
		keep(bw.Blit(1, 1, center(b.Label, b.Rect.W-2)))
	}

	if c.scrollbar {
		keep(c.drawScrollbar())
	}

	if c.content != nil {
		keep(c.content(w, c.ContentArea()))
	}
	return firstErr
}

// drawScrollbar draws the track and maps the position linearly onto its rows
func (c *Control) drawScrollbar() error {
	area := c.ContentArea()
	if area.H <= 0 {
		return nil
	}
	x := area.X + area.W
	thumb := area.Y + c.scrollPos*(area.H-1)/constant.ScrollbarMax
	for y := area.Y; y < area.Y+area.H; y++ {
		glyph := "░"
		if y == thumb {
			glyph = "█"
		}
		if err := c.win.Blit(x, y, glyph); err != nil {
			return err
		}
	}
	return nil
}

// ScrollbarRow returns the window-relative row the thumb is drawn on
func (c *Control) ScrollbarRow() int {
	area := c.ContentArea()
	if area.H <= 0 {
		return area.Y
	}
	return area.Y + c.scrollPos*(area.H-1)/constant.ScrollbarMax
}

// center pads s on both sides to width, truncating when it does not fit
func center(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "…")
	gap := width - runewidth.StringWidth(s)
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
