package constant

import "time"

// Viewport scroll policy
const (
	// HorizontalStride is how far the viewport jumps when the cursor crosses a side edge
	HorizontalStride = 16

	// BlinkInterval is the number of ticks between cursor glyph toggles
	BlinkInterval = 8

	// CursorGlyph is drawn over the cell under the cursor when the blink phase is on
	// Zero keeps the underlying character and only reverses it
	CursorGlyph = 0
)

// Main loop timing
const (
	// FrameInterval is the idle wait between input polls
	FrameInterval = 30 * time.Millisecond
)

// Layout
const (
	// GutterMinDigits is the minimum width of the line-number column excluding its separator
	GutterMinDigits = 3

	// StatusLineHeight is the rows reserved under the viewport
	StatusLineHeight = 1
)

// Dialog layout
const (
	// MaxButtons is the button capacity of one dialog
	MaxButtons = 2

	// DialogMinWidth and DialogMinHeight bound the file browser frame
	DialogMinWidth  = 30
	DialogMinHeight = 10

	// DialogMarginX and DialogMarginY are kept free around a centered dialog
	DialogMarginX = 4
	DialogMarginY = 2

	// ButtonPadding is added on each side of a button label
	ButtonPadding = 1

	// ScrollbarMax is the top of the scrollbar position range
	ScrollbarMax = 100
)

// File browser labels
const (
	ParentEntry     = ".."
	OpenTitle       = "Open File"
	SaveTitle       = "Save File"
	CancelLabel     = "Cancel"
	ConfirmLabel    = "OK"
	NameFieldPrompt = "Name: "
)
