package terminal

import "github.com/gdamore/tcell/v2"

// ButtonMask is the set of mouse buttons held during a mouse event
type ButtonMask uint8

const (
	ButtonLeft ButtonMask = 1 << iota
	ButtonRight
	ButtonMiddle
	WheelUp
	WheelDown

	ButtonNone ButtonMask = 0
)

// MouseState is the last reported pointer position and button mask
type MouseState struct {
	X, Y    int
	Buttons ButtonMask
	Valid   bool // false until the first mouse event
}

// Pressed reports whether all buttons in b are held
func (m MouseState) Pressed(b ButtonMask) bool {
	return m.Valid && b != ButtonNone && m.Buttons&b == b
}

// String returns human-readable button names
func (b ButtonMask) String() string {
	if b == ButtonNone {
		return "None"
	}
	s := ""
	add := func(bit ButtonMask, name string) {
		if b&bit == 0 {
			return
		}
		if s != "" {
			s += "+"
		}
		s += name
	}
	add(ButtonLeft, "Left")
	add(ButtonRight, "Right")
	add(ButtonMiddle, "Middle")
	add(WheelUp, "WheelUp")
	add(WheelDown, "WheelDown")
	return s
}

// MouseFromEvent converts a tcell mouse event, tcell Button1 is the primary (left) button
func MouseFromEvent(ev *tcell.EventMouse) MouseState {
	if ev == nil {
		return MouseState{}
	}
	x, y := ev.Position()
	btn := ev.Buttons()

	var mask ButtonMask
	if btn&tcell.Button1 != 0 {
		mask |= ButtonLeft
	}
	if btn&tcell.Button2 != 0 {
		mask |= ButtonRight
	}
	if btn&tcell.Button3 != 0 {
		mask |= ButtonMiddle
	}
	if btn&tcell.WheelUp != 0 {
		mask |= WheelUp
	}
	if btn&tcell.WheelDown != 0 {
		mask |= WheelDown
	}
	return MouseState{X: x, Y: y, Buttons: mask, Valid: true}
}
