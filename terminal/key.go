package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key is a single input code
// Printable characters are their own rune value, special keys live above the Unicode range
type Key int32

// KeyNone is the "no input pending" sentinel returned by non-blocking polls
const KeyNone Key = -1

// keySpecial is the first code past the Unicode range
const keySpecial Key = 0x110000

// Special keys
const (
	KeyEscape Key = keySpecial + iota
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter, contiguous so KeyCtrlA+n is Ctrl+('A'+n)
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// KeyRune returns the input code for a printable character
func KeyRune(r rune) Key {
	return Key(r)
}

// IsRune reports whether k is a printable character code
func (k Key) IsRune() bool {
	return k >= ' ' && k < keySpecial && k != 0x7f
}

// Rune returns the character for a printable code, 0 otherwise
func (k Key) Rune() rune {
	if !k.IsRune() {
		return 0
	}
	return rune(k)
}

// String returns the config name for special keys and the character for runes
func (k Key) String() string {
	if k == KeyNone {
		return "none"
	}
	if k.IsRune() {
		return string(rune(k))
	}
	if name := KeyName(k); name != "" {
		return name
	}
	return "unknown"
}

// tcellSpecial maps tcell named keys that are not Ctrl+letter
// Enter/Tab/Backspace share codes with Ctrl+M/I/H in tcell and resolve here first
var tcellSpecial = map[tcell.Key]Key{
	tcell.KeyESC:        KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

// KeyFromEvent converts a tcell key event into an input code
// Unmapped keys return KeyNone
func KeyFromEvent(ev *tcell.EventKey) Key {
	if ev == nil {
		return KeyNone
	}
	k := ev.Key()
	if k == tcell.KeyRune {
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			if lr := unicode.ToLower(r); lr >= 'a' && lr <= 'z' {
				return KeyCtrlA + Key(lr-'a')
			}
		}
		if r < ' ' {
			return KeyNone
		}
		return KeyRune(r)
	}
	if mapped, ok := tcellSpecial[k]; ok {
		return mapped
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyCtrlA + Key(k-tcell.KeyCtrlA)
	}
	return KeyNone
}
