// @focus: #sys { term } #input { keys }
// Package terminal is the editor's window onto a tcell screen.
//
// It provides:
//   - Screen: the tcell lifecycle as a service, with a non-blocking input queue
//   - Window: a clipped rectangle with its own ink and paper
//   - Palette: named color slots resolved into tcell styles on demand
//   - Key and MouseState: input decoded into editor terms
//
// Keys are a single int32 space: printable characters are their rune value and
// named keys sit above the Unicode range, so a keymap can match either kind.
package terminal
