package dialog

import (
	"errors"

	"github.com/lixenwraith/vi-edit/terminal"
)

var ErrStaleHandle = errors.New("dialog: stale handle")

// Result is what an active dialog reports after a tick
type Result uint8

const (
	Running Result = iota
	Cancelled
	Confirmed
)

func (r Result) String() string {
	switch r {
	case Running:
		return "running"
	case Cancelled:
		return "cancelled"
	case Confirmed:
		return "confirmed"
	}
	return "unknown"
}

// Active is a dialog that can sit on the stack
type Active interface {
	Drawable
	Tick(key terminal.Key, mouse terminal.MouseState) Result
}

// Handle identifies a stack entry, stale once the entry is removed
type Handle struct {
	index int
	gen   uint32
}

type slot struct {
	item Active
	gen  uint32
	live bool
}

// Stack is an arena of active dialogs
// Slots are reused after removal; a generation counter invalidates old handles
// Only the topmost dialog receives input
type Stack struct {
	slots []slot
	free  []int
	order []int // slot indices, bottom to top
}

// Push makes a the topmost dialog
func (s *Stack) Push(a Active) Handle {
	var idx int
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{})
		idx = len(s.slots) - 1
	}
	sl := &s.slots[idx]
	sl.gen++
	sl.item = a
	sl.live = true
	s.order = append(s.order, idx)
	return Handle{index: idx, gen: sl.gen}
}

func (s *Stack) valid(h Handle) bool {
	return h.index >= 0 && h.index < len(s.slots) && s.slots[h.index].live && s.slots[h.index].gen == h.gen
}

// Get returns the dialog behind h
func (s *Stack) Get(h Handle) (Active, error) {
	if !s.valid(h) {
		return nil, ErrStaleHandle
	}
	return s.slots[h.index].item, nil
}

// Remove drops the dialog behind h wherever it sits in the stack
func (s *Stack) Remove(h Handle) error {
	if !s.valid(h) {
		return ErrStaleHandle
	}
	sl := &s.slots[h.index]
	sl.item = nil
	sl.live = false
	s.free = append(s.free, h.index)
	for i, idx := range s.order {
		if idx == h.index {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Top returns the topmost dialog
func (s *Stack) Top() (Active, Handle, bool) {
	if len(s.order) == 0 {
		return nil, Handle{}, false
	}
	idx := s.order[len(s.order)-1]
	return s.slots[idx].item, Handle{index: idx, gen: s.slots[idx].gen}, true
}

// Len returns the number of active dialogs
func (s *Stack) Len() int { return len(s.order) }

// Tick routes one input event to the topmost dialog
// A dialog that finishes is removed from the stack
// ok is false when the stack is empty
func (s *Stack) Tick(key terminal.Key, mouse terminal.MouseState) (h Handle, res Result, ok bool) {
	top, h, ok := s.Top()
	if !ok {
		return Handle{}, Running, false
	}
	res = top.Tick(key, mouse)
	if res != Running {
		_ = s.Remove(h)
	}
	return h, res, true
}

// Draw draws every dialog from bottom to top
func (s *Stack) Draw() error {
	var firstErr error
	for _, idx := range s.order {
		if err := s.slots[idx].item.Draw(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
