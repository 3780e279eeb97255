package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
)

// Event is one decoded input event
type Event struct {
	Type   EventType
	Key    Key // KeyNone unless Type == EventKey
	Mouse  MouseState
	Width  int // For EventResize
	Height int // For EventResize
}

// NoEvent is returned by Poll when nothing is pending
var NoEvent = Event{Type: EventNone, Key: KeyNone}

// Screen owns the tcell screen, its palette and the input queue
// PollEvent blocks inside tcell, so a reader goroutine feeds a buffered channel
// and Poll drains it without blocking
type Screen struct {
	scr     tcell.Screen
	pal     *Palette
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mouse   MouseState

	mu          sync.Mutex
	initialized bool
	running     bool
	mouseOn     bool
}

// NewScreen wraps an uninitialized tcell screen
func NewScreen(scr tcell.Screen, pal *Palette) *Screen {
	if pal == nil {
		pal = NewPalette()
	}
	return &Screen{
		scr:     scr,
		pal:     pal,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Name implements service.Service
func (s *Screen) Name() string {
	return "terminal"
}

// Dependencies implements service.Service
func (s *Screen) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: bool - enable mouse reporting (default true)
func (s *Screen) Init(args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := s.scr.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	s.mouseOn = true
	if len(args) > 0 {
		if on, ok := args[0].(bool); ok {
			s.mouseOn = on
		}
	}
	if s.mouseOn {
		s.scr.EnableMouse()
	}
	s.scr.HideCursor()
	s.scr.Clear()
	s.initialized = true
	return nil
}

// Start implements service.Service, launches the input reader
func (s *Screen) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return fmt.Errorf("terminal start: not initialized")
	}
	if s.running {
		return nil
	}
	s.running = true
	go s.pollLoop()
	return nil
}

// Stop implements service.Service, restores the terminal
// Safe to call multiple times
func (s *Screen) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil
	}
	wasRunning := s.running
	s.running = false
	s.initialized = false

	close(s.stopCh)
	// Fini makes the pending PollEvent return nil
	s.scr.Fini()
	if wasRunning {
		<-s.doneCh
	}
	return nil
}

// pollLoop reads tcell events until the screen is finalized
func (s *Screen) pollLoop() {
	defer close(s.doneCh)

	for {
		raw := s.scr.PollEvent()
		if raw == nil {
			return
		}
		ev, ok := translate(raw)
		if !ok {
			continue
		}
		select {
		case s.eventCh <- ev:
		case <-s.stopCh:
			return
		}
	}
}

// translate converts a tcell event, false for events the editor ignores
func translate(raw tcell.Event) (Event, bool) {
	switch ev := raw.(type) {
	case *tcell.EventKey:
		k := KeyFromEvent(ev)
		if k == KeyNone {
			return Event{}, false
		}
		return Event{Type: EventKey, Key: k}, true
	case *tcell.EventMouse:
		return Event{Type: EventMouse, Key: KeyNone, Mouse: MouseFromEvent(ev)}, true
	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Type: EventResize, Key: KeyNone, Width: w, Height: h}, true
	}
	return Event{}, false
}

// Poll returns the next pending event or NoEvent, never blocks
func (s *Screen) Poll() Event {
	select {
	case ev := <-s.eventCh:
		if ev.Type == EventMouse {
			s.mouse = ev.Mouse
		}
		return ev
	default:
		return NoEvent
	}
}

// PollInput returns the next pending key, KeyNone when no key is pending
// Mouse events consumed here only update the state PollMouse reports
func (s *Screen) PollInput() Key {
	for {
		ev := s.Poll()
		switch ev.Type {
		case EventNone:
			return KeyNone
		case EventKey:
			return ev.Key
		}
	}
}

// PollMouse returns the last reported mouse state
func (s *Screen) PollMouse() MouseState {
	return s.mouse
}

// Events exposes the input queue for select loops
func (s *Screen) Events() <-chan Event {
	return s.eventCh
}

// Size returns current terminal dimensions
func (s *Screen) Size() (width, height int) {
	return s.scr.Size()
}

// Palette returns the screen's color-pair table
func (s *Screen) Palette() *Palette {
	return s.pal
}

// CreateWindow creates a window on this screen
func (s *Screen) CreateWindow(w, h, x, y int, ink, paper ColorID) *Window {
	return NewWindow(s.scr, s.pal, w, h, x, y, ink, paper)
}

// Show presents all windows
func (s *Screen) Show() {
	s.scr.Show()
}

// Sync forces a full repaint, used after resize
func (s *Screen) Sync() {
	s.scr.Sync()
}

// Tcell returns the wrapped tcell screen
func (s *Screen) Tcell() tcell.Screen {
	return s.scr
}
