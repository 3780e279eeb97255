package dialog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-edit/fileio"
	"github.com/lixenwraith/vi-edit/terminal"
)

func newSim(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("sim init: %v", err)
	}
	sim.SetSize(80, 25)
	t.Cleanup(sim.Fini)
	return sim
}

func newWin(sim tcell.SimulationScreen, w, h int) *terminal.Window {
	return terminal.NewWindow(sim, terminal.NewPalette(), w, h, 0, 0, terminal.ColorDialog, terminal.ColorDialogPaper)
}

func rowString(sim tcell.SimulationScreen, y, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

// mapLister serves listings from memory
func mapLister(dirs map[string][]fileio.Entry) Lister {
	return func(dir string) ([]fileio.Entry, error) {
		entries, ok := dirs[dir]
		if !ok {
			return nil, fmt.Errorf("list %s: %w", dir, os.ErrPermission)
		}
		return entries, nil
	}
}

func files(n int) []fileio.Entry {
	out := make([]fileio.Entry, n)
	for i := range out {
		out[i] = fileio.Entry{Name: fmt.Sprintf("f%02d.txt", i)}
	}
	return out
}

func names(entries []fileio.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

var none terminal.MouseState

func TestSortEntries(t *testing.T) {
	in := []fileio.Entry{
		{Name: "b.txt"},
		{Name: "A", IsDir: true},
		{Name: "a.txt"},
		{Name: "..", IsDir: true},
	}
	got := names(SortEntries(in))
	want := []string{"..", "A", "a.txt", "b.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	mixed := []fileio.Entry{{Name: "z", IsDir: true}, {Name: "B"}, {Name: "a"}, {Name: "C", IsDir: true}, {Name: "."}}
	got = names(SortEntries(mixed))
	want = []string{"..", "C", "z", "B", "a"}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func openBrowser(t *testing.T, h int, p Params) (*FileBrowser, tcell.SimulationScreen) {
	t.Helper()
	sim := newSim(t)
	fb := &FileBrowser{}
	if err := fb.Open(newWin(sim, 40, h), p); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if fb.State() != NotActive {
		t.Fatalf("Expected NotActive after Open, got %s", fb.State())
	}
	if res := fb.Tick(terminal.KeyNone, none); res != Running {
		t.Fatalf("First tick must report running, got %s", res)
	}
	return fb, sim
}

func TestFirstTickListsAndDraws(t *testing.T) {
	fb, sim := openBrowser(t, 19, Params{Dir: "/data", Lister: mapLister(map[string][]fileio.Entry{
		"/data": {{Name: "notes.txt"}, {Name: "src", IsDir: true}},
	})})

	if fb.State() != StateRunning {
		t.Fatalf("Expected Running after first tick, got %s", fb.State())
	}
	if got := names(fb.Entries()); !slices.Equal(got, []string{"..", "src", "notes.txt"}) {
		t.Errorf("Unexpected listing %v", got)
	}
	if row := rowString(sim, 1, 40); !strings.Contains(row, "Open File: /data") {
		t.Errorf("Expected title on row 1, got %q", row)
	}
	if row := rowString(sim, 3, 40); !strings.HasPrefix(row, "│../") {
		t.Errorf("Expected '..' on the first content row, got %q", row)
	}
}

func TestListEdgeScroll(t *testing.T) {
	fb, _ := openBrowser(t, 19, Params{Dir: "/data", Lister: mapLister(map[string][]fileio.Entry{
		"/data": files(29),
	})})

	if len(fb.Entries()) != 30 {
		t.Fatalf("Expected 30 entries, got %d", len(fb.Entries()))
	}
	if fb.VisibleRows() != 10 {
		t.Fatalf("Expected 10 visible rows, got %d", fb.VisibleRows())
	}

	for i := 0; i < 9; i++ {
		fb.Tick(terminal.KeyDown, none)
	}
	if c, f := fb.Position(); c != 9 || f != 0 {
		t.Fatalf("Expected cursor 9 first 0, got cursor %d first %d", c, f)
	}

	fb.Tick(terminal.KeyDown, none)
	if c, f := fb.Position(); c != 9 || f != 1 {
		t.Fatalf("Expected cursor 9 first 1, got cursor %d first %d", c, f)
	}
	if pos := fb.Control().ScrollPos(); pos != 100*10/30 {
		t.Errorf("Expected scrollbar %d, got %d", 100*10/30, pos)
	}

	fb.Tick(terminal.KeyEnd, none)
	if c, f := fb.Position(); c+f != 29 {
		t.Errorf("End must select the last entry, got %d", c+f)
	}
	fb.Tick(terminal.KeyDown, none)
	if c, f := fb.Position(); c+f != 29 {
		t.Errorf("Down at the last entry must hold, got %d", c+f)
	}

	for i := 0; i < 9; i++ {
		fb.Tick(terminal.KeyUp, none)
	}
	if c, f := fb.Position(); c != 0 || f != 20 {
		t.Fatalf("Expected cursor 0 first 20, got cursor %d first %d", c, f)
	}
	fb.Tick(terminal.KeyUp, none)
	if c, f := fb.Position(); c != 0 || f != 19 {
		t.Errorf("Up at the top row must scroll, got cursor %d first %d", c, f)
	}

	fb.Tick(terminal.KeyHome, none)
	if c, f := fb.Position(); c != 0 || f != 0 || fb.Control().ScrollPos() != 0 {
		t.Errorf("Home must reset, got cursor %d first %d", c, f)
	}
}

func TestCancelAndConfirm(t *testing.T) {
	lister := mapLister(map[string][]fileio.Entry{
		"/data":     {{Name: "sub", IsDir: true}, {Name: "x.txt"}},
		"/data/sub": {{Name: "y.txt"}},
		"/":         {{Name: "data", IsDir: true}},
	})

	t.Run("Escape", func(t *testing.T) {
		fb, _ := openBrowser(t, 19, Params{Dir: "/data", Lister: lister})
		if res := fb.Tick(terminal.KeyEscape, none); res != Cancelled {
			t.Fatalf("Expected Cancelled, got %s", res)
		}
		if fb.SelectedPath() != "" {
			t.Error("Cancelled browser must not report a path")
		}
	})

	t.Run("EnterFile", func(t *testing.T) {
		fb, _ := openBrowser(t, 19, Params{Dir: "/data", Lister: lister})
		fb.Tick(terminal.KeyDown, none)
		fb.Tick(terminal.KeyDown, none)
		if res := fb.Tick(terminal.KeyEnter, none); res != Confirmed {
			t.Fatalf("Expected Confirmed, got %s", res)
		}
		if fb.SelectedPath() != filepath.Join("/data", "x.txt") {
			t.Errorf("Unexpected path %q", fb.SelectedPath())
		}
	})

	t.Run("DescendAndAscend", func(t *testing.T) {
		fb, _ := openBrowser(t, 19, Params{Dir: "/data", Lister: lister})
		fb.Tick(terminal.KeyDown, none)
		if res := fb.Tick(terminal.KeyEnter, none); res != Running {
			t.Fatalf("Entering a directory must keep running, got %s", res)
		}
		if fb.Dir() != "/data/sub" || !slices.Equal(names(fb.Entries()), []string{"..", "y.txt"}) {
			t.Fatalf("Expected /data/sub listing, got %s %v", fb.Dir(), names(fb.Entries()))
		}
		fb.Tick(terminal.KeyEnter, none)
		fb.Tick(terminal.KeyEnter, none)
		if fb.Dir() != "/" {
			t.Errorf("Expected two ascents to reach /, got %s", fb.Dir())
		}
	})

	t.Run("Buttons", func(t *testing.T) {
		fb, _ := openBrowser(t, 19, Params{Dir: "/data", Lister: lister})
		btns := fb.Control().Buttons()
		if len(btns) != 2 {
			t.Fatalf("Expected 2 buttons, got %d", len(btns))
		}
		ok := btns[1].Rect

		// Border cells do not count
		border := terminal.MouseState{X: ok.X, Y: ok.Y + 1, Buttons: terminal.ButtonLeft, Valid: true}
		if res := fb.Tick(terminal.KeyNone, border); res != Running {
			t.Fatalf("Click on the border must not fire, got %s", res)
		}
		// Released button does not count
		hover := terminal.MouseState{X: ok.X + 1, Y: ok.Y + 1, Valid: true}
		if res := fb.Tick(terminal.KeyNone, hover); res != Running {
			t.Fatalf("Hover must not fire, got %s", res)
		}

		cancel := btns[0].Rect
		click := terminal.MouseState{X: cancel.X + 1, Y: cancel.Y + 1, Buttons: terminal.ButtonLeft, Valid: true}
		if res := fb.Tick(terminal.KeyNone, click); res != Cancelled {
			t.Errorf("Expected Cancel button to cancel, got %s", res)
		}
	})

	t.Run("OKButtonConfirms", func(t *testing.T) {
		fb, _ := openBrowser(t, 19, Params{Dir: "/data", Lister: lister})
		fb.Tick(terminal.KeyEnd, none)
		ok := fb.Control().Buttons()[1].Rect
		click := terminal.MouseState{X: ok.X + 1, Y: ok.Y + 1, Buttons: terminal.ButtonLeft, Valid: true}
		if res := fb.Tick(terminal.KeyNone, click); res != Confirmed {
			t.Fatalf("Expected Confirmed, got %s", res)
		}
		if fb.SelectedPath() != filepath.Join("/data", "x.txt") {
			t.Errorf("Unexpected path %q", fb.SelectedPath())
		}
	})
}

func TestListingErrorKeepsParent(t *testing.T) {
	fb, _ := openBrowser(t, 19, Params{Dir: "/locked", Lister: mapLister(map[string][]fileio.Entry{
		"/": {{Name: "locked", IsDir: true}},
	})})

	if fb.State() != StateError {
		t.Fatalf("Expected Error state, got %s", fb.State())
	}
	if !slices.Equal(names(fb.Entries()), []string{".."}) {
		t.Errorf("Expected only '..', got %v", names(fb.Entries()))
	}
	if !strings.Contains(fb.Control().StatusText(), "permission") {
		t.Errorf("Expected error in status, got %q", fb.Control().StatusText())
	}

	fb.Tick(terminal.KeyNone, none)
	if fb.State() != StateRunning {
		t.Fatalf("Expected Running after error tick, got %s", fb.State())
	}
	fb.Tick(terminal.KeyEnter, none)
	if fb.Dir() != "/" || fb.State() != StateRunning {
		t.Errorf("Expected recovery into /, got %s %s", fb.Dir(), fb.State())
	}
}

func TestSaveModeNameField(t *testing.T) {
	fb, _ := openBrowser(t, 19, Params{Dir: "/data", Mode: ModeSave, Name: "ou", Lister: mapLister(map[string][]fileio.Entry{
		"/data": {{Name: "old.txt"}},
	})})

	if fb.VisibleRows() != 9 {
		t.Errorf("Save mode reserves a row for the name field, got %d rows", fb.VisibleRows())
	}
	for _, r := range "tx" {
		fb.Tick(terminal.KeyRune(r), none)
	}
	fb.Tick(terminal.KeyBackspace, none)
	if fb.Name() != "out" {
		t.Fatalf("Expected name 'out', got %q", fb.Name())
	}
	if res := fb.Tick(terminal.KeyEnter, none); res != Confirmed {
		t.Fatalf("Expected Confirmed, got %s", res)
	}
	if fb.SelectedPath() != filepath.Join("/data", "out") {
		t.Errorf("Unexpected path %q", fb.SelectedPath())
	}
}

func TestControlRequiresInit(t *testing.T) {
	var c Control
	if _, err := c.Process(terminal.KeyEnter, none); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized from Process, got %v", err)
	}
	if err := c.Draw(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized from Draw, got %v", err)
	}
	if err := c.AddButton("x", nil); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized from AddButton, got %v", err)
	}
}

func TestControlButtonsAndScrollbar(t *testing.T) {
	sim := newSim(t)
	var c Control
	if err := c.Init(newWin(sim, 30, 12)); err != nil {
		t.Fatal(err)
	}
	c.AddButton("A", nil)
	c.AddButton("B", nil)
	if err := c.AddButton("C", nil); !errors.Is(err, ErrTooManyButtons) {
		t.Errorf("Expected ErrTooManyButtons, got %v", err)
	}

	c.SetTitle("T")
	c.EnableScrollbar(true)
	area := c.ContentArea()

	c.SetScroll(0)
	if c.ScrollbarRow() != area.Y {
		t.Errorf("Position 0 must map to the first row, got %d", c.ScrollbarRow())
	}
	c.SetScroll(100)
	if c.ScrollbarRow() != area.Y+area.H-1 {
		t.Errorf("Position 100 must map to the last row, got %d", c.ScrollbarRow())
	}
	c.SetScroll(250)
	if c.ScrollPos() != 100 {
		t.Errorf("Position must clamp to 100, got %d", c.ScrollPos())
	}

	if err := c.Draw(); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	r, _, _, _ := sim.GetContent(area.X+area.W, area.Y+area.H-1)
	if r != '█' {
		t.Errorf("Expected thumb at the last scrollbar row, got %q", r)
	}

	// Keys run before buttons within one event
	var order []string
	c2 := Control{}
	c2.Init(newWin(sim, 30, 12))
	c2.AddButton("Go", func() { order = append(order, "button") })
	c2.Keys().Register("k", []terminal.Key{terminal.KeyF1}, func(terminal.Key) { order = append(order, "key") })
	b := c2.Buttons()[0].Rect
	n, err := c2.Process(terminal.KeyF1, terminal.MouseState{X: b.X + 1, Y: b.Y + 1, Buttons: terminal.ButtonLeft, Valid: true})
	if err != nil || n != 2 {
		t.Fatalf("Expected 2 actions, got %d (%v)", n, err)
	}
	if !slices.Equal(order, []string{"key", "button"}) {
		t.Errorf("Expected key before button, got %v", order)
	}
}

func TestStackHandles(t *testing.T) {
	sim := newSim(t)
	lister := mapLister(map[string][]fileio.Entry{"/d": nil})

	var s Stack
	a, b := &FileBrowser{}, &FileBrowser{}
	a.Open(newWin(sim, 40, 19), Params{Dir: "/d", Lister: lister})
	b.Open(newWin(sim, 40, 19), Params{Dir: "/d", Lister: lister})

	ha := s.Push(a)
	hb := s.Push(b)
	if top, h, _ := s.Top(); top != Active(b) || h != hb {
		t.Fatal("Last push must be on top")
	}

	// Only the top dialog sees input
	s.Tick(terminal.KeyNone, none)
	if a.State() != NotActive || b.State() != StateRunning {
		t.Fatalf("Input must go to the top only: a=%s b=%s", a.State(), b.State())
	}

	h, res, ok := s.Tick(terminal.KeyEscape, none)
	if !ok || res != Cancelled || h != hb {
		t.Fatalf("Expected b cancelled, got %v %s %v", h, res, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("Finished dialog must be removed, len=%d", s.Len())
	}
	if _, err := s.Get(hb); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Expected stale handle, got %v", err)
	}
	if err := s.Remove(hb); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Double remove must report stale handle, got %v", err)
	}

	// Slot reuse does not revive the old handle
	c := &FileBrowser{}
	hc := s.Push(c)
	if hc == hb {
		t.Error("Reused slot must carry a new generation")
	}
	if _, err := s.Get(hb); !errors.Is(err, ErrStaleHandle) {
		t.Error("Old handle must stay stale after reuse")
	}

	if err := s.Remove(ha); err != nil {
		t.Fatalf("Removing a lower dialog failed: %v", err)
	}
	if top, _, _ := s.Top(); top != Active(c) {
		t.Error("Expected c on top")
	}

	var empty Stack
	if _, _, ok := empty.Tick(terminal.KeyEnter, none); ok {
		t.Error("Empty stack must report no dialog")
	}
}
