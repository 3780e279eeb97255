package dialog

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-edit/buffer"
	"github.com/lixenwraith/vi-edit/constant"
	"github.com/lixenwraith/vi-edit/fileio"
	"github.com/lixenwraith/vi-edit/terminal"
)

// State is the file browser's lifecycle
type State uint8

const (
	NotActive State = iota
	Start
	StateRunning
	StateError
	Close
	Cancel
	Confirm
)

func (s State) String() string {
	switch s {
	case NotActive:
		return "not-active"
	case Start:
		return "start"
	case StateRunning:
		return "running"
	case StateError:
		return "error"
	case Close:
		return "close"
	case Cancel:
		return "cancel"
	case Confirm:
		return "confirm"
	}
	return "unknown"
}

// Mode selects between picking an existing file and naming one to write
type Mode uint8

const (
	ModeOpen Mode = iota
	ModeSave
)

// Lister reads a directory
type Lister func(dir string) ([]fileio.Entry, error)

// Params configures a file browser
type Params struct {
	Dir    string // starting directory, working directory when empty
	Mode   Mode
	Name   string // initial file name in save mode
	Lister Lister // fileio.ListDir when nil
}

// FileBrowser is a modal directory picker
// The listing has a synthetic ".." first, then directories, then files, each
// group in byte order. The cursor is an index into the visible rows and first
// is the listing index of the top row; the selected entry is first+cursor
type FileBrowser struct {
	ctl    Control
	state  State
	mode   Mode
	dir    string
	lister Lister

	entries       []fileio.Entry
	cursor, first int
	selected      string

	name *buffer.Line
}

// SortEntries returns entries ordered for display with ".." prepended
// Existing "." and ".." entries are dropped
func SortEntries(entries []fileio.Entry) []fileio.Entry {
	out := make([]fileio.Entry, 0, len(entries)+1)
	out = append(out, fileio.Entry{Name: constant.ParentEntry, IsDir: true})
	for _, e := range entries {
		if e.Name == "." || e.Name == constant.ParentEntry {
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out[1:], func(a, b fileio.Entry) int {
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// CenteredRect returns a dialog frame centered on a screen of the given size
func CenteredRect(screenW, screenH int) (w, h, x, y int) {
	w = min(max(screenW-2*constant.DialogMarginX, constant.DialogMinWidth), screenW)
	h = min(max(screenH-2*constant.DialogMarginY, constant.DialogMinHeight), screenH)
	return w, h, (screenW - w) / 2, (screenH - h) / 2
}

// Open prepares the browser in win, the listing is read on the first Tick
func (fb *FileBrowser) Open(win *terminal.Window, p Params) error {
	if err := fb.ctl.Init(win); err != nil {
		return err
	}
	fb.mode = p.Mode
	fb.lister = p.Lister
	if fb.lister == nil {
		fb.lister = fileio.ListDir
	}
	dir := p.Dir
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	fb.dir = dir
	fb.entries, fb.cursor, fb.first, fb.selected = nil, 0, 0, ""

	if fb.mode == ModeSave {
		fb.name = buffer.New(p.Name)
		fb.name.MoveCursorEnd()
	} else {
		fb.name = nil
	}

	fb.ctl.EnableScrollbar(true)
	if err := fb.ctl.AddButton(constant.CancelLabel, fb.cancel); err != nil {
		return err
	}
	if err := fb.ctl.AddButton(constant.ConfirmLabel, fb.activate); err != nil {
		return err
	}
	fb.ctl.SetContent(fb.drawList)
	fb.registerKeys()
	fb.setTitle()
	fb.state = NotActive
	return nil
}

func (fb *FileBrowser) registerKeys() {
	k := fb.ctl.Keys()
	k.Register("up", []terminal.Key{terminal.KeyUp}, func(terminal.Key) { fb.up() })
	k.Register("down", []terminal.Key{terminal.KeyDown}, func(terminal.Key) { fb.down() })
	k.Register("page_up", []terminal.Key{terminal.KeyPageUp}, func(terminal.Key) {
		for range max(fb.listRows()-1, 1) {
			fb.up()
		}
	})
	k.Register("page_down", []terminal.Key{terminal.KeyPageDown}, func(terminal.Key) {
		for range max(fb.listRows()-1, 1) {
			fb.down()
		}
	})
	k.Register("home", []terminal.Key{terminal.KeyHome}, func(terminal.Key) { fb.home() })
	k.Register("end", []terminal.Key{terminal.KeyEnd}, func(terminal.Key) { fb.end() })
	k.Register("cancel", []terminal.Key{terminal.KeyEscape}, func(terminal.Key) { fb.cancel() })
	k.Register("confirm", []terminal.Key{terminal.KeyEnter}, func(terminal.Key) { fb.activate() })
	if fb.mode == ModeSave {
		k.Register("name_backspace", []terminal.Key{terminal.KeyBackspace}, func(terminal.Key) {
			fb.name.DeleteCharBackward()
		})
	}
}

func (fb *FileBrowser) setTitle() {
	title := constant.OpenTitle
	if fb.mode == ModeSave {
		title = constant.SaveTitle
	}
	fb.ctl.SetTitle(title + ": " + fb.dir)
}

// Tick advances the state machine by one input event
func (fb *FileBrowser) Tick(key terminal.Key, mouse terminal.MouseState) Result {
	switch fb.state {
	case NotActive:
		fb.state = Start
		fb.load()
		_ = fb.Draw()
		return Running
	case StateError:
		fb.state = StateRunning
	case StateRunning:
	default:
		return fb.result()
	}

	n, err := fb.ctl.Process(key, mouse)
	if err != nil {
		return fb.result()
	}
	if n == 0 && fb.mode == ModeSave && key.IsRune() {
		_ = fb.name.InsertChar(key.Rune())
	}
	fb.handleListMouse(mouse)
	if fb.state == StateRunning || fb.state == StateError {
		_ = fb.Draw()
	}
	return fb.result()
}

func (fb *FileBrowser) result() Result {
	switch fb.state {
	case Confirm:
		return Confirmed
	case Cancel, Close:
		return Cancelled
	}
	return Running
}

// load reads and sorts the current directory
// A failed read leaves only ".." so the user can still leave
func (fb *FileBrowser) load() {
	fb.cursor, fb.first = 0, 0
	fb.setTitle()
	list, err := fb.lister(fb.dir)
	if err != nil {
		fb.entries = SortEntries(nil)
		fb.state = StateError
		fb.ctl.SetError(err.Error())
		fb.updateScroll()
		return
	}
	fb.entries = SortEntries(list)
	fb.state = StateRunning
	fb.ctl.SetError("")
	fb.updateScroll()
}

// listRows is the number of entry rows that fit, at least one
func (fb *FileBrowser) listRows() int {
	rows := fb.ctl.ContentArea().H
	if fb.mode == ModeSave {
		rows--
	}
	return max(rows, 1)
}

func (fb *FileBrowser) up() {
	if fb.cursor > 0 {
		fb.cursor--
	} else if fb.first > 0 {
		fb.first--
	}
	fb.updateScroll()
}

func (fb *FileBrowser) down() {
	if fb.first+fb.cursor >= len(fb.entries)-1 {
		return
	}
	if fb.cursor < fb.listRows()-1 {
		fb.cursor++
	} else {
		fb.first++
	}
	fb.updateScroll()
}

func (fb *FileBrowser) home() {
	fb.first, fb.cursor = 0, 0
	fb.updateScroll()
}

func (fb *FileBrowser) end() {
	last := len(fb.entries) - 1
	if last < 0 {
		return
	}
	rows := fb.listRows()
	if last < rows {
		fb.first, fb.cursor = 0, last
	} else {
		fb.first, fb.cursor = last-rows+1, rows-1
	}
	fb.updateScroll()
}

// updateScroll recomputes the scrollbar and the status text from the selection
func (fb *FileBrowser) updateScroll() {
	total := len(fb.entries)
	if total == 0 {
		fb.ctl.SetScroll(0)
		return
	}
	fb.ctl.SetScroll(constant.ScrollbarMax * (fb.first + fb.cursor) / total)
	if fb.state != StateError {
		if e, ok := fb.current(); ok {
			fb.ctl.SetStatus(entryLabel(e))
		}
	}
}

func (fb *FileBrowser) current() (fileio.Entry, bool) {
	idx := fb.first + fb.cursor
	if idx < 0 || idx >= len(fb.entries) {
		return fileio.Entry{}, false
	}
	return fb.entries[idx], true
}

func (fb *FileBrowser) cancel() {
	fb.state = Cancel
}

// activate acts on the selection: directories are entered, a file confirms
// In save mode a typed name confirms and picking a file copies its name
func (fb *FileBrowser) activate() {
	if fb.mode == ModeSave && fb.name.Len() > 0 {
		fb.selected = filepath.Join(fb.dir, fb.name.String())
		fb.state = Confirm
		return
	}
	e, ok := fb.current()
	if !ok {
		return
	}
	switch {
	case e.Name == constant.ParentEntry:
		fb.dir = filepath.Dir(fb.dir)
		fb.load()
	case e.IsDir:
		fb.dir = filepath.Join(fb.dir, e.Name)
		fb.load()
	case fb.mode == ModeSave:
		fb.name.SetText(e.Name)
		fb.name.MoveCursorEnd()
	default:
		fb.selected = filepath.Join(fb.dir, e.Name)
		fb.state = Confirm
	}
}

// handleListMouse scrolls on the wheel and selects the clicked row
func (fb *FileBrowser) handleListMouse(m terminal.MouseState) {
	if !m.Valid || fb.state != StateRunning {
		return
	}
	win := fb.ctl.Window()
	area := fb.ctl.ContentArea()
	x, y := m.X-win.X, m.Y-win.Y
	if x < area.X || x >= area.X+area.W || y < area.Y || y >= area.Y+fb.listRows() {
		return
	}
	switch {
	case m.Pressed(terminal.WheelUp):
		if fb.first > 0 {
			fb.first--
		}
	case m.Pressed(terminal.WheelDown):
		if fb.first+fb.listRows() < len(fb.entries) {
			fb.first++
		}
	case m.Pressed(terminal.ButtonLeft):
		row := y - area.Y
		if fb.first+row < len(fb.entries) {
			fb.cursor = row
		}
	default:
		return
	}
	fb.cursor = min(fb.cursor, len(fb.entries)-1-fb.first)
	fb.updateScroll()
}

// Draw redraws the whole dialog
func (fb *FileBrowser) Draw() error {
	return fb.ctl.Draw()
}

func (fb *FileBrowser) drawList(win *terminal.Window, area Rect) error {
	if area.W <= 0 {
		return nil
	}
	rows := fb.listRows()
	for r := 0; r < rows && r < area.H; r++ {
		text := ""
		if idx := fb.first + r; idx < len(fb.entries) {
			text = entryLabel(fb.entries[idx])
		}
		text = runewidth.FillRight(runewidth.Truncate(text, area.W, "…"), area.W)
		attrs := terminal.AttrNone
		if r == fb.cursor {
			attrs = terminal.AttrReverse
		}
		if err := win.BlitStyled(area.X, area.Y+r, text, terminal.ColorDialog, terminal.ColorDialogPaper, attrs); err != nil {
			return err
		}
	}
	if fb.mode == ModeSave && rows < area.H {
		field := runewidth.FillRight(runewidth.Truncate(constant.NameFieldPrompt+fb.name.String(), area.W, "…"), area.W)
		return win.BlitStyled(area.X, area.Y+rows, field, terminal.ColorDialog, terminal.ColorDialogPaper, terminal.AttrUnderln)
	}
	return nil
}

func entryLabel(e fileio.Entry) string {
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}

// State returns the current state
func (fb *FileBrowser) State() State { return fb.state }

// Close ends the dialog without a selection
func (fb *FileBrowser) Close() { fb.state = Close }

// SelectedPath returns the chosen path once confirmed, empty otherwise
func (fb *FileBrowser) SelectedPath() string {
	if fb.state != Confirm {
		return ""
	}
	return fb.selected
}

// Dir returns the directory being listed
func (fb *FileBrowser) Dir() string { return fb.dir }

// Mode returns whether the browser opens or saves
func (fb *FileBrowser) Mode() Mode { return fb.mode }

// Entries returns the sorted listing
func (fb *FileBrowser) Entries() []fileio.Entry {
	return append([]fileio.Entry(nil), fb.entries...)
}

// Position returns the cursor row and the index of the first visible entry
func (fb *FileBrowser) Position() (cursor, first int) { return fb.cursor, fb.first }

// VisibleRows returns how many entries fit in the list
func (fb *FileBrowser) VisibleRows() int { return fb.listRows() }

// Control exposes the underlying dialog control
func (fb *FileBrowser) Control() *Control { return &fb.ctl }

// Name returns the save-mode file name field, empty in open mode
func (fb *FileBrowser) Name() string {
	if fb.name == nil {
		return ""
	}
	return fb.name.String()
}

func (fb *FileBrowser) String() string {
	return fmt.Sprintf("FileBrowser{%s %s %d entries}", fb.state, fb.dir, len(fb.entries))
}
