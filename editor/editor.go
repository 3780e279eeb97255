// Package editor is the face the application shell talks to.
//
// An Editor owns one document, the viewport over it, the line-number gutter,
// the status line and the stack of modal dialogs. Input is routed to the
// topmost dialog while any is open and to the viewport otherwise. Everything
// runs on the caller's goroutine.
package editor

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-edit/audio"
	"github.com/lixenwraith/vi-edit/config"
	"github.com/lixenwraith/vi-edit/constant"
	"github.com/lixenwraith/vi-edit/dialog"
	"github.com/lixenwraith/vi-edit/document"
	"github.com/lixenwraith/vi-edit/fileio"
	"github.com/lixenwraith/vi-edit/keymap"
	"github.com/lixenwraith/vi-edit/report"
	"github.com/lixenwraith/vi-edit/status"
	"github.com/lixenwraith/vi-edit/terminal"
	"github.com/lixenwraith/vi-edit/view"
)

var (
	ErrAlreadyInitialized = errors.New("editor: already initialized")
	ErrNotInitialized     = errors.New("editor: not initialized")
)

// Bell is the audible side of the editor, satisfied by *audio.Bell
type Bell interface {
	Ring(s audio.Sound) bool
	Muted() bool
	SetMuted(muted bool)
}

// Options carries the collaborators the shell constructs
// Zero values fall back to: discarding sink, disk store, default config,
// fresh counters, no clipboard and no bell
type Options struct {
	Sink      *report.Sink
	Config    *config.Config
	Store     fileio.Store
	Lister    dialog.Lister
	Clipboard Clipboard
	Bell      Bell
	Counters  *status.Counters
}

// Editor is a single-document editing session
type Editor struct {
	scr  tcell.Screen
	pal  *terminal.Palette
	opts Options

	doc        *document.Document
	view       *view.Viewport
	gutter     *view.Gutter
	statusLine *view.StatusLine
	keys       *keymap.Dispatcher

	dialogs dialog.Stack
	browser *dialog.FileBrowser

	state status.Tracker

	x, y, width, height int
	gutterWidth         int

	quitArmed bool
	done      bool
}

// New creates an editor drawing onto scr with colors from pal
func New(scr tcell.Screen, pal *terminal.Palette, opts Options) *Editor {
	if pal == nil {
		pal = terminal.NewPalette()
	}
	if opts.Sink == nil {
		opts.Sink = report.NewSink()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Store == nil {
		opts.Store = fileio.Disk{}
	}
	if opts.Counters == nil {
		opts.Counters = status.NewCounters()
	}
	doc := document.New(opts.Store)
	doc.Create("")
	return &Editor{
		scr:  scr,
		pal:  pal,
		opts: opts,
		doc:  doc,
		keys: keymap.New(),
	}
}

// Init lays the editor out in the given screen rectangle
// The bottom row is the status line, the gutter sits on the left when enabled
func (e *Editor) Init(width, height, x, y int) error {
	if e.state.IsInitialized() {
		e.opts.Sink.Report(report.Warning, report.AlreadyInitialized, "editor init called twice")
		return ErrAlreadyInitialized
	}
	e.x, e.y, e.width, e.height = x, y, width, height

	vw, vh, gw := e.geometry()
	e.gutterWidth = gw
	e.gutter = view.NewGutter(terminal.NewWindow(e.scr, e.pal, gw, vh, x, y,
		terminal.ColorGutter, terminal.ColorGutterPaper))
	e.view = view.New(terminal.NewWindow(e.scr, e.pal, vw, vh, x+gw, y,
		terminal.ColorText, terminal.ColorPaper), e.doc)
	e.statusLine = view.NewStatusLine(terminal.NewWindow(e.scr, e.pal, width, constant.StatusLineHeight,
		x, y+vh, terminal.ColorStatus, terminal.ColorStatusPaper))

	if err := e.registerKeys(); err != nil {
		e.opts.Sink.Err(report.ConfigInvalid, err)
	}
	e.state.MarkInitialized()
	e.state.SetReady(true)
	return nil
}

// geometry splits the editor rectangle into viewport width/height and gutter width
func (e *Editor) geometry() (vw, vh, gw int) {
	vh = max(e.height-constant.StatusLineHeight, 0)
	if e.opts.Config.LineNumbers {
		gw = min(view.GutterWidth(e.doc.TotalLines()), e.width)
	}
	return e.width - gw, vh, gw
}

// layout moves the child windows after a resize or a gutter width change
func (e *Editor) layout() {
	vw, vh, gw := e.geometry()
	e.gutterWidth = gw
	e.gutter.Window().Resize(gw, vh, e.x, e.y)
	e.view.Resize(vw, vh, e.x+gw, e.y)
	e.statusLine.Window().Resize(e.width, constant.StatusLineHeight, e.x, e.y+vh)
	if e.browser != nil {
		w, h, dx, dy := dialog.CenteredRect(e.width, e.height)
		e.browser.Control().Resize(w, h, e.x+dx, e.y+dy)
	}
}

// Resize re-lays the editor for a new screen size
func (e *Editor) Resize(width, height int) {
	if !e.state.IsInitialized() {
		return
	}
	e.width, e.height = width, height
	e.scr.Clear()
	e.layout()
}

// LoadDocument replaces the edited document with the file at path
// On failure the current document is kept and the error is reported
func (e *Editor) LoadDocument(path string) error {
	if !e.state.IsInitialized() {
		return ErrNotInitialized
	}
	e.state.SetBusy(true)
	defer e.state.SetBusy(false)

	doc := document.New(e.opts.Store)
	if err := doc.Open(path); err != nil {
		e.fail(report.OpenFailed, err)
		return err
	}
	e.setDocument(doc)
	e.opts.Counters.Inc("files_opened")
	e.opts.Sink.Reportf(report.Info, report.None, "opened %s, %d lines", path, doc.TotalLines())
	return nil
}

// NewDocument starts an empty document that saves to path
func (e *Editor) NewDocument(path string) error {
	if !e.state.IsInitialized() {
		return ErrNotInitialized
	}
	doc := document.New(e.opts.Store)
	doc.Create(path)
	e.setDocument(doc)
	e.opts.Sink.Reportf(report.Info, report.None, "new file %s", path)
	return nil
}

func (e *Editor) setDocument(doc *document.Document) {
	e.doc = doc
	e.view.SetDocument(doc)
	e.state.SetError(false)
	e.layout()
}

// Save writes the document to its file, asking for a name when it has none
func (e *Editor) Save() error {
	if !e.state.IsInitialized() {
		return ErrNotInitialized
	}
	if e.doc.Filename() == "" {
		return e.OpenBrowser(dialog.ModeSave)
	}
	return e.saveAs("")
}

func (e *Editor) saveAs(path string) error {
	e.state.SetBusy(true)
	defer e.state.SetBusy(false)

	if err := e.doc.Save(path); err != nil {
		code := report.SaveFailed
		if errors.Is(err, document.ErrFileNotOpen) {
			code = report.FileNotOpen
		}
		e.fail(code, err)
		return err
	}
	e.state.SetError(false)
	e.opts.Counters.Inc("files_saved")
	e.opts.Sink.Reportf(report.Info, report.None, "saved %s, %d lines", e.doc.Filename(), e.doc.TotalLines())
	return nil
}

// fail reports a resource error, file errors keep their stack in the log
func (e *Editor) fail(code report.Code, err error) {
	e.state.SetError(true)
	e.opts.Sink.ErrWithStack(code, err)
}

// OpenBrowser pushes a file browser onto the dialog stack
// Only one browser is open at a time
func (e *Editor) OpenBrowser(mode dialog.Mode) error {
	if !e.state.IsInitialized() {
		return ErrNotInitialized
	}
	if e.browser != nil {
		return nil
	}
	w, h, dx, dy := dialog.CenteredRect(e.width, e.height)
	win := terminal.NewWindow(e.scr, e.pal, w, h, e.x+dx, e.y+dy, terminal.ColorDialog, terminal.ColorDialogPaper)

	dir, name := "", ""
	if fn := e.doc.Filename(); fn != "" {
		dir, name = filepath.Dir(fn), filepath.Base(fn)
	}
	fb := &dialog.FileBrowser{}
	if err := fb.Open(win, dialog.Params{Dir: dir, Mode: mode, Name: name, Lister: e.opts.Lister}); err != nil {
		e.opts.Sink.Err(report.NotInitialized, err)
		return err
	}
	e.browser = fb
	e.dialogs.Push(fb)
	e.tickDialogs(terminal.KeyNone, terminal.MouseState{})
	return nil
}

// tickDialogs routes one event to the top dialog and acts on a finished browser
func (e *Editor) tickDialogs(key terminal.Key, mouse terminal.MouseState) bool {
	_, res, ok := e.dialogs.Tick(key, mouse)
	if !ok {
		return false
	}
	if res == dialog.Running {
		return true
	}

	fb := e.browser
	e.browser = nil
	e.scr.Clear()
	if res != dialog.Confirmed || fb == nil {
		return true
	}
	path := fb.SelectedPath()
	switch fb.Mode() {
	case dialog.ModeOpen:
		_ = e.LoadDocument(path)
	case dialog.ModeSave:
		_ = e.saveAs(path)
	}
	return true
}

// HandleInput processes one key and reports whether a redraw is needed
func (e *Editor) HandleInput(key terminal.Key) bool {
	if key == terminal.KeyNone || !e.state.IsInitialized() {
		return false
	}
	e.opts.Counters.Inc("keys")
	if e.dialogs.Len() > 0 {
		return e.tickDialogs(key, terminal.MouseState{})
	}

	if !e.bound("quit", key) {
		e.quitArmed = false
	}
	if e.keys.Dispatch(key) > 0 {
		return true
	}
	if e.view.HandleInput(key) {
		e.view.ShowCursor()
		e.opts.Sink.ClearLast()
		return true
	}
	return false
}

// HandleEvent processes one polled event, keyboard before mouse
func (e *Editor) HandleEvent(ev terminal.Event) bool {
	switch ev.Type {
	case terminal.EventKey:
		return e.HandleInput(ev.Key)
	case terminal.EventMouse:
		if !e.state.IsInitialized() {
			return false
		}
		if e.dialogs.Len() > 0 {
			return e.tickDialogs(terminal.KeyNone, ev.Mouse)
		}
		return e.view.HandleMouse(ev.Mouse)
	case terminal.EventResize:
		e.Resize(ev.Width, ev.Height)
		return true
	}
	return false
}

// Render redraws every part of the editor and presents the screen
// Drawing failures are reported and drawing continues
func (e *Editor) Render() error {
	if !e.state.IsInitialized() {
		return ErrNotInitialized
	}
	if _, _, gw := e.geometry(); gw != e.gutterWidth {
		e.layout()
	}

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	keep(e.view.Render())
	if e.gutterWidth > 0 {
		_, cy := e.view.Cursor()
		keep(e.gutter.Render(e.view.CurrentLine(), e.view.TotalLines(), cy))
	}
	keep(e.statusLine.Render(e.statusInfo()))
	keep(e.dialogs.Draw())

	if firstErr != nil {
		e.opts.Sink.Err(report.RenderFailed, firstErr)
	}
	e.scr.Show()
	e.opts.Counters.Inc("frames")
	return firstErr
}

func (e *Editor) statusInfo() view.StatusInfo {
	info := view.StatusInfo{
		Filename: e.doc.Filename(),
		Dirty:    e.doc.IsDirty(),
		Line:     e.view.DocLine() + 1,
		Column:   e.view.DocColumn() + 1,
		Total:    e.doc.TotalLines(),
	}
	if last, ok := e.opts.Sink.Last(); ok {
		info.Message = last.Message
	}
	return info
}

// Tick advances the cursor blink by one poll iteration
// The blink is paused while a dialog covers the viewport
func (e *Editor) Tick() bool {
	if !e.state.IsInitialized() || e.dialogs.Len() > 0 {
		return false
	}
	if !e.view.Tick() {
		return false
	}
	e.scr.Show()
	return true
}

// CurrentLine is the document line shown on the viewport's top row
func (e *Editor) CurrentLine() int {
	if e.view == nil {
		return 0
	}
	return e.view.CurrentLine()
}

// CurrentColumn is the document column shown in the viewport's leftmost cell
func (e *Editor) CurrentColumn() int {
	if e.view == nil {
		return 0
	}
	return e.view.CurrentColumn()
}

// TotalLines returns the document's line count
func (e *Editor) TotalLines() int { return e.doc.TotalLines() }

// Document returns the edited document
func (e *Editor) Document() *document.Document { return e.doc }

// Viewport returns the main viewport, nil before Init
func (e *Editor) Viewport() *view.Viewport { return e.view }

// Status exposes the editor's flags
func (e *Editor) Status() *status.Tracker { return &e.state }

// Dialogs returns the number of open dialogs
func (e *Editor) Dialogs() int { return e.dialogs.Len() }

// Browser returns the open file browser, nil when none
func (e *Editor) Browser() *dialog.FileBrowser { return e.browser }

// Done reports whether the user asked to quit
func (e *Editor) Done() bool { return e.done }

func (e *Editor) String() string {
	return fmt.Sprintf("Editor{%q lines=%d top=%d left=%d dialogs=%d}",
		e.doc.Filename(), e.doc.TotalLines(), e.CurrentLine(), e.CurrentColumn(), e.dialogs.Len())
}
