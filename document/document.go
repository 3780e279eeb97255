// Package document holds the ordered lines of one open file.
package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/vi-edit/buffer"
	"github.com/lixenwraith/vi-edit/fileio"
	"github.com/lixenwraith/vi-edit/status"
)

var (
	ErrFailedToOpen = errors.New("document: failed to open")
	ErrFileNotOpen  = errors.New("document: file not open")
	ErrFailedToSave = errors.New("document: failed to save")
)

// User flag indices on the document's tracker
const (
	FlagOpen  = 0
	FlagSaved = 1
	FlagDirty = 2
)

// Document is an ordered sequence of lines, line order is document order
type Document struct {
	lines    []*buffer.Line
	filename string
	store    fileio.Store
	state    status.Tracker
}

// New creates an empty document backed by store, fileio.Disk when nil
func New(store fileio.Store) *Document {
	if store == nil {
		store = fileio.Disk{}
	}
	d := &Document{store: store}
	d.state.MarkInitialized()
	return d
}

// Open replaces the content with the lines of path and marks the document open and clean
func (d *Document) Open(path string) error {
	raw, err := d.store.ReadLines(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToOpen, err)
	}
	lines := make([]*buffer.Line, len(raw))
	for i, s := range raw {
		lines[i] = d.newLine(s, i)
	}
	d.lines = lines
	d.filename = path
	d.markOpen()
	return nil
}

// Create starts an empty, unsaved document that will be written to path
func (d *Document) Create(path string) {
	d.lines = nil
	d.filename = path
	d.markOpen()
}

// Save writes every line to path, or to the current filename when path is empty
func (d *Document) Save(path string) error {
	if !d.IsOpen() {
		return ErrFileNotOpen
	}
	if path == "" {
		path = d.filename
	}
	if path == "" {
		return fmt.Errorf("%w: no filename", ErrFailedToSave)
	}
	if err := d.store.WriteLines(path, d.Lines()); err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToSave, err)
	}
	d.filename = path
	d.state.SetUser(FlagSaved, true)
	d.state.SetUser(FlagOpen, false)
	d.state.SetUser(FlagDirty, false)
	return nil
}

func (d *Document) markOpen() {
	d.state.SetUser(FlagOpen, true)
	d.state.SetUser(FlagSaved, false)
	d.state.SetUser(FlagDirty, false)
	d.state.SetReady(true)
}

// IsOpen reports whether a file is attached, either freshly opened or saved
func (d *Document) IsOpen() bool {
	return d.state.User(FlagOpen) || d.state.User(FlagSaved)
}

// IsDirty reports whether the content changed since the last open or save
func (d *Document) IsDirty() bool {
	return d.state.User(FlagDirty)
}

// MarkDirty flags an edit made through a line handed out by Line
func (d *Document) MarkDirty() {
	d.state.SetUser(FlagDirty, true)
}

// Status exposes the document's flags
func (d *Document) Status() *status.Tracker {
	return &d.state
}

// Filename returns the attached path, empty for an unnamed document
func (d *Document) Filename() string {
	return d.filename
}

// TotalLines returns the line count
func (d *Document) TotalLines() int {
	return len(d.lines)
}

// Line returns line i, nil when out of range
func (d *Document) Line(i int) *buffer.Line {
	if i < 0 || i >= len(d.lines) {
		return nil
	}
	return d.lines[i]
}

// Lines returns the text of every line
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.String()
	}
	return out
}

// Text returns the content joined with newlines, each line terminated
func (d *Document) Text() string {
	var sb strings.Builder
	for _, l := range d.lines {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// InsertLine inserts text as a new line at index at, clamped to [0, TotalLines]
func (d *Document) InsertLine(at int, text string) *buffer.Line {
	at = max(0, min(at, len(d.lines)))
	l := d.newLine(text, at)
	d.lines = append(d.lines, nil)
	copy(d.lines[at+1:], d.lines[at:])
	d.lines[at] = l
	d.MarkDirty()
	return l
}

// EraseLine removes line at, returns false when out of range
func (d *Document) EraseLine(at int) bool {
	if at < 0 || at >= len(d.lines) {
		return false
	}
	copy(d.lines[at:], d.lines[at+1:])
	d.lines[len(d.lines)-1] = nil
	d.lines = d.lines[:len(d.lines)-1]
	d.MarkDirty()
	return true
}

// EnsureLine pads the document with empty lines so that index i exists and returns it
func (d *Document) EnsureLine(i int) *buffer.Line {
	if i < 0 {
		return nil
	}
	for len(d.lines) <= i {
		d.lines = append(d.lines, d.newLine("", len(d.lines)))
		d.MarkDirty()
	}
	return d.lines[i]
}

func (d *Document) newLine(text string, y int) *buffer.Line {
	l := &buffer.Line{}
	_ = l.Init(text, 0, y)
	return l
}
