package editor

import (
	"github.com/lixenwraith/vi-edit/audio"
	"github.com/lixenwraith/vi-edit/config"
	"github.com/lixenwraith/vi-edit/dialog"
	"github.com/lixenwraith/vi-edit/report"
	"github.com/lixenwraith/vi-edit/terminal"
)

// defaultKeys are the editor-level actions, tested before the viewport's own table
var defaultKeys = map[string][]terminal.Key{
	"open":  {terminal.KeyCtrlO},
	"save":  {terminal.KeyCtrlS},
	"quit":  {terminal.KeyCtrlQ},
	"copy":  {terminal.KeyCtrlC},
	"paste": {terminal.KeyCtrlV},
	"mute":  {terminal.KeyCtrlG},
}

// editorActions is the registration order of defaultKeys
var editorActions = []string{"open", "save", "quit", "copy", "paste", "mute"}

// registerKeys installs the editor actions and the configured extra bindings
// Extra bindings are added next to the defaults in config.Actions order, a key
// bound twice fires both in that order
func (e *Editor) registerKeys() error {
	handlers := map[string]func(){
		"open":  func() { _ = e.OpenBrowser(dialog.ModeOpen) },
		"save":  func() { _ = e.Save() },
		"quit":  e.quit,
		"copy":  e.copyLine,
		"paste": e.paste,
		"mute":  e.toggleMute,
	}
	for _, name := range editorActions {
		fn := handlers[name]
		e.keys.Register(name, defaultKeys[name], func(terminal.Key) { fn() })
	}

	extra, err := e.opts.Config.Bindings()
	if err != nil {
		return err
	}
	viewActions := map[string]func(){
		"up":        e.view.MoveUp,
		"down":      e.view.MoveDown,
		"left":      e.view.MoveLeft,
		"right":     e.view.MoveRight,
		"page_up":   e.view.PageUp,
		"page_down": e.view.PageDown,
		"home":      e.view.Home,
		"end":       e.view.End,
		"backspace": e.view.Backspace,
		"delete":    e.view.Delete,
		"enter":     e.view.Enter,
		"tab":       e.view.Tab,
	}
	for _, action := range config.Actions {
		keys, ok := extra[action]
		if !ok {
			continue
		}
		if fn, ok := handlers[action]; ok {
			e.keys.Register(action, keys, func(terminal.Key) { fn() })
			continue
		}
		if fn, ok := viewActions[action]; ok {
			e.view.Keys().Register(action, keys, func(terminal.Key) { fn() })
		}
	}
	return nil
}

// bound reports whether key triggers the named editor action
func (e *Editor) bound(action string, key terminal.Key) bool {
	for _, b := range e.keys.Bindings() {
		if b.Name == action && b.Has(key) {
			return true
		}
	}
	return false
}

// quit ends the session, a dirty document needs the quit key twice in a row
func (e *Editor) quit() {
	if e.doc.IsDirty() && !e.quitArmed {
		e.quitArmed = true
		e.opts.Sink.Report(report.Warning, report.None, "unsaved changes, quit again to discard")
		e.ring(audio.SoundError)
		return
	}
	e.done = true
}

// copyLine puts the line under the cursor on the clipboard
func (e *Editor) copyLine() {
	if e.opts.Clipboard == nil {
		e.opts.Sink.Report(report.Warning, report.ClipboardFailed, "clipboard unavailable")
		return
	}
	text := ""
	if l := e.doc.Line(e.view.DocLine()); l != nil {
		text = l.String()
	}
	if err := e.opts.Clipboard.WriteAll(text); err != nil {
		e.opts.Sink.Reportf(report.Warning, report.ClipboardFailed, "copy: %v", err)
		return
	}
	e.opts.Sink.Reportf(report.Info, report.None, "copied line %d", e.view.DocLine()+1)
}

// paste types the clipboard contents at the cursor
func (e *Editor) paste() {
	if e.opts.Clipboard == nil {
		e.opts.Sink.Report(report.Warning, report.ClipboardFailed, "clipboard unavailable")
		return
	}
	text, err := e.opts.Clipboard.ReadAll()
	if err != nil {
		e.opts.Sink.Reportf(report.Warning, report.ClipboardFailed, "paste: %v", err)
		return
	}
	e.view.InsertText(text)
	e.view.ShowCursor()
}

func (e *Editor) toggleMute() {
	if e.opts.Bell == nil {
		return
	}
	muted := !e.opts.Bell.Muted()
	e.opts.Bell.SetMuted(muted)
	if muted {
		e.opts.Sink.Report(report.Info, report.None, "bell muted")
	} else {
		e.opts.Sink.Report(report.Info, report.None, "bell on")
	}
}

func (e *Editor) ring(s audio.Sound) {
	if e.opts.Bell != nil {
		e.opts.Bell.Ring(s)
	}
}
