// Package report is the editor's error and event sink.
//
// A Sink is constructed by the shell and passed to whatever needs to report;
// there is no package-level instance. Entries go to a log file through the
// standard logger and the most recent one is kept for the status line.
package report

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
)

// Severity orders entries by importance
type Severity uint8

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Code classifies what went wrong
type Code uint8

const (
	None Code = iota
	RenderFailed
	PresentFailed
	OpenFailed
	SaveFailed
	FileNotOpen
	IndexOutOfBounds
	NotInitialized
	AlreadyInitialized
	ConfigInvalid
	ClipboardFailed
	AudioUnavailable
)

var codeNames = [...]string{
	None:               "None",
	RenderFailed:       "RenderFailed",
	PresentFailed:      "PresentFailed",
	OpenFailed:         "OpenFailed",
	SaveFailed:         "SaveFailed",
	FileNotOpen:        "FileNotOpen",
	IndexOutOfBounds:   "IndexOutOfBounds",
	NotInitialized:     "NotInitialized",
	AlreadyInitialized: "AlreadyInitialized",
	ConfigInvalid:      "ConfigInvalid",
	ClipboardFailed:    "ClipboardFailed",
	AudioUnavailable:   "AudioUnavailable",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", c)
}

// MaxLogSize is the size past which an existing log file is rotated on open
const MaxLogSize = 10 * 1024 * 1024

// Entry is one reported event
type Entry struct {
	Severity Severity
	Code     Code
	Message  string
	Time     time.Time
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] code=%s %s", e.Severity, e.Code, e.Message)
}

// Sink records entries to a logger and remembers the last one
type Sink struct {
	mu      sync.Mutex
	logger  *log.Logger
	file    *os.File
	last    Entry
	hasLast bool
	onError func(Entry)
	now     func() time.Time
}

// NewSink creates a sink that discards output until Init or SetOutput
func NewSink() *Sink {
	return &Sink{
		logger: log.New(io.Discard, "", log.LstdFlags),
		now:    time.Now,
	}
}

// Name implements service.Service
func (s *Sink) Name() string { return "report" }

// Dependencies implements service.Service
func (s *Sink) Dependencies() []string { return nil }

// Init implements service.Service
// args[0]: string - log file path, empty keeps output discarded
func (s *Sink) Init(args ...any) error {
	if len(args) == 0 {
		return nil
	}
	path, _ := args[0].(string)
	if path == "" {
		return nil
	}
	f, err := openLog(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		s.file.Close()
	}
	s.file = f
	s.logger.SetOutput(f)
	return nil
}

// Start implements service.Service
func (s *Sink) Start() error { return nil }

// Stop implements service.Service, closes the log file
func (s *Sink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.SetOutput(io.Discard)
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// openLog opens path for appending, rotating it first when it has grown past MaxLogSize
func openLog(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	if info, err := os.Stat(path); err == nil && info.Size() > MaxLogSize {
		ext := filepath.Ext(path)
		rotated := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(path, ext), time.Now().Format("20060102-150405"), ext)
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

// SetOutput redirects the log, used by tests and by shells that log elsewhere
func (s *Sink) SetOutput(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.SetOutput(w)
}

// OnError installs a hook run after every Error entry, nil removes it
func (s *Sink) OnError(fn func(Entry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = fn
}

// Report records an entry
func (s *Sink) Report(sev Severity, code Code, msg string) {
	s.mu.Lock()
	e := Entry{Severity: sev, Code: code, Message: msg, Time: s.now()}
	s.logger.Print(e.String())
	s.last, s.hasLast = e, true
	hook := s.onError
	s.mu.Unlock()

	if sev == Error && hook != nil {
		hook(e)
	}
}

// Reportf records an entry with a formatted message
func (s *Sink) Reportf(sev Severity, code Code, format string, args ...any) {
	s.Report(sev, code, fmt.Sprintf(format, args...))
}

// Err records err at Error severity, nil is ignored
func (s *Sink) Err(code Code, err error) {
	if err == nil {
		return
	}
	s.Report(Error, code, err.Error())
}

// Last returns the most recent entry
func (s *Sink) Last() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}

// ClearLast forgets the most recent entry so the status line stops showing it
func (s *Sink) ClearLast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasLast = false
}

// stackTracer is implemented by errors created or wrapped with github.com/pkg/errors
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// ErrWithStack records err at Error severity and logs the first stack found in its chain
// fmt.Errorf wrapping above the pkg/errors layer is seen through
func (s *Sink) ErrWithStack(code Code, err error) {
	if err == nil {
		return
	}
	var st stackTracer
	if errors.As(err, &st) {
		s.mu.Lock()
		s.logger.Printf("code=%s stack:%+v", code, st.StackTrace())
		s.mu.Unlock()
	}
	s.Report(Error, code, err.Error())
}
