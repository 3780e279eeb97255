package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-edit/audio"
	"github.com/lixenwraith/vi-edit/config"
	"github.com/lixenwraith/vi-edit/constant"
	"github.com/lixenwraith/vi-edit/editor"
	"github.com/lixenwraith/vi-edit/report"
	"github.com/lixenwraith/vi-edit/service"
	"github.com/lixenwraith/vi-edit/status"
	"github.com/lixenwraith/vi-edit/terminal"
)

var (
	configFlag = flag.String("config", defaultConfigPath(), "Path to the TOML config file")
	logFlag    = flag.String("log", "", "Log file path, overrides log_file from the config")
	muteFlag   = flag.Bool("mute", false, "Start with the bell muted")
)

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vi-edit", "config.toml")
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	os.Exit(run(flag.Arg(0)))
}

func run(path string) (code int) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v\n", err)
		return 2
	}

	tscr, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	pal := terminal.NewPalette()
	cfg.Apply(pal)

	screen := terminal.NewScreen(tscr, pal)
	sink := report.NewSink()
	bell := audio.NewBell(sink)
	counters := status.NewCounters()

	hub := service.NewHub()
	hub.Register(sink, logPath(cfg, *logFlag))
	hub.Register(screen, cfg.Mouse)
	hub.Register(bell, *muteFlag || !cfg.Bell, cfg.Volume)

	// Panic recovery: restore the terminal before printing so the trace is readable
	defer func() {
		if r := recover(); r != nil {
			_ = screen.Stop()
			fmt.Fprintf(os.Stderr, "\nVI-EDIT CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			code = 1
		}
	}()

	if err := hub.InitAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		return 1
	}
	if err := hub.StartAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return 1
	}
	defer hub.StopAll()

	sink.OnError(func(report.Entry) { bell.Ring(audio.SoundError) })
	sink.Reportf(report.Info, report.None, "services up: %v", hub.Order())

	w, h := screen.Size()
	ed := editor.New(screen.Tcell(), pal, editor.Options{
		Sink:      sink,
		Config:    cfg,
		Clipboard: editor.SystemClipboard(),
		Bell:      bell,
		Counters:  counters,
	})
	if err := ed.Init(w, h, 0, 0); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize editor: %v\n", err)
		return 1
	}
	loadInitial(ed, path)
	ed.Render()

	loop(screen, ed)

	sink.Reportf(report.Info, report.None, "session end: %s", counters)
	return 0
}

// logPath picks the flag over the config value
func logPath(cfg *config.Config, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.LogFile
}

// loadInitial opens path, a path that does not exist yet starts a new file
func loadInitial(ed *editor.Editor, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return ed.NewDocument(path)
	}
	return ed.LoadDocument(path)
}

// loop polls one event per iteration and redraws only when it changed something
// An idle iteration waits for the next frame tick
func loop(screen *terminal.Screen, ed *editor.Editor) {
	ticker := time.NewTicker(constant.FrameInterval)
	defer ticker.Stop()

	for !ed.Done() {
		ev := screen.Poll()
		if ed.HandleEvent(ev) {
			ed.Render()
		}
		ed.Tick()
		if ev.Type == terminal.EventNone {
			<-ticker.C
		}
	}
}
