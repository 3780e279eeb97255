package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-edit/config"
	"github.com/lixenwraith/vi-edit/editor"
)

func newEditor(t *testing.T) *editor.Editor {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(40, 10)
	t.Cleanup(sim.Fini)
	ed := editor.New(sim, nil, editor.Options{})
	if err := ed.Init(40, 10, 0, 0); err != nil {
		t.Fatal(err)
	}
	return ed
}

func TestLogPath(t *testing.T) {
	cfg := config.Default()
	cfg.LogFile = "from-config.log"
	if got := logPath(cfg, ""); got != "from-config.log" {
		t.Errorf("Expected config value, got %q", got)
	}
	if got := logPath(cfg, "from-flag.log"); got != "from-flag.log" {
		t.Errorf("Flag must win, got %q", got)
	}
}

func TestLoadInitial(t *testing.T) {
	dir := t.TempDir()

	ed := newEditor(t)
	if err := loadInitial(ed, ""); err != nil || ed.Document().Filename() != "" {
		t.Errorf("No path must keep the unnamed document, err=%v", err)
	}

	existing := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(existing, []byte("a\nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := loadInitial(ed, existing); err != nil {
		t.Fatalf("Existing file: %v", err)
	}
	if ed.TotalLines() != 2 {
		t.Errorf("Expected 2 lines, got %d", ed.TotalLines())
	}

	fresh := filepath.Join(dir, "new.txt")
	if err := loadInitial(ed, fresh); err != nil {
		t.Fatalf("Missing file must start a new document: %v", err)
	}
	if ed.Document().Filename() != fresh || ed.TotalLines() != 0 || ed.Status().HasError() {
		t.Errorf("Unexpected state after new file: %s", ed)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	if p := defaultConfigPath(); p != "" && filepath.Base(p) != "config.toml" {
		t.Errorf("Unexpected default config path %q", p)
	}
}
