package document

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/lixenwraith/vi-edit/fileio"
)

// memStore keeps files in a map
type memStore struct {
	files   map[string][]string
	failOn  string
	written int
}

func (m *memStore) ReadLines(path string) ([]string, error) {
	lines, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return slices.Clone(lines), nil
}

func (m *memStore) WriteLines(path string, lines []string) error {
	if path == m.failOn {
		return os.ErrPermission
	}
	m.files[path] = slices.Clone(lines)
	m.written++
	return nil
}

func TestOpenAndSaveFlags(t *testing.T) {
	st := &memStore{files: map[string][]string{"a.txt": {"one", "two"}}}
	d := New(st)

	if d.IsOpen() {
		t.Fatal("New document must not be open")
	}
	if err := d.Save("x"); !errors.Is(err, ErrFileNotOpen) {
		t.Fatalf("Expected ErrFileNotOpen, got %v", err)
	}

	if err := d.Open("a.txt"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !d.Status().User(FlagOpen) || d.Status().User(FlagSaved) || d.IsDirty() {
		t.Errorf("After open expected Open only, got %b", d.Status().Bits())
	}
	if d.TotalLines() != 2 || d.Line(1).String() != "two" {
		t.Errorf("Unexpected content %q", d.Lines())
	}

	d.InsertLine(2, "three")
	if !d.IsDirty() {
		t.Error("InsertLine must mark dirty")
	}

	if err := d.Save(""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if d.Status().User(FlagOpen) || !d.Status().User(FlagSaved) || d.IsDirty() {
		t.Errorf("After save expected Saved only, got %b", d.Status().Bits())
	}
	if !slices.Equal(st.files["a.txt"], []string{"one", "two", "three"}) {
		t.Errorf("Unexpected saved content %q", st.files["a.txt"])
	}

	// Clearing Open on save must not lose the lifecycle bits
	if !d.Status().IsInitialized() || !d.Status().IsReady() {
		t.Error("Save must clear only the Open bit")
	}

	// A saved document can be saved again
	if err := d.Save("b.txt"); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}
	if d.Filename() != "b.txt" {
		t.Errorf("Expected filename b.txt, got %q", d.Filename())
	}
}

func TestOpenFailure(t *testing.T) {
	d := New(&memStore{files: map[string][]string{}})
	err := d.Open("missing")
	if !errors.Is(err, ErrFailedToOpen) {
		t.Fatalf("Expected ErrFailedToOpen, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Cause must stay reachable, got %v", err)
	}
}

func TestOpenReplacesContent(t *testing.T) {
	st := &memStore{files: map[string][]string{"a": {"1", "2", "3"}, "b": {"x"}}}
	d := New(st)
	d.Open("a")
	d.Open("b")
	if !slices.Equal(d.Lines(), []string{"x"}) {
		t.Errorf("Expected [x], got %q", d.Lines())
	}
}

func TestSaveFailure(t *testing.T) {
	st := &memStore{files: map[string][]string{"a": {"1"}}, failOn: "ro"}
	d := New(st)
	d.Open("a")
	if err := d.Save("ro"); !errors.Is(err, ErrFailedToSave) {
		t.Fatalf("Expected ErrFailedToSave, got %v", err)
	}
	if d.Filename() != "a" {
		t.Error("Failed save must keep the old filename")
	}
}

func TestInsertEraseEnsure(t *testing.T) {
	d := New(&memStore{files: map[string][]string{}})
	d.Create("new.txt")
	if !d.IsOpen() || d.TotalLines() != 0 {
		t.Fatal("Create must give an open, empty document")
	}

	d.InsertLine(0, "b")
	d.InsertLine(0, "a")
	d.InsertLine(99, "c")
	if !slices.Equal(d.Lines(), []string{"a", "b", "c"}) {
		t.Errorf("Expected [a b c], got %q", d.Lines())
	}

	if !d.EraseLine(1) || d.EraseLine(5) {
		t.Error("EraseLine result mismatch")
	}
	if d.Text() != "a\nc\n" {
		t.Errorf("Expected text a/c, got %q", d.Text())
	}

	if l := d.EnsureLine(4); l == nil || d.TotalLines() != 5 {
		t.Errorf("EnsureLine must pad to 5 lines, got %d", d.TotalLines())
	}
	if d.Line(-1) != nil || d.Line(5) != nil {
		t.Error("Out of range Line must be nil")
	}
}

func TestDiskRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644)

	d := New(fileio.Disk{})
	if err := d.Open(path); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	d.Line(0).SetCursor(5)
	d.Line(0).InsertChar('!')
	if err := d.Save(""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "alpha!\nbeta\n" {
		t.Errorf("Unexpected file content %q", data)
	}
}
