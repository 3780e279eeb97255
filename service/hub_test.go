package service

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

type fakeService struct {
	name    string
	deps    []string
	log     *[]string
	initErr error
	gotArgs []any
	stops   int
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }
func (f *fakeService) Init(args ...any) error {
	f.gotArgs = args
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}
func (f *fakeService) Start() error {
	*f.log = append(*f.log, "start:"+f.name)
	return nil
}
func (f *fakeService) Stop() error {
	f.stops++
	*f.log = append(*f.log, "stop:"+f.name)
	return nil
}

func TestHubDependencyOrder(t *testing.T) {
	var log []string
	h := NewHub()
	audio := &fakeService{name: "audio", deps: []string{"report"}, log: &log}
	report := &fakeService{name: "report", log: &log}
	term := &fakeService{name: "terminal", log: &log}

	h.Register(audio, true)
	h.Register(term)
	h.Register(report, "/tmp/x.log")

	if err := h.InitAll(); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if err := h.StartAll(); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := h.StopAll(); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	want := []string{
		"init:report", "init:terminal", "init:audio",
		"start:report", "start:terminal", "start:audio",
		"stop:audio", "stop:terminal", "stop:report",
	}
	if !slices.Equal(log, want) {
		t.Errorf("Expected %v, got %v", want, log)
	}
	if len(audio.gotArgs) != 1 || audio.gotArgs[0] != true {
		t.Errorf("Init must receive registered args, got %v", audio.gotArgs)
	}
}

func TestHubRejectsDuplicatesAndCycles(t *testing.T) {
	var log []string
	h := NewHub()
	if err := h.Register(&fakeService{name: "a", log: &log}); err != nil {
		t.Fatal(err)
	}
	if err := h.Register(&fakeService{name: "a", log: &log}); err == nil {
		t.Error("Expected duplicate registration error")
	}

	c := NewHub()
	c.Register(&fakeService{name: "x", deps: []string{"y"}, log: &log})
	c.Register(&fakeService{name: "y", deps: []string{"x"}, log: &log})
	if err := c.InitAll(); err == nil || !strings.Contains(err.Error(), "circular") {
		t.Errorf("Expected circular dependency error, got %v", err)
	}

	m := NewHub()
	m.Register(&fakeService{name: "x", deps: []string{"missing"}, log: &log})
	if err := m.InitAll(); err == nil {
		t.Error("Expected unregistered dependency error")
	}
}

func TestHubInitRollback(t *testing.T) {
	var log []string
	h := NewHub()
	first := &fakeService{name: "a", log: &log}
	failing := &fakeService{name: "b", deps: []string{"a"}, log: &log, initErr: errors.New("boom")}
	h.Register(first)
	h.Register(failing)

	err := h.InitAll()
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("Expected init failure, got %v", err)
	}
	if first.stops != 1 {
		t.Errorf("Initialized services must be stopped on failure, stops=%d", first.stops)
	}
	if failing.stops != 0 {
		t.Errorf("Failed service must not be stopped, stops=%d", failing.stops)
	}
}

func TestLookup(t *testing.T) {
	var log []string
	h := NewHub()
	svc := &fakeService{name: "a", log: &log}
	h.Register(svc)

	got, err := Lookup[*fakeService](h, "a")
	if err != nil || got != svc {
		t.Fatalf("Lookup failed: %v", err)
	}
	if _, err := Lookup[*fakeService](h, "b"); err == nil {
		t.Error("Expected not found error")
	}
	if _, err := Lookup[interface{ Missing() }](h, "a"); err == nil {
		t.Error("Expected type mismatch error")
	}
}
