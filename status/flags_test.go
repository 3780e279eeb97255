package status

import "testing"

func TestTrackerZeroValueIsNotInitialized(t *testing.T) {
	var tr Tracker
	bits := tr.Bits()
	if bits&NotInitialized == 0 {
		t.Fatal("Expected NotInitialized on zero value")
	}
	if bits&Initialized != 0 {
		t.Fatal("Expected Initialized clear on zero value")
	}
	if tr.IsInitialized() {
		t.Fatal("Expected IsInitialized false")
	}
}

func TestTrackerInitializedExclusive(t *testing.T) {
	var tr Tracker
	steps := []struct {
		name string
		fn   func()
		init bool
	}{
		{"mark", tr.MarkInitialized, true},
		{"mark twice", tr.MarkInitialized, true},
		{"reset", tr.Reset, false},
		{"mark again", tr.MarkInitialized, true},
	}

	for _, step := range steps {
		step.fn()
		bits := tr.Bits()
		hasNot := bits&NotInitialized != 0
		hasInit := bits&Initialized != 0
		if hasNot == hasInit {
			t.Fatalf("%s: exactly one of NotInitialized/Initialized must be set, got %016b", step.name, bits)
		}
		if hasInit != step.init {
			t.Errorf("%s: expected initialized=%v, got %v", step.name, step.init, hasInit)
		}
	}
}

func TestTrackerIndependentFlags(t *testing.T) {
	var tr Tracker
	tr.MarkInitialized()
	tr.SetReady(true)
	tr.SetBusy(true)
	tr.SetError(true)

	if !tr.IsReady() || !tr.IsBusy() || !tr.HasError() {
		t.Fatalf("Expected ready/busy/error set, got %016b", tr.Bits())
	}

	tr.SetBusy(false)
	if tr.IsBusy() {
		t.Error("Expected busy cleared")
	}
	if !tr.IsReady() || !tr.HasError() {
		t.Error("Clearing busy must not touch ready or error")
	}

	tr.Reset()
	if tr.IsReady() || tr.HasError() {
		t.Error("Reset must clear all flags")
	}
}

func TestUserFlags(t *testing.T) {
	var tr Tracker
	for i := 0; i < UserFlagCount; i++ {
		tr.SetUser(i, true)
		for j := 0; j < UserFlagCount; j++ {
			if got := tr.User(j); got != (j <= i) {
				t.Fatalf("after setting 0..%d: user(%d)=%v", i, j, got)
			}
		}
	}

	tr.SetUser(3, false)
	if tr.User(3) {
		t.Error("Expected user flag 3 cleared")
	}
	if !tr.User(2) || !tr.User(4) {
		t.Error("Clearing user flag 3 must clear exactly that bit")
	}

	// Out of range is ignored
	tr.SetUser(8, true)
	tr.SetUser(-1, true)
	if tr.User(8) || tr.User(-1) {
		t.Error("Out of range user flags must read false")
	}
	if tr.Bits()&(Ready|Busy|Error) != 0 {
		t.Error("User flags must not alias lifecycle bits")
	}
}
