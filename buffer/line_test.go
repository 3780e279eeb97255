package buffer

import (
	"errors"
	"math/rand"
	"testing"
)

func TestInitTwiceFails(t *testing.T) {
	var l Line
	if err := l.Init("abc", 1, 2); err != nil {
		t.Fatalf("First Init failed: %v", err)
	}
	if err := l.Init("xyz", 0, 0); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("Expected ErrAlreadyInitialized, got %v", err)
	}
	if l.String() != "abc" || l.Cursor() != 0 || l.Len() != 3 {
		t.Errorf("Second Init must not change state: %q cursor=%d", l.String(), l.Cursor())
	}
	if x, y := l.Anchor(); x != 1 || y != 2 {
		t.Errorf("Expected anchor (1,2), got (%d,%d)", x, y)
	}
}

func TestInsertBeforeInitFails(t *testing.T) {
	var l Line
	if err := l.InsertChar('a'); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

func TestEditScenario(t *testing.T) {
	l := New("test string")

	if err := l.InsertChar('a'); err != nil {
		t.Fatalf("InsertChar failed: %v", err)
	}
	if l.String() != "atest string" || l.Cursor() != 1 {
		t.Fatalf("Expected 'atest string' cursor 1, got %q cursor %d", l.String(), l.Cursor())
	}

	l.MoveCursorEnd()
	l.DeleteCharBackward()
	if l.String() != "atest strin" {
		t.Errorf("Expected 'atest strin', got %q", l.String())
	}
	l.DeleteCharBackward()
	if l.String() != "atest stri" {
		t.Errorf("Expected 'atest stri', got %q", l.String())
	}
	if l.Cursor() != l.Len() {
		t.Errorf("Expected cursor at end %d, got %d", l.Len(), l.Cursor())
	}
}

func TestDeleteBackwardAtZeroIsNoop(t *testing.T) {
	l := New("abc")
	l.DeleteCharBackward()
	if l.String() != "abc" || l.Cursor() != 0 {
		t.Errorf("Expected unchanged, got %q cursor %d", l.String(), l.Cursor())
	}
}

func TestDeleteForwardClamps(t *testing.T) {
	tests := []struct {
		name   string
		cursor int
		n      int
		want   string
		count  int
	}{
		{"Middle", 1, 2, "ad", 2},
		{"PastEnd", 2, 10, "ab", 2},
		{"AtEnd", 4, 1, "abcd", 0},
		{"Zero", 0, 0, "abcd", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New("abcd")
			l.SetCursor(tt.cursor)
			if got := l.DeleteForward(tt.n); got != tt.count {
				t.Errorf("Expected %d removed, got %d", tt.count, got)
			}
			if l.String() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, l.String())
			}
			if l.Cursor() != tt.cursor {
				t.Errorf("Cursor must hold at %d, got %d", tt.cursor, l.Cursor())
			}
		})
	}
}

func TestCursorMovesClamp(t *testing.T) {
	l := New("ab")
	l.MoveCursorLeft()
	if l.Cursor() != 0 {
		t.Errorf("Left at 0 must clamp, got %d", l.Cursor())
	}
	l.MoveCursorRight()
	l.MoveCursorRight()
	l.MoveCursorRight()
	if l.Cursor() != 2 {
		t.Errorf("Right must clamp at len, got %d", l.Cursor())
	}
	l.MoveCursorHome()
	if l.Cursor() != 0 {
		t.Errorf("Home expected 0, got %d", l.Cursor())
	}
	l.SetCursor(99)
	if l.Cursor() != 2 {
		t.Errorf("SetCursor must clamp, got %d", l.Cursor())
	}
}

func TestCharAt(t *testing.T) {
	l := New("hé")
	if r, err := l.CharAt(1); err != nil || r != 'é' {
		t.Errorf("Expected 'é', got %q err %v", r, err)
	}
	if _, err := l.CharAt(2); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("Expected ErrIndexOutOfBounds, got %v", err)
	}
	if _, err := l.CharAt(-1); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("Expected ErrIndexOutOfBounds for negative index, got %v", err)
	}
}

func TestCursorInvariantUnderRandomEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := New("seed")
	for i := 0; i < 2000; i++ {
		switch rng.Intn(6) {
		case 0, 1:
			l.InsertChar(rune('a' + rng.Intn(26)))
		case 2:
			l.DeleteCharBackward()
		case 3:
			l.DeleteForward(rng.Intn(3))
		case 4:
			l.MoveCursorLeft()
		case 5:
			l.MoveCursorRight()
		}
		if l.Cursor() < 0 || l.Cursor() > l.Len() {
			t.Fatalf("step %d: cursor %d outside [0,%d]", i, l.Cursor(), l.Len())
		}
	}
}

func TestInsertThenBackspaceRestores(t *testing.T) {
	for _, pos := range []int{0, 2, 5} {
		l := New("hello")
		l.SetCursor(pos)
		l.InsertChar('x')
		l.DeleteCharBackward()
		if l.String() != "hello" || l.Cursor() != pos {
			t.Errorf("pos %d: expected 'hello' cursor %d, got %q cursor %d", pos, pos, l.String(), l.Cursor())
		}
	}
}

func TestSplitPadAppend(t *testing.T) {
	l := New("hello world")
	l.MoveCursorEnd()
	tail := l.Split(5)
	if l.String() != "hello" || tail != " world" {
		t.Errorf("Split gave %q / %q", l.String(), tail)
	}
	if l.Cursor() != 5 {
		t.Errorf("Cursor must clamp to split point, got %d", l.Cursor())
	}

	l.PadTo(8)
	if l.String() != "hello   " {
		t.Errorf("PadTo gave %q", l.String())
	}
	l.Append("!")
	if l.String() != "hello   !" {
		t.Errorf("Append gave %q", l.String())
	}
	if got := l.Slice(6, 100); got != "  !" {
		t.Errorf("Slice gave %q", got)
	}
	if got := l.Slice(20, 30); got != "" {
		t.Errorf("Slice past end gave %q", got)
	}
}

func TestHighlightStoredRaw(t *testing.T) {
	l := New("abc")
	l.SetHighlight(5, -2)
	if s, e := l.Highlight(); s != 5 || e != -2 {
		t.Errorf("Expected raw (5,-2), got (%d,%d)", s, e)
	}
	l.ClearHighlight()
	if s, e := l.Highlight(); s != 0 || e != 0 {
		t.Errorf("Expected cleared highlight, got (%d,%d)", s, e)
	}
}
