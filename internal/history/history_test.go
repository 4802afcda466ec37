package history

import (
	"fmt"
	"slices"
	"testing"

	"github.com/example/inkcalc/internal/canvas"
)

func snap(i int) canvas.Snapshot { return canvas.Snapshot(fmt.Sprintf("s%d", i)) }

func TestPushCountsStrokes(t *testing.T) {
	for n := 0; n < 6; n++ {
		s := New(snap(0))
		for i := 1; i <= n; i++ {
			s.Push(snap(i))
		}
		if s.Len() != n+1 {
			t.Fatalf("after %d strokes Len = %d, want %d", n, s.Len(), n+1)
		}
		if s.RedoLen() != 0 {
			t.Fatalf("redo should be empty, got %d", s.RedoLen())
		}
	}
}

func TestUndoRedoAreInverse(t *testing.T) {
	for n := 1; n < 5; n++ {
		s := New(snap(0))
		for i := 1; i <= n; i++ {
			s.Push(snap(i))
		}
		entries, redo := s.Entries(), s.RedoEntries()
		cur, ok := s.Undo()
		if !ok {
			t.Fatal("undo should succeed")
		}
		if cur != snap(n-1) {
			t.Fatalf("undo current = %q, want %q", cur, snap(n-1))
		}
		got, ok := s.Redo()
		if !ok || got != snap(n) {
			t.Fatalf("redo = %q, %v", got, ok)
		}
		if !slices.Equal(entries, s.Entries()) || !slices.Equal(redo, s.RedoEntries()) {
			t.Fatalf("undo+redo changed state: %v %v", s.Entries(), s.RedoEntries())
		}
	}
}

func TestUndoOnSingleEntryIsNoop(t *testing.T) {
	s := New(snap(0))
	if _, ok := s.Undo(); ok {
		t.Fatal("undo should be a no-op")
	}
	if s.Len() != 1 || s.RedoLen() != 0 || s.Current() != snap(0) {
		t.Fatalf("state changed: %v %v", s.Entries(), s.RedoEntries())
	}
}

func TestRedoOnEmptyBufferIsNoop(t *testing.T) {
	s := New(snap(0))
	s.Push(snap(1))
	if _, ok := s.Redo(); ok {
		t.Fatal("redo should be a no-op")
	}
	if s.Len() != 2 || s.Current() != snap(1) {
		t.Fatalf("state changed: %v", s.Entries())
	}
}

func TestPushAfterUndoClearsRedo(t *testing.T) {
	s := New(snap(0))
	s.Push(snap(1))
	s.Push(snap(2))
	s.Undo()
	s.Undo()
	if s.RedoLen() != 2 {
		t.Fatalf("RedoLen = %d", s.RedoLen())
	}
	s.Push(snap(3))
	if s.RedoLen() != 0 {
		t.Fatalf("push should clear redo, got %d", s.RedoLen())
	}
	if want := []canvas.Snapshot{snap(0), snap(3)}; !slices.Equal(s.Entries(), want) {
		t.Fatalf("entries = %v, want %v", s.Entries(), want)
	}
}

func TestResetAlwaysLeavesOneEntry(t *testing.T) {
	s := New(snap(0))
	for i := 1; i < 4; i++ {
		s.Push(snap(i))
	}
	s.Undo()
	s.Reset(snap(9))
	if s.Len() != 1 || s.RedoLen() != 0 || s.Current() != snap(9) {
		t.Fatalf("reset left %v / %v", s.Entries(), s.RedoEntries())
	}
	s.Reset(snap(10))
	if s.Len() != 1 || s.Current() != snap(10) {
		t.Fatalf("second reset left %v", s.Entries())
	}
}

func TestLimitDropsOldest(t *testing.T) {
	s := New(snap(0), WithLimit(3))
	for i := 1; i <= 5; i++ {
		s.Push(snap(i))
	}
	if want := []canvas.Snapshot{snap(3), snap(4), snap(5)}; !slices.Equal(s.Entries(), want) {
		t.Fatalf("entries = %v, want %v", s.Entries(), want)
	}
	s.Undo()
	s.Undo()
	if _, ok := s.Undo(); ok {
		t.Fatal("limit must still keep one entry")
	}
	if s.Current() != snap(3) {
		t.Fatalf("current = %q", s.Current())
	}
}
