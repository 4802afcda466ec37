package input

import (
	"image"
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

func TestFromMouseTranslatesOrigin(t *testing.T) {
	n := NewNormalizer(image.Pt(0, 80), image.Pt(200, 100))
	steps := []struct {
		in    mouse.Event
		phase Phase
		pt    image.Point
	}{
		{mouse.Event{X: 10, Y: 90, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, PhaseDown, image.Pt(10, 10)},
		{mouse.Event{X: 50, Y: 130, Direction: mouse.DirNone}, PhaseMove, image.Pt(50, 50)},
		{mouse.Event{X: 50, Y: 130, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}, PhaseUp, image.Pt(50, 50)},
	}
	for i, s := range steps {
		ev, ok := n.FromMouse(s.in)
		if !ok {
			t.Fatalf("step %d: event dropped", i)
		}
		if ev.Phase != s.phase || ev.Point() != s.pt || ev.Source != SourceMouse {
			t.Fatalf("step %d: got %+v, want %v at %v", i, ev, s.phase, s.pt)
		}
	}
}

func TestFromMouseLeaveFiresOnce(t *testing.T) {
	n := NewNormalizer(image.Pt(0, 80), image.Pt(200, 100))
	n.FromMouse(mouse.Event{X: 10, Y: 90, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	ev, ok := n.FromMouse(mouse.Event{X: 10, Y: 20, Direction: mouse.DirNone})
	if !ok || ev.Phase != PhaseLeave {
		t.Fatalf("expected leave, got %+v %v", ev, ok)
	}
	if _, ok := n.FromMouse(mouse.Event{X: 12, Y: 22, Direction: mouse.DirNone}); ok {
		t.Fatal("second motion outside the canvas should be dropped")
	}
	if _, ok := n.FromMouse(mouse.Event{X: 10, Y: 20, Button: mouse.ButtonLeft, Direction: mouse.DirPress}); ok {
		t.Fatal("press on the toolbar should not start a stroke")
	}
	if _, ok := n.FromMouse(mouse.Event{X: 10, Y: 90, Button: mouse.ButtonRight, Direction: mouse.DirPress}); ok {
		t.Fatal("right button should be ignored")
	}
}

func TestFromTouchAppliesOffset(t *testing.T) {
	n := NewNormalizer(image.Pt(0, 80), image.Pt(200, 200))
	n.TouchOffset = 15
	ev, ok := n.FromTouch(touch.Event{X: 40, Y: 180, Sequence: 7, Type: touch.TypeBegin})
	if !ok || ev.Phase != PhaseDown || ev.Point() != image.Pt(40, 85) || ev.Source != SourceTouch {
		t.Fatalf("begin = %+v %v", ev, ok)
	}
	if _, ok := n.FromTouch(touch.Event{X: 1, Y: 100, Sequence: 8, Type: touch.TypeBegin}); ok {
		t.Fatal("second finger should be ignored")
	}
	if _, ok := n.FromTouch(touch.Event{X: 1, Y: 100, Sequence: 8, Type: touch.TypeMove}); ok {
		t.Fatal("moves of other sequences should be ignored")
	}
	ev, ok = n.FromTouch(touch.Event{X: 60, Y: 200, Sequence: 7, Type: touch.TypeMove})
	if !ok || ev.Phase != PhaseMove || ev.Point() != image.Pt(60, 105) {
		t.Fatalf("move = %+v %v", ev, ok)
	}
	ev, ok = n.FromTouch(touch.Event{X: 60, Y: 200, Sequence: 7, Type: touch.TypeEnd})
	if !ok || ev.Phase != PhaseUp {
		t.Fatalf("end = %+v %v", ev, ok)
	}
	if _, ok := n.Cancel(); ok {
		t.Fatal("nothing left to cancel")
	}
}

func TestPhaseEnds(t *testing.T) {
	for p, want := range map[Phase]bool{PhaseDown: false, PhaseMove: false, PhaseUp: true, PhaseLeave: true, PhaseCancel: true} {
		if p.Ends() != want {
			t.Fatalf("%v.Ends() = %v", p, !want)
		}
	}
}

func TestActionForKey(t *testing.T) {
	tests := []struct {
		ev   key.Event
		want Action
	}{
		{key.Event{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModControl, Direction: key.DirPress}, ActionUndo},
		{key.Event{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModMeta, Direction: key.DirPress}, ActionUndo},
		{key.Event{Rune: 'Z', Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift, Direction: key.DirPress}, ActionRedo},
		{key.Event{Rune: 'y', Code: key.CodeY, Modifiers: key.ModControl, Direction: key.DirPress}, ActionRedo},
		{key.Event{Rune: -1, Code: key.CodeReturnEnter, Modifiers: key.ModControl, Direction: key.DirPress}, ActionRun},
		{key.Event{Rune: 'c', Code: key.CodeC, Modifiers: key.ModControl, Direction: key.DirPress}, ActionCopy},
		{key.Event{Rune: 'z', Code: key.CodeZ, Direction: key.DirPress}, ActionNone},
		{key.Event{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModControl, Direction: key.DirRelease}, ActionNone},
		{key.Event{Rune: 'q', Code: key.CodeQ, Direction: key.DirPress}, ActionQuit},
	}
	for _, tt := range tests {
		if got := ActionForKey(tt.ev); got != tt.want {
			t.Fatalf("ActionForKey(%+v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}
