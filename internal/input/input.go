// Package input turns shiny mouse, touch and key events into the uniform
// pointer stream and actions the drawing session understands.
package input

import (
	"image"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

// DefaultTouchOffset is the vertical bias, in pixels, subtracted from touch
// positions so the ink appears above the finger's contact point.
const DefaultTouchOffset = 20

// Phase is the stage of a pointer gesture.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseLeave
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseLeave:
		return "leave"
	case PhaseCancel:
		return "cancel"
	}
	return "unknown"
}

// Ends reports whether the phase finishes a stroke.
func (p Phase) Ends() bool { return p == PhaseUp || p == PhaseLeave || p == PhaseCancel }

// Source identifies the device that produced an event.
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

// Event is a canvas-local pointer event.
type Event struct {
	X, Y   int
	Phase  Phase
	Source Source
}

// Point returns the event position.
func (e Event) Point() image.Point { return image.Pt(e.X, e.Y) }

// Normalizer maps window coordinates onto the canvas, which sits at Origin
// and spans Size pixels.
type Normalizer struct {
	Origin      image.Point
	Size        image.Point
	TouchOffset int

	touching bool
	sequence touch.Sequence
	inside   bool
}

// NewNormalizer returns a normalizer for a canvas placed at origin.
func NewNormalizer(origin, size image.Point) *Normalizer {
	return &Normalizer{Origin: origin, Size: size, TouchOffset: DefaultTouchOffset}
}

func (n *Normalizer) local(x, y float32) (int, int) {
	return int(x) - n.Origin.X, int(y) - n.Origin.Y
}

func (n *Normalizer) contains(x, y int) bool {
	if n.Size == (image.Point{}) {
		return true
	}
	return x >= 0 && y >= 0 && x < n.Size.X && y < n.Size.Y
}

// FromMouse converts a mouse event. Only the left button draws; motion that
// leaves the canvas rectangle is reported once as PhaseLeave.
func (n *Normalizer) FromMouse(e mouse.Event) (Event, bool) {
	x, y := n.local(e.X, e.Y)
	ev := Event{X: x, Y: y, Source: SourceMouse}
	in := n.contains(x, y)
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if !in {
			return Event{}, false
		}
		n.inside = true
		ev.Phase = PhaseDown
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		n.inside = in
		ev.Phase = PhaseUp
	case e.Direction == mouse.DirNone:
		if !in {
			if !n.inside {
				return Event{}, false
			}
			n.inside = false
			ev.Phase = PhaseLeave
			return ev, true
		}
		n.inside = true
		ev.Phase = PhaseMove
	default:
		return Event{}, false
	}
	return ev, true
}

// FromTouch converts a touch event, applying TouchOffset. Only the sequence
// that began first is tracked until it ends.
func (n *Normalizer) FromTouch(e touch.Event) (Event, bool) {
	x, y := n.local(e.X, e.Y)
	y -= n.TouchOffset
	ev := Event{X: x, Y: y, Source: SourceTouch}
	switch e.Type {
	case touch.TypeBegin:
		if n.touching || !n.contains(x, y+n.TouchOffset) {
			return Event{}, false
		}
		n.touching = true
		n.sequence = e.Sequence
		ev.Phase = PhaseDown
	case touch.TypeMove:
		if !n.touching || e.Sequence != n.sequence {
			return Event{}, false
		}
		ev.Phase = PhaseMove
	case touch.TypeEnd:
		if !n.touching || e.Sequence != n.sequence {
			return Event{}, false
		}
		n.touching = false
		ev.Phase = PhaseUp
	default:
		return Event{}, false
	}
	return ev, true
}

// Cancel aborts any tracked gesture, for example when the window loses focus.
func (n *Normalizer) Cancel() (Event, bool) {
	if !n.touching && !n.inside {
		return Event{}, false
	}
	n.touching = false
	n.inside = false
	return Event{Phase: PhaseCancel}, true
}
