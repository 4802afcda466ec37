package session

import (
	"log"

	"github.com/example/inkcalc/internal/canvas"
	"github.com/example/inkcalc/internal/input"
)

// Pointer feeds one normalised pointer event into the stroke state machine.
// A stroke is committed to history when it ends.
func (s *Session) Pointer(ev input.Event) {
	s.mu.Lock()
	if !s.ready() {
		s.mu.Unlock()
		return
	}
	dirty := false
	switch {
	case ev.Phase == input.PhaseDown:
		dirty = s.flushRestoreLocked()
		if s.stroke != nil {
			s.commitLocked()
		}
		s.stroke = canvas.BeginStroke(ev.Point(), s.pen)
	case ev.Phase == input.PhaseMove:
		if s.stroke != nil {
			r := s.stroke.Extend(s.surface.Ink(), ev.Point())
			dirty = !r.Empty()
		}
	case ev.Phase.Ends():
		if s.stroke != nil {
			s.commitLocked()
			dirty = true
		}
	}
	s.mu.Unlock()
	if dirty {
		s.changed()
	}
}

func (s *Session) commitLocked() {
	s.stroke = nil
	snap, err := s.surface.Snapshot()
	if err != nil {
		log.Printf("commit stroke: %v", err)
		return
	}
	s.history.Push(snap)
}

// Undo steps back one stroke. The pixels are restored asynchronously.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready() {
		return false
	}
	s.stroke = nil
	snap, ok := s.history.Undo()
	if ok {
		s.scheduleRestoreLocked(snap)
	}
	return ok
}

// Redo reapplies the most recently undone stroke.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready() {
		return false
	}
	s.stroke = nil
	snap, ok := s.history.Redo()
	if ok {
		s.scheduleRestoreLocked(snap)
	}
	return ok
}

// Reset clears the canvas, history, bindings and results. In-flight runs
// and result timers are invalidated.
func (s *Session) Reset() {
	s.mu.Lock()
	if !s.ready() {
		s.mu.Unlock()
		return
	}
	s.canvasGen++
	s.pending = nil
	s.stroke = nil
	s.surface.Clear()
	s.history.Reset(s.blank)

	s.epoch++
	s.resultGen++
	s.stopTimerLocked()
	s.bindings = map[string]string{}
	s.results = nil
	s.anchor = canvas.Anchor(s.surface.Ink())
	s.mu.Unlock()
	s.changed()
}

// scheduleRestoreLocked decodes snap in the background and applies it only
// if no newer undo, redo or reset happened meanwhile.
func (s *Session) scheduleRestoreLocked(snap canvas.Snapshot) {
	s.canvasGen++
	gen := s.canvasGen
	s.pending = &pendingRestore{gen: gen, snap: snap}
	go func() {
		img, err := snap.Decode()
		s.mu.Lock()
		if s.pending == nil || s.pending.gen != gen {
			s.mu.Unlock()
			return
		}
		s.pending = nil
		if err != nil {
			s.mu.Unlock()
			log.Printf("restore: %v", err)
			return
		}
		if err := s.surface.Restore(img); err != nil {
			s.mu.Unlock()
			log.Printf("restore: %v", err)
			return
		}
		s.mu.Unlock()
		s.changed()
	}()
}

// flushRestoreLocked applies a pending restore synchronously so the next
// stroke starts on the restored pixels.
func (s *Session) flushRestoreLocked() bool {
	if s.pending == nil {
		return false
	}
	p := s.pending
	s.pending = nil
	img, err := p.snap.Decode()
	if err != nil {
		log.Printf("restore: %v", err)
		return false
	}
	if err := s.surface.Restore(img); err != nil {
		log.Printf("restore: %v", err)
		return false
	}
	return true
}
