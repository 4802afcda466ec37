package session

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/example/inkcalc/internal/calc"
	"github.com/example/inkcalc/internal/canvas"
	"github.com/example/inkcalc/internal/notify"
	"github.com/example/inkcalc/internal/overlay"
)

// Messages shown when a run does not produce results.
const (
	MessageTransport = "Error in getting results"
	MessageEmpty     = "No result found"
)

// Run sends the flattened canvas and current bindings to the calculator and
// applies the reply. Every failure is reported through the notifier; the
// returned error is the transport error, if any, for callers that want to
// print it. Replies that arrive after a reset are discarded.
func (s *Session) Run(ctx context.Context) (calc.Outcome, error) {
	s.mu.Lock()
	if !s.ready() || s.client == nil {
		s.mu.Unlock()
		return nil, nil
	}
	flushed := s.flushRestoreLocked()
	img := s.surface.Flatten()
	vars := make(map[string]string, len(s.bindings))
	for k, v := range s.bindings {
		vars[k] = v
	}
	epoch := s.epoch
	s.mu.Unlock()
	if flushed {
		s.changed()
	}

	outcome, err := s.client.Calculate(ctx, img, vars)
	if err != nil {
		log.Printf("run: %v", err)
		if s.current(epoch) {
			s.notify(notify.EventError, MessageTransport)
		}
		return nil, err
	}
	if !s.current(epoch) {
		log.Printf("run: discarding reply from before reset")
		return outcome, nil
	}

	switch o := outcome.(type) {
	case calc.Failure:
		s.notify(notify.EventError, o.Message)
	case calc.Empty:
		s.notify(notify.EventEmpty, MessageEmpty)
	case calc.Success:
		if s.applySuccess(epoch, o) {
			s.notify(notify.EventResult, summary(o.Entries))
		}
	}
	return outcome, nil
}

func (s *Session) current(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.epoch == epoch
}

// applySuccess merges assignments, recomputes the anchor and starts the
// staggered append of the new records, superseding any earlier run.
func (s *Session) applySuccess(epoch uint64, o calc.Success) bool {
	s.mu.Lock()
	if s.closed || s.epoch != epoch {
		s.mu.Unlock()
		return false
	}
	for k, v := range o.Assignments() {
		s.bindings[k] = v
	}
	s.flushRestoreLocked()
	s.anchor = canvas.Anchor(s.surface.Ink())
	s.resultGen++
	s.stopTimerLocked()
	s.results = nil

	records := make([]overlay.Record, len(o.Entries))
	for i, e := range o.Entries {
		records[i] = overlay.Record{Expression: e.Expr, Answer: e.Result}
	}
	s.appendLocked(s.resultGen, records, 0)
	s.mu.Unlock()
	s.changed()
	return true
}

// appendLocked appends records[i] and arms a timer for the next one, so
// record i lands i*stagger after the first.
func (s *Session) appendLocked(gen uint64, records []overlay.Record, i int) {
	if gen != s.resultGen || i >= len(records) {
		return
	}
	s.results = append(s.results, records[i])
	if s.stagger == 0 {
		s.appendLocked(gen, records, i+1)
		return
	}
	if i+1 >= len(records) {
		s.timer = nil
		return
	}
	s.timer = time.AfterFunc(s.stagger, func() {
		s.mu.Lock()
		if gen != s.resultGen {
			s.mu.Unlock()
			return
		}
		s.appendLocked(gen, records, i+1)
		s.mu.Unlock()
		s.changed()
	})
}

func summary(entries []calc.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, overlay.Record{Expression: e.Expr, Answer: e.Result}.Text())
	}
	return strings.Join(parts, ", ")
}
