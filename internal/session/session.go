// Package session owns the mutable drawing state: the surface, its
// history, the pen, variable bindings and the result overlay. All
// asynchronous work is tied to generation counters so that callbacks
// outliving an undo, redo, reset or newer run are dropped.
package session

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/example/inkcalc/internal/calc"
	"github.com/example/inkcalc/internal/canvas"
	"github.com/example/inkcalc/internal/history"
	"github.com/example/inkcalc/internal/notify"
	"github.com/example/inkcalc/internal/overlay"
)

// DefaultStagger is the delay between consecutive result labels.
const DefaultStagger = time.Second

// Notifier receives user-facing messages.
type Notifier interface {
	Notify(event notify.Event, text string)
}

// Option configures a Session.
type Option func(*Session)

// WithStagger sets the delay between result appends. Zero appends them all
// at once.
func WithStagger(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.stagger = d
		}
	}
}

// WithSpacing sets the vertical distance between result labels.
func WithSpacing(px int) Option {
	return func(s *Session) {
		if px > 0 {
			s.spacing = px
		}
	}
}

// WithHistoryLimit caps the undo depth; zero means unlimited.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.historyLimit = n }
}

// WithNotifier routes messages to n.
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithPen sets the initial pen.
func WithPen(p canvas.Pen) Option {
	return func(s *Session) { s.pen = p }
}

// WithOnChange registers a callback invoked after any visible change.
func WithOnChange(fn func()) Option {
	return func(s *Session) { s.SetOnChange(fn) }
}

type pendingRestore struct {
	gen  uint64
	snap canvas.Snapshot
}

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	surface *canvas.Surface
	history *history.Store
	blank   canvas.Snapshot
	pen     canvas.Pen
	stroke  *canvas.Stroke

	bindings map[string]string
	results  []overlay.Record
	anchor   image.Point

	client   calc.Calculator
	notifier Notifier
	onChange atomic.Pointer[func()]

	stagger      time.Duration
	spacing      int
	historyLimit int

	canvasGen uint64
	pending   *pendingRestore

	// resultGen invalidates result timers; epoch invalidates in-flight
	// runs and only moves on reset.
	resultGen uint64
	epoch     uint64
	timer     *time.Timer
	closed    bool
}

// New creates a session drawing on surface. A nil surface yields a session
// whose operations do nothing.
func New(surface *canvas.Surface, c calc.Calculator, opts ...Option) (*Session, error) {
	s := &Session{
		surface:  surface,
		pen:      canvas.DefaultPen(),
		bindings: map[string]string{},
		client:   c,
		stagger:  DefaultStagger,
		spacing:  overlay.DefaultSpacing,
	}
	for _, opt := range opts {
		opt(s)
	}
	if surface == nil {
		return s, nil
	}
	blank, err := surface.Snapshot()
	if err != nil {
		return nil, err
	}
	s.blank = blank
	s.history = history.New(blank, history.WithLimit(s.historyLimit))
	s.anchor = canvas.Anchor(surface.Ink())
	return s, nil
}

// SetOnChange replaces the change callback.
func (s *Session) SetOnChange(fn func()) {
	if fn == nil {
		s.onChange.Store(nil)
		return
	}
	s.onChange.Store(&fn)
}

func (s *Session) changed() {
	if fn := s.onChange.Load(); fn != nil {
		(*fn)()
	}
}

func (s *Session) notify(event notify.Event, text string) {
	if s.notifier != nil {
		s.notifier.Notify(event, text)
	}
}

func (s *Session) ready() bool {
	return s.surface != nil && !s.closed
}

// Size returns the surface dimensions.
func (s *Session) Size() image.Point {
	if s.surface == nil {
		return image.Point{}
	}
	return s.surface.Bounds().Size()
}

// Pen returns the current pen.
func (s *Session) Pen() canvas.Pen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pen
}

// SetColor changes the colour used by the next stroke.
func (s *Session) SetColor(c color.RGBA) {
	s.mu.Lock()
	s.pen.Color = c
	s.mu.Unlock()
	s.changed()
}

// SetWidth changes the line width used by the next stroke.
func (s *Session) SetWidth(w int) {
	if w < 1 {
		w = 1
	}
	s.mu.Lock()
	s.pen.Width = w
	s.mu.Unlock()
	s.changed()
}

// Flatten returns the visible canvas: ink over the background. It returns
// nil when there is no surface.
func (s *Session) Flatten() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.surface == nil {
		return nil
	}
	return s.surface.Flatten()
}

// HistoryLen returns the number of undo entries, including the blank one.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return 0
	}
	return s.history.Len()
}

// RedoLen returns the number of redo entries.
func (s *Session) RedoLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return 0
	}
	return s.history.RedoLen()
}

// Current returns the active history snapshot.
func (s *Session) Current() canvas.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return ""
	}
	return s.history.Current()
}

// Bindings returns a copy of the variable bindings.
func (s *Session) Bindings() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v
	}
	return out
}

// Results returns the records appended so far.
func (s *Session) Results() []overlay.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]overlay.Record(nil), s.results...)
}

// Anchor returns the point computed for the latest results.
func (s *Session) Anchor() image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anchor
}

// Labels lays the current results out around the anchor.
func (s *Session) Labels() []overlay.Label {
	s.mu.Lock()
	defer s.mu.Unlock()
	return overlay.Layout(s.anchor, s.results, s.spacing)
}

// Close stops pending timers and restores. Later operations are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimerLocked()
	s.resultGen++
	s.canvasGen++
	s.pending = nil
}

// Sync applies any pending restore immediately.
func (s *Session) Sync() {
	s.mu.Lock()
	flushed := s.flushRestoreLocked()
	s.mu.Unlock()
	if flushed {
		s.changed()
	}
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
