// Package history keeps the undo and redo stacks of canvas snapshots.
package history

import "github.com/example/inkcalc/internal/canvas"

// Store holds the committed snapshots (oldest first) and the snapshots that
// an undo made eligible for redo. The committed stack is never empty.
type Store struct {
	entries []canvas.Snapshot
	redo    []canvas.Snapshot
	limit   int
}

// Option configures a Store.
type Option func(*Store)

// WithLimit caps the number of committed snapshots. Zero or less keeps all
// of them. The oldest entries are dropped first.
func WithLimit(n int) Option { return func(s *Store) { s.limit = n } }

// New creates a store whose only entry is initial.
func New(initial canvas.Snapshot, opts ...Option) *Store {
	s := &Store{entries: []canvas.Snapshot{initial}}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Push commits a snapshot and invalidates the redo branch.
func (s *Store) Push(snap canvas.Snapshot) {
	s.entries = append(s.entries, snap)
	s.redo = s.redo[:0]
	if s.limit > 0 && len(s.entries) > s.limit {
		drop := len(s.entries) - s.limit
		s.entries = append(s.entries[:0], s.entries[drop:]...)
	}
}

// Undo moves the newest entry onto the redo stack and returns the entry that
// is now current. It reports false and changes nothing when only one entry
// remains.
func (s *Store) Undo() (canvas.Snapshot, bool) {
	if len(s.entries) <= 1 {
		return "", false
	}
	last := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	s.redo = append(s.redo, last)
	return s.entries[len(s.entries)-1], true
}

// Redo moves the newest redo entry back onto the committed stack and returns
// it. It reports false when there is nothing to redo.
func (s *Store) Redo() (canvas.Snapshot, bool) {
	if len(s.redo) == 0 {
		return "", false
	}
	snap := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.entries = append(s.entries, snap)
	return snap, true
}

// Reset discards everything and starts again from blank.
func (s *Store) Reset(blank canvas.Snapshot) {
	s.entries = []canvas.Snapshot{blank}
	s.redo = nil
}

// Current returns the newest committed snapshot.
func (s *Store) Current() canvas.Snapshot { return s.entries[len(s.entries)-1] }

// Len returns the number of committed snapshots, including the initial one.
func (s *Store) Len() int { return len(s.entries) }

// RedoLen returns the number of snapshots available to Redo.
func (s *Store) RedoLen() int { return len(s.redo) }

// Entries returns a copy of the committed stack, oldest first.
func (s *Store) Entries() []canvas.Snapshot {
	return append([]canvas.Snapshot(nil), s.entries...)
}

// RedoEntries returns a copy of the redo stack; the last element is the
// next one Redo will return.
func (s *Store) RedoEntries() []canvas.Snapshot {
	return append([]canvas.Snapshot(nil), s.redo...)
}
