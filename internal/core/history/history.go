// Package history provides the bounded edit-history log behind the
// flow editor's undo/redo. Every entry is an immutable deep snapshot
// of the graph; the graph shown to the user always equals the entry
// at the cursor.
package history

import (
	"time"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
)

// DefaultLimit caps the number of retained entries. Older entries are
// dropped first.
const DefaultLimit = 50

// Entry is one snapshot in the edit history.
type Entry struct {
	Graph     *graph.Graph `json:"graph"`
	Action    string       `json:"action"`
	Timestamp time.Time    `json:"timestamp"`
}

// valid reports whether the entry can safely replace the live graph.
// A corrupted snapshot must never reach the caller.
func (e Entry) valid() bool {
	return e.Graph != nil && e.Graph.Nodes != nil
}

// Log is the append-only snapshot log with undo/redo cursor.
// Not safe for concurrent use: all structural mutation happens on a
// single logical thread of control.
type Log struct {
	entries []Entry
	cursor  int
	limit   int
}

// New creates a log seeded with the starting snapshot of the graph.
func New(initial *graph.Graph) *Log {
	return NewWithLimit(initial, DefaultLimit)
}

// NewWithLimit creates a log with a custom entry cap.
func NewWithLimit(initial *graph.Graph, limit int) *Log {
	if limit < 1 {
		limit = DefaultLimit
	}
	if initial == nil {
		initial = graph.New()
	}
	return &Log{
		entries: []Entry{{
			Graph:     initial.Clone(),
			Action:    "initial",
			Timestamp: time.Now(),
		}},
		limit: limit,
	}
}

// Record appends a new snapshot after the cursor. Entries past the
// cursor (the redo tail) are discarded: a new edit after an undo
// diverges from the old future. The log is then trimmed to the most
// recent limit entries, dropping the oldest, and the cursor re-based
// onto the new last index.
func (l *Log) Record(g *graph.Graph, action string) error {
	if g == nil || g.Nodes == nil {
		return ErrCorruptSnapshot
	}
	l.entries = append(l.entries[:l.cursor+1], Entry{
		Graph:     g.Clone(),
		Action:    action,
		Timestamp: time.Now(),
	})
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
	l.cursor = len(l.entries) - 1
	return nil
}

// CanUndo reports whether an earlier snapshot exists.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether a later snapshot exists.
func (l *Log) CanRedo() bool { return l.cursor < len(l.entries)-1 }

// Undo steps the cursor back and returns a copy of that snapshot and
// the label of the action that was undone. If the target entry is
// corrupted the cursor does not move and the current state stands.
func (l *Log) Undo() (*graph.Graph, string, error) {
	if !l.CanUndo() {
		return nil, "", ErrNothingToUndo
	}
	target := l.entries[l.cursor-1]
	if !target.valid() {
		return nil, "", ErrCorruptSnapshot
	}
	undone := l.entries[l.cursor].Action
	l.cursor--
	return target.Graph.Clone(), undone, nil
}

// Redo steps the cursor forward and returns a copy of that snapshot
// and the label of the action that was reapplied.
func (l *Log) Redo() (*graph.Graph, string, error) {
	if !l.CanRedo() {
		return nil, "", ErrNothingToRedo
	}
	target := l.entries[l.cursor+1]
	if !target.valid() {
		return nil, "", ErrCorruptSnapshot
	}
	l.cursor++
	return target.Graph.Clone(), target.Action, nil
}

// Current returns a copy of the snapshot at the cursor.
func (l *Log) Current() *graph.Graph {
	return l.entries[l.cursor].Graph.Clone()
}

// Len returns the number of retained entries.
func (l *Log) Len() int { return len(l.entries) }

// Cursor returns the current cursor index. Always a valid index.
func (l *Log) Cursor() int { return l.cursor }

// Action returns the label of the entry at the cursor.
func (l *Log) Action() string { return l.entries[l.cursor].Action }
