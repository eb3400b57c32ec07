// Package snapshot provides the persistent graph snapshot entity and
// storage interfaces. The editor itself only keeps in-memory history;
// named snapshots are how an embedding application saves and restores
// a flow across sessions.
package snapshot

import (
	"time"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
)

// Snapshot is a named, persisted copy of a full graph.
type Snapshot struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Graph     *graph.Graph `json:"graph"`
	Tags      []string     `json:"tags,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Validate ensures snapshot integrity.
func (s *Snapshot) Validate() error {
	if s.ID == "" {
		return ErrInvalidSnapshotID
	}
	if s.Name == "" {
		return ErrInvalidSnapshotName
	}
	if s.Graph == nil || s.Graph.Nodes == nil {
		return ErrNilGraph
	}
	return nil
}
