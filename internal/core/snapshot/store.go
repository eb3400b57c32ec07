// Package snapshot provides snapshot persistence interfaces
package snapshot

import (
	"context"
	"time"
)

// Store persists snapshots (DIP - the core depends on this interface,
// adapters implement it).
type Store interface {
	// Save persists a snapshot, replacing any previous one with the same ID.
	Save(ctx context.Context, snap *Snapshot) error

	// Load retrieves a snapshot by ID.
	Load(ctx context.Context, id string) (*Snapshot, error)

	// List returns snapshots matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]*Snapshot, error)

	// Delete removes a snapshot by ID.
	Delete(ctx context.Context, id string) error
}

// Filter narrows List results.
type Filter struct {
	Name   string     `json:"name,omitempty"`
	Limit  int        `json:"limit,omitempty"`
	Offset int        `json:"offset,omitempty"`
	Since  *time.Time `json:"since,omitempty"`
}

// Validate ensures filter parameters are valid.
func (f *Filter) Validate() error {
	if f.Limit < 0 {
		return ErrInvalidLimit
	}
	if f.Offset < 0 {
		return ErrInvalidOffset
	}
	return nil
}
