// Package memory provides a bounded in-memory snapshot store, the
// default backend for tests and single-process embedding.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
	"github.com/flowcanvas/flowcanvas/internal/core/snapshot"
	"github.com/flowcanvas/flowcanvas/pkg/serialization"
)

// Store implements snapshot.Store with a mutex-guarded map. Entries
// beyond MaxEntries are evicted oldest-first.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	serializer *serialization.Serializer
	maxEntries int
}

type entry struct {
	meta snapshot.Snapshot // Graph stripped; payload holds the graph
	data []byte
}

// Config holds store settings.
type Config struct {
	MaxEntries int                       // 0 means DefaultMaxEntries
	Serializer *serialization.Serializer // nil means serialization.Default()
}

// DefaultMaxEntries bounds the store when no limit is configured.
const DefaultMaxEntries = 256

// New creates an in-memory snapshot store.
func New(config Config) *Store {
	if config.MaxEntries <= 0 {
		config.MaxEntries = DefaultMaxEntries
	}
	if config.Serializer == nil {
		config.Serializer = serialization.Default()
	}
	return &Store{
		entries:    make(map[string]*entry),
		serializer: config.Serializer,
		maxEntries: config.MaxEntries,
	}
}

// Default creates a store with default configuration.
func Default() *Store { return New(Config{}) }

// Save stores a snapshot, evicting the oldest entry if full.
func (s *Store) Save(_ context.Context, snap *snapshot.Snapshot) error {
	if snap == nil {
		return snapshot.ErrInvalidSnapshotID
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("snapshot validation failed: %w", err)
	}

	data, err := s.serializer.Serialize(snap.Graph)
	if err != nil {
		return fmt.Errorf("snapshot serialization failed: %w", err)
	}

	meta := *snap
	meta.Graph = nil

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[snap.ID]; !exists && len(s.entries) >= s.maxEntries {
		s.evictOldestLocked()
	}
	s.entries[snap.ID] = &entry{meta: meta, data: data}
	return nil
}

// Load retrieves a snapshot by ID.
func (s *Store) Load(_ context.Context, id string) (*snapshot.Snapshot, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, snapshot.ErrSnapshotNotFound
	}

	snap := e.meta
	var g graph.Graph
	if err := s.serializer.Deserialize(e.data, &g); err != nil {
		return nil, fmt.Errorf("snapshot deserialization failed: %w", err)
	}
	snap.Graph = &g
	return &snap, nil
}

// List returns snapshots matching the filter, newest first. Graph
// payloads are not materialized; use Load for the full snapshot.
func (s *Store) List(_ context.Context, filter snapshot.Filter) ([]*snapshot.Snapshot, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter validation failed: %w", err)
	}

	s.mu.RLock()
	matched := make([]*snapshot.Snapshot, 0, len(s.entries))
	for _, e := range s.entries {
		meta := e.meta
		if filter.Name != "" && meta.Name != filter.Name {
			continue
		}
		if filter.Since != nil && meta.CreatedAt.Before(*filter.Since) {
			continue
		}
		matched = append(matched, &meta)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Delete removes a snapshot by ID.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return snapshot.ErrSnapshotNotFound
	}
	delete(s.entries, id)
	return nil
}

// Len returns the number of stored snapshots.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) evictOldestLocked() {
	var oldestID string
	for id, e := range s.entries {
		if oldestID == "" || e.meta.CreatedAt.Before(s.entries[oldestID].meta.CreatedAt) {
			oldestID = id
		}
	}
	if oldestID != "" {
		delete(s.entries, oldestID)
	}
}
