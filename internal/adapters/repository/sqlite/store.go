// Package sqlite provides a snapshot store backed by SQLite through
// the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
	"github.com/flowcanvas/flowcanvas/internal/core/snapshot"
	"github.com/flowcanvas/flowcanvas/pkg/serialization"
)

// Store implements snapshot.Store for SQLite.
type Store struct {
	db         *sql.DB
	serializer *serialization.Serializer
	tableName  string
}

// New creates a SQLite snapshot store. A nil serializer falls back to
// the default msgpack+zstd pipeline.
func New(db *sql.DB, serializer *serialization.Serializer) *Store {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &Store{
		db:         db,
		serializer: serializer,
		tableName:  "flow_snapshots",
	}
}

// Open opens (or creates) a SQLite database at path and returns a
// store with its schema ensured. Use ":memory:" for an ephemeral db.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	s := New(db, nil)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema creates the snapshot table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			graph      BLOB NOT NULL,
			tags       TEXT NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL
		)
	`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create snapshot schema: %w", err)
	}
	return nil
}

// Save upserts a snapshot.
func (s *Store) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	if snap == nil {
		return snapshot.ErrInvalidSnapshotID
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("snapshot validation failed: %w", err)
	}

	data, err := s.serializer.Serialize(snap.Graph)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot graph: %w", err)
	}
	tagsJSON, err := json.Marshal(snap.Tags)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot tags: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, graph, tags, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			graph = excluded.graph,
			tags = excluded.tags,
			created_at = excluded.created_at
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query,
		snap.ID, snap.Name, data, string(tagsJSON), snap.CreatedAt.UnixNano()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load retrieves a snapshot by ID.
func (s *Store) Load(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	if id == "" {
		return nil, snapshot.ErrInvalidSnapshotID
	}

	query := fmt.Sprintf(`
		SELECT id, name, graph, tags, created_at
		FROM %s
		WHERE id = ?
	`, s.tableName)

	snap, err := s.scanRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, snapshot.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return snap, nil
}

// List retrieves snapshots matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter snapshot.Filter) ([]*snapshot.Snapshot, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter validation failed: %w", err)
	}

	query, args := s.buildListQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*snapshot.Snapshot
	for rows.Next() {
		snap, err := s.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}
	return snaps, nil
}

// Delete removes a snapshot by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return snapshot.ErrInvalidSnapshotID
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.tableName)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return snapshot.ErrSnapshotNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanRow(row rowScanner) (*snapshot.Snapshot, error) {
	var snap snapshot.Snapshot
	var data []byte
	var tagsJSON string
	var createdAt int64
	if err := row.Scan(&snap.ID, &snap.Name, &data, &tagsJSON, &createdAt); err != nil {
		return nil, err
	}
	snap.CreatedAt = time.Unix(0, createdAt)
	var g graph.Graph
	if err := s.serializer.Deserialize(data, &g); err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot graph: %w", err)
	}
	snap.Graph = &g
	if err := json.Unmarshal([]byte(tagsJSON), &snap.Tags); err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot tags: %w", err)
	}
	return &snap, nil
}

func (s *Store) buildListQuery(filter snapshot.Filter) (string, []any) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT id, name, graph, tags, created_at FROM %s", s.tableName)

	var conds []string
	var args []any
	if filter.Name != "" {
		conds = append(conds, "name = ?")
		args = append(args, filter.Name)
	}
	if filter.Since != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, filter.Since.UnixNano())
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		sb.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		sb.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}
	return sb.String(), args
}
