// Package postgres provides a snapshot store backed by PostgreSQL
// through pgx connection pools.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowcanvas/flowcanvas/internal/core/graph"
	"github.com/flowcanvas/flowcanvas/internal/core/snapshot"
	"github.com/flowcanvas/flowcanvas/pkg/serialization"
)

// Store implements snapshot.Store for PostgreSQL.
type Store struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
	tableName  string
}

// New creates a PostgreSQL snapshot store. A nil serializer falls
// back to the default msgpack+zstd pipeline.
func New(pool *pgxpool.Pool, serializer *serialization.Serializer) *Store {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &Store{
		pool:       pool,
		serializer: serializer,
		tableName:  "flow_snapshots",
	}
}

// EnsureSchema creates the snapshot table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			graph      BYTEA NOT NULL,
			tags       JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL
		)
	`, s.tableName)
	if _, err := s.pool.Exec(ctx, query); err != nil {
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
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			graph = EXCLUDED.graph,
			tags = EXCLUDED.tags,
			created_at = EXCLUDED.created_at
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query, snap.ID, snap.Name, data, tagsJSON, snap.CreatedAt); err != nil {
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
		WHERE id = $1
	`, s.tableName)

	snap, err := s.scanRow(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
	rows, err := s.pool.Query(ctx, query, args...)
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

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return snapshot.ErrSnapshotNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanRow(row rowScanner) (*snapshot.Snapshot, error) {
	var snap snapshot.Snapshot
	var data, tagsJSON []byte
	if err := row.Scan(&snap.ID, &snap.Name, &data, &tagsJSON, &snap.CreatedAt); err != nil {
		return nil, err
	}
	var g graph.Graph
	if err := s.serializer.Deserialize(data, &g); err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot graph: %w", err)
	}
	snap.Graph = &g
	if err := json.Unmarshal(tagsJSON, &snap.Tags); err != nil {
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
		args = append(args, filter.Name)
		conds = append(conds, fmt.Sprintf("name = $%d", len(args)))
	}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}
	return sb.String(), args
}
