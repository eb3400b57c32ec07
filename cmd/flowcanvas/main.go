// Package main provides the FlowCanvas CLI: offline validation of
// flow documents and snapshot management against a configured store.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/flowcanvas/flowcanvas/internal/adapters/repository/memory"
	"github.com/flowcanvas/flowcanvas/internal/adapters/repository/postgres"
	"github.com/flowcanvas/flowcanvas/internal/adapters/repository/sqlite"
	"github.com/flowcanvas/flowcanvas/internal/app/document"
	"github.com/flowcanvas/flowcanvas/internal/core/registry"
	"github.com/flowcanvas/flowcanvas/internal/core/snapshot"
	"github.com/flowcanvas/flowcanvas/pkg/validation"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Best effort: a missing .env is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "version":
		fmt.Printf("FlowCanvas %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
	case "validate":
		err = runValidate(os.Args[2:])
	case "snapshot":
		err = runSnapshot(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  flowcanvas validate <flow.json|flow.yaml>
  flowcanvas snapshot save <flow.json|flow.yaml> <name>
  flowcanvas snapshot list
  flowcanvas version

environment:
  REGISTRY_CONFIG  optional YAML file with node-kind overrides
  DATABASE_URL     postgres DSN for the snapshot store
  SNAPSHOT_DB      sqlite path for the snapshot store (used when DATABASE_URL is unset)`)
}

func loadRegistry() (*registry.Registry, error) {
	path := os.Getenv("REGISTRY_CONFIG")
	if path == "" {
		return registry.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry config: %w", err)
	}
	return registry.FromYAML(data)
}

func runValidate(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("validate expects exactly one file argument")
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	doc, err := document.Load(args[0])
	if err != nil {
		return err
	}
	g, err := doc.ToGraph()
	if err != nil {
		return err
	}

	res := validation.ValidateFlow(g, reg)
	printReport(res)
	if !res.IsValid {
		os.Exit(1)
	}
	return nil
}

func printReport(res *validation.FlowResult) {
	for _, msg := range res.Errors {
		fmt.Println("ERROR  ", msg)
	}
	for _, msg := range res.Warnings {
		fmt.Println("WARNING", msg)
	}
	if res.IsValid {
		fmt.Println("flow is valid")
	} else {
		fmt.Println("flow is invalid")
	}
}

func openStore(ctx context.Context) (snapshot.Store, func(), error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store := postgres.New(pool, nil)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	}
	if path := os.Getenv("SNAPSHOT_DB"); path != "" {
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	// No backing store configured; snapshots will not survive exit.
	fmt.Fprintln(os.Stderr, "warning: no DATABASE_URL or SNAPSHOT_DB set, using in-memory store")
	return memory.Default(), func() {}, nil
}

func runSnapshot(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("snapshot expects a subcommand: save, list")
	}
	ctx := context.Background()
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	switch args[0] {
	case "save":
		if len(args) != 3 {
			return fmt.Errorf("snapshot save expects a file and a name")
		}
		doc, err := document.Load(args[1])
		if err != nil {
			return err
		}
		g, err := doc.ToGraph()
		if err != nil {
			return err
		}
		snap := &snapshot.Snapshot{
			ID:        uuid.New().String(),
			Name:      args[2],
			Graph:     g,
			CreatedAt: time.Now(),
		}
		if err := store.Save(ctx, snap); err != nil {
			return err
		}
		fmt.Println("saved snapshot", snap.ID)
		return nil
	case "list":
		snaps, err := store.List(ctx, snapshot.Filter{})
		if err != nil {
			return err
		}
		for _, s := range snaps {
			fmt.Printf("%s  %-30s  %s\n", s.ID, s.Name, s.CreatedAt.Format(time.RFC3339))
		}
		return nil
	default:
		return fmt.Errorf("unknown snapshot subcommand %q", args[0])
	}
}
