// Package snapshot defines domain-specific errors
package snapshot

import "errors"

var (
	ErrInvalidSnapshotID   = errors.New("invalid snapshot ID")
	ErrInvalidSnapshotName = errors.New("invalid snapshot name")
	ErrNilGraph            = errors.New("snapshot graph cannot be nil")
	ErrSnapshotNotFound    = errors.New("snapshot not found")

	ErrInvalidLimit  = errors.New("limit cannot be negative")
	ErrInvalidOffset = errors.New("offset cannot be negative")
)
