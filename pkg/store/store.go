// Package store archives generated mazes so they can be served again by ID.
//
// [MemoryStore] keeps records in process and backs tests and single-node
// servers. [MongoStore] persists them in a MongoDB collection.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	mazeio "github.com/matzehuels/mazegen/pkg/io"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("maze not found")

// Record is an archived maze.
type Record = mazeio.Snapshot

// Store persists records.
type Store interface {
	// Save inserts or replaces the record with r.ID. A nil ID is assigned a
	// fresh UUID.
	Save(ctx context.Context, r *Record) error

	// ByID returns the record with the given ID or ErrNotFound.
	ByID(ctx context.Context, id uuid.UUID) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	Close() error
}
