package core

import "context"

// Repository defines the contract for storing protocol records.
// Implementations keep records newest-first and never delete them.
type Repository interface {
	// Initialize ensures the underlying storage is ready (e.g. create directories, load snapshot).
	Initialize(ctx context.Context) error

	// Append inserts a new record at the front of the sequence.
	// It returns ErrDuplicateID if a record with the same ID exists.
	Append(ctx context.Context, p Protocol) error

	// Update replaces the record with the same ID. Returns ErrNotFound if absent.
	Update(ctx context.Context, p Protocol) error

	// Get retrieves a record by its ID.
	Get(ctx context.Context, id string) (Protocol, error)

	// List returns a copy of all records, newest first.
	List(ctx context.Context) ([]Protocol, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}

// Watchable is implemented by repositories that can observe changes made
// outside this process (e.g. another CLI invocation rewriting the snapshot).
type Watchable interface {
	// Watch emits events for records whose code matches the glob pattern.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
