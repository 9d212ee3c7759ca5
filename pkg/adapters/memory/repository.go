// Package memory provides the default, process-local protocol store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/docprotocol/pkg/core"
)

// Repository implements core.Repository with an in-memory slice kept
// newest-first. State is lost when the process exits.
type Repository struct {
	mu      sync.RWMutex
	records []core.Protocol
	index   map[string]int // id -> position in records
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{index: make(map[string]int)}
}

// Initialize is a no-op; the repository is ready on construction.
func (r *Repository) Initialize(ctx context.Context) error { return nil }

// Append inserts p at the front of the sequence.
func (r *Repository) Append(ctx context.Context, p core.Protocol) error {
	if p.ID == "" {
		return fmt.Errorf("protocol has no ID")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[p.ID]; ok {
		return fmt.Errorf("%w: %s", core.ErrDuplicateID, p.ID)
	}
	r.records = append([]core.Protocol{p.Clone()}, r.records...)
	r.reindex()
	return nil
}

// Update replaces the stored record with the same ID.
func (r *Repository) Update(ctx context.Context, p core.Protocol) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[p.ID]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrNotFound, p.ID)
	}
	r.records[i] = p.Clone()
	return nil
}

// Get retrieves a copy of the record with the given ID.
func (r *Repository) Get(ctx context.Context, id string) (core.Protocol, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return core.Protocol{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return r.records[i].Clone(), nil
}

// List returns a copy of every record, newest first.
func (r *Repository) List(ctx context.Context) ([]core.Protocol, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]core.Protocol, len(r.records))
	for i, p := range r.records {
		out[i] = p.Clone()
	}
	return out, nil
}

// Count returns the number of stored records.
func (r *Repository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

func (r *Repository) reindex() {
	for i, p := range r.records {
		r.index[p.ID] = i
	}
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Records int `json:"records"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RepositoryState{Records: len(r.records)}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory"
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
