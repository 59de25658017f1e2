package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"fitclub/internal/logger"
	"fitclub/internal/metrics"
)

type Entity interface {
	GetID() string
}

// idAssigner is implemented by entities that can generate their own id.
type idAssigner interface {
	EnsureID() bool
}

// Repository holds one collection in memory, in insertion order, and
// rewrites the whole backing document on every mutation. A mutation whose
// write fails leaves the in-memory collection as it was.
type Repository[T Entity] struct {
	mu    sync.RWMutex
	name  string
	docs  DocumentStore
	items []T
}

func NewRepository[T Entity](name string, docs DocumentStore) *Repository[T] {
	return &Repository[T]{
		name: name,
		docs: docs,
	}
}

func (r *Repository[T]) Name() string {
	return r.name
}

// Load replaces the in-memory collection with the stored document. A
// missing document is an empty collection. Records stored without an id get
// a fresh one and the document is rewritten once. A document that cannot be
// read or decoded also leaves the collection empty; the error is returned so
// the caller can report it, and the repository stays usable.
func (r *Repository[T]) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = nil
	defer func() { metrics.SetCollectionSize(r.name, len(r.items)) }()

	data, err := r.docs.Read(ctx, r.name)
	if errors.Is(err, ErrDocumentNotFound) {
		return nil
	}
	if err != nil {
		metrics.RecordLoadFailure(r.name)
		return fmt.Errorf("%w: read %s: %v", ErrStorage, r.name, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		metrics.RecordLoadFailure(r.name)
		return fmt.Errorf("%w: decode %s: %v", ErrStorage, r.name, err)
	}

	assigned := 0
	for i := range items {
		if a, ok := any(&items[i]).(idAssigner); ok && a.EnsureID() {
			assigned++
		}
	}

	r.items = items
	if assigned > 0 {
		logger.Warn("assigned ids to stored records without one", "collection", r.name, "count", assigned)
		// on failure the ids stay in memory and go out with the next write
		_ = r.commit(ctx, items)
	}
	return nil
}

func (r *Repository[T]) Add(ctx context.Context, item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(item.GetID()) >= 0 {
		var zero T
		return zero, fmt.Errorf("%w: %s %s", ErrDuplicateID, r.name, item.GetID())
	}

	next := append(slices.Clip(r.items), item)
	if err := r.commit(ctx, next); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

func (r *Repository[T]) Get(_ context.Context, id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.items[i], true
	}
	var zero T
	return zero, false
}

// All returns a copy of the collection; reordering or truncating it does not
// affect the repository.
func (r *Repository[T]) All(_ context.Context) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.items)
}

func (r *Repository[T]) Find(_ context.Context, match func(T) bool) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []T
	for _, item := range r.items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

func (r *Repository[T]) Update(ctx context.Context, item T) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(item.GetID())
	if i < 0 {
		return false, nil
	}

	next := slices.Clone(r.items)
	next[i] = item
	if err := r.commit(ctx, next); err != nil {
		return true, err
	}
	return true, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(r.items), i, i+1)
	if err := r.commit(ctx, next); err != nil {
		return true, err
	}
	return true, nil
}

func (r *Repository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

func (r *Repository[T]) indexOf(id string) int {
	return slices.IndexFunc(r.items, func(item T) bool {
		return item.GetID() == id
	})
}

// commit must be called with mu held.
func (r *Repository[T]) commit(ctx context.Context, next []T) error {
	if next == nil {
		next = []T{}
	}

	data, err := json.MarshalIndent(next, "", "    ")
	if err == nil {
		err = r.docs.Write(ctx, r.name, data)
	}
	metrics.RecordStorageWrite(r.name, err)
	if err != nil {
		logger.Error("failed to save collection", "collection", r.name, "error", err)
		return fmt.Errorf("%w: write %s: %v", ErrStorage, r.name, err)
	}

	r.items = next
	metrics.SetCollectionSize(r.name, len(next))
	return nil
}
