package location

import (
	"context"

	"fitclub/internal/store"
)

const Collection = "locations"

// NewRepository loads the locations collection, zones included, from docs.
func NewRepository(ctx context.Context, docs store.DocumentStore) (*store.Repository[Location], error) {
	repo := store.NewRepository[Location](Collection, docs)
	return repo, repo.Load(ctx)
}
