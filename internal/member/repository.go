package member

import (
	"context"

	"fitclub/internal/store"
)

const Collection = "members"

// NewRepository loads the members collection from docs. A load error is
// returned alongside a usable, empty repository.
func NewRepository(ctx context.Context, docs store.DocumentStore) (*store.Repository[Member], error) {
	repo := store.NewRepository[Member](Collection, docs)
	return repo, repo.Load(ctx)
}
