package attendance

import (
	"context"

	"fitclub/internal/store"
)

const Collection = "attendance"

func NewRepository(ctx context.Context, docs store.DocumentStore) (*store.Repository[Record], error) {
	repo := store.NewRepository[Record](Collection, docs)
	return repo, repo.Load(ctx)
}
