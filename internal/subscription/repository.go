package subscription

import (
	"context"

	"fitclub/internal/store"
)

const Collection = "subscriptions"

func NewRepository(ctx context.Context, docs store.DocumentStore) (*store.Repository[Subscription], error) {
	repo := store.NewRepository[Subscription](Collection, docs)
	return repo, repo.Load(ctx)
}
