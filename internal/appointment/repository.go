package appointment

import (
	"context"

	"fitclub/internal/store"
)

const Collection = "appointments"

func NewRepository(ctx context.Context, docs store.DocumentStore) (*store.Repository[Appointment], error) {
	repo := store.NewRepository[Appointment](Collection, docs)
	return repo, repo.Load(ctx)
}
