package member

import "context"

type Repository interface {
	Add(ctx context.Context, m Member) (Member, error)
	Get(ctx context.Context, id string) (Member, bool)
	All(ctx context.Context) []Member
	Update(ctx context.Context, m Member) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
