package subscription

import "context"

type Repository interface {
	Add(ctx context.Context, s Subscription) (Subscription, error)
	Get(ctx context.Context, id string) (Subscription, bool)
	All(ctx context.Context) []Subscription
	Update(ctx context.Context, s Subscription) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
