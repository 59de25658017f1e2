package location

import "context"

type Repository interface {
	Add(ctx context.Context, l Location) (Location, error)
	Get(ctx context.Context, id string) (Location, bool)
	All(ctx context.Context) []Location
	Update(ctx context.Context, l Location) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
