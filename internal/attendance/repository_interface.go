package attendance

import "context"

type Repository interface {
	Add(ctx context.Context, r Record) (Record, error)
	Get(ctx context.Context, id string) (Record, bool)
	All(ctx context.Context) []Record
	Update(ctx context.Context, r Record) (bool, error)
}
