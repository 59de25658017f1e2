package appointment

import "context"

type Repository interface {
	Add(ctx context.Context, a Appointment) (Appointment, error)
	Get(ctx context.Context, id string) (Appointment, bool)
	All(ctx context.Context) []Appointment
	Update(ctx context.Context, a Appointment) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
