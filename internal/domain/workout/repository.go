package workout

import "context"

// Repository defines the persistence operations for workouts. Owner
// scoping is enforced by the store's row-level security; the filters
// here mirror it.
type Repository interface {
	Create(ctx context.Context, w *Workout) error
	Get(ctx context.Context, id string) (*Workout, error)
	List(ctx context.Context, filter ListFilter) ([]*Workout, error)
	Update(ctx context.Context, w *Workout) error
	Delete(ctx context.Context, id string) error
}
