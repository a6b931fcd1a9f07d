package memory

import (
	"context"
	"sort"
	"sync"

	"fitlog/internal/domain/workout"
)

// WorkoutRepository is an in-memory implementation of workout.Repository
type WorkoutRepository struct {
	mu       sync.RWMutex
	workouts map[string]*workout.Workout // workout ID -> Workout
}

// NewWorkoutRepository creates a new in-memory workout repository
func NewWorkoutRepository() *WorkoutRepository {
	return &WorkoutRepository{workouts: make(map[string]*workout.Workout)}
}

func (r *WorkoutRepository) Create(ctx context.Context, w *workout.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *w
	r.workouts[w.ID] = &clone
	return nil
}

func (r *WorkoutRepository) Get(ctx context.Context, id string) (*workout.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, exists := r.workouts[id]
	if !exists {
		return nil, workout.ErrWorkoutNotFound
	}
	clone := *w
	return &clone, nil
}

func (r *WorkoutRepository) List(ctx context.Context, filter workout.ListFilter) ([]*workout.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*workout.Workout, 0)
	for _, w := range r.workouts {
		if w.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Completed != nil && w.IsCompleted() != *filter.Completed {
			continue
		}
		clone := *w
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartedAt.After(matched[j].StartedAt)
	})

	return paginate(matched, filter.Offset, filter.Limit), nil
}

func (r *WorkoutRepository) Update(ctx context.Context, w *workout.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workouts[w.ID]; !exists {
		return workout.ErrWorkoutNotFound
	}
	clone := *w
	r.workouts[w.ID] = &clone
	return nil
}

func (r *WorkoutRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workouts[id]; !exists {
		return workout.ErrWorkoutNotFound
	}
	delete(r.workouts, id)
	return nil
}
