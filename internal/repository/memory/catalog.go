// internal/repository/memory/catalog.go
package memory

import (
	"context"

	"workout-scheduler/internal/domain"
	"workout-scheduler/internal/repository"
)

// workoutCatalog is the fixed in-process workout list. It is read-only
// after construction, so no locking is needed.
type workoutCatalog struct {
	workouts []domain.Workout
}

// NewWorkoutCatalog creates a catalog over the given workouts.
func NewWorkoutCatalog(workouts []domain.Workout) repository.WorkoutCatalog {
	return &workoutCatalog{workouts: workouts}
}

// DefaultWorkouts is the catalog seeded when no configuration overrides it.
func DefaultWorkouts() []domain.Workout {
	return []domain.Workout{
		{ID: 1, Name: "workout 1"},
		{ID: 2, Name: "workout 2"},
	}
}

// Lookup scans for the workout with the given id. A linear scan is fine at
// catalog scale.
func (c *workoutCatalog) Lookup(ctx context.Context, id int) (*domain.Workout, error) {
	for i := range c.workouts {
		if c.workouts[i].ID == id {
			w := c.workouts[i]
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

// List returns a copy of the full catalog.
func (c *workoutCatalog) List(ctx context.Context) ([]domain.Workout, error) {
	out := make([]domain.Workout, len(c.workouts))
	copy(out, c.workouts)
	return out, nil
}
