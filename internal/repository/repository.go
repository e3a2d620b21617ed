package repository

import (
	"context"
	"time"

	"workout-scheduler/internal/domain"
)

// Error constants for the repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutCatalog is the read-only lookup of available workouts.
type WorkoutCatalog interface {
	Lookup(ctx context.Context, id int) (*domain.Workout, error) // ErrNotFound when absent
	List(ctx context.Context) ([]domain.Workout, error)
}

// ScheduleRepository owns the collection of workout schedules. Every query
// and mutation is scoped to a user; no record is visible across users.
//
// Create enforces the one-schedule-per-user-per-day invariant atomically
// (returning ErrDuplicate), so a concurrent duplicate create cannot race
// past the check.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.WorkoutSchedule) error
	GetByIDAndUser(ctx context.Context, id, userID string) (*domain.WorkoutSchedule, error)
	GetByUser(ctx context.Context, userID string) ([]domain.WorkoutSchedule, error)
	// GetByUserAndDayRange returns the user's schedules whose day falls in
	// [start, end], both bounds inclusive.
	GetByUserAndDayRange(ctx context.Context, userID string, start, end time.Time) ([]domain.WorkoutSchedule, error)
	// Update overwrites workoutId and scheduledTime of an existing record.
	// The scheduled day cannot be moved through this method.
	Update(ctx context.Context, schedule *domain.WorkoutSchedule) error
	Delete(ctx context.Context, id, userID string) error
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error // ErrDuplicate on taken email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
