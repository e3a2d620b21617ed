// internal/repository/memory/schedule_repo.go
package memory

import (
	"context"
	"sync"
	"time"

	"workout-scheduler/internal/domain"
	"workout-scheduler/internal/repository"
)

// scheduleRepository keeps schedules in an ordered in-process slice. All
// access goes through the mutex so the duplicate-day check inside Create is
// atomic with the append.
type scheduleRepository struct {
	mu        sync.Mutex
	schedules []domain.WorkoutSchedule
}

// NewScheduleRepository creates an empty transient schedule store.
func NewScheduleRepository() repository.ScheduleRepository {
	return &scheduleRepository{}
}

// Create appends the schedule unless the user already has one on that day.
func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.WorkoutSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := domain.TruncateToDay(schedule.ScheduledDay)
	for i := range r.schedules {
		if r.schedules[i].UserID == schedule.UserID && r.schedules[i].ScheduledDay.Equal(day) {
			return repository.ErrDuplicate
		}
	}
	stored := *schedule
	stored.ScheduledDay = day
	r.schedules = append(r.schedules, stored)
	return nil
}

func (r *scheduleRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*domain.WorkoutSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.schedules {
		if r.schedules[i].ID == id && r.schedules[i].UserID == userID {
			s := r.schedules[i]
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *scheduleRepository) GetByUser(ctx context.Context, userID string) ([]domain.WorkoutSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.WorkoutSchedule
	for i := range r.schedules {
		if r.schedules[i].UserID == userID {
			out = append(out, r.schedules[i])
		}
	}
	return out, nil
}

// GetByUserAndDayRange returns the user's schedules with day in [start, end]
// inclusive, in insertion order.
func (r *scheduleRepository) GetByUserAndDayRange(ctx context.Context, userID string, start, end time.Time) ([]domain.WorkoutSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start = domain.TruncateToDay(start)
	end = domain.TruncateToDay(end)
	var out []domain.WorkoutSchedule
	for i := range r.schedules {
		s := r.schedules[i]
		if s.UserID != userID {
			continue
		}
		if s.ScheduledDay.Before(start) || s.ScheduledDay.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Update overwrites the mutable fields of an existing record in place.
func (r *scheduleRepository) Update(ctx context.Context, schedule *domain.WorkoutSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.schedules {
		if r.schedules[i].ID == schedule.ID && r.schedules[i].UserID == schedule.UserID {
			r.schedules[i].WorkoutID = schedule.WorkoutID
			r.schedules[i].ScheduledTime = schedule.ScheduledTime
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *scheduleRepository) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.schedules {
		if r.schedules[i].ID == id && r.schedules[i].UserID == userID {
			r.schedules = append(r.schedules[:i], r.schedules[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
