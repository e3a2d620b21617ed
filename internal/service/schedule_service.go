package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workout-scheduler/internal/domain"
	"workout-scheduler/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
//
// The messages are user-facing and flow to the API response verbatim.
var (
	ErrWorkoutNotFound  = errors.New("Workout does not exist")
	ErrScheduleExists   = errors.New("Workout schedule already exists for this day")
	ErrScheduleNotFound = errors.New("Workout Schedule does not exist")
	ErrInvalidDay       = errors.New("scheduledDay must be a YYYY-MM-DD date")
	ErrInvalidTimeOfDay = errors.New("scheduledTime must be one of FIRST_THING, MORNING, AFTERNOON, EVENING")
)

// ScheduleService enforces the schedule invariants and implements the
// create/read/update/delete lifecycle. Every call takes the caller's user
// id explicitly; no schedule is visible outside its owner.
type ScheduleService interface {
	List(ctx context.Context, userID string) ([]domain.WorkoutSchedule, error)
	ListInRange(ctx context.Context, userID string, start, end time.Time) ([]domain.WorkoutSchedule, error)
	// Get returns (nil, nil) when no schedule matches: absence is a valid
	// outcome, not an error.
	Get(ctx context.Context, id, userID string) (*domain.WorkoutSchedule, error)
	Create(ctx context.Context, userID string, workoutID int, scheduledDay string, scheduledTime domain.TimeOfDay) (*domain.WorkoutSchedule, error)
	Update(ctx context.Context, id, userID string, workoutID *int, scheduledTime *domain.TimeOfDay) (*domain.WorkoutSchedule, error)
	// Delete reports whether a record was removed; deleting an unknown id
	// is a false result, not an error.
	Delete(ctx context.Context, id, userID string) (bool, error)
	// ResolveWorkout resolves a schedule's workout against the catalog.
	ResolveWorkout(ctx context.Context, schedule *domain.WorkoutSchedule) (*domain.Workout, error)
	Workouts(ctx context.Context) ([]domain.Workout, error)
}

// scheduleService implements the ScheduleService interface.
type scheduleService struct {
	catalog      repository.WorkoutCatalog
	scheduleRepo repository.ScheduleRepository
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(catalog repository.WorkoutCatalog, scheduleRepo repository.ScheduleRepository) ScheduleService {
	return &scheduleService{
		catalog:      catalog,
		scheduleRepo: scheduleRepo,
	}
}

func (s *scheduleService) List(ctx context.Context, userID string) ([]domain.WorkoutSchedule, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return s.scheduleRepo.GetByUser(ctx, userID)
}

func (s *scheduleService) ListInRange(ctx context.Context, userID string, start, end time.Time) ([]domain.WorkoutSchedule, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return s.scheduleRepo.GetByUserAndDayRange(ctx, userID, start, end)
}

func (s *scheduleService) Get(ctx context.Context, id, userID string) (*domain.WorkoutSchedule, error) {
	schedule, err := s.scheduleRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return schedule, nil
}

// Create validates the workout reference, parses the day, and appends the
// new schedule. The duplicate-day check happens inside the repository's
// Create so it is atomic with the insert.
func (s *scheduleService) Create(ctx context.Context, userID string, workoutID int, scheduledDay string, scheduledTime domain.TimeOfDay) (*domain.WorkoutSchedule, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if !scheduledTime.IsValid() {
		return nil, ErrInvalidTimeOfDay
	}

	if _, err := s.catalog.Lookup(ctx, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	day, err := domain.ParseDay(scheduledDay)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDay, scheduledDay)
	}

	schedule := &domain.WorkoutSchedule{
		ID:            uuid.NewString(),
		UserID:        userID,
		WorkoutID:     workoutID,
		ScheduledDay:  day,
		ScheduledTime: scheduledTime,
	}

	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrScheduleExists
		}
		return nil, err
	}
	return schedule, nil
}

// Update overwrites only the supplied fields; a nil or zero value leaves
// the field untouched. The scheduled day cannot be changed, so the
// one-per-day invariant needs no re-check here.
func (s *scheduleService) Update(ctx context.Context, id, userID string, workoutID *int, scheduledTime *domain.TimeOfDay) (*domain.WorkoutSchedule, error) {
	schedule, err := s.scheduleRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	// A zero workoutId or empty scheduledTime counts as not supplied, the
	// same as omitting the field entirely.
	if workoutID != nil && *workoutID != 0 {
		schedule.WorkoutID = *workoutID
	}
	if scheduledTime != nil && *scheduledTime != "" {
		if !scheduledTime.IsValid() {
			return nil, ErrInvalidTimeOfDay
		}
		schedule.ScheduledTime = *scheduledTime
	}

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) Delete(ctx context.Context, id, userID string) (bool, error) {
	err := s.scheduleRepo.Delete(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ResolveWorkout looks up a schedule's workout. The catalog is static, but
// the schedule can point at an id the catalog never had (an update may set
// any workoutId, as the source behavior allowed).
func (s *scheduleService) ResolveWorkout(ctx context.Context, schedule *domain.WorkoutSchedule) (*domain.Workout, error) {
	workout, err := s.catalog.Lookup(ctx, schedule.WorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *scheduleService) Workouts(ctx context.Context) ([]domain.Workout, error) {
	return s.catalog.List(ctx)
}
