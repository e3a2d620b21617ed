package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"workout-scheduler/internal/domain"
	"workout-scheduler/internal/repository"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDay(s)
	if err != nil {
		t.Fatalf("ParseDay(%q): %v", s, err)
	}
	return d
}

func TestCreate_RejectsSecondScheduleOnSameDay(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	first := &domain.WorkoutSchedule{
		ID:            "s1",
		UserID:        "u1",
		WorkoutID:     1,
		ScheduledDay:  day(t, "2024-01-01"),
		ScheduledTime: domain.TimeAfternoon,
	}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A different time slot on the same day must still collide.
	second := &domain.WorkoutSchedule{
		ID:            "s2",
		UserID:        "u1",
		WorkoutID:     2,
		ScheduledDay:  day(t, "2024-01-01"),
		ScheduledTime: domain.TimeMorning,
	}
	if err := repo.Create(ctx, second); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Another user on the same day is fine.
	other := &domain.WorkoutSchedule{
		ID:            "s3",
		UserID:        "u2",
		WorkoutID:     1,
		ScheduledDay:  day(t, "2024-01-01"),
		ScheduledTime: domain.TimeMorning,
	}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create for other user: %v", err)
	}
}

func TestGetByUserAndDayRange_InclusiveBoundsAndUserScope(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	seed := []domain.WorkoutSchedule{
		{ID: "a", UserID: "u1", WorkoutID: 1, ScheduledDay: day(t, "2023-12-30"), ScheduledTime: domain.TimeMorning},
		{ID: "b", UserID: "u1", WorkoutID: 1, ScheduledDay: day(t, "2024-01-01"), ScheduledTime: domain.TimeAfternoon},
		{ID: "c", UserID: "u1", WorkoutID: 1, ScheduledDay: day(t, "2024-01-05"), ScheduledTime: domain.TimeEvening},
		{ID: "d", UserID: "u1", WorkoutID: 1, ScheduledDay: day(t, "2024-01-06"), ScheduledTime: domain.TimeEvening},
		{ID: "e", UserID: "u2", WorkoutID: 1, ScheduledDay: day(t, "2024-01-02"), ScheduledTime: domain.TimeMorning},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create %s: %v", seed[i].ID, err)
		}
	}

	got, err := repo.GetByUserAndDayRange(ctx, "u1", day(t, "2023-12-30"), day(t, "2024-01-05"))
	if err != nil {
		t.Fatalf("GetByUserAndDayRange: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 schedules, got %d", len(got))
	}
	for _, s := range got {
		if s.ID == "d" || s.ID == "e" {
			t.Fatalf("schedule %s should not be in range result", s.ID)
		}
	}
}

func TestDelete_SecondDeleteReturnsNotFound(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	s := &domain.WorkoutSchedule{
		ID:            "s1",
		UserID:        "u1",
		WorkoutID:     1,
		ScheduledDay:  day(t, "2024-01-01"),
		ScheduledTime: domain.TimeAfternoon,
	}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, "s1", "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "s1", "u1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	// After the delete the day is free again.
	again := &domain.WorkoutSchedule{
		ID:            "s2",
		UserID:        "u1",
		WorkoutID:     2,
		ScheduledDay:  day(t, "2024-01-01"),
		ScheduledTime: domain.TimeMorning,
	}
	if err := repo.Create(ctx, again); err != nil {
		t.Fatalf("Create after delete: %v", err)
	}
}

func TestDelete_WrongUserDoesNotRemove(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	s := &domain.WorkoutSchedule{
		ID:            "s1",
		UserID:        "u1",
		WorkoutID:     1,
		ScheduledDay:  day(t, "2024-01-01"),
		ScheduledTime: domain.TimeAfternoon,
	}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, "s1", "u2"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong user, got %v", err)
	}
	if _, err := repo.GetByIDAndUser(ctx, "s1", "u1"); err != nil {
		t.Fatalf("schedule should still exist: %v", err)
	}
}

func TestUpdate_OnlyOverwritesMutableFields(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()

	s := &domain.WorkoutSchedule{
		ID:            "s1",
		UserID:        "u1",
		WorkoutID:     1,
		ScheduledDay:  day(t, "2024-01-01"),
		ScheduledTime: domain.TimeAfternoon,
	}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	changed := *s
	changed.WorkoutID = 2
	changed.ScheduledTime = domain.TimeMorning
	changed.ScheduledDay = day(t, "2024-06-01") // must be ignored
	if err := repo.Update(ctx, &changed); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByIDAndUser(ctx, "s1", "u1")
	if err != nil {
		t.Fatalf("GetByIDAndUser: %v", err)
	}
	if got.WorkoutID != 2 || got.ScheduledTime != domain.TimeMorning {
		t.Fatalf("mutable fields not updated: %+v", got)
	}
	if !got.ScheduledDay.Equal(day(t, "2024-01-01")) {
		t.Fatalf("scheduledDay must not move on update, got %v", got.ScheduledDay)
	}
}
