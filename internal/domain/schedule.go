package domain

import "time"

// TimeOfDay is the coarse slot a workout is scheduled into.
type TimeOfDay string

const (
	TimeFirstThing TimeOfDay = "FIRST_THING"
	TimeMorning    TimeOfDay = "MORNING"
	TimeAfternoon  TimeOfDay = "AFTERNOON"
	TimeEvening    TimeOfDay = "EVENING"
)

// IsValid reports whether t is one of the defined slots.
func (t TimeOfDay) IsValid() bool {
	switch t {
	case TimeFirstThing, TimeMorning, TimeAfternoon, TimeEvening:
		return true
	}
	return false
}

// WorkoutSchedule assigns one workout to one calendar day for one user.
// ScheduledDay is always UTC midnight; the one-schedule-per-day rule
// compares at day granularity, independent of ScheduledTime.
type WorkoutSchedule struct {
	ID            string    `bson:"_id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	WorkoutID     int       `bson:"workoutId" json:"workoutId"`
	ScheduledDay  time.Time `bson:"scheduledDay" json:"scheduledDay"`
	ScheduledTime TimeOfDay `bson:"scheduledTime" json:"scheduledTime"`
}

// DayLayout is the wire format for scheduledDay inputs.
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

// TruncateToDay drops the time-of-day portion, keeping the UTC calendar day.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
