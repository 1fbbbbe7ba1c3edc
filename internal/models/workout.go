// ABOUTME: Workout and WorkoutExercise models for logged training sessions.
// ABOUTME: Workouts own an ordered list of exercises, each with structured sets.
package models

import (
	"math"
	"time"
)

const (
	// DateLayout is the calendar-day format used for Workout.Date.
	DateLayout = "2006-01-02"
	// ClockLayout is the wall-clock format used for start and end times.
	ClockLayout = "15:04"
)

// Workout represents one finished exercise session.
type Workout struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Date      string            `json:"date"`
	StartTime string            `json:"start_time,omitempty"`
	EndTime   string            `json:"end_time,omitempty"`
	Duration  int               `json:"duration"`
	Notes     *string           `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Exercises []WorkoutExercise `json:"exercises,omitempty"` // Populated when fetching a full workout
}

// NewWorkout builds a workout from the wall-clock bounds of a session.
// The duration is fixed here and never re-derived.
func NewWorkout(name string, start, end time.Time) *Workout {
	return &Workout{
		Name:      name,
		Date:      DateOf(end),
		StartTime: start.Format(ClockLayout),
		EndTime:   end.Format(ClockLayout),
		Duration:  DurationMinutes(start, end),
		CreatedAt: time.Now(),
	}
}

// WithNotes sets notes on the workout.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = &notes
	return w
}

// WithDate overrides the calendar day of the workout.
func (w *Workout) WithDate(t time.Time) *Workout {
	w.Date = DateOf(t)
	return w
}

// WithDuration overrides the duration in minutes.
func (w *Workout) WithDuration(minutes int) *Workout {
	w.Duration = minutes
	return w
}

// DurationMinutes returns the wall-clock minutes between start and end, rounded.
func DurationMinutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// WorkoutExercise links an exercise to a workout along with the sets performed.
type WorkoutExercise struct {
	ID         int64    `json:"id"`
	WorkoutID  int64    `json:"workout_id"`
	ExerciseID int64    `json:"exercise_id"`
	Sets       []Set    `json:"sets"`
	Distance   *float64 `json:"distance,omitempty"`
	Duration   *int     `json:"duration,omitempty"`
	RestTime   *int     `json:"rest_time,omitempty"`
	Notes      *string  `json:"notes,omitempty"`

	// Joined from the exercise catalog on read.
	ExerciseName string `json:"exercise_name,omitempty"`
	MuscleGroups string `json:"muscle_groups,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

// NewWorkoutExercise creates an exercise entry with the given sets.
func NewWorkoutExercise(exerciseID int64, sets []Set) *WorkoutExercise {
	return &WorkoutExercise{
		ExerciseID: exerciseID,
		Sets:       sets,
	}
}

// SetCount returns the number of sets recorded for the exercise.
func (we *WorkoutExercise) SetCount() int {
	return len(we.Sets)
}

// Reps returns the legacy comma-joined reps column value.
func (we *WorkoutExercise) Reps() string {
	return JoinReps(we.Sets)
}

// Weights returns the legacy comma-joined weight column value.
func (we *WorkoutExercise) Weights() string {
	return JoinWeights(we.Sets)
}

// WorkoutStats holds the headline counts shown on the home screen.
type WorkoutStats struct {
	TotalWorkouts  int `json:"total_workouts"`
	WeeklyWorkouts int `json:"weekly_workouts"`
}

// PersonalRecord mirrors the personal_records table. Nothing reads or writes it yet.
type PersonalRecord struct {
	ID         int64
	ExerciseID int64
	RecordType string
	Value      float64
	Unit       *string
	Date       string
	WorkoutID  *int64
}

// DateOf formats t as a calendar day.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar day in the local time zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
