// ABOUTME: Tests for Workout and WorkoutExercise models.
// ABOUTME: Validates constructors, duration rounding, and builder methods.
package models

import (
	"testing"
	"time"
)

func TestNewWorkout(t *testing.T) {
	start := time.Date(2025, 3, 14, 18, 5, 0, 0, time.Local)
	end := start.Add(47*time.Minute + 40*time.Second)

	w := NewWorkout("Leg day", start, end)

	if w.Name != "Leg day" {
		t.Errorf("Name = %s, want Leg day", w.Name)
	}
	if w.Date != "2025-03-14" {
		t.Errorf("Date = %s, want 2025-03-14", w.Date)
	}
	if w.StartTime != "18:05" {
		t.Errorf("StartTime = %s, want 18:05", w.StartTime)
	}
	if w.EndTime != "18:52" {
		t.Errorf("EndTime = %s, want 18:52", w.EndTime)
	}
	if w.Duration != 48 {
		t.Errorf("Duration = %d, want 48", w.Duration)
	}
	if w.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"zero", 0, 0},
		{"rounds down", 29 * time.Second, 0},
		{"rounds up", 30 * time.Second, 1},
		{"hour", time.Hour, 60},
		{"negative", -2 * time.Minute, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DurationMinutes(start, start.Add(tt.elapsed)); got != tt.want {
				t.Errorf("DurationMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWorkoutBuilders(t *testing.T) {
	now := time.Now()
	day := time.Date(2024, 12, 31, 9, 0, 0, 0, time.Local)

	w := NewWorkout("Push", now, now).WithNotes("felt strong").WithDate(day).WithDuration(30)

	if w.Notes == nil || *w.Notes != "felt strong" {
		t.Error("expected notes to be set")
	}
	if w.Date != "2024-12-31" {
		t.Errorf("Date = %s, want 2024-12-31", w.Date)
	}
	if w.Duration != 30 {
		t.Errorf("Duration = %d, want 30", w.Duration)
	}
}

func TestWorkoutExerciseSerializedColumns(t *testing.T) {
	we := NewWorkoutExercise(7, []Set{
		{Reps: 10, Weight: 100},
		{Reps: 10, Weight: 100},
		{Reps: 8, Weight: 95},
	})

	if we.SetCount() != 3 {
		t.Errorf("SetCount = %d, want 3", we.SetCount())
	}
	if we.Reps() != "10,10,8" {
		t.Errorf("Reps = %q, want 10,10,8", we.Reps())
	}
	if we.Weights() != "100,100,95" {
		t.Errorf("Weights = %q, want 100,100,95", we.Weights())
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 6, 15, 23, 59, 59, 999, time.Local)
	got := StartOfDay(in)

	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("StartOfDay = %v, want midnight", got)
	}
	if got.Day() != 15 {
		t.Errorf("Day = %d, want 15", got.Day())
	}
}
