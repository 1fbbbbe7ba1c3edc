// ABOUTME: Shared terminal output helpers for CLI commands.
// ABOUTME: Workout lines, workout details, and string padding.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/progress"
)

// colorAttrs maps the hex palette to the nearest terminal color.
var colorAttrs = map[string]color.Attribute{
	"#FF6B6B": color.FgRed,
	"#4ECDC4": color.FgCyan,
	"#45B7D1": color.FgBlue,
	"#54A0FF": color.FgHiBlue,
	"#FF9FF3": color.FgMagenta,
	"#FECA57": color.FgYellow,
}

// typeColor colors a workout name by the kind of training it suggests.
func typeColor(name string) *color.Color {
	if attr, ok := colorAttrs[progress.TypeColor(name)]; ok {
		return color.New(attr)
	}
	return color.New(color.Reset)
}

func printWorkoutList(workouts []*models.Workout) {
	if len(workouts) == 0 {
		fmt.Println("No workouts found.")
		return
	}

	faint := color.New(color.Faint)
	for _, w := range workouts {
		notes := ""
		if w.Notes != nil && *w.Notes != "" {
			notes = faint.Sprintf(" (%s)", truncate(*w.Notes, 30))
		}
		fmt.Printf("%s %s %s %s%s\n",
			faint.Sprint(padRight(fmt.Sprint(w.ID), 14)),
			faint.Sprint(padRight(w.Date, 10)),
			typeColor(w.Name).Sprint(padRight(w.Name, 20)),
			progress.FormatDuration(w.Duration),
			notes)
	}
}

func printWorkout(w *models.Workout, withDetail bool) {
	fmt.Printf("Workout: %s\n", typeColor(w.Name).Sprint(w.Name))
	fmt.Printf("ID: %d\n", w.ID)
	fmt.Printf("Date: %s\n", w.Date)
	if w.StartTime != "" || w.EndTime != "" {
		fmt.Printf("Time: %s - %s\n", w.StartTime, w.EndTime)
	}
	fmt.Printf("Duration: %s\n", progress.FormatDuration(w.Duration))
	if w.Notes != nil {
		fmt.Printf("Notes: %s\n", *w.Notes)
	}

	if !withDetail {
		color.New(color.Faint).Println("\nExercise detail is not stored by this backend.")
		return
	}
	if len(w.Exercises) == 0 {
		return
	}

	faint := color.New(color.Faint)
	fmt.Println("\nExercises:")
	for _, e := range w.Exercises {
		fmt.Printf("  %s %s\n", e.ExerciseName, faint.Sprintf("(%s)", e.CategoryName))
		for i, s := range e.Sets {
			mark := " "
			if s.Completed {
				mark = "✓"
			}
			fmt.Printf("    %s %d. %s\n", mark, i+1, formatSet(s))
		}
	}
}

func formatSet(s models.Set) string {
	if s.Weight == 0 {
		return fmt.Sprintf("%d reps", s.Reps)
	}
	return fmt.Sprintf("%d x %g", s.Reps, s.Weight)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
