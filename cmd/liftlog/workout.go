// ABOUTME: CLI commands for logging and browsing workouts.
// ABOUTME: Supports log, list, show, range, and add-exercise subcommands.
package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/progress"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/harperreed/liftlog/internal/workout"
	"github.com/spf13/cobra"
)

var (
	workoutDate      string
	workoutStart     string
	workoutEnd       string
	workoutDuration  int
	workoutNotes     string
	workoutExercises []string
	workoutLimit     int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Log and browse workouts",
	Long: `Record workouts with their exercises and sets.

COMMANDS:

  log           Save a finished workout in one go
  track         Record a workout set by set as you train
  list          List recent workouts
  show          View a workout with its exercises and sets
  range         List workouts between two dates
  add-exercise  Add an exercise to a saved workout

Sets are written as reps x weight, comma separated: 10x60,8x62.5
A bare number is reps without weight: 20,15`,
}

var workoutLogCmd = &cobra.Command{
	Use:   "log <name>",
	Short: "Log a finished workout",
	Long: `Log a finished workout.

Examples:
  liftlog workout log Push --start 18:00 --end 18:50
  liftlog workout log "Leg Day" --date 2024-06-01 --duration 55 \
      --exercise "Squats=5x100,5x100,5x105" --exercise "Lunges=12,12"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		draft := workout.Draft{
			Name:      args[0],
			Date:      workoutDate,
			StartTime: workoutStart,
			EndTime:   workoutEnd,
			Duration:  workoutDuration,
			Notes:     workoutNotes,
		}
		w, err := draft.Workout(time.Now())
		if err != nil {
			return err
		}

		var entries []workout.Entry
		if len(workoutExercises) > 0 {
			catalog, err := repo.GetExercises(ctx)
			if err != nil {
				return fmt.Errorf("failed to load exercises: %w", err)
			}
			for _, spec := range workoutExercises {
				entry, err := parseExerciseFlag(catalog, spec)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
			}
		}

		result, err := repo.LogWorkout(ctx, w, entries)
		if err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}

		color.Green("✓ Logged %s", w.Name)
		fmt.Printf("  ID: %d\n", result.ID)
		fmt.Printf("  Date: %s\n", w.Date)
		fmt.Printf("  Duration: %s\n", progress.FormatDuration(w.Duration))
		if result.ExercisesSaved > 0 {
			fmt.Printf("  Exercises: %d\n", result.ExercisesSaved)
		}
		if result.DetailDropped {
			color.Yellow("⚠ The key-value backend keeps workouts only; %d exercise(s) were not saved", len(entries))
		}
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.GetWorkouts(cmd.Context(), workoutLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		printWorkoutList(workouts)
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		w, err := repo.GetWorkoutByID(cmd.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("workout %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		printWorkout(w, repo.Capabilities().ExerciseDetail)
		return nil
	},
}

var workoutRangeCmd = &cobra.Command{
	Use:   "range <start> <end>",
	Short: "List workouts between two dates (inclusive)",
	Long: `List workouts dated from start to end, inclusive, oldest first.

Examples:
  liftlog workout range 2024-06-01 2024-06-30`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, d := range args {
			if _, err := models.ParseDate(d); err != nil {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", d)
			}
		}

		workouts, err := repo.GetWorkoutsByDateRange(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		printWorkoutList(workouts)
		return nil
	},
}

var workoutAddExerciseCmd = &cobra.Command{
	Use:   "add-exercise <workout-id> <exercise> <sets>",
	Short: "Add an exercise to a saved workout",
	Long: `Add an exercise with its sets to a workout that was already saved.

Examples:
  liftlog workout add-exercise 12 "Pull-ups" 8,6,6
  liftlog workout add-exercise 12 "Bicep Curls" 12x15,10x17.5`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if _, err := repo.GetWorkoutByID(ctx, id); err != nil {
			return fmt.Errorf("failed to get workout %d: %w", id, err)
		}

		catalog, err := repo.GetExercises(ctx)
		if err != nil {
			return fmt.Errorf("failed to load exercises: %w", err)
		}
		entry, err := parseExerciseFlag(catalog, args[1]+"="+args[2])
		if err != nil {
			return err
		}

		if _, err := repo.AddExerciseToWorkout(ctx, id, entry); err != nil {
			if errors.Is(err, storage.ErrExerciseDetailUnsupported) {
				return fmt.Errorf("the %s backend does not store exercises; switch to sqlite", cfg.GetBackend())
			}
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s to workout %d", args[1], id)
		return nil
	},
}

// parseExerciseFlag parses "Exercise Name=10x60,8x62.5" into an entry.
func parseExerciseFlag(catalog []*models.Exercise, spec string) (workout.Entry, error) {
	name, sets, ok := strings.Cut(spec, "=")
	if !ok {
		return workout.Entry{}, fmt.Errorf("invalid exercise %q (use \"Name=10x60,8x62.5\")", spec)
	}

	e, err := workout.FindExercise(catalog, name)
	if err != nil {
		return workout.Entry{}, err
	}
	parsed, err := workout.ParseSetSpec(sets)
	if err != nil {
		return workout.Entry{}, err
	}
	return workout.Entry{ExerciseID: e.ID, Sets: parsed}, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid workout id: %s", s)
	}
	return id, nil
}

func init() {
	workoutLogCmd.Flags().StringVar(&workoutDate, "date", "", "workout date (YYYY-MM-DD, default today)")
	workoutLogCmd.Flags().StringVar(&workoutStart, "start", "", "start time (HH:MM)")
	workoutLogCmd.Flags().StringVar(&workoutEnd, "end", "", "end time (HH:MM)")
	workoutLogCmd.Flags().IntVarP(&workoutDuration, "duration", "d", 0, "duration in minutes (default: end - start)")
	workoutLogCmd.Flags().StringVar(&workoutNotes, "notes", "", "optional notes")
	workoutLogCmd.Flags().StringArrayVarP(&workoutExercises, "exercise", "e", nil, "exercise with sets, e.g. \"Squats=5x100,5x105\" (repeatable)")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max workouts to show (0 for all)")

	workoutCmd.AddCommand(workoutLogCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutRangeCmd)
	workoutCmd.AddCommand(workoutAddExerciseCmd)
	rootCmd.AddCommand(workoutCmd)
}
