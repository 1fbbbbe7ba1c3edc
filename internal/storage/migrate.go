// ABOUTME: Data migration between liftlog storage backends.
// ABOUTME: Copies workouts and their exercise entries from source to destination.
package storage

import (
	"context"
	"fmt"
	"os"
)

// MigrateSummary holds counts of copied and skipped entities.
type MigrateSummary struct {
	Workouts         int
	WorkoutExercises int
	// Skipped counts exercise entries the destination could not keep.
	Skipped int
}

// MigrateData copies all workouts from src to dst, oldest first.
// Exercise entries are matched to dst's catalog by name. The destination
// should be empty before calling this function.
func MigrateData(ctx context.Context, src, dst Backend) (*MigrateSummary, error) {
	workouts, err := allWorkouts(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	resolve, err := newExerciseResolver(ctx, dst)
	if err != nil {
		return nil, err
	}

	summary := &MigrateSummary{}
	for _, w := range workouts {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := copyWorkout(ctx, dst, w, resolve, summary); err != nil {
			return summary, fmt.Errorf("copy workout %d: %w", w.ID, err)
		}
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
