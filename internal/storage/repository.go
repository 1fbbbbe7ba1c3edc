// ABOUTME: Backend interface shared by the SQLite store and the key-value fallback.
// ABOUTME: Defines the storage contract, capability flags, and sentinel errors.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/harperreed/liftlog/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExerciseDetailUnsupported is returned by backends that cannot persist
	// per-exercise rows. Check Capabilities before calling AddExerciseToWorkout.
	ErrExerciseDetailUnsupported = errors.New("backend does not store exercise detail")
)

// Capabilities describes what a backend can persist.
type Capabilities struct {
	// ExerciseDetail is false when workout_exercises rows are not stored.
	ExerciseDetail bool
	// Transactions is true when SaveWorkout is all-or-nothing.
	Transactions bool
}

// Backend defines the storage interface for workout data.
// This interface allows swapping implementations (e.g., for testing).
type Backend interface {
	// Lifecycle
	Initialize(ctx context.Context) error
	Capabilities() Capabilities
	Close() error

	// Workout operations
	CreateWorkout(ctx context.Context, w *models.Workout) (int64, error)
	AddExerciseToWorkout(ctx context.Context, workoutID int64, e *models.WorkoutExercise) (int64, error)
	SaveWorkout(ctx context.Context, w *models.Workout, exercises []*models.WorkoutExercise) (int64, error)
	GetWorkouts(ctx context.Context, limit int) ([]*models.Workout, error)
	GetWorkoutByID(ctx context.Context, id int64) (*models.Workout, error)
	GetWorkoutsByDateRange(ctx context.Context, start, end string) ([]*models.Workout, error)
	GetWorkoutStats(ctx context.Context) (*models.WorkoutStats, error)
	ClearAllData(ctx context.Context) error

	// Reference data
	GetExercises(ctx context.Context) ([]*models.Exercise, error)
	GetExerciseCategories(ctx context.Context) ([]*models.ExerciseCategory, error)
}

// weeklyCutoff returns the first calendar day counted as "this week".
func weeklyCutoff(now time.Time) string {
	return models.DateOf(now.AddDate(0, 0, -7))
}
