// ABOUTME: Workout repository delegating to an explicit storage backend.
// ABOUTME: Packages logged exercise/set entries into storage rows before saving.
package workout

import (
	"context"
	"fmt"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
)

// Entry is one exercise as captured while logging: the catalog ID and the
// ordered sets performed.
type Entry struct {
	ExerciseID int64        `json:"exercise_id"`
	Sets       []models.Set `json:"sets"`
}

// SaveResult reports what a LogWorkout call persisted.
type SaveResult struct {
	ID             int64
	ExercisesSaved int
	// DetailDropped is true when the backend kept the workout but not its exercises.
	DetailDropped bool
}

// Repository is a thin pass-through to a storage backend.
// It performs no validation beyond what the backend enforces.
type Repository struct {
	backend storage.Backend
}

// NewRepository creates a repository over the given backend.
func NewRepository(b storage.Backend) *Repository {
	return &Repository{backend: b}
}

// Backend returns the underlying storage backend.
func (r *Repository) Backend() storage.Backend {
	return r.backend
}

// Capabilities reports what the active backend can persist.
func (r *Repository) Capabilities() storage.Capabilities {
	return r.backend.Capabilities()
}

// LogWorkout saves a finished workout with its exercise entries.
// On the relational backend the workout and all entries commit together.
func (r *Repository) LogWorkout(ctx context.Context, w *models.Workout, entries []Entry) (*SaveResult, error) {
	rows := make([]*models.WorkoutExercise, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toRow(e))
	}

	id, err := r.backend.SaveWorkout(ctx, w, rows)
	if err != nil {
		return nil, fmt.Errorf("log workout: %w", err)
	}

	result := &SaveResult{ID: id}
	if r.backend.Capabilities().ExerciseDetail {
		result.ExercisesSaved = len(rows)
	} else {
		result.DetailDropped = len(rows) > 0
	}
	return result, nil
}

// CreateWorkout stores a workout without exercises.
func (r *Repository) CreateWorkout(ctx context.Context, w *models.Workout) (int64, error) {
	return r.backend.CreateWorkout(ctx, w)
}

// AddExerciseToWorkout stores a single entry against an existing workout.
func (r *Repository) AddExerciseToWorkout(ctx context.Context, workoutID int64, e Entry) (int64, error) {
	return r.backend.AddExerciseToWorkout(ctx, workoutID, toRow(e))
}

// GetWorkouts returns up to limit workouts, newest first.
func (r *Repository) GetWorkouts(ctx context.Context, limit int) ([]*models.Workout, error) {
	return r.backend.GetWorkouts(ctx, limit)
}

// GetWorkoutByID returns a workout with its exercises.
func (r *Repository) GetWorkoutByID(ctx context.Context, id int64) (*models.Workout, error) {
	return r.backend.GetWorkoutByID(ctx, id)
}

// GetWorkoutsByDateRange returns workouts dated within [start, end].
func (r *Repository) GetWorkoutsByDateRange(ctx context.Context, start, end string) ([]*models.Workout, error) {
	return r.backend.GetWorkoutsByDateRange(ctx, start, end)
}

// GetWorkoutStats returns total and trailing-week workout counts.
func (r *Repository) GetWorkoutStats(ctx context.Context) (*models.WorkoutStats, error) {
	return r.backend.GetWorkoutStats(ctx)
}

// ClearAllData deletes all workouts, keeping the exercise catalog.
func (r *Repository) ClearAllData(ctx context.Context) error {
	return r.backend.ClearAllData(ctx)
}

// GetExercises returns the exercise catalog.
func (r *Repository) GetExercises(ctx context.Context) ([]*models.Exercise, error) {
	return r.backend.GetExercises(ctx)
}

// GetExerciseCategories returns all exercise categories.
func (r *Repository) GetExerciseCategories(ctx context.Context) ([]*models.ExerciseCategory, error) {
	return r.backend.GetExerciseCategories(ctx)
}

// GroupByCategory buckets exercises by category name, keeping input order.
func GroupByCategory(exercises []*models.Exercise) map[string][]*models.Exercise {
	grouped := make(map[string][]*models.Exercise)
	for _, e := range exercises {
		grouped[e.CategoryName] = append(grouped[e.CategoryName], e)
	}
	return grouped
}

func toRow(e Entry) *models.WorkoutExercise {
	sets := make([]models.Set, len(e.Sets))
	copy(sets, e.Sets)
	return models.NewWorkoutExercise(e.ExerciseID, sets)
}
