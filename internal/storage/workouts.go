// ABOUTME: Workout and WorkoutExercise operations for SQLite storage.
// ABOUTME: Implements Backend workout methods; sets live in the workout_sets child table.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/liftlog/internal/models"
)

// timestampLayout keeps created_at lexically sortable.
const timestampLayout = "2006-01-02 15:04:05.000000"

const workoutColumns = `id, name, date, start_time, end_time, duration, notes, created_at`

// CreateWorkout stores a new workout and returns its generated ID.
func (d *DB) CreateWorkout(ctx context.Context, w *models.Workout) (int64, error) {
	id, err := insertWorkout(ctx, d.db, w)
	if err != nil {
		return 0, fmt.Errorf("create workout: %w", err)
	}
	return id, nil
}

// AddExerciseToWorkout stores one exercise entry and its sets.
func (d *DB) AddExerciseToWorkout(ctx context.Context, workoutID int64, e *models.WorkoutExercise) (int64, error) {
	var id int64
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = insertWorkoutExercise(ctx, tx, workoutID, e)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("add exercise to workout: %w", err)
	}
	return id, nil
}

// SaveWorkout stores a workout with all its exercises in one transaction.
// Either everything is committed or nothing is.
func (d *DB) SaveWorkout(ctx context.Context, w *models.Workout, exercises []*models.WorkoutExercise) (int64, error) {
	var workoutID int64
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		workoutID, err = insertWorkout(ctx, tx, w)
		if err != nil {
			return err
		}
		for i, e := range exercises {
			if _, err := insertWorkoutExercise(ctx, tx, workoutID, e); err != nil {
				return fmt.Errorf("exercise %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		w.ID = 0
		for _, e := range exercises {
			e.ID, e.WorkoutID = 0, 0
		}
		return 0, fmt.Errorf("save workout: %w", err)
	}
	return workoutID, nil
}

// GetWorkouts returns workouts, newest first. A limit of zero or less returns all.
func (d *DB) GetWorkouts(ctx context.Context, limit int) ([]*models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts ORDER BY date DESC, created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// GetWorkoutByID returns one workout with its exercises joined to the catalog.
func (d *DB) GetWorkoutByID(ctx context.Context, id int64) (*models.Workout, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id = ?`, id)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("workout %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}

	exercises, err := d.listWorkoutExercises(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	w.Exercises = exercises

	return w, nil
}

// GetWorkoutsByDateRange returns workouts whose date lies in [start, end], oldest first.
func (d *DB) GetWorkoutsByDateRange(ctx context.Context, start, end string) ([]*models.Workout, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE date BETWEEN ? AND ? ORDER BY date ASC, created_at ASC, id ASC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("list workouts by date range: %w", err)
	}
	defer rows.Close()

	return scanWorkouts(rows)
}

// GetWorkoutStats counts all workouts and those dated within the trailing week.
func (d *DB) GetWorkoutStats(ctx context.Context) (*models.WorkoutStats, error) {
	var stats models.WorkoutStats
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workouts").Scan(&stats.TotalWorkouts); err != nil {
		return nil, fmt.Errorf("count workouts: %w", err)
	}

	err := d.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workouts WHERE date >= ?", weeklyCutoff(d.now())).Scan(&stats.WeeklyWorkouts)
	if err != nil {
		return nil, fmt.Errorf("count weekly workouts: %w", err)
	}

	return &stats, nil
}

// ClearAllData deletes every workout and its exercise rows.
// Categories and exercises are left untouched.
func (d *DB) ClearAllData(ctx context.Context) error {
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			"DELETE FROM workout_sets",
			"DELETE FROM workout_exercises",
			"DELETE FROM workouts",
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%s: %w", stmt, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear all data: %w", err)
	}
	return nil
}

// insertWorkout writes the workout row and sets w.ID.
func insertWorkout(ctx context.Context, ex execer, w *models.Workout) (int64, error) {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}

	result, err := ex.ExecContext(ctx, `
		INSERT INTO workouts (name, date, start_time, end_time, duration, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.Name,
		w.Date,
		w.StartTime,
		w.EndTime,
		w.Duration,
		w.Notes,
		w.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read workout id: %w", err)
	}
	w.ID = id
	return id, nil
}

// insertWorkoutExercise writes the link row, its legacy columns, and one row per set.
func insertWorkoutExercise(ctx context.Context, ex execer, workoutID int64, e *models.WorkoutExercise) (int64, error) {
	result, err := ex.ExecContext(ctx, `
		INSERT INTO workout_exercises (workout_id, exercise_id, sets, reps, weight, distance, duration, rest_time, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		workoutID,
		e.ExerciseID,
		e.SetCount(),
		e.Reps(),
		e.Weights(),
		e.Distance,
		e.Duration,
		e.RestTime,
		e.Notes,
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read workout exercise id: %w", err)
	}

	for i, s := range e.Sets {
		_, err := ex.ExecContext(ctx, `
			INSERT INTO workout_sets (workout_exercise_id, position, reps, weight, completed)
			VALUES (?, ?, ?, ?, ?)`,
			id, i, s.Reps, s.Weight, s.Completed)
		if err != nil {
			return 0, fmt.Errorf("insert set %d: %w", i+1, err)
		}
	}

	e.ID = id
	e.WorkoutID = workoutID
	return id, nil
}

// listWorkoutExercises loads the exercise rows of a workout, then their sets.
func (d *DB) listWorkoutExercises(ctx context.Context, workoutID int64) ([]models.WorkoutExercise, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT we.id, we.workout_id, we.exercise_id, we.sets, we.reps, we.weight,
		       we.distance, we.duration, we.rest_time, we.notes,
		       e.name, e.muscle_groups, ec.name
		FROM workout_exercises we
		JOIN exercises e ON we.exercise_id = e.id
		JOIN exercise_categories ec ON e.category_id = ec.id
		WHERE we.workout_id = ?
		ORDER BY we.id ASC`, workoutID)
	if err != nil {
		return nil, err
	}

	type legacyColumns struct {
		count         int
		reps, weights string
	}

	var exercises []models.WorkoutExercise
	var legacy []legacyColumns
	for rows.Next() {
		var we models.WorkoutExercise
		var setCount, duration, restTime sql.NullInt64
		var reps, weights, notes, muscleGroups sql.NullString
		var distance sql.NullFloat64

		err := rows.Scan(&we.ID, &we.WorkoutID, &we.ExerciseID, &setCount, &reps, &weights,
			&distance, &duration, &restTime, &notes,
			&we.ExerciseName, &muscleGroups, &we.CategoryName)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}

		if distance.Valid {
			we.Distance = &distance.Float64
		}
		if duration.Valid {
			v := int(duration.Int64)
			we.Duration = &v
		}
		if restTime.Valid {
			v := int(restTime.Int64)
			we.RestTime = &v
		}
		if notes.Valid {
			we.Notes = &notes.String
		}
		we.MuscleGroups = muscleGroups.String

		exercises = append(exercises, we)
		legacy = append(legacy, legacyColumns{int(setCount.Int64), reps.String, weights.String})
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// The pool has a single connection; release it before the next query.
	_ = rows.Close()

	sets, err := d.listSets(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	for i := range exercises {
		if s, ok := sets[exercises[i].ID]; ok {
			exercises[i].Sets = s
			continue
		}
		l := legacy[i]
		exercises[i].Sets = models.ParseSets(l.count, l.reps, l.weights)
	}

	return exercises, nil
}

// listSets returns the structured sets of a workout keyed by workout_exercise id.
func (d *DB) listSets(ctx context.Context, workoutID int64) (map[int64][]models.Set, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT ws.workout_exercise_id, ws.reps, ws.weight, ws.completed
		FROM workout_sets ws
		JOIN workout_exercises we ON ws.workout_exercise_id = we.id
		WHERE we.workout_id = ?
		ORDER BY ws.workout_exercise_id ASC, ws.position ASC`, workoutID)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	sets := make(map[int64][]models.Set)
	for rows.Next() {
		var exerciseRowID int64
		var s models.Set
		if err := rows.Scan(&exerciseRowID, &s.Reps, &s.Weight, &s.Completed); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		sets[exerciseRowID] = append(sets[exerciseRowID], s)
	}

	return sets, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanWorkout scans a single row into a Workout struct.
func scanWorkout(row rowScanner) (*models.Workout, error) {
	var w models.Workout
	var startTime, endTime, notes sql.NullString
	var duration sql.NullInt64
	var createdAt string

	err := row.Scan(&w.ID, &w.Name, &w.Date, &startTime, &endTime, &duration, &notes, &createdAt)
	if err != nil {
		return nil, err
	}

	w.StartTime = startTime.String
	w.EndTime = endTime.String
	w.Duration = int(duration.Int64)
	if notes.Valid {
		w.Notes = &notes.String
	}
	w.CreatedAt = parseTimestamp(createdAt)

	return &w, nil
}

// scanWorkouts scans multiple rows into a slice of Workouts.
func scanWorkouts(rows *sql.Rows) ([]*models.Workout, error) {
	workouts := []*models.Workout{}

	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}

// parseTimestamp accepts our own layout and SQLite's CURRENT_TIMESTAMP format.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{timestampLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
