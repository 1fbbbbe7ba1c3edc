// ABOUTME: SQLite schema definition and reference-data seeding.
// ABOUTME: Table creation is an ordered list of idempotent statements.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/liftlog/internal/models"
)

// schemaStatements run in order on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS exercise_categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		icon TEXT,
		color TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category_id INTEGER,
		muscle_groups TEXT,
		equipment TEXT,
		instructions TEXT,
		image_url TEXT,
		FOREIGN KEY (category_id) REFERENCES exercise_categories (id)
	)`,

	`CREATE TABLE IF NOT EXISTS workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT,
		end_time TEXT,
		duration INTEGER,
		notes TEXT,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS workout_exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		sets INTEGER,
		reps TEXT,
		weight TEXT,
		distance REAL,
		duration INTEGER,
		rest_time INTEGER,
		notes TEXT,
		FOREIGN KEY (workout_id) REFERENCES workouts (id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercises (id)
	)`,

	`CREATE TABLE IF NOT EXISTS workout_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_exercise_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		reps INTEGER NOT NULL DEFAULT 0,
		weight REAL NOT NULL DEFAULT 0,
		completed INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (workout_exercise_id) REFERENCES workout_exercises (id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS personal_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise_id INTEGER NOT NULL,
		record_type TEXT NOT NULL,
		value REAL NOT NULL,
		unit TEXT,
		date TEXT NOT NULL,
		workout_id INTEGER,
		FOREIGN KEY (exercise_id) REFERENCES exercises (id),
		FOREIGN KEY (workout_id) REFERENCES workouts (id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date DESC, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout ON workout_exercises(workout_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workout_sets_exercise ON workout_sets(workout_exercise_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_exercises_category ON exercises(category_id)`,
}

// Initialize creates the schema and seeds reference data. Safe to re-run.
func (d *DB) Initialize(ctx context.Context) error {
	if err := d.initSchema(ctx); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	if err := d.seedReferenceData(ctx); err != nil {
		return fmt.Errorf("seed reference data: %w", err)
	}
	return nil
}

// initSchema creates any missing tables and indexes.
func (d *DB) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedReferenceData inserts the default catalog unless any exercise exists.
// Exercises whose category cannot be resolved are skipped.
func (d *DB) seedReferenceData(ctx context.Context) error {
	var count int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM exercises").Scan(&count); err != nil {
		return fmt.Errorf("count exercises: %w", err)
	}
	if count > 0 {
		return nil
	}

	return d.withTx(ctx, func(tx *sql.Tx) error {
		for _, c := range models.DefaultCategories {
			_, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO exercise_categories (name, icon, color) VALUES (?, ?, ?)",
				c.Name, c.Icon, c.Color)
			if err != nil {
				return fmt.Errorf("insert category %s: %w", c.Name, err)
			}
		}

		for _, e := range models.DefaultExercises {
			var categoryID int64
			err := tx.QueryRowContext(ctx,
				"SELECT id FROM exercise_categories WHERE name = ?", e.Category).Scan(&categoryID)
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			if err != nil {
				return fmt.Errorf("resolve category %s: %w", e.Category, err)
			}

			_, err = tx.ExecContext(ctx,
				"INSERT INTO exercises (name, category_id, muscle_groups, equipment) VALUES (?, ?, ?, ?)",
				e.Name, categoryID, e.MuscleGroups, e.Equipment)
			if err != nil {
				return fmt.Errorf("insert exercise %s: %w", e.Name, err)
			}
		}
		return nil
	})
}
