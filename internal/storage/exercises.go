// ABOUTME: Exercise catalog queries for SQLite storage.
// ABOUTME: Exercises are joined with their category name and color.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/liftlog/internal/models"
)

// GetExercises returns the catalog ordered by category name, then exercise name.
func (d *DB) GetExercises(ctx context.Context) ([]*models.Exercise, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT e.id, e.name, e.category_id, e.muscle_groups, e.equipment,
		       e.instructions, e.image_url, ec.name, ec.color
		FROM exercises e
		JOIN exercise_categories ec ON e.category_id = ec.id
		ORDER BY ec.name, e.name`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := []*models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		var muscleGroups, equipment, instructions, imageURL, color sql.NullString

		err := rows.Scan(&e.ID, &e.Name, &e.CategoryID, &muscleGroups, &equipment,
			&instructions, &imageURL, &e.CategoryName, &color)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}

		e.MuscleGroups = muscleGroups.String
		e.Equipment = equipment.String
		e.CategoryColor = color.String
		if instructions.Valid {
			e.Instructions = &instructions.String
		}
		if imageURL.Valid {
			e.ImageURL = &imageURL.String
		}

		exercises = append(exercises, &e)
	}

	return exercises, rows.Err()
}

// GetExerciseCategories returns all categories ordered by name.
func (d *DB) GetExerciseCategories(ctx context.Context) ([]*models.ExerciseCategory, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, name, icon, color FROM exercise_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list exercise categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.ExerciseCategory{}
	for rows.Next() {
		var c models.ExerciseCategory
		var icon, color sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &icon, &color); err != nil {
			return nil, fmt.Errorf("scan exercise category: %w", err)
		}
		c.Icon = icon.String
		c.Color = color.String
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}
