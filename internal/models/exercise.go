// ABOUTME: Exercise catalog models and the fixed seed catalog.
// ABOUTME: Seven categories and seventeen exercises are inserted on first run.
package models

// ExerciseCategory groups exercises under a human label.
type ExerciseCategory struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Exercise is a catalog entry describing one movement.
type Exercise struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	CategoryID   int64   `json:"category_id"`
	MuscleGroups string  `json:"muscle_groups"`
	Equipment    string  `json:"equipment"`
	Instructions *string `json:"instructions,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`

	// Joined from exercise_categories on read.
	CategoryName  string `json:"category_name,omitempty"`
	CategoryColor string `json:"category_color,omitempty"`
}

// CatalogExercise is a seed entry that names its category instead of an ID.
type CatalogExercise struct {
	Name         string
	Category     string
	MuscleGroups string
	Equipment    string
}

// DefaultCategories is the fixed category list seeded on first run.
var DefaultCategories = []ExerciseCategory{
	{Name: "Chest", Icon: "fitness", Color: "#FF6B6B"},
	{Name: "Back", Icon: "body", Color: "#4ECDC4"},
	{Name: "Legs", Icon: "walk", Color: "#45B7D1"},
	{Name: "Shoulders", Icon: "fitness", Color: "#96CEB4"},
	{Name: "Arms", Icon: "fitness", Color: "#FECA57"},
	{Name: "Core", Icon: "fitness", Color: "#FF9FF3"},
	{Name: "Cardio", Icon: "heart", Color: "#54A0FF"},
}

// DefaultExercises is the fixed exercise list seeded on first run.
var DefaultExercises = []CatalogExercise{
	// Chest
	{Name: "Push-ups", Category: "Chest", MuscleGroups: "Chest, Triceps, Shoulders", Equipment: "Bodyweight"},
	{Name: "Bench Press", Category: "Chest", MuscleGroups: "Chest, Triceps, Shoulders", Equipment: "Barbell"},
	{Name: "Dumbbell Flyes", Category: "Chest", MuscleGroups: "Chest", Equipment: "Dumbbells"},

	// Back
	{Name: "Pull-ups", Category: "Back", MuscleGroups: "Lats, Biceps, Rhomboids", Equipment: "Pull-up Bar"},
	{Name: "Deadlifts", Category: "Back", MuscleGroups: "Back, Glutes, Hamstrings", Equipment: "Barbell"},
	{Name: "Bent Over Rows", Category: "Back", MuscleGroups: "Lats, Rhomboids", Equipment: "Barbell"},

	// Legs
	{Name: "Squats", Category: "Legs", MuscleGroups: "Quadriceps, Glutes", Equipment: "Barbell"},
	{Name: "Lunges", Category: "Legs", MuscleGroups: "Quadriceps, Glutes, Calves", Equipment: "Bodyweight"},
	{Name: "Leg Press", Category: "Legs", MuscleGroups: "Quadriceps, Glutes", Equipment: "Machine"},

	// Shoulders
	{Name: "Shoulder Press", Category: "Shoulders", MuscleGroups: "Shoulders, Triceps", Equipment: "Dumbbells"},
	{Name: "Lateral Raises", Category: "Shoulders", MuscleGroups: "Shoulders", Equipment: "Dumbbells"},

	// Arms
	{Name: "Bicep Curls", Category: "Arms", MuscleGroups: "Biceps", Equipment: "Dumbbells"},
	{Name: "Tricep Dips", Category: "Arms", MuscleGroups: "Triceps", Equipment: "Bodyweight"},

	// Core
	{Name: "Plank", Category: "Core", MuscleGroups: "Core, Shoulders", Equipment: "Bodyweight"},
	{Name: "Crunches", Category: "Core", MuscleGroups: "Abs", Equipment: "Bodyweight"},

	// Cardio
	{Name: "Running", Category: "Cardio", MuscleGroups: "Full Body", Equipment: "None"},
	{Name: "Cycling", Category: "Cardio", MuscleGroups: "Legs, Core", Equipment: "Bike"},
}
