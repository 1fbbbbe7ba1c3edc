// ABOUTME: MCP tool implementations for workout logging and queries.
// ABOUTME: Exposes the repository and stats to MCP clients.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/harperreed/liftlog/internal/workout"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultListLimit = 20

func (s *Server) registerTools() {
	// log_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Log a finished workout with its exercises and sets",
	}, s.handleLogWorkout)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workouts, newest first",
	}, s.handleListWorkouts)

	// get_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with its exercises and sets",
	}, s.handleGetWorkout)

	// workouts_in_range
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workouts_in_range",
		Description: "List workouts dated between two days, inclusive",
	}, s.handleWorkoutsInRange)

	// list_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List the exercise catalog, optionally filtered by category",
	}, s.handleListExercises)

	// list_categories
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_categories",
		Description: "List exercise categories",
	}, s.handleListCategories)

	// workout_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workout_stats",
		Description: "Get total and this-week workout counts",
	}, s.handleWorkoutStats)

	// clear_all_data
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "clear_all_data",
		Description: "Delete every logged workout. The exercise catalog is kept.",
	}, s.handleClearAllData)
}

// Tool input/output types

type setInput struct {
	Reps      int     `json:"reps" jsonschema:"Repetitions performed"`
	Weight    float64 `json:"weight,omitempty" jsonschema:"Weight used"`
	Completed bool    `json:"completed,omitempty" jsonschema:"Whether the set was completed"`
}

type exerciseInput struct {
	Exercise string     `json:"exercise" jsonschema:"Exercise name from list_exercises"`
	Sets     []setInput `json:"sets" jsonschema:"Sets in the order performed"`
}

type logWorkoutInput struct {
	Name      string          `json:"name" jsonschema:"Workout name"`
	Date      string          `json:"date,omitempty" jsonschema:"Workout date (YYYY-MM-DD), defaults to today"`
	StartTime string          `json:"start_time,omitempty" jsonschema:"Start time (HH:MM)"`
	EndTime   string          `json:"end_time,omitempty" jsonschema:"End time (HH:MM)"`
	Duration  int             `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes, derived from start and end time when omitted"`
	Notes     string          `json:"notes,omitempty" jsonschema:"Workout notes"`
	Exercises []exerciseInput `json:"exercises,omitempty" jsonschema:"Exercises performed"`
}

type logWorkoutOutput struct {
	ID             int64  `json:"id"`
	ExercisesSaved int    `json:"exercises_saved"`
	DetailDropped  bool   `json:"detail_dropped"`
	Message        string `json:"message"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20, 0 or less for all)"`
}

type workoutsOutput struct {
	Workouts []*models.Workout `json:"workouts"`
	Count    int               `json:"count"`
}

type getWorkoutInput struct {
	ID int64 `json:"id" jsonschema:"Workout ID"`
}

type rangeInput struct {
	Start string `json:"start" jsonschema:"First day (YYYY-MM-DD)"`
	End   string `json:"end" jsonschema:"Last day (YYYY-MM-DD)"`
}

type listExercisesInput struct {
	Category string `json:"category,omitempty" jsonschema:"Only exercises in this category"`
}

type exercisesOutput struct {
	Exercises []*models.Exercise `json:"exercises"`
}

type categoriesOutput struct {
	Categories []*models.ExerciseCategory `json:"categories"`
}

type emptyInput struct{}

type clearInput struct {
	Confirm bool `json:"confirm" jsonschema:"Must be true to delete all workouts"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, logWorkoutOutput, error) {
	draft := workout.Draft{
		Name:      input.Name,
		Date:      input.Date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Duration:  input.Duration,
		Notes:     input.Notes,
	}
	w, err := draft.Workout(s.now())
	if err != nil {
		return nil, logWorkoutOutput{}, err
	}

	var entries []workout.Entry
	if len(input.Exercises) > 0 {
		catalog, err := s.repo.GetExercises(ctx)
		if err != nil {
			return nil, logWorkoutOutput{}, fmt.Errorf("failed to load exercises: %w", err)
		}
		for _, ex := range input.Exercises {
			e, err := workout.FindExercise(catalog, ex.Exercise)
			if err != nil {
				return nil, logWorkoutOutput{}, err
			}
			entry := workout.Entry{ExerciseID: e.ID}
			for i, set := range ex.Sets {
				s := models.Set{Reps: set.Reps, Weight: set.Weight, Completed: set.Completed}
				if err := workout.ValidateSet(s); err != nil {
					return nil, logWorkoutOutput{}, fmt.Errorf("%s set %d: %w", e.Name, i+1, err)
				}
				entry.Sets = append(entry.Sets, s)
			}
			entries = append(entries, entry)
		}
	}

	result, err := s.repo.LogWorkout(ctx, w, entries)
	if err != nil {
		return nil, logWorkoutOutput{}, fmt.Errorf("failed to save workout: %w", err)
	}

	msg := fmt.Sprintf("Logged %s on %s (%d min, ID: %d)", w.Name, w.Date, w.Duration, result.ID)
	if result.DetailDropped {
		msg += "; exercise detail is not stored by the key-value backend"
	}

	return nil, logWorkoutOutput{
		ID:             result.ID,
		ExercisesSaved: result.ExercisesSaved,
		DetailDropped:  result.DetailDropped,
		Message:        msg,
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit == 0 {
		input.Limit = defaultListLimit
	}

	workouts, err := s.repo.GetWorkouts(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	return nil, workoutsOutput{Workouts: workouts, Count: len(workouts)}, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	w, err := s.repo.GetWorkoutByID(ctx, input.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, fmt.Errorf("workout not found: %d", input.ID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workout: %w", err)
	}

	return nil, w, nil
}

func (s *Server) handleWorkoutsInRange(ctx context.Context, req *mcp.CallToolRequest, input rangeInput) (*mcp.CallToolResult, any, error) {
	for _, d := range []string{input.Start, input.End} {
		if _, err := models.ParseDate(d); err != nil {
			return nil, nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", d)
		}
	}

	workouts, err := s.repo.GetWorkoutsByDateRange(ctx, input.Start, input.End)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	return nil, workoutsOutput{Workouts: workouts, Count: len(workouts)}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	exercises, err := s.repo.GetExercises(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	if input.Category != "" {
		exercises = workout.GroupByCategory(exercises)[input.Category]
		if exercises == nil {
			exercises = []*models.Exercise{}
		}
	}

	return nil, exercisesOutput{Exercises: exercises}, nil
}

func (s *Server) handleListCategories(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	categories, err := s.repo.GetExerciseCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return nil, categoriesOutput{Categories: categories}, nil
}

func (s *Server) handleWorkoutStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	stats, err := s.repo.GetWorkoutStats(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return nil, stats, nil
}

func (s *Server) handleClearAllData(ctx context.Context, req *mcp.CallToolRequest, input clearInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !input.Confirm {
		return nil, simpleOutput{}, fmt.Errorf("refusing to delete all workouts without confirm: true")
	}

	if err := s.repo.ClearAllData(ctx); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to clear data: %w", err)
	}

	return nil, simpleOutput{Message: "Deleted all workouts. Exercise catalog kept."}, nil
}
