// ABOUTME: Export and import functionality for workout data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Backend.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/liftlog/internal/models"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export file format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for workout data.
type ExportData struct {
	Version    string                     `json:"version" yaml:"version"`
	ExportedAt time.Time                  `json:"exported_at" yaml:"exported_at"`
	Tool       string                     `json:"tool" yaml:"tool"`
	Categories []*models.ExerciseCategory `json:"categories" yaml:"categories"`
	Exercises  []*models.Exercise         `json:"exercises" yaml:"exercises"`
	Workouts   []*models.Workout          `json:"workouts" yaml:"workouts"`
}

// Export collects the catalog and every workout, oldest first.
// Exercise entries are included when the backend stores them.
func Export(ctx context.Context, b Backend) (*ExportData, error) {
	categories, err := b.GetExerciseCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	exercises, err := b.GetExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	workouts, err := allWorkouts(ctx, b)
	if err != nil {
		return nil, err
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "liftlog",
		Categories: categories,
		Exercises:  exercises,
		Workouts:   workouts,
	}, nil
}

// ExportJSON exports all data as indented JSON.
func ExportJSON(ctx context.Context, b Backend) ([]byte, error) {
	data, err := Export(ctx, b)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports workouts as YAML with sets written inline.
func ExportYAML(ctx context.Context, b Backend) ([]byte, error) {
	data, err := Export(ctx, b)
	if err != nil {
		return nil, err
	}

	doc := yamlExport{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Workouts:   make([]yamlWorkout, 0, len(data.Workouts)),
	}

	for _, w := range data.Workouts {
		yw := yamlWorkout{
			ID:       w.ID,
			Name:     w.Name,
			Date:     w.Date,
			Start:    w.StartTime,
			End:      w.EndTime,
			Duration: w.Duration,
		}
		if w.Notes != nil {
			yw.Notes = *w.Notes
		}
		for _, e := range w.Exercises {
			ye := yamlExercise{Name: e.ExerciseName, Category: e.CategoryName}
			for _, s := range e.Sets {
				ye.Sets = append(ye.Sets, yamlSet{Reps: s.Reps, Weight: s.Weight})
			}
			yw.Exercises = append(yw.Exercises, ye)
		}
		doc.Workouts = append(doc.Workouts, yw)
	}

	return yaml.Marshal(doc)
}

type yamlExport struct {
	Version    string        `yaml:"version"`
	ExportedAt string        `yaml:"exported_at"`
	Tool       string        `yaml:"tool"`
	Workouts   []yamlWorkout `yaml:"workouts"`
}

type yamlWorkout struct {
	ID        int64          `yaml:"id"`
	Name      string         `yaml:"name"`
	Date      string         `yaml:"date"`
	Start     string         `yaml:"start,omitempty"`
	End       string         `yaml:"end,omitempty"`
	Duration  int            `yaml:"duration_minutes"`
	Notes     string         `yaml:"notes,omitempty"`
	Exercises []yamlExercise `yaml:"exercises,omitempty"`
}

type yamlExercise struct {
	Name     string    `yaml:"name"`
	Category string    `yaml:"category,omitempty"`
	Sets     []yamlSet `yaml:"sets,flow"`
}

type yamlSet struct {
	Reps   int     `yaml:"reps"`
	Weight float64 `yaml:"weight"`
}

// ExportMarkdown renders workouts as a Markdown table, newest first.
func ExportMarkdown(ctx context.Context, b Backend) (string, error) {
	workouts, err := b.GetWorkouts(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("list workouts: %w", err)
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Workout Export - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))
	sb.WriteString("| Date | Workout | Time | Duration | Notes |\n")
	sb.WriteString("|------|---------|------|----------|-------|\n")

	for _, w := range workouts {
		notes := ""
		if w.Notes != nil {
			notes = strings.ReplaceAll(*w.Notes, "|", "\\|")
		}
		span := ""
		if w.StartTime != "" {
			span = w.StartTime + "-" + w.EndTime
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d min | %s |\n",
			w.Date, w.Name, span, w.Duration, notes))
	}

	return sb.String(), nil
}

// ImportJSON imports workouts from JSON bytes produced by ExportJSON.
func ImportJSON(ctx context.Context, b Backend, data []byte) (*MigrateSummary, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return ImportData(ctx, b, &exportData)
}

// ImportData saves every workout in data into b. Categories and exercises are
// not imported; workout exercises are matched to b's catalog by exercise name.
func ImportData(ctx context.Context, b Backend, data *ExportData) (*MigrateSummary, error) {
	resolve, err := newExerciseResolver(ctx, b)
	if err != nil {
		return nil, err
	}

	summary := &MigrateSummary{}
	for _, w := range data.Workouts {
		if err := copyWorkout(ctx, b, w, resolve, summary); err != nil {
			return summary, fmt.Errorf("import workout %q on %s: %w", w.Name, w.Date, err)
		}
	}
	return summary, nil
}

// allWorkouts returns every workout, oldest first, with exercise entries when available.
func allWorkouts(ctx context.Context, b Backend) ([]*models.Workout, error) {
	listed, err := b.GetWorkouts(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	workouts := make([]*models.Workout, 0, len(listed))
	for i := len(listed) - 1; i >= 0; i-- {
		w := listed[i]
		if b.Capabilities().ExerciseDetail {
			full, err := b.GetWorkoutByID(ctx, w.ID)
			if err != nil {
				return nil, fmt.Errorf("get workout %d: %w", w.ID, err)
			}
			w = full
		}
		workouts = append(workouts, w)
	}
	return workouts, nil
}

// exerciseResolver maps a workout exercise onto the destination catalog.
type exerciseResolver func(e models.WorkoutExercise) (int64, bool)

func newExerciseResolver(ctx context.Context, dst Backend) (exerciseResolver, error) {
	catalog, err := dst.GetExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("list destination exercises: %w", err)
	}

	byName := make(map[string]int64, len(catalog))
	byID := make(map[int64]bool, len(catalog))
	for _, e := range catalog {
		byName[strings.ToLower(e.Name)] = e.ID
		byID[e.ID] = true
	}

	return func(e models.WorkoutExercise) (int64, bool) {
		if e.ExerciseName != "" {
			id, ok := byName[strings.ToLower(e.ExerciseName)]
			return id, ok
		}
		return e.ExerciseID, byID[e.ExerciseID]
	}, nil
}

// copyWorkout saves a fresh copy of w into dst and updates the summary counts.
func copyWorkout(ctx context.Context, dst Backend, w *models.Workout, resolve exerciseResolver, summary *MigrateSummary) error {
	clone := *w
	clone.ID = 0
	clone.Exercises = nil

	var entries []*models.WorkoutExercise
	for _, e := range w.Exercises {
		id, ok := resolve(e)
		if !ok {
			log.WithFields(log.Fields{
				"workout":  w.Name,
				"date":     w.Date,
				"exercise": e.ExerciseName,
			}).Warn("exercise not in destination catalog, skipping")
			summary.Skipped++
			continue
		}
		entry := e
		entry.ID, entry.WorkoutID, entry.ExerciseID = 0, 0, id
		entries = append(entries, &entry)
	}

	if _, err := dst.SaveWorkout(ctx, &clone, entries); err != nil {
		return err
	}

	summary.Workouts++
	if dst.Capabilities().ExerciseDetail {
		summary.WorkoutExercises += len(entries)
	} else {
		summary.Skipped += len(entries)
	}
	return nil
}
