// ABOUTME: Workouts entered after the fact from CLI flags or MCP tool input.
// ABOUTME: Validates dates and times and resolves exercise names against the catalog.
package workout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/liftlog/internal/models"
)

// ErrUnknownExercise is returned when a name matches no catalog exercise.
var ErrUnknownExercise = errors.New("unknown exercise")

// Draft is a workout described by its fields rather than recorded live.
type Draft struct {
	Name      string
	Date      string // YYYY-MM-DD, defaults to today
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Duration  int    // minutes, derived from StartTime and EndTime when zero
	Notes     string
}

// Workout validates the draft and builds the workout it describes.
func (d Draft) Workout(now time.Time) (*models.Workout, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	date := d.Date
	if date == "" {
		date = models.DateOf(now)
	} else if _, err := models.ParseDate(date); err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}

	if d.Duration < 0 {
		return nil, fmt.Errorf("invalid duration %d", d.Duration)
	}

	start, err := parseClock(d.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(d.EndTime)
	if err != nil {
		return nil, err
	}

	w := &models.Workout{
		Name:      name,
		Date:      date,
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Duration:  d.Duration,
		CreatedAt: now,
	}
	if w.Duration == 0 && !start.IsZero() && !end.IsZero() {
		if end.Before(start) {
			end = end.Add(24 * time.Hour)
		}
		w.Duration = models.DurationMinutes(start, end)
	}
	if strings.TrimSpace(d.Notes) != "" {
		w.WithNotes(d.Notes)
	}
	return w, nil
}

func parseClock(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(models.ClockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	// Keep a non-zero date so IsZero only means "not given".
	return t.AddDate(2000, 0, 0), nil
}

// FindExercise looks up a catalog exercise by case-insensitive name.
func FindExercise(catalog []*models.Exercise, name string) (*models.Exercise, error) {
	want := strings.TrimSpace(name)
	for _, e := range catalog {
		if strings.EqualFold(e.Name, want) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownExercise, name)
}

// ParseSetSpec parses sets written as "10x100,10x100,8x95" (reps x weight).
// A bare number is reps with no weight.
func ParseSetSpec(spec string) ([]models.Set, error) {
	var sets []models.Set
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		s := models.Set{Completed: true}
		reps, weight, hasWeight := strings.Cut(strings.ToLower(part), "x")

		n, err := strconv.Atoi(strings.TrimSpace(reps))
		if err != nil {
			return nil, fmt.Errorf("invalid reps in set %q", part)
		}
		s.Reps = n

		if hasWeight {
			w, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid weight in set %q", part)
			}
			s.Weight = w
		}
		if err := ValidateSet(s); err != nil {
			return nil, fmt.Errorf("set %q: %w", part, err)
		}
		sets = append(sets, s)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no sets in %q", spec)
	}
	return sets, nil
}

// ValidateSet rejects negative reps and weights that are negative or not finite.
func ValidateSet(s models.Set) error {
	if s.Reps < 0 {
		return fmt.Errorf("invalid reps %d", s.Reps)
	}
	if s.Weight < 0 || math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0) {
		return fmt.Errorf("invalid weight %g", s.Weight)
	}
	return nil
}
