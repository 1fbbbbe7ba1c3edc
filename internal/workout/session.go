// ABOUTME: In-progress workout session built up set by set before saving.
// ABOUTME: Finish computes the duration once and yields a workout plus entries.
package workout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
)

var (
	// ErrNameRequired is returned when a session is started without a name.
	ErrNameRequired = errors.New("workout name is required")

	// ErrNoSuchExercise is returned for an exercise index outside the session.
	ErrNoSuchExercise = errors.New("no such exercise in session")

	// ErrNoSuchSet is returned for a set index outside an exercise.
	ErrNoSuchSet = errors.New("no such set")
)

// SessionExercise is an exercise added to a running session.
type SessionExercise struct {
	ExerciseID int64        `json:"exercise_id"`
	Name       string       `json:"name"`
	Sets       []models.Set `json:"sets"`
}

// Session holds an active workout. Indexes passed to its methods are zero-based.
type Session struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	StartedAt time.Time          `json:"started_at"`
	Exercises []*SessionExercise `json:"exercises"`
}

// NewSession starts a session at now. The name must not be blank.
func NewSession(name string, now time.Time) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	return &Session{
		ID:        uuid.New(),
		Name:      name,
		StartedAt: now,
	}, nil
}

// AddExercise appends an exercise with one empty set and returns its index.
func (s *Session) AddExercise(exerciseID int64, name string) int {
	s.Exercises = append(s.Exercises, &SessionExercise{
		ExerciseID: exerciseID,
		Name:       name,
		Sets:       []models.Set{{}},
	})
	return len(s.Exercises) - 1
}

// RemoveExercise drops the exercise at index.
func (s *Session) RemoveExercise(index int) error {
	if _, err := s.exercise(index); err != nil {
		return err
	}
	s.Exercises = append(s.Exercises[:index], s.Exercises[index+1:]...)
	return nil
}

// AddSet appends an empty set to an exercise and returns the new set index.
func (s *Session) AddSet(exerciseIndex int) (int, error) {
	e, err := s.exercise(exerciseIndex)
	if err != nil {
		return 0, err
	}
	e.Sets = append(e.Sets, models.Set{})
	return len(e.Sets) - 1, nil
}

// UpdateSet records reps and weight for a set.
func (s *Session) UpdateSet(exerciseIndex, setIndex, reps int, weight float64) error {
	set, err := s.set(exerciseIndex, setIndex)
	if err != nil {
		return err
	}
	set.Reps = reps
	set.Weight = weight
	return nil
}

// ToggleSet flips the completed flag of a set.
func (s *Session) ToggleSet(exerciseIndex, setIndex int) error {
	set, err := s.set(exerciseIndex, setIndex)
	if err != nil {
		return err
	}
	set.Completed = !set.Completed
	return nil
}

// RemoveSet deletes a set. The last remaining set of an exercise is kept.
func (s *Session) RemoveSet(exerciseIndex, setIndex int) error {
	e, err := s.exercise(exerciseIndex)
	if err != nil {
		return err
	}
	if setIndex < 0 || setIndex >= len(e.Sets) {
		return fmt.Errorf("%w: %d", ErrNoSuchSet, setIndex+1)
	}
	if len(e.Sets) == 1 {
		return nil
	}
	e.Sets = append(e.Sets[:setIndex], e.Sets[setIndex+1:]...)
	return nil
}

// TotalSets counts sets across all exercises.
func (s *Session) TotalSets() int {
	total := 0
	for _, e := range s.Exercises {
		total += len(e.Sets)
	}
	return total
}

// Elapsed returns how long the session has been running at now.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if now.Before(s.StartedAt) {
		return 0
	}
	return now.Sub(s.StartedAt)
}

// FormatElapsed renders the elapsed time as MM:SS.
func FormatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Finish closes the session at now and returns the workout and its entries.
// Blank notes are not stored.
func (s *Session) Finish(now time.Time, notes string) (*models.Workout, []Entry) {
	w := models.NewWorkout(s.Name, s.StartedAt, now)
	if strings.TrimSpace(notes) != "" {
		w.WithNotes(notes)
	}

	entries := make([]Entry, 0, len(s.Exercises))
	for _, e := range s.Exercises {
		sets := make([]models.Set, len(e.Sets))
		copy(sets, e.Sets)
		entries = append(entries, Entry{ExerciseID: e.ExerciseID, Sets: sets})
	}
	return w, entries
}

func (s *Session) exercise(index int) (*SessionExercise, error) {
	if index < 0 || index >= len(s.Exercises) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchExercise, index+1)
	}
	return s.Exercises[index], nil
}

func (s *Session) set(exerciseIndex, setIndex int) (*models.Set, error) {
	e, err := s.exercise(exerciseIndex)
	if err != nil {
		return nil, err
	}
	if setIndex < 0 || setIndex >= len(e.Sets) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchSet, setIndex+1)
	}
	return &e.Sets[setIndex], nil
}
