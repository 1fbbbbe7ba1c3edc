// ABOUTME: Key-value fallback backend storing JSON collections under fixed keys.
// ABOUTME: Used when SQLite is unavailable; does not keep per-exercise detail.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/harperreed/liftlog/internal/models"
	log "github.com/sirupsen/logrus"
)

const (
	kvNamespace = "liftlog:"

	WorkoutsKey   = kvNamespace + "workouts"
	ExercisesKey  = kvNamespace + "exercises"
	CategoriesKey = kvNamespace + "exercise_categories"

	// KVName is the Charm KV database name.
	KVName = "liftlog"
)

// KVStore keeps workouts, exercises, and categories as three JSON arrays.
// Each write rewrites the whole collection.
type KVStore struct {
	engine kvEngine
	now    func() time.Time
	mu     sync.Mutex
}

// Compile-time check that KVStore implements Backend.
var _ Backend = (*KVStore)(nil)

// OpenKV opens a badger-backed store in dir (in memory when dir is empty)
// and ensures the default collections exist.
func OpenKV(ctx context.Context, dir string) (*KVStore, error) {
	engine, err := openBadgerEngine(dir)
	if err != nil {
		return nil, err
	}
	return newKVStore(ctx, engine)
}

// OpenSyncedKV opens a Charm KV store that syncs to Charm Cloud on every write.
func OpenSyncedKV(ctx context.Context, host string) (*KVStore, error) {
	engine, err := openCharmEngine(KVName, host)
	if err != nil {
		return nil, err
	}
	return newKVStore(ctx, engine)
}

func newKVStore(ctx context.Context, engine kvEngine) (*KVStore, error) {
	s := &KVStore{engine: engine, now: time.Now}
	if err := s.Initialize(ctx); err != nil {
		_ = engine.Close()
		return nil, err
	}
	return s, nil
}

// SetClock replaces the time source used for IDs and date-relative queries.
func (s *KVStore) SetClock(now func() time.Time) {
	s.now = now
}

// Capabilities reports that exercise detail is dropped in this backend.
func (s *KVStore) Capabilities() Capabilities {
	return Capabilities{ExerciseDetail: false, Transactions: false}
}

// Close releases the underlying engine.
func (s *KVStore) Close() error {
	return s.engine.Close()
}

// Initialize writes empty collections for missing keys and seeds the catalog
// when no exercises exist.
func (s *KVStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{WorkoutsKey, ExercisesKey, CategoriesKey} {
		_, err := s.engine.Get([]byte(key))
		if errors.Is(err, errKeyMissing) {
			if err := s.engine.Set([]byte(key), []byte("[]")); err != nil {
				return fmt.Errorf("initialize %s: %w", key, err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
	}

	var exercises []*models.Exercise
	s.load(ExercisesKey, &exercises)
	if len(exercises) > 0 {
		return nil
	}

	var categories []*models.ExerciseCategory
	s.load(CategoriesKey, &categories)

	byName := make(map[string]int64, len(categories))
	var nextCategoryID int64
	for _, c := range categories {
		byName[c.Name] = c.ID
		nextCategoryID = max(nextCategoryID, c.ID)
	}
	for _, c := range models.DefaultCategories {
		if _, ok := byName[c.Name]; ok {
			continue
		}
		nextCategoryID++
		cat := c
		cat.ID = nextCategoryID
		categories = append(categories, &cat)
		byName[cat.Name] = cat.ID
	}

	for _, e := range models.DefaultExercises {
		categoryID, ok := byName[e.Category]
		if !ok {
			continue
		}
		exercises = append(exercises, &models.Exercise{
			ID:           int64(len(exercises) + 1),
			Name:         e.Name,
			CategoryID:   categoryID,
			MuscleGroups: e.MuscleGroups,
			Equipment:    e.Equipment,
		})
	}

	if err := s.store(CategoriesKey, categories); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := s.store(ExercisesKey, exercises); err != nil {
		return fmt.Errorf("seed exercises: %w", err)
	}
	return nil
}

// CreateWorkout appends a workout and returns its timestamp-derived ID.
// IDs are strictly increasing even when two workouts land in the same millisecond.
func (s *KVStore) CreateWorkout(ctx context.Context, w *models.Workout) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var workouts []*models.Workout
	s.load(WorkoutsKey, &workouts)

	id := s.now().UnixMilli()
	for _, existing := range workouts {
		if existing.ID >= id {
			id = existing.ID + 1
		}
	}

	if w.CreatedAt.IsZero() {
		w.CreatedAt = s.now()
	}
	stored := *w
	stored.ID = id
	stored.Exercises = nil
	workouts = append(workouts, &stored)

	if err := s.store(WorkoutsKey, workouts); err != nil {
		return 0, fmt.Errorf("create workout: %w", err)
	}
	w.ID = id
	return id, nil
}

// AddExerciseToWorkout is not supported by the key-value backend.
func (s *KVStore) AddExerciseToWorkout(ctx context.Context, workoutID int64, e *models.WorkoutExercise) (int64, error) {
	return 0, ErrExerciseDetailUnsupported
}

// SaveWorkout stores only the workout row; exercise entries are dropped.
// Callers can detect this through Capabilities().ExerciseDetail.
func (s *KVStore) SaveWorkout(ctx context.Context, w *models.Workout, exercises []*models.WorkoutExercise) (int64, error) {
	return s.CreateWorkout(ctx, w)
}

// GetWorkouts returns workouts, newest first. A limit of zero or less returns all.
func (s *KVStore) GetWorkouts(ctx context.Context, limit int) ([]*models.Workout, error) {
	workouts := s.workouts()

	sort.SliceStable(workouts, func(i, j int) bool {
		a, b := workouts[i], workouts[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	if limit > 0 && len(workouts) > limit {
		workouts = workouts[:limit]
	}
	return workouts, nil
}

// GetWorkoutByID returns the workout without exercise rows.
func (s *KVStore) GetWorkoutByID(ctx context.Context, id int64) (*models.Workout, error) {
	for _, w := range s.workouts() {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, fmt.Errorf("workout %d: %w", id, ErrNotFound)
}

// GetWorkoutsByDateRange returns workouts whose date lies in [start, end], oldest first.
func (s *KVStore) GetWorkoutsByDateRange(ctx context.Context, start, end string) ([]*models.Workout, error) {
	matched := []*models.Workout{}
	for _, w := range s.workouts() {
		if w.Date >= start && w.Date <= end {
			matched = append(matched, w)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Date != matched[j].Date {
			return matched[i].Date < matched[j].Date
		}
		return matched[i].ID < matched[j].ID
	})
	return matched, nil
}

// GetWorkoutStats counts all workouts and those dated within the trailing week.
func (s *KVStore) GetWorkoutStats(ctx context.Context) (*models.WorkoutStats, error) {
	workouts := s.workouts()
	cutoff := weeklyCutoff(s.now())

	stats := &models.WorkoutStats{TotalWorkouts: len(workouts)}
	for _, w := range workouts {
		if w.Date >= cutoff {
			stats.WeeklyWorkouts++
		}
	}
	return stats, nil
}

// ClearAllData empties the workouts collection.
func (s *KVStore) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store(WorkoutsKey, []*models.Workout{}); err != nil {
		return fmt.Errorf("clear all data: %w", err)
	}
	return nil
}

// GetExercises returns exercises joined with their category, ordered by
// category name then exercise name. Exercises with unknown categories are omitted.
func (s *KVStore) GetExercises(ctx context.Context) ([]*models.Exercise, error) {
	s.mu.Lock()
	var exercises []*models.Exercise
	var categories []*models.ExerciseCategory
	s.load(ExercisesKey, &exercises)
	s.load(CategoriesKey, &categories)
	s.mu.Unlock()

	byID := make(map[int64]*models.ExerciseCategory, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	joined := []*models.Exercise{}
	for _, e := range exercises {
		c, ok := byID[e.CategoryID]
		if !ok {
			continue
		}
		e.CategoryName = c.Name
		e.CategoryColor = c.Color
		joined = append(joined, e)
	}

	sort.SliceStable(joined, func(i, j int) bool {
		if joined[i].CategoryName != joined[j].CategoryName {
			return joined[i].CategoryName < joined[j].CategoryName
		}
		return joined[i].Name < joined[j].Name
	})
	return joined, nil
}

// GetExerciseCategories returns all categories ordered by name.
func (s *KVStore) GetExerciseCategories(ctx context.Context) ([]*models.ExerciseCategory, error) {
	s.mu.Lock()
	categories := []*models.ExerciseCategory{}
	s.load(CategoriesKey, &categories)
	s.mu.Unlock()

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// workouts loads the workouts collection under the store lock.
func (s *KVStore) workouts() []*models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()

	workouts := []*models.Workout{}
	s.load(WorkoutsKey, &workouts)
	return workouts
}

// load decodes a collection into dst. Unreadable collections read as empty.
func (s *KVStore) load(key string, dst any) {
	data, err := s.engine.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, errKeyMissing) {
			log.WithError(err).WithField("key", key).Warn("kv read failed, treating collection as empty")
		}
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.WithError(err).WithField("key", key).Warn("kv collection is not valid JSON, treating as empty")
	}
}

// store encodes a collection and writes it back.
func (s *KVStore) store(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.engine.Set([]byte(key), data)
}
