// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Opens isolated SQLite and in-memory KV backends and builds fake workouts.
package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/harperreed/liftlog/internal/models"
)

// clockedBackend is a Backend whose notion of "now" can be pinned.
type clockedBackend interface {
	Backend
	SetClock(now func() time.Time)
}

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestKV(t *testing.T) *KVStore {
	t.Helper()
	store, err := OpenKV(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to open test kv: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// forEachBackend runs fn as a subtest against both backends.
func forEachBackend(t *testing.T, fn func(t *testing.T, b clockedBackend)) {
	t.Helper()
	t.Run("sqlite", func(t *testing.T) { fn(t, setupTestDB(t)) })
	t.Run("kv", func(t *testing.T) { fn(t, setupTestKV(t)) })
}

// exerciseID looks up a seeded exercise by name.
func exerciseID(t *testing.T, b Backend, name string) int64 {
	t.Helper()
	exercises, err := b.GetExercises(context.Background())
	if err != nil {
		t.Fatalf("GetExercises failed: %v", err)
	}
	for _, e := range exercises {
		if e.Name == name {
			return e.ID
		}
	}
	t.Fatalf("exercise %q not seeded", name)
	return 0
}

// fakeWorkout builds a workout dated on day with random name, duration, and notes.
func fakeWorkout(faker *gofakeit.Faker, day time.Time) *models.Workout {
	start := time.Date(day.Year(), day.Month(), day.Day(), faker.Number(6, 19), faker.Number(0, 59), 0, 0, time.Local)
	end := start.Add(time.Duration(faker.Number(15, 120)) * time.Minute)
	w := models.NewWorkout(faker.Word()+" day", start, end).WithDate(day)
	if faker.Bool() {
		w.WithNotes(faker.Sentence(5))
	}
	return w
}

// fixedNow is the pinned clock used by date-relative tests.
var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)
