// ABOUTME: Tests for dashboard views over a real store and a failing store.
// ABOUTME: Failing reads must be logged and produce empty views.
package dashboard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/progress"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/harperreed/liftlog/internal/workout"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

func setupService(t *testing.T) (*Service, *workout.Repository) {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetClock(func() time.Time { return now })
	t.Cleanup(func() { db.Close() })

	repo := workout.NewRepository(db)
	svc := NewService(repo)
	svc.SetClock(func() time.Time { return now })
	return svc, repo
}

func logOn(t *testing.T, repo *workout.Repository, daysAgo, minutes int) {
	t.Helper()
	day := now.AddDate(0, 0, -daysAgo)
	w := models.NewWorkout("Workout", day, day.Add(time.Duration(minutes)*time.Minute)).WithDate(day)
	if _, err := repo.LogWorkout(context.Background(), w, nil); err != nil {
		t.Fatalf("LogWorkout failed: %v", err)
	}
}

func TestHome(t *testing.T) {
	svc, repo := setupService(t)
	for i := 0; i < 8; i++ {
		logOn(t, repo, i*2, 30)
	}

	view := svc.Home(context.Background())
	if view.Stats.TotalWorkouts != 8 {
		t.Errorf("Expected 8 total workouts, got %d", view.Stats.TotalWorkouts)
	}
	// Days 0, 2, 4, 6 are within the trailing week.
	if view.Stats.WeeklyWorkouts != 4 {
		t.Errorf("Expected 4 weekly workouts, got %d", view.Stats.WeeklyWorkouts)
	}
	if len(view.Recent) != RecentLimit {
		t.Errorf("Expected %d recent workouts, got %d", RecentLimit, len(view.Recent))
	}
}

func TestProgress(t *testing.T) {
	svc, repo := setupService(t)
	logOn(t, repo, 0, 40)
	logOn(t, repo, 10, 60)

	view := svc.Progress(context.Background())
	if view.Summary.TotalWorkouts != 2 || view.Summary.AverageDuration != 50 {
		t.Errorf("Unexpected summary: %+v", view.Summary)
	}
	if len(view.Weekly) != 8 {
		t.Errorf("Expected 8 weekly buckets, got %d", len(view.Weekly))
	}
	if len(view.Trend) != 2 || view.Trend[0].Duration != 60 {
		t.Errorf("Expected chronological trend, got %+v", view.Trend)
	}
}

func TestCalendar(t *testing.T) {
	svc, repo := setupService(t)
	logOn(t, repo, 1, 30)
	logOn(t, repo, 1, 45)
	logOn(t, repo, 40, 30)
	logOn(t, repo, 120, 30) // outside the window

	view := svc.Calendar(context.Background())
	if view.Start != "2023-12-15" || view.End != "2024-04-15" {
		t.Errorf("Unexpected range %s..%s", view.Start, view.End)
	}
	if len(view.Dates) != 2 {
		t.Errorf("Expected 2 marked dates, got %v", view.Dates)
	}
	if len(view.ByDate["2024-03-14"]) != 2 {
		t.Errorf("Expected 2 workouts on 2024-03-14, got %d", len(view.ByDate["2024-03-14"]))
	}
	if view.Month.Count != 2 || view.Month.TotalDuration != 75 {
		t.Errorf("Unexpected month stats: %+v", view.Month)
	}
}

// failingBackend fails every read the dashboard makes.
type failingBackend struct {
	storage.Backend
}

var errBoom = errors.New("disk on fire")

func (failingBackend) GetWorkouts(context.Context, int) ([]*models.Workout, error) {
	return nil, errBoom
}

func (failingBackend) GetWorkoutStats(context.Context) (*models.WorkoutStats, error) {
	return nil, errBoom
}

func (failingBackend) GetWorkoutsByDateRange(context.Context, string, string) ([]*models.Workout, error) {
	return nil, errBoom
}

func TestViewsRecoverFromStorageErrors(t *testing.T) {
	hook := test.NewGlobal()
	defer log.StandardLogger().ReplaceHooks(make(log.LevelHooks))

	svc := NewService(workout.NewRepository(failingBackend{}))
	svc.SetClock(func() time.Time { return now })
	ctx := context.Background()

	home := svc.Home(ctx)
	if home.Stats.TotalWorkouts != 0 || len(home.Recent) != 0 || home.Recent == nil {
		t.Errorf("Expected empty home view, got %+v", home)
	}

	prog := svc.Progress(ctx)
	if prog.Summary != (progress.Summary{}) || len(prog.Weekly) != 8 {
		t.Errorf("Expected zero progress view, got %+v", prog)
	}

	cal := svc.Calendar(ctx)
	if len(cal.Dates) != 0 || cal.Month.Count != 0 {
		t.Errorf("Expected empty calendar, got %+v", cal)
	}

	if got := len(hook.AllEntries()); got != 4 {
		t.Errorf("Expected 4 logged errors, got %d", got)
	}
	if hook.LastEntry().Level != log.ErrorLevel {
		t.Errorf("Expected error level, got %v", hook.LastEntry().Level)
	}
}
