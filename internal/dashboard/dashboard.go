// ABOUTME: Read models for the home, progress, and calendar views.
// ABOUTME: Storage errors are logged and recovered as empty views.
package dashboard

import (
	"context"
	"time"

	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/progress"
	"github.com/harperreed/liftlog/internal/workout"
	log "github.com/sirupsen/logrus"
)

const (
	// RecentLimit is the number of workouts shown on the home view.
	RecentLimit = 5
	// ProgressLimit is the number of workouts analysed by the progress view.
	ProgressLimit = 50
)

// HomeView is the landing summary.
type HomeView struct {
	Stats  models.WorkoutStats `json:"stats"`
	Recent []*models.Workout   `json:"recent_workouts"`
}

// ProgressView holds the aggregates behind the progress charts.
type ProgressView struct {
	Summary progress.Summary  `json:"summary"`
	Weekly  []progress.Bucket `json:"workouts_per_week"`
	Trend   []progress.Point  `json:"duration_trend"`
}

// CalendarView groups the workouts around the current month by date.
type CalendarView struct {
	Start  string                       `json:"start"`
	End    string                       `json:"end"`
	ByDate map[string][]*models.Workout `json:"workouts_by_date"`
	Dates  []string                     `json:"dates"`
	Month  progress.MonthStats          `json:"month"`
}

// Service builds views from fresh repository reads. Nothing is cached.
type Service struct {
	repo *workout.Repository
	now  func() time.Time
}

// NewService creates a dashboard over the repository.
func NewService(repo *workout.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Home returns workout counts and the most recent workouts.
func (s *Service) Home(ctx context.Context) HomeView {
	view := HomeView{Recent: []*models.Workout{}}

	stats, err := s.repo.GetWorkoutStats(ctx)
	if err != nil {
		log.WithError(err).WithField("view", "home").Error("failed to load workout stats")
	} else {
		view.Stats = *stats
	}

	recent, err := s.repo.GetWorkouts(ctx, RecentLimit)
	if err != nil {
		log.WithError(err).WithField("view", "home").Error("failed to load recent workouts")
	} else {
		view.Recent = recent
	}

	return view
}

// Progress summarizes the latest workouts into chart series.
func (s *Service) Progress(ctx context.Context) ProgressView {
	now := s.now()

	ws, err := s.repo.GetWorkouts(ctx, ProgressLimit)
	if err != nil {
		log.WithError(err).WithField("view", "progress").Error("failed to load workouts")
		ws = nil
	}

	return ProgressView{
		Summary: progress.Summarize(ws, now),
		Weekly:  progress.WeeklyHistogram(ws, now),
		Trend:   progress.DurationTrend(ws),
	}
}

// Calendar loads workouts from three months back to one month ahead.
func (s *Service) Calendar(ctx context.Context) CalendarView {
	now := s.now()
	view := CalendarView{
		Start: models.DateOf(now.AddDate(0, -3, 0)),
		End:   models.DateOf(now.AddDate(0, 1, 0)),
	}

	ws, err := s.repo.GetWorkoutsByDateRange(ctx, view.Start, view.End)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"view":  "calendar",
			"start": view.Start,
			"end":   view.End,
		}).Error("failed to load workouts")
		ws = nil
	}

	view.ByDate, view.Dates = progress.GroupByDate(ws)
	view.Month = progress.MonthlyStats(ws, now)
	return view
}
