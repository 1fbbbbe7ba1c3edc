// ABOUTME: Tests for progress aggregations.
// ABOUTME: Uses a pinned clock so week and month windows are deterministic.
package progress

import (
	"testing"
	"time"

	"github.com/harperreed/liftlog/internal/models"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

func workoutOn(daysAgo, duration int) *models.Workout {
	return &models.Workout{
		Name:     "Workout",
		Date:     models.DateOf(now.AddDate(0, 0, -daysAgo)),
		Duration: duration,
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		ws   []*models.Workout
		want Summary
	}{
		{"empty", nil, Summary{}},
		{
			"ten days ago and today",
			[]*models.Workout{workoutOn(10, 60), workoutOn(0, 30)},
			Summary{TotalWorkouts: 2, WeeklyWorkouts: 1, TotalDuration: 90, AverageDuration: 45},
		},
		{
			"cutoff day counts",
			[]*models.Workout{workoutOn(7, 20), workoutOn(8, 25)},
			Summary{TotalWorkouts: 2, WeeklyWorkouts: 1, TotalDuration: 45, AverageDuration: 23},
		},
		{
			"empty date never weekly",
			[]*models.Workout{{Duration: 10}},
			Summary{TotalWorkouts: 1, TotalDuration: 10, AverageDuration: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.ws, now)
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
			if got.WeeklyWorkouts > got.TotalWorkouts {
				t.Errorf("weekly %d exceeds total %d", got.WeeklyWorkouts, got.TotalWorkouts)
			}
		})
	}
}

func TestWeeklyHistogramOnePerWeek(t *testing.T) {
	var ws []*models.Workout
	for week := 0; week < HistogramWeeks; week++ {
		ws = append(ws, workoutOn(7*week, 45))
	}

	buckets := WeeklyHistogram(ws, now)
	if len(buckets) != HistogramWeeks {
		t.Fatalf("Expected %d buckets, got %d", HistogramWeeks, len(buckets))
	}
	for i, b := range buckets {
		if b.Count != 1 {
			t.Errorf("bucket %d (%s) count = %d, want 1", i, b.Label, b.Count)
		}
	}
}

func TestWeeklyHistogramWindows(t *testing.T) {
	buckets := WeeklyHistogram(nil, now)

	first, last := buckets[0], buckets[len(buckets)-1]
	if first.Label != "1/26" {
		t.Errorf("Expected oldest label 1/26, got %s", first.Label)
	}
	if last.Label != "3/15" {
		t.Errorf("Expected newest label 3/15, got %s", last.Label)
	}
	if !last.Start.Equal(models.StartOfDay(now)) {
		t.Errorf("Expected newest window to start today, got %v", last.Start)
	}
	if last.End.Day() != 21 || last.End.Hour() != 23 {
		t.Errorf("Expected newest window to end 3/21 23:59, got %v", last.End)
	}
	for i := 1; i < len(buckets); i++ {
		if !buckets[i].Start.After(buckets[i-1].End) {
			t.Errorf("bucket %d overlaps previous", i)
		}
	}
}

func TestWeeklyHistogramIgnoresOutOfRange(t *testing.T) {
	ws := []*models.Workout{workoutOn(60, 30), {Date: "not-a-date"}, {Date: ""}}
	for _, b := range WeeklyHistogram(ws, now) {
		if b.Count != 0 {
			t.Errorf("bucket %s count = %d, want 0", b.Label, b.Count)
		}
	}
}

func TestDurationTrend(t *testing.T) {
	// Newest first, as returned by storage.
	var ws []*models.Workout
	for i := 0; i < 12; i++ {
		ws = append(ws, workoutOn(i, 100-i))
	}

	points := DurationTrend(ws)
	if len(points) != TrendLength {
		t.Fatalf("Expected %d points, got %d", TrendLength, len(points))
	}
	if points[0].Label != "W1" || points[0].Duration != 91 {
		t.Errorf("Expected W1=91, got %s=%d", points[0].Label, points[0].Duration)
	}
	if points[9].Label != "W10" || points[9].Duration != 100 {
		t.Errorf("Expected W10=100, got %s=%d", points[9].Label, points[9].Duration)
	}

	short := DurationTrend(ws[:3])
	if len(short) != 3 || short[2].Duration != 100 {
		t.Errorf("Unexpected short trend: %+v", short)
	}
	if len(DurationTrend(nil)) != 0 {
		t.Error("Expected empty trend for no workouts")
	}
}

func TestMonthlyStats(t *testing.T) {
	ws := []*models.Workout{
		{Date: "2024-03-01", Duration: 40},
		{Date: "2024-03-14", Duration: 50},
		{Date: "2024-02-29", Duration: 90},
		{Date: "2023-03-10", Duration: 90},
	}

	got := MonthlyStats(ws, now)
	want := MonthStats{Count: 2, TotalDuration: 90, AverageDuration: 45}
	if got != want {
		t.Errorf("MonthlyStats() = %+v, want %+v", got, want)
	}

	if got := MonthlyStats(nil, now); got != (MonthStats{}) {
		t.Errorf("Expected zero stats, got %+v", got)
	}
}

func TestGroupByDate(t *testing.T) {
	ws := []*models.Workout{
		{Name: "a", Date: "2024-03-10"},
		{Name: "b", Date: "2024-03-01"},
		{Name: "c", Date: "2024-03-10"},
	}

	byDate, dates := GroupByDate(ws)
	if len(dates) != 2 || dates[0] != "2024-03-01" || dates[1] != "2024-03-10" {
		t.Errorf("Unexpected dates: %v", dates)
	}
	if len(byDate["2024-03-10"]) != 2 {
		t.Errorf("Expected 2 workouts on 2024-03-10, got %d", len(byDate["2024-03-10"]))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0min"},
		{45, "45min"},
		{60, "1h 0m"},
		{95, "1h 35m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestTypeColor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Push Day", "#FF6B6B"},
		{"Back and biceps", "#4ECDC4"},
		{"LEG day", "#45B7D1"},
		{"Morning run", "#54A0FF"},
		{"Abs blast", "#FF9FF3"},
		{"Yoga", "#FECA57"},
	}
	for _, tt := range tests {
		if got := TypeColor(tt.name); got != tt.want {
			t.Errorf("TypeColor(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
