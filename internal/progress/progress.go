// ABOUTME: Pure aggregations over already-fetched workouts for progress views.
// ABOUTME: Totals, weekly histogram, duration trend, monthly stats, and calendar grouping.
package progress

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/liftlog/internal/models"
)

const (
	// HistogramWeeks is the number of weekly buckets in WeeklyHistogram.
	HistogramWeeks = 8
	// TrendLength is the maximum number of points in DurationTrend.
	TrendLength = 10
)

// Summary holds headline numbers for a list of workouts.
type Summary struct {
	TotalWorkouts   int `json:"total_workouts"`
	WeeklyWorkouts  int `json:"weekly_workouts"`
	TotalDuration   int `json:"total_duration"`
	AverageDuration int `json:"average_duration"`
}

// Bucket is one week of the workouts-per-week histogram.
type Bucket struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Count int       `json:"count"`
}

// Point is one labelled value of the duration trend.
type Point struct {
	Label    string `json:"label"`
	Duration int    `json:"duration"`
}

// MonthStats summarizes the workouts of one calendar month.
type MonthStats struct {
	Count           int `json:"count"`
	TotalDuration   int `json:"total_duration"`
	AverageDuration int `json:"average_duration"`
}

// Summarize counts workouts, those dated within the last 7 days, and their durations.
func Summarize(ws []*models.Workout, now time.Time) Summary {
	cutoff := models.DateOf(now.AddDate(0, 0, -7))

	var s Summary
	for _, w := range ws {
		s.TotalWorkouts++
		s.TotalDuration += w.Duration
		if w.Date != "" && w.Date >= cutoff {
			s.WeeklyWorkouts++
		}
	}
	s.AverageDuration = average(s.TotalDuration, s.TotalWorkouts)
	return s
}

// WeeklyHistogram returns HistogramWeeks buckets, oldest first. Bucket i
// (counting back from the newest) spans [today-7i, today-7i+6] in whole days.
func WeeklyHistogram(ws []*models.Workout, now time.Time) []Bucket {
	today := models.StartOfDay(now)

	buckets := make([]Bucket, 0, HistogramWeeks)
	for i := HistogramWeeks - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -7*i)
		last := start.AddDate(0, 0, 6)
		from, to := models.DateOf(start), models.DateOf(last)

		b := Bucket{
			Label: fmt.Sprintf("%d/%d", int(start.Month()), start.Day()),
			Start: start,
			End:   last.Add(24*time.Hour - time.Nanosecond),
		}
		for _, w := range ws {
			if w.Date >= from && w.Date <= to {
				b.Count++
			}
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// DurationTrend takes the first TrendLength workouts (expected newest first),
// reverses them into chronological order, and labels them W1..Wn.
func DurationTrend(ws []*models.Workout) []Point {
	n := min(len(ws), TrendLength)

	points := make([]Point, 0, n)
	for i := n - 1; i >= 0; i-- {
		points = append(points, Point{
			Label:    fmt.Sprintf("W%d", len(points)+1),
			Duration: ws[i].Duration,
		})
	}
	return points
}

// MonthlyStats aggregates workouts dated in the calendar month of now.
func MonthlyStats(ws []*models.Workout, now time.Time) MonthStats {
	prefix := now.Format("2006-01-")

	var m MonthStats
	for _, w := range ws {
		if strings.HasPrefix(w.Date, prefix) {
			m.Count++
			m.TotalDuration += w.Duration
		}
	}
	m.AverageDuration = average(m.TotalDuration, m.Count)
	return m
}

// GroupByDate buckets workouts by date and returns the dates in ascending order.
func GroupByDate(ws []*models.Workout) (map[string][]*models.Workout, []string) {
	byDate := make(map[string][]*models.Workout)
	for _, w := range ws {
		byDate[w.Date] = append(byDate[w.Date], w)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return byDate, dates
}

// FormatDuration renders minutes as "45min" or "1h 5m".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0min"
	}
	hours, mins := minutes/60, minutes%60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dmin", mins)
}

// TypeColor picks a display color from keywords in a workout name.
func TypeColor(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "push"), strings.Contains(n, "chest"):
		return "#FF6B6B"
	case strings.Contains(n, "pull"), strings.Contains(n, "back"):
		return "#4ECDC4"
	case strings.Contains(n, "leg"), strings.Contains(n, "squat"):
		return "#45B7D1"
	case strings.Contains(n, "cardio"), strings.Contains(n, "run"):
		return "#54A0FF"
	case strings.Contains(n, "core"), strings.Contains(n, "abs"):
		return "#FF9FF3"
	default:
		return "#FECA57"
	}
}

func average(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}
