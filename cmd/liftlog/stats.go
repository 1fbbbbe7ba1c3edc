// ABOUTME: CLI commands for workout summaries.
// ABOUTME: Renders the home, progress, and calendar views as text.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/dashboard"
	"github.com/harperreed/liftlog/internal/progress"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workout totals and recent workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		view := dashboard.NewService(repo).Home(cmd.Context())

		bold := color.New(color.Bold)
		fmt.Printf("%s %d\n", bold.Sprint("Total workouts:"), view.Stats.TotalWorkouts)
		fmt.Printf("%s %d\n", bold.Sprint("This week:     "), view.Stats.WeeklyWorkouts)

		if len(view.Recent) > 0 {
			fmt.Println()
			bold.Println("Recent")
			printWorkoutList(view.Recent)
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show weekly workouts and duration trend",
	RunE: func(cmd *cobra.Command, args []string) error {
		view := dashboard.NewService(repo).Progress(cmd.Context())

		bold := color.New(color.Bold)
		s := view.Summary
		fmt.Printf("%s %d workouts, %d this week\n", bold.Sprint("Last workouts:"), s.TotalWorkouts, s.WeeklyWorkouts)
		fmt.Printf("%s %s total, %s average\n", bold.Sprint("Time:         "),
			progress.FormatDuration(s.TotalDuration), progress.FormatDuration(s.AverageDuration))

		fmt.Println()
		bold.Println("Workouts per week")
		bar := color.New(color.FgGreen)
		for _, b := range view.Weekly {
			fmt.Printf("  %s %s %d\n", padRight(b.Label, 5), bar.Sprint(strings.Repeat("█", b.Count)), b.Count)
		}

		if len(view.Trend) > 0 {
			fmt.Println()
			bold.Println("Duration trend")
			for _, p := range view.Trend {
				fmt.Printf("  %s %s\n", padRight(p.Label, 4), progress.FormatDuration(p.Duration))
			}
		}
		return nil
	},
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show workouts by date around this month",
	RunE: func(cmd *cobra.Command, args []string) error {
		view := dashboard.NewService(repo).Calendar(cmd.Context())

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		fmt.Println(faint.Sprintf("%s to %s", view.Start, view.End))

		if len(view.Dates) == 0 {
			fmt.Println("No workouts found.")
		}
		for _, date := range view.Dates {
			fmt.Println(bold.Sprint(date))
			for _, w := range view.ByDate[date] {
				fmt.Printf("  %s %s\n", typeColor(w.Name).Sprint(padRight(w.Name, 20)), progress.FormatDuration(w.Duration))
			}
		}

		m := view.Month
		fmt.Println()
		fmt.Printf("%s %d workouts, %s total, %s average\n", bold.Sprint("This month:"),
			m.Count, progress.FormatDuration(m.TotalDuration), progress.FormatDuration(m.AverageDuration))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(calendarCmd)
}
