// ABOUTME: CLI commands for browsing the exercise catalog.
// ABOUTME: Lists exercises grouped by category and the categories themselves.
package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/workout"
	"github.com/spf13/cobra"
)

var exercisesCategory string

var exercisesCmd = &cobra.Command{
	Use:     "exercises",
	Aliases: []string{"ex"},
	Short:   "List exercises by category",
	Long: `List the exercise catalog grouped by category.

Examples:
  liftlog exercises
  liftlog exercises --category Legs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := repo.GetExercises(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		grouped := workout.GroupByCategory(exercises)
		names := make([]string, 0, len(grouped))
		for name := range grouped {
			if exercisesCategory == "" || name == exercisesCategory {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		if len(names) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		for _, name := range names {
			bold.Println(name)
			for _, e := range grouped[name] {
				fmt.Printf("  %s %s\n", padRight(e.Name, 18), faint.Sprintf("%s · %s", e.MuscleGroups, e.Equipment))
			}
		}
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List exercise categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := repo.GetExerciseCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		faint := color.New(color.Faint)
		for _, c := range categories {
			fmt.Printf("%s %s %s\n", c.Icon, padRight(c.Name, 12), faint.Sprint(c.Color))
		}
		return nil
	},
}

func init() {
	exercisesCmd.Flags().StringVarP(&exercisesCategory, "category", "c", "", "only show this category")

	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(categoriesCmd)
}
