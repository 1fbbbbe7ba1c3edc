// ABOUTME: CLI command for deleting all logged workouts.
// ABOUTME: Keeps the exercise catalog and asks for confirmation first.
package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all workouts",
	Long: `Delete every logged workout and its exercises.

The exercise catalog is kept. Export first if you may want the data back:

  liftlog export json -o backup.json
  liftlog clear`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			fmt.Fprint(cmd.OutOrStdout(), "Delete all workouts? Type 'yes' to confirm: ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.TrimSpace(strings.ToLower(line)) != "yes" {
				color.Yellow("Aborted.")
				return nil
			}
		}

		if err := repo.ClearAllData(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}

		color.Green("✓ Deleted all workouts")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(clearCmd)
}
