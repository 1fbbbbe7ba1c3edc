// ABOUTME: CLI command for copying workouts between storage backends.
// ABOUTME: Typically moves data from the key-value fallback into SQLite.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/config"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy workouts from one backend to another",
	Long: `Copy all workouts from one storage backend to another.

When SQLite could not be opened, liftlog keeps workouts in its key-value
store. Once SQLite works again, move them over:

  liftlog migrate --from kv --to sqlite --dry-run   # Preview
  liftlog migrate --from kv --to sqlite             # Copy

Exercise detail is copied when both backends store it. Workouts are added to
the destination; run with --force if it already has workouts.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		if migrateFrom == migrateTo {
			return fmt.Errorf("--from and --to must differ")
		}

		exists, err := backendHasData(cfg, migrateFrom)
		if err != nil {
			return err
		}
		if !exists {
			color.Yellow("No %s data found in %s, nothing to migrate.", migrateFrom, cfg.GetDataDir())
			return nil
		}

		src, err := openBackend(ctx, migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer func() { err = multierr.Append(err, src.Close()) }()

		srcStats, err := src.GetWorkoutStats(ctx)
		if err != nil {
			return fmt.Errorf("failed to read source: %w", err)
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Printf("Would copy %d workouts from %s to %s\n", srcStats.TotalWorkouts, migrateFrom, migrateTo)
			return nil
		}

		dst, err := openBackend(ctx, migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer func() { err = multierr.Append(err, dst.Close()) }()

		dstStats, err := dst.GetWorkoutStats(ctx)
		if err != nil {
			return fmt.Errorf("failed to read destination: %w", err)
		}
		if dstStats.TotalWorkouts > 0 && !migrateForce {
			return fmt.Errorf("%s already has %d workouts (use --force to add to them)", migrateTo, dstStats.TotalWorkouts)
		}

		summary, err := storage.MigrateData(ctx, src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Copied %d workouts with %d exercises from %s to %s",
			summary.Workouts, summary.WorkoutExercises, migrateFrom, migrateTo)
		if summary.Skipped > 0 {
			color.Yellow("⚠ Skipped %d exercise entries the destination cannot store", summary.Skipped)
		}
		return nil
	},
}

// openBackend opens one named backend using the loaded config's locations.
func openBackend(ctx context.Context, name string) (storage.Backend, error) {
	c := *cfg
	if err := c.Set("backend", name); err != nil {
		return nil, err
	}
	if name == config.BackendAuto {
		return nil, fmt.Errorf("migrate needs an explicit backend (sqlite or kv)")
	}
	return c.OpenStorage(ctx)
}

// backendHasData reports whether the named backend has been created on disk.
// Synced key-value data lives in Charm and is assumed present.
func backendHasData(c *config.Config, name string) (bool, error) {
	switch name {
	case config.BackendSQLite:
		_, err := os.Stat(filepath.Join(c.GetDataDir(), "liftlog.db"))
		if os.IsNotExist(err) {
			return false, nil
		}
		return err == nil, err
	case config.BackendKV:
		if c.KVSync {
			return true, nil
		}
		return storage.IsDirNonEmpty(filepath.Join(c.GetDataDir(), "kv"))
	default:
		return false, fmt.Errorf("invalid backend %q (want sqlite or kv)", name)
	}
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendKV, "source backend (sqlite or kv)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendSQLite, "destination backend (sqlite or kv)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "add to a destination that already has workouts")
	rootCmd.AddCommand(migrateCmd)
}
