// ABOUTME: Root Cobra command for liftlog CLI.
// ABOUTME: Loads config, sets up logging, and owns the storage backend lifecycle.
package main

import (
	"fmt"
	"io"

	"github.com/harperreed/liftlog/internal/config"
	"github.com/harperreed/liftlog/internal/logging"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/harperreed/liftlog/internal/workout"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// skipStorage marks commands that manage storage themselves or need none.
const skipStorage = "skip-storage"

var (
	cfg       *config.Config
	backend   storage.Backend
	repo      *workout.Repository
	logCloser io.Closer

	backendFlag string
	dataDirFlag string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "liftlog",
	Short: "Local-first workout logger",
	Long: `Liftlog records strength and cardio workouts with their exercises and sets.

QUICK START:

  $ liftlog workout log Push --start 18:00 --end 18:50 \
      --exercise "Bench Press=10x60,8x62.5" --exercise "Push-ups=20,15"
  $ liftlog workout list                 # Recent workouts
  $ liftlog workout track "Leg Day"      # Record a workout set by set
  $ liftlog stats                        # Totals and this week
  $ liftlog progress                     # Weekly histogram and duration trend
  $ liftlog calendar                     # Workouts by date

STORAGE:

  Workouts live in SQLite at ~/.local/share/liftlog/liftlog.db. When SQLite
  cannot be opened, liftlog falls back to a key-value store that keeps
  workouts but not their exercises. Set kv_sync to keep the key-value store
  in Charm Cloud.

  $ liftlog config set backend kv
  $ liftlog migrate --from kv --to sqlite

MCP INTEGRATION:

  Run 'liftlog mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "liftlog": { "command": "liftlog", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if backendFlag != "" {
			if err := cfg.Set("backend", backendFlag); err != nil {
				return err
			}
		}
		if dataDirFlag != "" {
			cfg.DataDir = dataDirFlag
		}

		logCloser = logging.Setup(logging.SetupParams{
			LogFileName: cfg.GetLogFile(),
			LogLevel:    cfg.LogLevel,
			LogToStderr: verbose,
		})
		log.WithField("command", cmd.CommandPath()).Debug("running command")

		if !needsStorage(cmd) {
			return nil
		}

		backend, err = cfg.OpenStorage(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		repo = workout.NewRepository(backend)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if backend != nil {
			err = multierr.Append(err, backend.Close())
			backend, repo = nil, nil
		}
		if logCloser != nil {
			err = multierr.Append(err, logCloser.Close())
			logCloser = nil
		}
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func needsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipStorage] == "true" {
			return false
		}
	}
	return cmd.Name() != "help"
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: auto, sqlite, or kv (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also write logs to stderr")
}
