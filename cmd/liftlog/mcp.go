// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/liftlog/internal/mcp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to the log file only.

CONFIGURATION:

  {
    "mcpServers": {
      "liftlog": {
        "command": "liftlog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_workout        Save a workout with exercises and sets
  list_workouts      List recent workouts
  get_workout        Get a workout with its exercises and sets
  workouts_in_range  List workouts between two dates
  list_exercises     List the exercise catalog
  list_categories    List exercise categories
  workout_stats      Total and this-week counts
  clear_all_data     Delete all workouts (requires confirm)

AVAILABLE RESOURCES:

  liftlog://recent    Counts and recent workouts
  liftlog://progress  Weekly histogram and duration trend
  liftlog://calendar  Workouts by date and this month's totals`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(backend)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		log.WithField("backend", cfg.GetBackend()).Info("mcp server starting")
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
