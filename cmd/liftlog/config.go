// ABOUTME: CLI commands for viewing and changing liftlog settings.
// ABOUTME: Shows the effective config and persists single keys.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View and change settings",
	Annotations: map[string]string{skipStorage: "true"},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		fmt.Printf("%s %s\n", faint.Sprint("config file:"), config.GetConfigPath())
		fmt.Printf("%s %s\n", padRight("backend", 11), cfg.GetBackend())
		fmt.Printf("%s %s\n", padRight("data_dir", 11), cfg.GetDataDir())
		fmt.Printf("%s %t\n", padRight("kv_sync", 11), cfg.KVSync)
		if cfg.CharmHost != "" {
			fmt.Printf("%s %s\n", padRight("charm_host", 11), cfg.CharmHost)
		}
		fmt.Printf("%s %s\n", padRight("log_level", 11), cfg.LogLevel)
		fmt.Printf("%s %s\n", padRight("log_file", 11), cfg.GetLogFile())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save it to the config file.

KEYS:

  ` + strings.Join(config.Keys, ", ") + `

EXAMPLES:

  liftlog config set backend sqlite
  liftlog config set data_dir ~/Dropbox/liftlog
  liftlog config set kv_sync true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Reload so --backend and --data-dir overrides are not saved.
		fileCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := fileCfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		color.Green("✓ Set %s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
