// ABOUTME: Integration tests for liftlog CLI.
// ABOUTME: Builds the binary and runs a full logging, export, and migration workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var idPattern = regexp.MustCompile(`ID: (\d+)`)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "liftlog")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/liftlog")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	// Isolate config, logs, and data
	home := t.TempDir()
	dataDir := filepath.Join(home, "data")
	env := append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(home, "config"),
		"XDG_STATE_HOME="+filepath.Join(home, "state"),
		"NO_COLOR=1",
	)

	runWithInput := func(stdin string, args ...string) (string, error) {
		fullArgs := append([]string{"--data-dir", dataDir}, args...)
		cmd := exec.Command(binary, fullArgs...)
		cmd.Env = env
		cmd.Dir = home
		cmd.Stdin = strings.NewReader(stdin)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}
	run := func(args ...string) (string, error) {
		return runWithInput("", args...)
	}
	mustRun := func(want string, args ...string) string {
		t.Helper()
		output, err := run(args...)
		if err != nil {
			t.Fatalf("liftlog %s failed: %v\n%s", strings.Join(args, " "), err, output)
		}
		if want != "" && !strings.Contains(output, want) {
			t.Errorf("liftlog %s: expected %q in output, got:\n%s", strings.Join(args, " "), want, output)
		}
		return output
	}

	// Log a workout with exercise detail
	output := mustRun("Logged Push", "workout", "log", "Push", "--date", "2024-06-03",
		"--start", "18:00", "--end", "18:45",
		"--exercise", "Bench Press=10x60,8x62.5", "--exercise", "push-ups=20")
	if !strings.Contains(output, "45min") {
		t.Errorf("Expected computed duration in output, got:\n%s", output)
	}
	match := idPattern.FindStringSubmatch(output)
	if match == nil {
		t.Fatalf("No workout ID in output:\n%s", output)
	}
	pushID := match[1]

	mustRun("Push", "workout", "list")
	output = mustRun("Bench Press", "workout", "show", pushID)
	if !strings.Contains(output, "8 x 62.5") {
		t.Errorf("Expected set detail in show output, got:\n%s", output)
	}
	mustRun("Added Pull-ups", "workout", "add-exercise", pushID, "Pull-ups", "8,6")
	mustRun("Pull-ups", "workout", "show", pushID)
	mustRun("Push", "workout", "range", "2024-06-01", "2024-06-30")

	// Record a workout set by set
	output, err := runWithInput("add squats\nset 1 1 5x100\ndone 1 1\nfinish felt strong\n",
		"workout", "track", "Leg Day")
	if err != nil {
		t.Fatalf("workout track failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Saved Leg Day") {
		t.Errorf("Expected 'Saved Leg Day' in output, got:\n%s", output)
	}

	// Catalog and summaries
	mustRun("Squats", "exercises", "--category", "Legs")
	mustRun("Chest", "categories")
	mustRun("Total workouts: 2", "stats")
	mustRun("Workouts per week", "progress")
	mustRun("This month:", "calendar")

	// Export, clear, import
	backup := filepath.Join(home, "backup.json")
	mustRun("Exported", "export", "json", "-o", backup)
	mustRun("| Push |", "export", "markdown")
	mustRun("Deleted all workouts", "clear", "--yes")
	mustRun("Total workouts: 0", "stats")
	mustRun("Imported 2 workouts with 4 exercises", "import", backup)

	// The key-value backend keeps workouts but not their exercises
	mustRun("not saved", "--backend", "kv", "workout", "log", "Run", "--duration", "30",
		"--exercise", "Running=1")
	mustRun("Would copy 1 workouts", "migrate", "--from", "kv", "--to", "sqlite", "--dry-run")
	if output, err := run("migrate", "--from", "kv", "--to", "sqlite"); err == nil {
		t.Errorf("Expected migrate into a non-empty database to fail, got:\n%s", output)
	}
	mustRun("Copied 1 workouts", "migrate", "--from", "kv", "--to", "sqlite", "--force")
	mustRun("Total workouts: 3", "stats")

	// Config
	mustRun("Set backend = kv", "config", "set", "backend", "kv")
	mustRun("kv", "config", "show")
	mustRun("Total workouts: 1", "stats")
}
