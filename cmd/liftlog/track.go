// ABOUTME: Interactive command for recording a workout set by set.
// ABOUTME: Reads tracker commands from stdin and saves the session on finish.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/progress"
	"github.com/harperreed/liftlog/internal/workout"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const trackerHelp = `Commands (exercise and set numbers start at 1):
  add <exercise>              add an exercise with one empty set
  set <ex> <set> <reps>[x<w>] record reps and weight for a set
  more <ex>                   add a set to an exercise
  done <ex> <set>             mark a set completed (again to undo)
  drop <ex> [set]             remove a set, or the whole exercise
  status                      show the session
  finish [notes]              save the workout
  quit                        discard the workout`

var workoutTrackCmd = &cobra.Command{
	Use:   "track <name>",
	Short: "Record a workout set by set",
	Long: `Start a workout and record it set by set as you train.

The workout starts now and its duration is taken when you finish.

` + trackerHelp,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		session, err := workout.NewSession(args[0], time.Now())
		if err != nil {
			return err
		}
		catalog, err := repo.GetExercises(ctx)
		if err != nil {
			return fmt.Errorf("failed to load exercises: %w", err)
		}

		log.WithFields(log.Fields{"session": session.ID, "name": session.Name}).Info("workout session started")

		t := &tracker{session: session, catalog: catalog, out: cmd.OutOrStdout(), now: time.Now}
		finished, notes, err := t.run(cmd.InOrStdin())
		if err != nil {
			return err
		}
		if !finished {
			log.WithField("session", session.ID).Info("workout session discarded")
			color.Yellow("Workout discarded.")
			return nil
		}

		w, entries := session.Finish(time.Now(), notes)
		result, err := repo.LogWorkout(ctx, w, entries)
		if err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}

		log.WithFields(log.Fields{"session": session.ID, "workout_id": result.ID}).Info("workout session saved")
		color.Green("✓ Saved %s (%s, %d sets)", w.Name, progress.FormatDuration(w.Duration), session.TotalSets())
		fmt.Printf("  ID: %d\n", result.ID)
		if result.DetailDropped {
			color.Yellow("⚠ The key-value backend keeps workouts only; exercises were not saved")
		}
		return nil
	},
}

// tracker drives a session from line-based commands.
type tracker struct {
	session *workout.Session
	catalog []*models.Exercise
	out     io.Writer
	now     func() time.Time
}

// run reads commands until finish, quit, or end of input. It reports whether
// the session should be saved and the notes given to finish.
func (t *tracker) run(in io.Reader) (bool, string, error) {
	fmt.Fprintf(t.out, "Started %s. Type 'help' for commands.\n", t.session.Name)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(t.out, "[%s] > ", workout.FormatElapsed(t.session.Elapsed(t.now())))
		if !scanner.Scan() {
			fmt.Fprintln(t.out)
			return false, "", scanner.Err()
		}

		cmd, rest, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		rest = strings.TrimSpace(rest)

		var err error
		switch strings.ToLower(cmd) {
		case "":
			continue
		case "help":
			fmt.Fprintln(t.out, trackerHelp)
		case "add":
			err = t.add(rest)
		case "set":
			err = t.set(rest)
		case "more":
			err = t.more(rest)
		case "done":
			err = t.done(rest)
		case "drop":
			err = t.drop(rest)
		case "status":
			t.status()
		case "finish":
			return true, rest, nil
		case "quit":
			return false, "", nil
		default:
			err = fmt.Errorf("unknown command %q", cmd)
		}
		if err != nil {
			fmt.Fprintf(t.out, "error: %v\n", err)
		}
	}
}

func (t *tracker) add(name string) error {
	e, err := workout.FindExercise(t.catalog, name)
	if err != nil {
		return err
	}
	i := t.session.AddExercise(e.ID, e.Name)
	fmt.Fprintf(t.out, "#%d %s\n", i+1, e.Name)
	return nil
}

func (t *tracker) set(args string) error {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return fmt.Errorf("usage: set <ex> <set> <reps>[x<weight>]")
	}
	ei, si, err := indexes(fields[:2])
	if err != nil {
		return err
	}
	sets, err := workout.ParseSetSpec(fields[2])
	if err != nil || len(sets) != 1 {
		return fmt.Errorf("invalid set %q", fields[2])
	}
	return t.session.UpdateSet(ei, si, sets[0].Reps, sets[0].Weight)
}

func (t *tracker) more(args string) error {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return fmt.Errorf("usage: more <ex>")
	}
	ei, _, err := indexes(fields)
	if err != nil {
		return err
	}
	si, err := t.session.AddSet(ei)
	if err != nil {
		return err
	}
	fmt.Fprintf(t.out, "set %d added\n", si+1)
	return nil
}

func (t *tracker) done(args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return fmt.Errorf("usage: done <ex> <set>")
	}
	ei, si, err := indexes(fields)
	if err != nil {
		return err
	}
	return t.session.ToggleSet(ei, si)
}

func (t *tracker) drop(args string) error {
	fields := strings.Fields(args)
	switch len(fields) {
	case 1:
		ei, _, err := indexes(fields)
		if err != nil {
			return err
		}
		return t.session.RemoveExercise(ei)
	case 2:
		ei, si, err := indexes(fields)
		if err != nil {
			return err
		}
		return t.session.RemoveSet(ei, si)
	default:
		return fmt.Errorf("usage: drop <ex> [set]")
	}
}

func (t *tracker) status() {
	fmt.Fprintf(t.out, "%s, %s elapsed, %d sets\n",
		t.session.Name, workout.FormatElapsed(t.session.Elapsed(t.now())), t.session.TotalSets())
	for i, e := range t.session.Exercises {
		fmt.Fprintf(t.out, "#%d %s\n", i+1, e.Name)
		for j, s := range e.Sets {
			mark := " "
			if s.Completed {
				mark = "✓"
			}
			fmt.Fprintf(t.out, "  %s %d. %s\n", mark, j+1, formatSet(s))
		}
	}
}

// indexes converts one or two 1-based numbers to zero-based indexes.
func indexes(fields []string) (int, int, error) {
	if len(fields) == 0 || len(fields) > 2 {
		return 0, 0, fmt.Errorf("expected an exercise number and optionally a set number")
	}
	out := make([]int, 2)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			return 0, 0, fmt.Errorf("invalid number %q", f)
		}
		out[i] = n - 1
	}
	return out[0], out[1], nil
}

func init() {
	workoutCmd.AddCommand(workoutTrackCmd)
}
