package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/script"
	"github.com/vovakirdan/robotsim/internal/sim"
)

var flagTrace bool

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a move script without a display",
	Long: `Parse a move script and apply it to a fresh world, then print the final grid.

Script syntax:
  up | down | left | right [N]   - move N cells (default 1), ';' optional
  repeat N { ... }               - repeat a block
  // comment

Examples:
  robotsim run walk.rs
  robotsim run walk.rs --trace --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print the robot position after every move")
}

func runScript(cmd *cobra.Command, args []string) error {
	s, err := script.ParseFile(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer closeApp(a)

	out := cmd.OutOrStdout()

	var steps int
	res, err := a.Session(cmd.Context(), "script", func(_ context.Context, w *sim.World, _ int64) error {
		var observe script.StepFunc
		if flagTrace {
			fmt.Fprintf(out, "%s: %d steps\n", args[0], s.Len())
			observe = func(i int, act core.Action, robot core.Point) {
				fmt.Fprintf(out, "%4d  %-5s  %s\n", i+1, act, robot)
			}
		}
		steps = s.Exec(w, observe)
		fmt.Fprint(out, sim.RenderASCII(w.Snapshot()))
		return nil
	})
	if err != nil {
		return err
	}

	a.Logger.Debug("script done", "path", args[0], "steps", steps)
	fmt.Fprintf(out, "Final position: %s (seed %d, %d steps)\n", res.Robot, res.Seed, steps)
	return nil
}
