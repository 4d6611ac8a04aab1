package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/robotsim/internal/registry"
	"github.com/vovakirdan/robotsim/internal/sim"
)

var flagShell string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Steer the robot interactively",
	Long: `Start an interactive session in the chosen shell.

Controls:
  Arrow keys    - Move one cell
  Q/Esc/Ctrl+C  - Quit (terminal)
  Esc           - Quit (window)

Every other key is ignored.

Examples:
  robotsim play
  robotsim play --shell window
  robotsim play --seed 42 --fps 30`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagShell, "shell", "terminal", "Shell to play in (see 'robotsim shells')")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !registry.Exists(flagShell) {
		return fmt.Errorf("unknown shell %q, run 'robotsim shells' to see available shells", flagShell)
	}

	shell, err := registry.Create(flagShell)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, shell.Interactive())
	if err != nil {
		return err
	}
	defer closeApp(a)

	// Get terminal size for the runtime config
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	res, err := a.Session(cmd.Context(), shell.Name(), func(ctx context.Context, w *sim.World, seed int64) error {
		return shell.Run(ctx, w, registry.Options{
			Runtime: a.Runtime(width, height, seed),
			Config:  a.Config,
			Logger:  a.Logger,
		})
	})
	if err != nil {
		return fmt.Errorf("running %s shell: %w", shell.Name(), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Robot finished at %s after %d moves (%d blocked).\n",
		res.Robot, res.Stats.Applied, res.Stats.Blocked)
	return nil
}
