package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robotsim/internal/app"
)

var (
	flagHistoryLimit int
	flagHistoryShell string
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions",
	Long: `Display the most recent recorded sessions, newest first.

Examples:
  robotsim history
  robotsim history --shell terminal --limit 5
  robotsim history --clear --shell script`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to show")
	historyCmd.Flags().StringVar(&flagHistoryShell, "shell", "", "Only sessions from this shell (terminal, window, script)")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded sessions (filtered by --shell)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer closeApp(a)

	store, err := a.OpenHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagHistoryClear {
		if err := store.ClearSessions(flagHistoryShell); err != nil {
			return err
		}
		fmt.Fprintln(out, "History cleared.")
		return nil
	}

	return app.WriteHistory(out, store, flagHistoryShell, flagHistoryLimit)
}
