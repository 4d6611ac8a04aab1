package app

import (
	"fmt"
	"io"
	"time"

	"github.com/vovakirdan/robotsim/internal/storage"
)

// HistoryReader is the read side of the session history store.
type HistoryReader interface {
	RecentSessions(shell string, limit int) ([]storage.SessionEntry, error)
	Stats(shell string) (*storage.ShellStats, error)
}

// WriteHistory prints the most recent sessions as a table. With a shell
// filter it also prints that shell's totals.
func WriteHistory(out io.Writer, r HistoryReader, shell string, limit int) error {
	sessions, err := r.RecentSessions(shell, limit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'robotsim play' to start one.")
		return nil
	}

	fmt.Fprintln(out, "Recent sessions")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  %-16s  %-8s  %-6s  %-7s  %-8s  %-8s  %s\n",
		"Date", "Shell", "Moves", "Blocked", "Final", "Duration", "Seed")
	fmt.Fprintf(out, "  %-16s  %-8s  %-6s  %-7s  %-8s  %-8s  %s\n",
		"----", "-----", "-----", "-------", "-----", "--------", "----")

	for _, e := range sessions {
		fmt.Fprintf(out, "  %-16s  %-8s  %-6d  %-7d  %-8s  %-8s  %d\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Shell,
			e.Moves,
			e.Blocked,
			fmt.Sprintf("(%d,%d)", e.FinalX, e.FinalY),
			e.Duration().Round(100*time.Millisecond).String(),
			e.Seed,
		)
	}

	if shell == "" {
		return nil
	}
	stats, err := r.Stats(shell)
	if err != nil {
		return fmt.Errorf("history totals for %s: %w", shell, err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total: %d sessions, %d moves, %d blocked\n",
		stats.Sessions, stats.TotalMoves, stats.TotalBlocked)
	return nil
}
