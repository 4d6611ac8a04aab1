package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/robotsim/internal/registry"
)

var shellsCmd = &cobra.Command{
	Use:   "shells",
	Short: "List available shells",
	Long:  `Shows every presentation shell that 'robotsim play --shell' accepts.`,
	Args:  cobra.NoArgs,
	Run:   runShells,
}

func runShells(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	shells := registry.List()

	if len(shells) == 0 {
		fmt.Fprintln(out, "No shells available.")
		return
	}

	fmt.Fprintln(out, "Available shells:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, s := range shells {
		maxNameLen = max(maxNameLen, len(s.Name))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxNameLen, "Name", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxNameLen, "----", "-----")

	for _, s := range shells {
		fmt.Fprintf(out, "  %-*s  %s\n", maxNameLen, s.Name, s.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'robotsim play --shell <name>' to start a session.")
}
