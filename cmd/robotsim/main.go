// robotsim moves a robot around a 20×20 grid scattered with obstacles.
//
// Usage:
//
//	robotsim play [--shell terminal|window]  - Steer the robot with the arrow keys
//	robotsim run <script>                    - Run a move script headlessly
//	robotsim shells                          - List available shells
//	robotsim history                         - Show recent sessions
//
// Global flags:
//
//	--config <path>  - Custom config YAML
//	--fps <rate>     - Tick rate (default from config: 60)
//	--seed <value>   - RNG seed for obstacle placement (0 = time based)
//	--db <path>      - History database (default: ~/.robotsim/history.db)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/robotsim/internal/app"

	// Import shells to register them
	_ "github.com/vovakirdan/robotsim/internal/platform/tui"
	_ "github.com/vovakirdan/robotsim/internal/platform/window"
)

const (
	envConfig = "ROBOTSIM_CONFIG"
	envDB     = "ROBOTSIM_DB"
)

var (
	// Global flags
	flagConfig    string
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagLogLevel  string
	flagLogFile   string
	flagNoHistory bool
)

func main() {
	// A missing .env is normal; variables may be set directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "robotsim",
	Short: "Robot simulator - steer a robot around obstacles on a grid",
	Long: `robotsim places a robot in the middle of a 20x20 grid with 10 randomly
placed obstacles. Arrow keys move the robot one cell; moves into an obstacle
are rejected and moves past the edge are clamped.

Available commands:
  play     - Play in the terminal or a desktop window
  run      - Run a move script without a display
  shells   - Show available shells
  history  - Show recent sessions

Examples:
  robotsim play
  robotsim play --shell window --seed 42
  robotsim run walk.rs --trace
  robotsim history --limit 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML (env "+envConfig+")")
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate in frames per second (default from config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "", "Path to history database (env "+envDB+")")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flagNoHistory, "no-history", false, "Do not record the session")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(shellsCmd)
	rootCmd.AddCommand(historyCmd)
}

// overrides collects the global flags, falling back to ROBOTSIM_* variables.
func overrides(cmd *cobra.Command) app.Overrides {
	o := app.Overrides{
		ConfigPath: flagConfig,
		TickRate:   flagFPS,
		DBPath:     flagDBPath,
		LogLevel:   flagLogLevel,
		LogFile:    flagLogFile,
		NoHistory:  flagNoHistory,
	}
	if o.ConfigPath == "" {
		o.ConfigPath = os.Getenv(envConfig)
	}
	if o.DBPath == "" {
		o.DBPath = os.Getenv(envDB)
	}
	if cmd.Flags().Changed("seed") {
		seed := flagSeed
		o.Seed = &seed
	}
	return o
}

// newApp builds the command environment. Callers defer closeApp.
func newApp(cmd *cobra.Command, interactive bool) (*app.App, error) {
	return app.New(cmd.Context(), overrides(cmd), interactive, cmd.ErrOrStderr())
}

func closeApp(a *app.App) {
	if err := a.Close(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
}
