// Package app wires configuration, logging, telemetry and session history
// around a World for the robotsim commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/robotsim/internal/config"
	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/sim"
	"github.com/vovakirdan/robotsim/internal/storage"
	"github.com/vovakirdan/robotsim/internal/telemetry"
)

// Overrides are command-line values applied on top of the loaded config.
// Zero values and nil pointers leave the config untouched.
type Overrides struct {
	ConfigPath string
	TickRate   int
	Seed       *int64
	DBPath     string
	LogLevel   string
	LogFile    string
	NoHistory  bool
}

// App is the per-command environment.
type App struct {
	Config config.Config
	Logger *log.Logger

	logFile  *os.File
	shutdown telemetry.ShutdownFunc
}

// New loads the config, applies overrides and builds the logger.
// interactive selects where logs go when no log file is set: an interactive
// shell owns the terminal, so its logs are discarded instead of written to stderr.
func New(ctx context.Context, o Overrides, interactive bool, stderr io.Writer) (*App, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg = o.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{Config: cfg}

	out := stderr
	if interactive {
		out = io.Discard
	}
	if cfg.Log.File != "" {
		f, err := openLogFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		a.logFile = f
		out = f
	}

	a.Logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "robotsim",
		Level:           cfg.LogLevel(),
	})

	shutdown, err := telemetry.Setup(ctx, telemetry.Enabled(cfg.Telemetry.Enabled))
	if err != nil {
		a.Logger.Warn("telemetry setup failed, continuing without tracing", "error", err)
	}
	a.shutdown = shutdown

	return a, nil
}

func (o Overrides) apply(cfg config.Config) config.Config {
	if o.TickRate != 0 {
		cfg.TickRate = o.TickRate
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	if o.DBPath != "" {
		cfg.History.DBPath = o.DBPath
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Log.File = o.LogFile
	}
	if o.NoHistory {
		cfg.History.Enabled = false
	}
	return cfg
}

func openLogFile(path string) (*os.File, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("app: cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("app: cannot open log file: %w", err)
	}
	return f, nil
}

// Close flushes telemetry and closes the log file.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("app: telemetry shutdown: %w", err))
		}
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("app: close log file: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Runtime builds the shell runtime config for a screen of w×h characters.
func (a *App) Runtime(w, h int, seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  w,
		ScreenH:  h,
		TickRate: a.Config.TickRate,
		Seed:     seed,
	}
}

// ResolveSeed turns a zero seed into a time-based one.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// NewWorld creates a world from the configured seed and returns the seed used.
func (a *App) NewWorld() (*sim.World, int64) {
	seed := ResolveSeed(a.Config.Seed)
	w := sim.New(rand.New(rand.NewSource(seed)))

	a.Logger.Info("world generated",
		"seed", seed,
		"robot", w.Robot(),
		"obstacles", len(w.Obstacles()),
	)
	if w.OnObstacle() {
		a.Logger.Warn("robot starts on an obstacle", "cell", w.Robot())
	}
	return w, seed
}

// Result summarizes a finished session.
type Result struct {
	Shell    string
	Seed     int64
	Robot    core.Point
	Stats    sim.Stats
	Duration time.Duration
}

// SessionFunc drives the world until the user is done.
type SessionFunc func(ctx context.Context, w *sim.World, seed int64) error

// Session creates a world, hands it to fn inside a trace span, and records
// the outcome in the history database when history is enabled.
// History failures are logged, never returned.
func (a *App) Session(ctx context.Context, shell string, fn SessionFunc) (Result, error) {
	w, seed := a.NewWorld()

	ctx, span := telemetry.Tracer("session").Start(ctx, "session",
		trace.WithAttributes(
			attribute.String("shell", shell),
			attribute.Int64("seed", seed),
			attribute.Int("obstacles", len(w.Obstacles())),
		),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx, w, seed)

	res := Result{
		Shell:    shell,
		Seed:     seed,
		Robot:    w.Robot(),
		Stats:    w.Stats(),
		Duration: time.Since(start),
	}

	span.SetAttributes(
		attribute.Int("moves.attempted", res.Stats.Attempts),
		attribute.Int("moves.applied", res.Stats.Applied),
		attribute.Int("moves.blocked", res.Stats.Blocked),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	a.Logger.Info("session finished",
		"shell", shell,
		"robot", res.Robot,
		"moves", res.Stats.Applied,
		"blocked", res.Stats.Blocked,
		"duration", res.Duration.Round(time.Millisecond),
	)
	a.record(res)
	return res, nil
}

func (a *App) record(res Result) {
	if !a.Config.History.Enabled {
		return
	}

	store, err := a.OpenHistory()
	if err != nil {
		a.Logger.Warn("could not open history database", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveSession(storage.SessionEntry{
		Shell:      res.Shell,
		Seed:       res.Seed,
		Attempts:   res.Stats.Attempts,
		Moves:      res.Stats.Applied,
		Blocked:    res.Stats.Blocked,
		FinalX:     res.Robot.X,
		FinalY:     res.Robot.Y,
		DurationMs: res.Duration.Milliseconds(),
	})
	if err != nil {
		a.Logger.Warn("could not save session", "error", err)
		return
	}
	a.Logger.Debug("session saved", "id", id)
}

// OpenHistory opens the configured history database.
func (a *App) OpenHistory() (*storage.Store, error) {
	return storage.Open(a.Config.History.DBPath)
}
