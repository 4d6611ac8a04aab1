// Package config provides YAML-based configuration loading for the robot simulator.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/sim"
)

// Config is the full robotsim configuration.
type Config struct {
	TickRate  int             `yaml:"tick_rate"`
	Seed      int64           `yaml:"seed"`
	Theme     ThemeConfig     `yaml:"theme"`
	Window    WindowConfig    `yaml:"window"`
	Log       LogConfig       `yaml:"log"`
	History   HistoryConfig   `yaml:"history"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ThemeConfig holds the look of both shells.
type ThemeConfig struct {
	Terminal TerminalTheme `yaml:"terminal"`
	Window   WindowTheme   `yaml:"window"`
}

// TerminalTheme styles cells in the terminal shell.
type TerminalTheme struct {
	Grid     CellConfig `yaml:"grid"`
	Obstacle CellConfig `yaml:"obstacle"`
	Robot    CellConfig `yaml:"robot"`
}

// CellConfig is a glyph and a named color.
type CellConfig struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// WindowTheme holds hex fill colors for the window shell.
type WindowTheme struct {
	Background string `yaml:"background"`
	Grid       string `yaml:"grid"`
	Obstacle   string `yaml:"obstacle"`
	Robot      string `yaml:"robot"`
}

// WindowConfig defines window shell parameters.
type WindowConfig struct {
	Title string `yaml:"title"`
}

// LogConfig defines logger output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty = stderr for commands, discarded while a terminal shell runs
}

// HistoryConfig defines the session history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// TelemetryConfig toggles OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Validate checks that every field holds a usable value.
// All problems are reported together.
func (c Config) Validate() error {
	var errs []error

	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.TickRate))
	}

	if _, err := c.TerminalTheme(); err != nil {
		errs = append(errs, err)
	}

	window := c.Theme.Window
	for _, field := range []struct{ name, hex string }{
		{"background", window.Background},
		{"grid", window.Grid},
		{"obstacle", window.Obstacle},
		{"robot", window.Robot},
	} {
		if _, err := colorful.Hex(field.hex); err != nil {
			errs = append(errs, fmt.Errorf("theme.window.%s: invalid hex color %q", field.name, field.hex))
		}
	}

	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}

	if c.History.Enabled && c.History.DBPath == "" {
		errs = append(errs, errors.New("history.db_path is required when history is enabled"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// TerminalTheme converts the terminal section to a render theme.
func (c Config) TerminalTheme() (sim.Theme, error) {
	grid, err := c.Theme.Terminal.Grid.style("grid")
	if err != nil {
		return sim.Theme{}, err
	}
	obstacle, err := c.Theme.Terminal.Obstacle.style("obstacle")
	if err != nil {
		return sim.Theme{}, err
	}
	robot, err := c.Theme.Terminal.Robot.style("robot")
	if err != nil {
		return sim.Theme{}, err
	}
	return sim.Theme{Grid: grid, Obstacle: obstacle, Robot: robot}, nil
}

func (cc CellConfig) style(name string) (sim.CellStyle, error) {
	if utf8.RuneCountInString(cc.Glyph) != 1 {
		return sim.CellStyle{}, fmt.Errorf("theme.terminal.%s.glyph must be a single character, got %q", name, cc.Glyph)
	}
	color, err := core.ParseColor(cc.Color)
	if err != nil {
		return sim.CellStyle{}, fmt.Errorf("theme.terminal.%s.color: %w", name, err)
	}
	glyph, _ := utf8.DecodeRuneInString(cc.Glyph)
	return sim.CellStyle{Glyph: glyph, Color: color}, nil
}

// LogLevel returns the configured level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
