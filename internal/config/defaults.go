package config

import (
	_ "embed"
)

//go:embed defaults/robotsim.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/robotsim.yaml
// and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		TickRate: 60,
		Seed:     0,
		Theme: ThemeConfig{
			Terminal: TerminalTheme{
				Grid:     CellConfig{Glyph: "·", Color: "gray"},
				Obstacle: CellConfig{Glyph: "█", Color: "red"},
				Robot:    CellConfig{Glyph: "@", Color: "blue"},
			},
			Window: WindowTheme{
				Background: "#ffffff",
				Grid:       "#cccccc",
				Obstacle:   "#ff0000",
				Robot:      "#0000ff",
			},
		},
		Window: WindowConfig{
			Title: "Robot Simulator",
		},
		Log: LogConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "~/.robotsim/history.db",
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
	}
}
