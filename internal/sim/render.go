package sim

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/robotsim/internal/core"
)

// CellWidth is the number of terminal columns one grid cell occupies.
// Terminal characters are roughly twice as tall as wide, so two columns
// make a cell look square.
const CellWidth = 2

// CellStyle is how one kind of grid cell is drawn on a character screen.
type CellStyle struct {
	Glyph rune
	Color core.Color
}

// Theme holds the styles for every kind of cell.
type Theme struct {
	Grid     CellStyle
	Obstacle CellStyle
	Robot    CellStyle
}

// DefaultTheme returns a gray grid, red obstacles and a blue robot.
func DefaultTheme() Theme {
	return Theme{
		Grid:     CellStyle{Glyph: '·', Color: core.ColorGray},
		Obstacle: CellStyle{Glyph: '█', Color: core.ColorRed},
		Robot:    CellStyle{Glyph: '@', Color: core.ColorBlue},
	}
}

// ScreenSize returns the character dimensions needed to draw the whole grid.
func ScreenSize() (w, h int) {
	return GridSize * CellWidth, GridSize
}

// Render draws the grid, then obstacles, then the robot into dst.
// Cells that fall outside dst are clipped.
func Render(dst *core.Screen, snap Snapshot, theme Theme) {
	for gy := 0; gy < GridSize; gy++ {
		for gx := 0; gx < GridSize; gx++ {
			drawCell(dst, core.Pt(gx, gy), theme.Grid)
		}
	}

	for _, o := range snap.Obstacles {
		drawCell(dst, o, theme.Obstacle)
	}

	drawCell(dst, snap.Robot, theme.Robot)
}

func drawCell(dst *core.Screen, p core.Point, style CellStyle) {
	dst.FillRect(core.NewRect(p.X*CellWidth, p.Y, CellWidth, 1), style.Glyph, style.Color)
}

// RenderASCII creates a plain-text frame of the snapshot: '.' for empty cells,
// '#' for obstacles and 'R' for the robot, under a one-line header.
// Used by the headless script runner and in tests.
func RenderASCII(snap Snapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Robot: %s | Moves: %d | Blocked: %d\n",
		snap.Robot, snap.Stats.Applied, snap.Stats.Blocked))

	blocked := make(map[core.Point]bool, len(snap.Obstacles))
	for _, o := range snap.Obstacles {
		blocked[o] = true
	}

	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			p := core.Pt(x, y)
			switch {
			case p == snap.Robot:
				sb.WriteByte('R')
			case blocked[p]:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
