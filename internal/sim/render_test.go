package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/robotsim/internal/core"
)

func TestRenderDrawsLayers(t *testing.T) {
	w, h := ScreenSize()
	dst := core.NewScreen(w, h)
	theme := DefaultTheme()

	snap := Snapshot{
		Robot:     core.Pt(3, 2),
		Obstacles: []core.Point{core.Pt(0, 0), core.Pt(3, 2)},
	}
	Render(dst, snap, theme)

	// Each grid cell spans CellWidth columns.
	for col := 0; col < CellWidth; col++ {
		assert.Equal(t, core.Cell{Rune: theme.Obstacle.Glyph, Color: theme.Obstacle.Color}, dst.GetCell(col, 0))
		// Robot is drawn over an obstacle sharing its cell.
		assert.Equal(t, core.Cell{Rune: theme.Robot.Glyph, Color: theme.Robot.Color}, dst.GetCell(3*CellWidth+col, 2))
	}

	// Everything else is grid.
	assert.Equal(t, core.Cell{Rune: theme.Grid.Glyph, Color: theme.Grid.Color}, dst.GetCell(w-1, h-1))
	assert.Equal(t, theme.Grid.Glyph, dst.GetCell(CellWidth, 0).Rune)
}

func TestRenderClipsToSmallScreen(t *testing.T) {
	dst := core.NewScreen(4, 2)

	assert.NotPanics(t, func() {
		Render(dst, Snapshot{Robot: core.Pt(GridSize-1, GridSize-1)}, DefaultTheme())
	})
	assert.Equal(t, DefaultTheme().Grid.Glyph, dst.GetCell(3, 1).Rune)
}

func TestRenderASCII(t *testing.T) {
	w := NewWithObstacles(core.Pt(1, 0), []core.Point{core.Pt(0, 0), core.Pt(2, 1)})
	w.Apply(core.ActionLeft) // blocked

	out := RenderASCII(w.Snapshot())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, GridSize+1)

	assert.Equal(t, "Robot: (1,0) | Moves: 0 | Blocked: 1", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "#R."), "row 0 = %q", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "..#"), "row 1 = %q", lines[2])
	for _, line := range lines[1:] {
		assert.Len(t, line, GridSize)
	}
}
