package sim

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/robotsim/internal/core"
)

const (
	GridSize      = 20 // Cells per side
	CellSize      = 20 // Pixel size of one cell in raster shells
	ObstacleCount = 10 // Obstacles generated for a new world
)

// Stats counts directional moves dispatched to a World.
type Stats struct {
	Attempts int // Moves requested
	Applied  int // Moves accepted, including boundary no-ops
	Blocked  int // Moves rejected because the target cell is an obstacle
}

// Snapshot is a read-only copy of the world handed to renderers.
type Snapshot struct {
	Robot     core.Point
	Obstacles []core.Point
	Stats     Stats
}

// World owns the robot and the obstacle set. Move is the only way the robot's
// position changes during play.
type World struct {
	robot     Robot
	obstacles []core.Point
	stats     Stats
}

// New creates a world with the robot at the grid center and ObstacleCount
// obstacles drawn from rng. The start cell is not checked against obstacles.
func New(rng *rand.Rand) *World {
	return &World{
		robot:     NewRobot(GridSize/2, GridSize/2),
		obstacles: GenerateObstacles(rng, ObstacleCount),
	}
}

// NewWithObstacles creates a world with an explicit robot start and obstacle set.
// The obstacle slice is copied.
func NewWithObstacles(robot core.Point, obstacles []core.Point) *World {
	return &World{
		robot:     NewRobot(robot.X, robot.Y),
		obstacles: slices.Clone(obstacles),
	}
}

// GenerateObstacles draws count cells uniformly over the grid.
// Duplicates are kept as drawn.
func GenerateObstacles(rng *rand.Rand, count int) []core.Point {
	if count < 0 {
		count = 0
	}
	obstacles := make([]core.Point, 0, count)
	for range count {
		x := rng.Intn(GridSize)
		y := rng.Intn(GridSize)
		obstacles = append(obstacles, core.Pt(x, y))
	}
	return obstacles
}

// IsObstacle reports whether (x, y) holds an obstacle.
func (w *World) IsObstacle(x, y int) bool {
	return slices.Contains(w.obstacles, core.Pt(x, y))
}

// Move attempts to shift the robot by (dx, dy). The clamped target cell is
// checked first; if it is an obstacle the call does nothing.
// A target equal to the current cell (pushing against the edge) counts as applied.
func (w *World) Move(dx, dy int) {
	w.stats.Attempts++

	target := core.Pt(shift(w.robot.X, dx), shift(w.robot.Y, dy))
	if w.IsObstacle(target.X, target.Y) {
		w.stats.Blocked++
		return
	}

	w.robot.Move(dx, dy)
	w.stats.Applied++
}

// Apply dispatches a shell action. Directional actions become a Move;
// anything else is ignored.
func (w *World) Apply(a core.Action) {
	dx, dy, ok := a.Delta()
	if !ok {
		return
	}
	w.Move(dx, dy)
}

// Robot returns the robot's current cell.
func (w *World) Robot() core.Point {
	return w.robot.Position()
}

// Obstacles returns a copy of the obstacle set.
func (w *World) Obstacles() []core.Point {
	return slices.Clone(w.obstacles)
}

// Stats returns the move counters.
func (w *World) Stats() Stats {
	return w.stats
}

// OnObstacle reports whether the robot shares a cell with an obstacle.
// Only the construction-time position can do so.
func (w *World) OnObstacle() bool {
	p := w.Robot()
	return w.IsObstacle(p.X, p.Y)
}

// Snapshot returns a copy of the current state.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		Robot:     w.Robot(),
		Obstacles: w.Obstacles(),
		Stats:     w.stats,
	}
}
