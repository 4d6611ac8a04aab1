// Package sim implements the robot simulator's world state: a robot on a fixed
// square grid, a set of static obstacles, and the collision-gated move rule.
//
// Everything here is synchronous and single-threaded. Shells call into a World
// from their own event loop and never share it across goroutines.
package sim

import "github.com/vovakirdan/robotsim/internal/core"

// Robot is a single grid-cell position that always lies inside the grid.
type Robot struct {
	X, Y int
}

// NewRobot creates a robot at (x, y), clamped into the grid.
func NewRobot(x, y int) Robot {
	return Robot{X: clampToGrid(x), Y: clampToGrid(y)}
}

// Move shifts the robot by (dx, dy), clamping each axis to the grid.
// It has no notion of obstacles and always succeeds.
func (r *Robot) Move(dx, dy int) {
	r.X = shift(r.X, dx)
	r.Y = shift(r.Y, dy)
}

// Position returns the robot's current cell.
func (r Robot) Position() core.Point {
	return core.Pt(r.X, r.Y)
}

func clampToGrid(v int) int {
	return core.Clamp(v, 0, GridSize-1)
}

// shift returns the grid coordinate v moved by d. d is bounded to one grid
// width first so v+d cannot overflow.
func shift(v, d int) int {
	return clampToGrid(v + core.Clamp(d, -GridSize, GridSize))
}
