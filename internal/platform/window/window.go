// Package window provides the Ebiten raster shell: a GridSize×GridSize window
// of CellSize-pixel squares steered with the arrow keys.
package window

import (
	"context"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/robotsim/internal/config"
	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/registry"
	"github.com/vovakirdan/robotsim/internal/sim"
)

// gridLine is the gap left between cells so the grid stays visible.
const gridLine = 1

// Palette holds the fill colors of the window shell.
type Palette struct {
	Background color.Color
	Grid       color.Color
	Obstacle   color.Color
	Robot      color.Color
}

// ParsePalette converts hex colors from the configuration.
func ParsePalette(t config.WindowTheme) (Palette, error) {
	var p Palette
	for _, f := range []struct {
		name string
		hex  string
		dst  *color.Color
	}{
		{"background", t.Background, &p.Background},
		{"grid", t.Grid, &p.Grid},
		{"obstacle", t.Obstacle, &p.Obstacle},
		{"robot", t.Robot, &p.Robot},
	} {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("window: %s color %q: %w", f.name, f.hex, err)
		}
		*f.dst = c
	}
	return p, nil
}

// arrowKeys lists the only keys that move the robot.
var arrowKeys = []struct {
	key    ebiten.Key
	action core.Action
}{
	{ebiten.KeyArrowUp, core.ActionUp},
	{ebiten.KeyArrowDown, core.ActionDown},
	{ebiten.KeyArrowLeft, core.ActionLeft},
	{ebiten.KeyArrowRight, core.ActionRight},
}

// Game implements ebiten.Game for a World.
type Game struct {
	ctx     context.Context
	world   *sim.World
	palette Palette
	logger  *log.Logger
}

// NewGame creates the ebiten game. ctx cancellation ends the run loop.
func NewGame(ctx context.Context, w *sim.World, p Palette, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{ctx: ctx, world: w, palette: p, logger: logger}
}

// Update handles one frame of input. Each press is one move;
// holding a key does not repeat.
func (g *Game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for _, k := range arrowKeys {
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		from := g.world.Robot()
		g.world.Apply(k.action)
		g.logger.Debug("move", "action", k.action, "from", from, "to", g.world.Robot())
	}
	return nil
}

// Draw paints the grid, obstacles and robot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)

	snap := g.world.Snapshot()
	for y := range sim.GridSize {
		for x := range sim.GridSize {
			fillCell(screen, core.Pt(x, y), g.palette.Grid)
		}
	}
	for _, o := range snap.Obstacles {
		fillCell(screen, o, g.palette.Obstacle)
	}
	fillCell(screen, snap.Robot, g.palette.Robot)
}

// Layout keeps a fixed logical resolution; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := sim.GridSize * sim.CellSize
	return side, side
}

func fillCell(dst *ebiten.Image, p core.Point, c color.Color) {
	size := float32(sim.CellSize - gridLine)
	vector.DrawFilledRect(dst,
		float32(p.X*sim.CellSize), float32(p.Y*sim.CellSize),
		size, size, c, false)
}

// Shell opens a desktop window.
type Shell struct{}

func init() {
	registry.Register("window", func() registry.Shell {
		return Shell{}
	})
}

// Name returns the shell identifier.
func (Shell) Name() string { return "window" }

// Title returns the display name.
func (Shell) Title() string { return "Desktop window (Ebiten)" }

// Interactive is false: the window leaves the terminal free for logs.
func (Shell) Interactive() bool { return false }

// Run opens the window and blocks until it is closed, Escape is pressed
// or ctx is cancelled.
func (Shell) Run(ctx context.Context, w *sim.World, opts registry.Options) error {
	palette, err := ParsePalette(opts.Config.Theme.Window)
	if err != nil {
		return err
	}

	side := sim.GridSize * sim.CellSize
	ebiten.SetWindowSize(side, side)
	ebiten.SetWindowTitle(opts.Config.Window.Title)
	if opts.Runtime.TickRate > 0 {
		ebiten.SetTPS(opts.Runtime.TickRate)
	}

	game := NewGame(ctx, w, palette, opts.Logger)
	game.logger.Info("window opened", "size", side, "tps", ebiten.TPS(), "seed", opts.Runtime.Seed)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
