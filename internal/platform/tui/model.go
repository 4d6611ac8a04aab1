package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/registry"
	"github.com/vovakirdan/robotsim/internal/sim"
)

// chromeRows is the number of lines below the grid (status and help).
const chromeRows = 2

// Model is the Bubble Tea model driving a World in the terminal.
type Model struct {
	world    *sim.World
	screen   *core.Screen
	theme    sim.Theme
	keys     KeyMap
	help     help.Model
	logger   *log.Logger
	config   core.RuntimeConfig
	termW    int
	termH    int
	ticks    uint64
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given world.
func NewModel(w *sim.World, theme sim.Theme, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	screenW, screenH := sim.ScreenSize()
	return Model{
		world:  w,
		screen: core.NewScreen(screenW, screenH),
		theme:  theme,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: logger,
		config: cfg,
		termW:  cfg.ScreenW,
		termH:  cfg.ScreenH,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.termW = msg.Width
		m.termH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		// The world has no per-tick behaviour; ticks only pace redraws.
		m.ticks++
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input. Unbound keys are dropped.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)

	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case action.IsDirectional():
		from := m.world.Robot()
		blockedBefore := m.world.Stats().Blocked
		m.world.Apply(action)
		m.logger.Debug("move",
			"action", action,
			"from", from,
			"to", m.world.Robot(),
			"blocked", m.world.Stats().Blocked > blockedBefore,
		)
	}

	return m, nil
}

// tooSmall reports whether the last known terminal size cannot fit the grid.
// The size starts at the runtime config's screen size; an unknown (zero) size
// is assumed large enough.
func (m Model) tooSmall() bool {
	if m.termW == 0 && m.termH == 0 {
		return false
	}
	return m.termW < m.screen.Width() || m.termH < m.screen.Height()+chromeRows
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.tooSmall() {
		return noticeStyle.Render(fmt.Sprintf(
			"Terminal too small: need %dx%d, have %dx%d. Resize or press q to quit.",
			m.screen.Width(), m.screen.Height()+chromeRows, m.termW, m.termH))
	}

	m.screen.Clear()
	snap := m.world.Snapshot()
	sim.Render(m.screen, snap, m.theme)

	status := statusStyle.Render(fmt.Sprintf("Robot %s  moves %d  blocked %d  seed %d",
		snap.Robot, snap.Stats.Applied, snap.Stats.Blocked, m.config.Seed))

	return RenderScreen(m.screen) + "\n" + status + "\n" + m.help.View(m.keys)
}

// Shell runs the world in the terminal using Bubble Tea.
type Shell struct{}

func init() {
	registry.Register("terminal", func() registry.Shell {
		return Shell{}
	})
}

// Name returns the shell identifier.
func (Shell) Name() string { return "terminal" }

// Title returns the display name.
func (Shell) Title() string { return "Terminal grid (Bubble Tea)" }

// Interactive is true: the shell owns the terminal while it runs.
func (Shell) Interactive() bool { return true }

// Run starts the Bubble Tea program and blocks until the user quits
// or ctx is cancelled.
func (Shell) Run(ctx context.Context, w *sim.World, opts registry.Options) error {
	theme, err := opts.Config.TerminalTheme()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	model := NewModel(w, theme, opts.Runtime, opts.Logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
