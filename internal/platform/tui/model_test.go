package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/sim"
)

func newTestModel(w *sim.World) Model {
	cfg := core.DefaultConfig()
	return NewModel(w, sim.DefaultTheme(), cfg, nil)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestArrowKeysMoveRobot(t *testing.T) {
	tests := []struct {
		key  tea.KeyType
		want core.Point
	}{
		{tea.KeyUp, core.Pt(5, 4)},
		{tea.KeyDown, core.Pt(5, 6)},
		{tea.KeyLeft, core.Pt(4, 5)},
		{tea.KeyRight, core.Pt(6, 5)},
	}

	for _, tc := range tests {
		t.Run(tc.key.String(), func(t *testing.T) {
			w := sim.NewWithObstacles(core.Pt(5, 5), nil)
			m := newTestModel(w)

			_, cmd := press(t, m, tea.KeyMsg{Type: tc.key})
			assert.Nil(t, cmd)
			assert.Equal(t, tc.want, w.Robot())
		})
	}
}

func TestArrowIntoObstacleIsRejected(t *testing.T) {
	w := sim.NewWithObstacles(core.Pt(5, 5), []core.Point{core.Pt(5, 4)})
	m := newTestModel(w)

	press(t, m, tea.KeyMsg{Type: tea.KeyUp})

	assert.Equal(t, core.Pt(5, 5), w.Robot())
	assert.Equal(t, 1, w.Stats().Blocked)
}

func TestNonDirectionalKeysAreIgnored(t *testing.T) {
	w := sim.NewWithObstacles(core.Pt(5, 5), nil)
	m := newTestModel(w)

	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("w")},
		{Type: tea.KeyRunes, Runes: []rune("a")},
		{Type: tea.KeyRunes, Runes: []rune("x")},
		{Type: tea.KeySpace},
		{Type: tea.KeyEnter},
		{Type: tea.KeyTab},
	}
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = press(t, m, k)
		assert.Nil(t, cmd, "key %q should produce no command", k.String())
		assert.False(t, m.quitting)
	}

	assert.Equal(t, core.Pt(5, 5), w.Robot())
	assert.Equal(t, sim.Stats{}, w.Stats())
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(k.String(), func(t *testing.T) {
			w := sim.NewWithObstacles(core.Pt(5, 5), nil)
			m, cmd := press(t, newTestModel(w), k)

			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
			assert.True(t, m.quitting)
			assert.Empty(t, m.View())
			assert.Equal(t, core.Pt(5, 5), w.Robot())
		})
	}
}

func TestTickRearms(t *testing.T) {
	w := sim.NewWithObstacles(core.Pt(5, 5), nil)
	m := newTestModel(w)

	next, cmd := m.Update(TickMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, uint64(1), next.(Model).ticks)
	assert.Equal(t, core.Pt(5, 5), w.Robot(), "ticks must not move the robot")
}

func TestViewDrawsGridAndStatus(t *testing.T) {
	w := sim.NewWithObstacles(core.Pt(2, 3), []core.Point{core.Pt(0, 0)})
	m := newTestModel(w)

	view := m.View()
	assert.Contains(t, view, "Robot (2,3)")
	assert.Contains(t, view, "@")
	assert.Contains(t, view, "█")
	assert.GreaterOrEqual(t, strings.Count(view, "\n"), sim.GridSize)
}

func TestViewTooSmall(t *testing.T) {
	w := sim.NewWithObstacles(core.Pt(2, 3), nil)
	m := newTestModel(w)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	assert.Contains(t, next.(Model).View(), "Terminal too small")

	next, _ = next.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.NotContains(t, next.(Model).View(), "Terminal too small")
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	assert.Len(t, km.ShortHelp(), 5)
	assert.Len(t, km.FullHelp(), 2)
	assert.Equal(t, core.ActionNone, km.MapKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}))
	assert.Equal(t, core.ActionRight, km.MapKey(tea.KeyMsg{Type: tea.KeyRight}))
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.SetColored(0, 0, 'A', core.ColorRed)
	s.SetColored(1, 0, 'B', core.ColorRed)
	s.SetColored(2, 0, 'C', core.ColorDefault)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "AB")
	assert.Contains(t, lines[0], "C")
}

func TestRuntimeScreenSizeAppliesBeforeResize(t *testing.T) {
	w := sim.NewWithObstacles(core.Pt(2, 3), nil)

	small := NewModel(w, sim.DefaultTheme(), core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 60}, nil)
	assert.Contains(t, small.View(), "have 30x10")

	roomy := NewModel(w, sim.DefaultTheme(), core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 60, Seed: 42}, nil)
	view := roomy.View()
	assert.NotContains(t, view, "Terminal too small")
	assert.Contains(t, view, "seed 42")
}
