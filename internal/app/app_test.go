package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/sim"
	"github.com/vovakirdan/robotsim/internal/telemetry"
)

// isolate points HOME and the working directory at empty temp dirs so only
// the embedded defaults are found.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(telemetry.EnvEndpoint, "")
	t.Chdir(t.TempDir())
	return home
}

func newTestApp(t *testing.T, o Overrides) (*App, *bytes.Buffer) {
	t.Helper()
	var stderr bytes.Buffer
	a, err := New(context.Background(), o, false, &stderr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })
	return a, &stderr
}

func seed(v int64) *int64 { return &v }

func TestOverridesApply(t *testing.T) {
	home := isolate(t)
	db := filepath.Join(home, "h.db")

	a, _ := newTestApp(t, Overrides{
		TickRate:  30,
		Seed:      seed(42),
		DBPath:    db,
		LogLevel:  "debug",
		NoHistory: true,
	})

	assert.Equal(t, 30, a.Config.TickRate)
	assert.Equal(t, int64(42), a.Config.Seed)
	assert.Equal(t, db, a.Config.History.DBPath)
	assert.Equal(t, "debug", a.Config.Log.Level)
	assert.False(t, a.Config.History.Enabled)

	rt := a.Runtime(100, 40, 42)
	assert.Equal(t, core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 30, Seed: 42}, rt)
}

func TestNewRejectsInvalidOverride(t *testing.T) {
	isolate(t)
	_, err := New(context.Background(), Overrides{LogLevel: "loud"}, false, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")

	_, err = New(context.Background(), Overrides{TickRate: -1}, false, &bytes.Buffer{})
	require.Error(t, err)
}

func TestLogDestination(t *testing.T) {
	home := isolate(t)

	t.Run("command logs to stderr", func(t *testing.T) {
		a, stderr := newTestApp(t, Overrides{NoHistory: true})
		a.Logger.Info("hello")
		assert.Contains(t, stderr.String(), "hello")
	})

	t.Run("interactive discards", func(t *testing.T) {
		var stderr bytes.Buffer
		a, err := New(context.Background(), Overrides{NoHistory: true}, true, &stderr)
		require.NoError(t, err)
		defer a.Close(context.Background())
		a.Logger.Info("hello")
		assert.Empty(t, stderr.String())
	})

	t.Run("log file", func(t *testing.T) {
		path := filepath.Join(home, "logs", "robotsim.log")
		var stderr bytes.Buffer
		a, err := New(context.Background(), Overrides{NoHistory: true, LogFile: path}, true, &stderr)
		require.NoError(t, err)
		a.Logger.Info("to file")
		require.NoError(t, a.Close(context.Background()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to file")
		assert.Empty(t, stderr.String())
	})
}

func TestResolveSeed(t *testing.T) {
	assert.Equal(t, int64(7), ResolveSeed(7))
	assert.NotZero(t, ResolveSeed(0))
}

func TestNewWorldIsDeterministic(t *testing.T) {
	isolate(t)
	a, _ := newTestApp(t, Overrides{Seed: seed(99), NoHistory: true})

	w1, s1 := a.NewWorld()
	w2, s2 := a.NewWorld()

	assert.Equal(t, int64(99), s1)
	assert.Equal(t, s1, s2)
	assert.Equal(t, w1.Obstacles(), w2.Obstacles())
	assert.Equal(t, core.Pt(sim.GridSize/2, sim.GridSize/2), w1.Robot())
	assert.Len(t, w1.Obstacles(), sim.ObstacleCount)
}

func TestSessionRecordsHistory(t *testing.T) {
	home := isolate(t)
	db := filepath.Join(home, "history.db")
	a, _ := newTestApp(t, Overrides{Seed: seed(5), DBPath: db})
	require.True(t, a.Config.History.Enabled)

	res, err := a.Session(context.Background(), "script", func(_ context.Context, w *sim.World, s int64) error {
		assert.Equal(t, int64(5), s)
		w.Apply(core.ActionNone)
		w.Move(0, 0)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Attempts)

	store, err := a.OpenHistory()
	require.NoError(t, err)
	defer store.Close()

	sessions, err := store.RecentSessions("script", 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(5), sessions[0].Seed)
	assert.Equal(t, 1, sessions[0].Attempts)
	assert.Equal(t, res.Robot.X, sessions[0].FinalX)
	assert.Equal(t, res.Robot.Y, sessions[0].FinalY)
}

func TestSessionErrorSkipsHistoryAndMarksSpan(t *testing.T) {
	home := isolate(t)

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	db := filepath.Join(home, "history.db")
	a, _ := newTestApp(t, Overrides{Seed: seed(5), DBPath: db})

	boom := errors.New("window failed")
	_, err := a.Session(context.Background(), "window", func(context.Context, *sim.World, int64) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, statErr := os.Stat(db)
	assert.True(t, os.IsNotExist(statErr), "failed sessions are not recorded")

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "session", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestSessionWithoutHistory(t *testing.T) {
	home := isolate(t)
	db := filepath.Join(home, "history.db")
	a, _ := newTestApp(t, Overrides{Seed: seed(5), DBPath: db, NoHistory: true})

	_, err := a.Session(context.Background(), "script", func(context.Context, *sim.World, int64) error {
		return nil
	})
	require.NoError(t, err)

	_, statErr := os.Stat(db)
	assert.True(t, os.IsNotExist(statErr))
}

func TestOverrideRepairsConfigFileBeforeValidation(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "robotsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 0\n"), 0o644))

	_, err := New(context.Background(), Overrides{ConfigPath: path, NoHistory: true}, false, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick_rate")

	a, _ := newTestApp(t, Overrides{ConfigPath: path, TickRate: 30, NoHistory: true})
	assert.Equal(t, 30, a.Config.TickRate)
}
