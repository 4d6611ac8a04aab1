package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/sim"
)

// stubShell presses right once and returns.
type stubShell struct {
	name string
}

func (s stubShell) Name() string      { return s.name }
func (s stubShell) Title() string     { return "Stub " + s.name }
func (s stubShell) Interactive() bool { return false }

func (s stubShell) Run(_ context.Context, w *sim.World, _ Options) error {
	w.Apply(core.ActionRight)
	return nil
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub", func() Shell { return stubShell{name: "zz-stub"} })
	Register("aa-stub", func() Shell { return stubShell{name: "aa-stub"} })

	assert.True(t, Exists("zz-stub"))
	assert.False(t, Exists("nope"))

	shell, err := Create("zz-stub")
	require.NoError(t, err)
	assert.Equal(t, "zz-stub", shell.Name())

	w := sim.NewWithObstacles(core.Pt(5, 5), nil)
	require.NoError(t, shell.Run(context.Background(), w, Options{}))
	assert.Equal(t, core.Pt(6, 5), w.Robot())

	_, err = Create("nope")
	assert.Error(t, err)

	// Listing is sorted by name
	var names []string
	for _, info := range List() {
		names = append(names, info.Name)
	}
	assert.IsIncreasing(t, names)
	assert.Contains(t, List(), ShellInfo{Name: "aa-stub", Title: "Stub aa-stub"})
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-stub", func() Shell { return stubShell{name: "dup-stub"} })

	assert.Panics(t, func() {
		Register("dup-stub", func() Shell { return stubShell{name: "dup-stub"} })
	})
}
