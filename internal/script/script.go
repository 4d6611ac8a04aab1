// Package script parses and runs move scripts: a headless way to drive a
// World without a keyboard.
//
//	// walk around a block
//	right 3; down 2
//	repeat 2 { left up }
package script

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/sim"
)

// Script is a parsed move script.
type Script struct {
	Steps []*Step `parser:"@@*"`
}

// Step is either a move or a repeat block.
type Step struct {
	Repeat *Repeat `parser:"  @@"`
	Move   *Move   `parser:"| @@ ';'?"`
}

// Move is a direction with an optional count (default 1).
type Move struct {
	Pos   lexer.Position
	Dir   string `parser:"@('up' | 'down' | 'left' | 'right')"`
	Count *int   `parser:"@Int?"`
}

// Repeat runs its body Times times.
type Repeat struct {
	Pos   lexer.Position
	Times int     `parser:"'repeat' @Int"`
	Body  []*Step `parser:"'{' @@* '}'"`
}

// MaxActions caps the number of actions one script may dispatch.
const MaxActions = 1_000_000

// StepFunc observes the world after the i-th dispatched action (0-based).
type StepFunc func(i int, a core.Action, robot core.Point)

var parser = participle.MustBuild[Script]()

var directions = map[string]core.Action{
	"up":    core.ActionUp,
	"down":  core.ActionDown,
	"left":  core.ActionLeft,
	"right": core.ActionRight,
}

// Parse parses src. name is used in error positions.
// Scripts dispatching more than MaxActions actions are rejected.
func Parse(name, src string) (*Script, error) {
	s, err := parser.ParseString(name, src)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return checked(s)
}

// ParseFile reads and parses the script at path.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	s, err := parser.ParseBytes(path, data)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return checked(s)
}

func checked(s *Script) (*Script, error) {
	if _, err := stepsLen(s.Steps); err != nil {
		return nil, err
	}
	return s, nil
}

// Action returns the directional action for the move.
func (m *Move) Action() core.Action {
	return directions[m.Dir]
}

// Times returns how many times the move is dispatched.
func (m *Move) Times() int {
	if m.Count == nil {
		return 1
	}
	return *m.Count
}

// Len returns the number of actions the script dispatches.
func (s *Script) Len() int {
	n, _ := stepsLen(s.Steps)
	return n
}

// stepsLen counts actions, failing at the first step that pushes the total
// past MaxActions.
func stepsLen(steps []*Step) (int, error) {
	n := 0
	for _, st := range steps {
		switch {
		case st.Move != nil:
			if st.Move.Times() > MaxActions-n {
				return 0, tooLong(st.Move.Pos)
			}
			n += st.Move.Times()
		case st.Repeat != nil:
			body, err := stepsLen(st.Repeat.Body)
			if err != nil {
				return 0, err
			}
			if body > 0 && st.Repeat.Times > (MaxActions-n)/body {
				return 0, tooLong(st.Repeat.Pos)
			}
			n += st.Repeat.Times * body
		}
	}
	return n, nil
}

func tooLong(pos lexer.Position) error {
	return fmt.Errorf("script: %s: more than %d actions", pos, MaxActions)
}

// Exec dispatches every action through World.Apply in order, calling observe
// (if non-nil) after each one. It returns the number of actions dispatched.
func (s *Script) Exec(w *sim.World, observe StepFunc) int {
	n := 0
	walk(s.Steps, func(a core.Action) {
		w.Apply(a)
		if observe != nil {
			observe(n, a, w.Robot())
		}
		n++
	})
	return n
}

func walk(steps []*Step, fn func(core.Action)) {
	for _, st := range steps {
		switch {
		case st.Move != nil:
			a := st.Move.Action()
			for range st.Move.Times() {
				fn(a)
			}
		case st.Repeat != nil:
			for range st.Repeat.Times {
				walk(st.Repeat.Body, fn)
			}
		}
	}
}
