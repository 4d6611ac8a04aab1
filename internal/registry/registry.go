// Package registry provides a global registry for presentation shells.
// Shells register themselves in init() functions, allowing the CLI
// to discover and start them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/robotsim/internal/config"
	"github.com/vovakirdan/robotsim/internal/core"
	"github.com/vovakirdan/robotsim/internal/sim"
)

// Options carries everything a shell needs besides the world itself.
type Options struct {
	Runtime core.RuntimeConfig
	Config  config.Config
	Logger  *log.Logger
}

// Shell is a presentation front end for a World.
// A shell owns the update/render loop: it forwards input to World.Apply,
// reads World.Snapshot to draw, and returns when the user exits.
type Shell interface {
	// Name returns a unique identifier (e.g., "terminal", "window").
	// Used for CLI flags and session history.
	Name() string

	// Title returns a human-readable description for listings.
	Title() string

	// Interactive reports whether the shell takes over the terminal,
	// in which case log output must not go to stderr.
	Interactive() bool

	// Run blocks until the user exits or ctx is cancelled.
	Run(ctx context.Context, w *sim.World, opts Options) error
}

// ShellInfo contains metadata about a registered shell.
type ShellInfo struct {
	Name  string
	Title string
}

// Factory is a function that creates a new instance of a shell.
type Factory func() Shell

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a shell factory to the registry.
// Typically called from a shell's init() function.
// Panics if a shell with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: shell %q already registered", name))
	}

	factories[name] = f

	// Get title by creating a temporary instance
	titles[name] = f().Title()
}

// List returns information about all registered shells, sorted by name.
func List() []ShellInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ShellInfo, 0, len(factories))
	for name := range factories {
		result = append(result, ShellInfo{
			Name:  name,
			Title: titles[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a new shell by its name.
// Returns an error if the name is not registered.
func Create(name string) (Shell, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown shell %q", name)
	}

	return f(), nil
}

// Exists checks if a shell with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
