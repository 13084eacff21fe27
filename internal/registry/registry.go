// Package registry maps game IDs to factories. Games register themselves
// from init, and the front ends create fresh instances by ID.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Game is what a front end drives. Implementations hold pure simulation
// state; timing, input mapping and display belong to the caller.
type Game interface {
	// ID is the stable key used on the command line and in score storage.
	ID() string
	Title() string

	// Reset starts a new session from cfg.Seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by dt seconds with the actions held this frame.
	Step(dt float64, in core.InputFrame) core.StepResult

	// Render draws into dst, which the caller has cleared.
	Render(dst *core.Screen)

	State() core.GameState
}

// Factory creates a new, unstarted game.
type Factory func() Game

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Registry is a set of game factories keyed by ID. The zero value is ready
// to use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// Default is the registry the package-level functions use.
var Default = &Registry{}

// Register adds f under id. Registering an id twice panics.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.factories[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	if r.factories == nil {
		r.factories = make(map[string]Factory)
	}
	r.factories[id] = f
}

// Create returns a new instance of game id.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// IDs returns the registered IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}

func Register(id string, f Factory)  { Default.Register(id, f) }
func Create(id string) (Game, error) { return Default.Create(id) }
func IDs() []string                  { return Default.IDs() }
func Exists(id string) bool          { return Default.Exists(id) }
