// Package registry maps resolved law-card ids to the solver implementation
// that evaluates them. The default registry knows about Newtonian gravity;
// additional solvers register themselves the same way new law kinds are
// added to a deployment without the simulation driver needing to change.
package registry

import (
	"errors"
	"sync"

	"github.com/rulegraph/worldsim/internal/gravity"
	"github.com/rulegraph/worldsim/internal/laws"
	"github.com/rulegraph/worldsim/internal/model"
)

// ErrSolverNotFound is returned by Get when no solver is registered for a
// card id.
var ErrSolverNotFound = errors.New("registry: solver not found")

// Solver is anything that turns (positions, masses) into accelerations for
// the card it was registered under. gravity.Solver satisfies this.
type Solver interface {
	Accelerations(st gravity.State, card *model.LawCard) [][3]float64
}

// Registry is a thread-safe id -> Solver lookup.
type Registry struct {
	mu      sync.RWMutex
	solvers map[string]Solver
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{solvers: make(map[string]Solver)}
}

// NewDefault returns a registry pre-populated with the built-in Newtonian
// gravity solver under its canonical law id.
func NewDefault() *Registry {
	r := New()
	r.Register(laws.GravityNewtonianID, gravity.NewSolver())
	return r
}

// Register binds id to solver, overwriting any previous binding.
func (r *Registry) Register(id string, solver Solver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.solvers[id] = solver
}

// Get returns the solver registered for id.
func (r *Registry) Get(id string) (Solver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.solvers[id]
	if !ok {
		return nil, ErrSolverNotFound
	}
	return s, nil
}
