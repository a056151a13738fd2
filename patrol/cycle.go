package patrol

import (
	"fmt"

	"github.com/katalvlaran/patrol/grid"
)

// HasCycle reports whether the agent starting on g's agent tile repeats a
// (position, facing) pair before leaving the grid. Such a repeat means the
// agent loops forever. A run visits at most W×H×4 distinct states, so
// HasCycle always terminates.
func HasCycle(g *grid.Grid, opts ...Option) (bool, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return false, err
	}
	start, err := Start(g)
	if err != nil {
		return false, err
	}
	return hasCycle(g, start, o)
}

// HasCycleFrom is HasCycle starting from an explicit state instead of the
// agent tile. s.Pos must lie inside g and s.Dir must be a valid facing.
// Returns ErrGridNil, grid.ErrOutOfBounds or ErrInvalidState.
func HasCycleFrom(g *grid.Grid, s State, opts ...Option) (bool, error) {
	if g == nil {
		return false, ErrGridNil
	}
	if !g.InBounds(s.Pos) {
		return false, grid.ErrOutOfBounds
	}
	if !s.Dir.Valid() {
		return false, fmt.Errorf("%w: facing %d", ErrInvalidState, uint8(s.Dir))
	}
	o, err := buildOptions(opts)
	if err != nil {
		return false, err
	}
	return hasCycle(g, s, o)
}

// hasCycle records each state before stepping out of it; the first state
// already recorded closes the loop.
func hasCycle(g *grid.Grid, start State, o Options) (bool, error) {
	seen := newStateSet(g)
	exited, err := newWalker(g, o).run(start, func(s State) bool {
		return !seen.insert(s)
	})
	if err != nil {
		return false, err
	}
	return !exited, nil
}
