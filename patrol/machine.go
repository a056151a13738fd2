package patrol

import (
	"fmt"

	"github.com/katalvlaran/patrol/grid"
)

// ctxCheckMask sets how often long runs poll their context (every 4096 steps).
const ctxCheckMask = 1<<12 - 1

// Start returns the initial state encoded by g's agent tile.
// Returns ErrGridNil or grid.ErrNoAgent.
func Start(g *grid.Grid) (State, error) {
	if g == nil {
		return State{}, ErrGridNil
	}
	pos, dir, ok := g.FindAgent()
	if !ok {
		return State{}, grid.ErrNoAgent
	}
	return State{Pos: pos, Dir: dir}, nil
}

// Step computes the single transition out of s on g.
//
//  1. ahead = s.Pos + s.Dir.Delta()
//  2. ahead outside the grid → (s, Exited); there is no successor.
//  3. ahead is an Obstacle  → facing turns clockwise, position unchanged.
//  4. otherwise             → move to ahead, facing unchanged.
//
// Step is pure: it neither reads nor writes any state besides its arguments.
// Complexity: O(1).
func Step(g *grid.Grid, s State) (State, Outcome) {
	ahead := s.Pos.Add(s.Dir.Delta())
	t, ok := g.TileAt(ahead)
	switch {
	case !ok:
		return s, Exited
	case !t.Walkable():
		return State{Pos: s.Pos, Dir: s.Dir.Turn()}, Turned
	default:
		return State{Pos: ahead, Dir: s.Dir}, Moved
	}
}

// Walk drives Step from s, calling fn after every transition with the new
// state and its outcome. On Exited fn receives the last state the agent
// held. Walk returns when the agent exits or fn returns false, and reports
// whether the agent exited.
//
// Walk has no step ceiling: on a looping route it runs until fn stops it.
func Walk(g *grid.Grid, s State, fn func(State, Outcome) bool) (exited bool) {
	for {
		next, out := Step(g, s)
		if !fn(next, out) {
			return out == Exited
		}
		if out == Exited {
			return true
		}
		s = next
	}
}

// walker carries the bookkeeping of one bounded run.
type walker struct {
	g     *grid.Grid
	opts  Options
	limit int
	steps int
}

func newWalker(g *grid.Grid, o Options) *walker {
	return &walker{g: g, opts: o, limit: o.stepLimit(g)}
}

// run calls visit with each state the agent holds, starting with s and
// before stepping out of it. visit returns false to stop the run early.
// run reports whether the agent exited the grid.
func (w *walker) run(s State, visit func(State) bool) (exited bool, err error) {
	for {
		if !visit(s) {
			return false, nil
		}
		if w.steps >= w.limit {
			return false, fmt.Errorf("%w: %d steps from %v", ErrStepLimit, w.limit, s)
		}
		if w.steps&ctxCheckMask == 0 {
			if err := w.opts.Ctx.Err(); err != nil {
				return false, err
			}
		}
		next, out := Step(w.g, s)
		w.steps++
		if w.opts.OnStep != nil {
			w.opts.OnStep(s, out)
		}
		if out == Exited {
			return true, nil
		}
		s = next
	}
}
