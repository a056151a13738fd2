package patrol

import (
	"time"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/logging"
)

// Trace runs the agent from g's agent tile until it leaves the grid and
// returns every position it occupied, the start included.
// Returns ErrGridNil, grid.ErrNoAgent, ErrOptionViolation, ErrStepLimit
// (the agent never leaves), or the context's error.
func Trace(g *grid.Grid, opts ...Option) (*VisitSet, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	start, err := Start(g)
	if err != nil {
		return nil, err
	}
	return trace(g, start, o)
}

// CountVisited returns the number of distinct positions Trace visits.
func CountVisited(g *grid.Grid, opts ...Option) (int, error) {
	visited, err := Trace(g, opts...)
	if err != nil {
		return 0, err
	}
	return visited.Len(), nil
}

func trace(g *grid.Grid, start State, o Options) (*VisitSet, error) {
	began := time.Now()
	visited := newVisitSet(g)
	w := newWalker(g, o)
	if _, err := w.run(start, func(s State) bool {
		visited.add(s.Pos)
		return true
	}); err != nil {
		return nil, err
	}

	if o.Logger != nil {
		logging.NewEvent(o.Logger.Debug()).
			Add(logging.Component("patrol"), logging.Operation("trace")).
			Add(logging.Count("steps", w.steps), logging.Count("visited", visited.Len())).
			Add(logging.Duration(time.Since(began))).
			Msg("route traced")
	}
	return visited, nil
}
