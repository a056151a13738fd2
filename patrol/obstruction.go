package patrol

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/logging"
)

// LoopObstructions returns, in row-major order, every position where one
// added Obstacle traps the agent in a loop. Candidates are the positions of
// the agent's unmodified route (Trace) minus its start. Each candidate is
// tested on its own copy of g; g itself is never modified.
//
// Candidates are checked concurrently by a pool of Options.Workers
// goroutines. The first error cancels the remaining candidates.
func LoopObstructions(g *grid.Grid, opts ...Option) ([]grid.Position, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	start, err := Start(g)
	if err != nil {
		return nil, err
	}
	visited, err := trace(g, start, o)
	if err != nil {
		return nil, fmt.Errorf("patrol: tracing unmodified route: %w", err)
	}

	route := visited.Positions()
	candidates := make([]grid.Position, 0, len(route))
	for _, p := range route {
		if p != start.Pos {
			candidates = append(candidates, p)
		}
	}
	return search(g, start, candidates, o)
}

// CountLoopObstructions returns len(LoopObstructions(g, opts...)).
func CountLoopObstructions(g *grid.Grid, opts ...Option) (int, error) {
	hits, err := LoopObstructions(g, opts...)
	if err != nil {
		return 0, err
	}
	return len(hits), nil
}

// LoopObstructionsExhaustive is LoopObstructions over every Space cell
// except the start, not only the traced route. It returns the same
// positions at a higher cost and exists to cross-check the route-only search.
func LoopObstructionsExhaustive(g *grid.Grid, opts ...Option) ([]grid.Position, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	start, err := Start(g)
	if err != nil {
		return nil, err
	}

	candidates := make([]grid.Position, 0, g.Area())
	for i := 0; i < g.Area(); i++ {
		p := g.Coordinate(i)
		if t, _ := g.TileAt(p); t == grid.Space {
			candidates = append(candidates, p)
		}
	}
	return search(g, start, candidates, o)
}

// search tests every candidate on a private copy of g. Each goroutine writes
// only its own slot of hits, so the reduction needs no lock.
func search(g *grid.Grid, start State, candidates []grid.Position, o Options) ([]grid.Position, error) {
	began := time.Now()
	hits := make([]bool, len(candidates))

	eg, ctx := errgroup.WithContext(o.Ctx)
	eg.SetLimit(o.workers())

	co := o
	co.Ctx = ctx
	co.OnStep = nil

	for i, p := range candidates {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			blocked, err := g.WithObstacle(p)
			if err != nil {
				return err
			}
			loop, err := hasCycle(blocked, start, co)
			if err != nil {
				return fmt.Errorf("patrol: obstruction at %v: %w", p, err)
			}
			hits[i] = loop
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]grid.Position, 0)
	for i, hit := range hits {
		if hit {
			out = append(out, candidates[i])
		}
	}

	if o.Logger != nil {
		logging.NewEvent(o.Logger.Debug()).
			Add(logging.Component("patrol"), logging.Operation("obstruction-search")).
			Add(logging.Count("candidates", len(candidates)), logging.Count("workers", o.workers())).
			Add(logging.Count("loops", len(out)), logging.Duration(time.Since(began))).
			Msg("obstruction search finished")
	}
	return out, nil
}
