package patrol_test

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/logging"
	"github.com/katalvlaran/patrol/patrol"
)

// loadSample reads the 10×10 reference grid from testdata.
func loadSample(t testing.TB) *grid.Grid {
	t.Helper()
	raw, err := os.ReadFile("../testdata/sample.txt")
	require.NoError(t, err)
	g, err := grid.Parse(strings.TrimRight(string(raw), "\n"))
	require.NoError(t, err)
	return g
}

func mustParse(t testing.TB, text string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(text)
	require.NoError(t, err)
	return g
}

// randomGrid builds a w×h grid with the given obstacle density and an agent
// facing Up at a random cell.
func randomGrid(t testing.TB, rnd *rand.Rand, w, h int, density float64) *grid.Grid {
	t.Helper()
	rows := make([][]grid.Tile, h)
	for y := range rows {
		rows[y] = make([]grid.Tile, w)
		for x := range rows[y] {
			if rnd.Float64() < density {
				rows[y][x] = grid.Obstacle
			}
		}
	}
	rows[rnd.Intn(h)][rnd.Intn(w)] = grid.AgentTile(grid.Up)
	g, err := grid.New(rows)
	require.NoError(t, err)
	return g
}

//----------------------------------------------------------------------------//
// State machine
//----------------------------------------------------------------------------//

// TestStep covers the three transitions.
func TestStep(t *testing.T) {
	g := mustParse(t, ".#.\n.^.\n...")
	cases := []struct {
		name string
		from patrol.State
		to   patrol.State
		out  patrol.Outcome
	}{
		{"TurnAtObstacle", patrol.State{Pos: grid.Pos(1, 1), Dir: grid.Up}, patrol.State{Pos: grid.Pos(1, 1), Dir: grid.Right}, patrol.Turned},
		{"MoveRight", patrol.State{Pos: grid.Pos(1, 1), Dir: grid.Right}, patrol.State{Pos: grid.Pos(2, 1), Dir: grid.Right}, patrol.Moved},
		{"MoveOntoStartTile", patrol.State{Pos: grid.Pos(1, 2), Dir: grid.Up}, patrol.State{Pos: grid.Pos(1, 1), Dir: grid.Up}, patrol.Moved},
		{"ExitRight", patrol.State{Pos: grid.Pos(2, 1), Dir: grid.Right}, patrol.State{Pos: grid.Pos(2, 1), Dir: grid.Right}, patrol.Exited},
		{"ExitUp", patrol.State{Pos: grid.Pos(0, 0), Dir: grid.Up}, patrol.State{Pos: grid.Pos(0, 0), Dir: grid.Up}, patrol.Exited},
		{"ExitLeft", patrol.State{Pos: grid.Pos(0, 2), Dir: grid.Left}, patrol.State{Pos: grid.Pos(0, 2), Dir: grid.Left}, patrol.Exited},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, out := patrol.Step(g, tc.from)
			require.Equal(t, tc.out, out)
			require.Equal(t, tc.to, next)
		})
	}
}

// TestStep_Pure leaves the grid untouched after a full walk.
func TestStep_Pure(t *testing.T) {
	g := loadSample(t)
	before := g.String()
	start, err := patrol.Start(g)
	require.NoError(t, err)

	exited := patrol.Walk(g, start, func(patrol.State, patrol.Outcome) bool { return true })
	require.True(t, exited)
	require.Equal(t, before, g.String())
}

// TestWalk_StopEarly stops when the callback returns false.
func TestWalk_StopEarly(t *testing.T) {
	g := loadSample(t)
	start, err := patrol.Start(g)
	require.NoError(t, err)

	n := 0
	exited := patrol.Walk(g, start, func(s patrol.State, out patrol.Outcome) bool {
		n++
		return n < 3
	})
	require.False(t, exited)
	require.Equal(t, 3, n)
}

// TestStart reads position and facing from the agent tile.
func TestStart(t *testing.T) {
	s, err := patrol.Start(mustParse(t, "...\n..<"))
	require.NoError(t, err)
	require.Equal(t, patrol.State{Pos: grid.Pos(2, 1), Dir: grid.Left}, s)

	noAgent, err := grid.New([][]grid.Tile{{grid.Space, grid.Obstacle}})
	require.NoError(t, err)
	_, err = patrol.Start(noAgent)
	require.ErrorIs(t, err, grid.ErrNoAgent)

	_, err = patrol.Start(nil)
	require.ErrorIs(t, err, patrol.ErrGridNil)
}

//----------------------------------------------------------------------------//
// Path tracer
//----------------------------------------------------------------------------//

// TestTrace_Sample reproduces the reference answer of 41 cells.
func TestTrace_Sample(t *testing.T) {
	g := loadSample(t)

	steps := 0
	visited, err := patrol.Trace(g, patrol.WithOnStep(func(patrol.State, patrol.Outcome) { steps++ }))
	require.NoError(t, err)
	require.Equal(t, 41, visited.Len())
	require.Equal(t, 55, steps)
	require.True(t, visited.Contains(grid.Pos(4, 6)))
	require.False(t, visited.Contains(grid.Pos(0, 0)))
	require.False(t, visited.Contains(grid.Pos(-1, 6)))
	require.Len(t, visited.Positions(), 41)

	n, err := patrol.CountVisited(g)
	require.NoError(t, err)
	require.Equal(t, 41, n)
}

// TestTrace_ExitFromBoundary exits after one step and keeps the start cell.
func TestTrace_ExitFromBoundary(t *testing.T) {
	g := mustParse(t, "..^.\n....")

	var outcomes []patrol.Outcome
	visited, err := patrol.Trace(g, patrol.WithOnStep(func(_ patrol.State, out patrol.Outcome) {
		outcomes = append(outcomes, out)
	}))
	require.NoError(t, err)
	require.Equal(t, []patrol.Outcome{patrol.Exited}, outcomes)
	require.Equal(t, []grid.Position{grid.Pos(2, 0)}, visited.Positions())
}

// TestTrace_NonUpStart honours the facing stored in the agent tile.
func TestTrace_NonUpStart(t *testing.T) {
	visited, err := patrol.Trace(mustParse(t, ">..#\n...."))
	require.NoError(t, err)
	require.Equal(t, []grid.Position{
		grid.Pos(0, 0), grid.Pos(1, 0), grid.Pos(2, 0), grid.Pos(2, 1),
	}, visited.Positions())
}

// TestTrace_StepLimit fails instead of spinning on a looping route.
func TestTrace_StepLimit(t *testing.T) {
	looping, err := loadSample(t).WithObstacle(grid.Pos(3, 6))
	require.NoError(t, err)

	_, err = patrol.Trace(looping)
	require.ErrorIs(t, err, patrol.ErrStepLimit)

	_, err = patrol.Trace(loadSample(t), patrol.WithStepLimit(10))
	require.ErrorIs(t, err, patrol.ErrStepLimit)

	_, err = patrol.Trace(loadSample(t), patrol.WithStepLimit(55))
	require.NoError(t, err)
}

// TestTrace_Logger writes a debug summary when a logger is supplied.
func TestTrace_Logger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(logging.Config{Level: "debug", Format: "json", Output: buf})

	_, err := patrol.Trace(loadSample(t), patrol.WithLogger(logger))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "route traced")
	require.Contains(t, buf.String(), `"visited":41`)
}

//----------------------------------------------------------------------------//
// Cycle detector
//----------------------------------------------------------------------------//

// TestHasCycle_BoxedIn rotates in place four times and reports a loop.
func TestHasCycle_BoxedIn(t *testing.T) {
	g := mustParse(t, ".#.\n#^#\n.#.")

	var outcomes []patrol.Outcome
	loop, err := patrol.HasCycle(g, patrol.WithOnStep(func(_ patrol.State, out patrol.Outcome) {
		outcomes = append(outcomes, out)
	}))
	require.NoError(t, err)
	require.True(t, loop)
	require.Equal(t, []patrol.Outcome{patrol.Turned, patrol.Turned, patrol.Turned, patrol.Turned}, outcomes)
}

// TestHasCycle_Sample separates the exiting sample from a blocked variant.
func TestHasCycle_Sample(t *testing.T) {
	g := loadSample(t)
	loop, err := patrol.HasCycle(g)
	require.NoError(t, err)
	require.False(t, loop)

	blocked, err := g.WithObstacle(grid.Pos(3, 6))
	require.NoError(t, err)
	loop, err = patrol.HasCycle(blocked)
	require.NoError(t, err)
	require.True(t, loop)
}

// TestHasCycleFrom validates its explicit start state.
func TestHasCycleFrom(t *testing.T) {
	g := loadSample(t)

	loop, err := patrol.HasCycleFrom(g, patrol.State{Pos: grid.Pos(0, 0), Dir: grid.Left})
	require.NoError(t, err)
	require.False(t, loop)

	_, err = patrol.HasCycleFrom(g, patrol.State{Pos: grid.Pos(10, 0), Dir: grid.Up})
	require.ErrorIs(t, err, grid.ErrOutOfBounds)

	_, err = patrol.HasCycleFrom(nil, patrol.State{})
	require.ErrorIs(t, err, patrol.ErrGridNil)
}

// TestHasCycleFrom_Facing rejects facings outside the four directions
// instead of reading another cell's state bits.
func TestHasCycleFrom_Facing(t *testing.T) {
	g := mustParse(t, "##.#..\n#..^.#\n...#..\n..###.\n......")
	start := grid.Pos(3, 1)

	tests := []struct {
		name     string
		dir      grid.Direction
		wantLoop bool
		wantErr  error
	}{
		{"Down", grid.Down, false, nil},
		{"DownPlusFour", grid.Down + grid.NumDirections, false, patrol.ErrInvalidState},
		{"Large", grid.Direction(200), false, patrol.ErrInvalidState},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loop, err := patrol.HasCycleFrom(g, patrol.State{Pos: start, Dir: tc.dir})
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantLoop, loop)
		})
	}
}

// TestHasCycle_Terminates checks the W×H×4 bound on dense random grids.
func TestHasCycle_Terminates(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		w, h := 1+rnd.Intn(12), 1+rnd.Intn(12)
		g := randomGrid(t, rnd, w, h, 0.2+0.6*rnd.Float64())

		steps := 0
		_, err := patrol.HasCycle(g, patrol.WithOnStep(func(patrol.State, patrol.Outcome) { steps++ }))
		require.NoError(t, err)
		require.LessOrEqual(t, steps, w*h*grid.NumDirections, "grid:\n%s", g)
	}
}

//----------------------------------------------------------------------------//
// Obstruction search
//----------------------------------------------------------------------------//

// TestLoopObstructions_Sample reproduces the six reference placements.
func TestLoopObstructions_Sample(t *testing.T) {
	g := loadSample(t)

	hits, err := patrol.LoopObstructions(g)
	require.NoError(t, err)
	require.Equal(t, []grid.Position{
		grid.Pos(3, 6),
		grid.Pos(6, 7), grid.Pos(7, 7),
		grid.Pos(1, 8), grid.Pos(3, 8),
		grid.Pos(7, 9),
	}, hits)

	n, err := patrol.CountLoopObstructions(g)
	require.NoError(t, err)
	require.Equal(t, 6, n)
}

// TestLoopObstructions_Deterministic agrees across calls and pool sizes.
func TestLoopObstructions_Deterministic(t *testing.T) {
	g := loadSample(t)
	want, err := patrol.LoopObstructions(g, patrol.WithWorkers(1))
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 2, 7, 32} {
		for i := 0; i < 3; i++ {
			got, err := patrol.LoopObstructions(g, patrol.WithWorkers(workers))
			require.NoError(t, err)
			require.Equal(t, want, got, "workers=%d run=%d", workers, i)
		}
	}
}

// TestLoopObstructions_GridUnchanged never mutates the caller's grid.
func TestLoopObstructions_GridUnchanged(t *testing.T) {
	g := loadSample(t)
	before := g.String()
	_, err := patrol.CountLoopObstructions(g)
	require.NoError(t, err)
	require.Equal(t, before, g.String())
}

// TestLoopObstructions_RouteRestriction confirms that testing only the
// traced route finds exactly what testing every cell finds.
func TestLoopObstructions_RouteRestriction(t *testing.T) {
	g := loadSample(t)
	route, err := patrol.LoopObstructions(g)
	require.NoError(t, err)
	all, err := patrol.LoopObstructionsExhaustive(g)
	require.NoError(t, err)
	require.Equal(t, all, route)

	rnd := rand.New(rand.NewSource(7))
	checked := 0
	for i := 0; i < 300; i++ {
		g := randomGrid(t, rnd, 1+rnd.Intn(7), 1+rnd.Intn(7), 0.25)
		if loop, err := patrol.HasCycle(g); err != nil || loop {
			require.NoError(t, err)
			continue
		}
		route, err := patrol.LoopObstructions(g, patrol.WithWorkers(2))
		require.NoError(t, err)
		all, err := patrol.LoopObstructionsExhaustive(g, patrol.WithWorkers(2))
		require.NoError(t, err)
		require.Equal(t, all, route, "grid:\n%s", g)
		checked++
	}
	require.Positive(t, checked)
}

// TestLoopObstructions_LoopingInput reports why the search cannot start.
func TestLoopObstructions_LoopingInput(t *testing.T) {
	looping, err := loadSample(t).WithObstacle(grid.Pos(3, 6))
	require.NoError(t, err)
	_, err = patrol.CountLoopObstructions(looping)
	require.ErrorIs(t, err, patrol.ErrStepLimit)
}

// TestLoopObstructions_Cancelled honours an already-cancelled context.
func TestLoopObstructions_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := patrol.LoopObstructions(loadSample(t), patrol.WithContext(ctx))
	require.True(t, errors.Is(err, context.Canceled), "err = %v", err)
}

//----------------------------------------------------------------------------//
// Options
//----------------------------------------------------------------------------//

// TestOptions_Invalid rejects negative settings before running.
func TestOptions_Invalid(t *testing.T) {
	g := loadSample(t)

	_, err := patrol.CountLoopObstructions(g, patrol.WithWorkers(-1))
	require.ErrorIs(t, err, patrol.ErrOptionViolation)

	_, err = patrol.CountVisited(g, patrol.WithStepLimit(-5))
	require.ErrorIs(t, err, patrol.ErrOptionViolation)

	_, err = patrol.HasCycle(g, patrol.WithStepLimit(-1))
	require.ErrorIs(t, err, patrol.ErrOptionViolation)
}

// TestOutcome_String names each outcome for logs.
func TestOutcome_String(t *testing.T) {
	require.Equal(t, "moved", patrol.Moved.String())
	require.Equal(t, "turned", patrol.Turned.String())
	require.Equal(t, "exited", patrol.Exited.String())
	require.Equal(t, "(4,6) up", patrol.State{Pos: grid.Pos(4, 6), Dir: grid.Up}.String())
}
