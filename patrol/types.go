package patrol

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/katalvlaran/patrol/grid"
)

// Sentinel errors for patrol runs.
var (
	// ErrGridNil is returned when a nil *grid.Grid is passed.
	ErrGridNil = errors.New("patrol: grid is nil")

	// ErrStepLimit is returned when a run takes more steps than its ceiling.
	// With the default ceiling this only happens when Trace is asked to
	// follow an agent that never leaves.
	ErrStepLimit = errors.New("patrol: step limit exceeded")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("patrol: invalid option supplied")

	// ErrInvalidState is returned when an explicit start state has a facing
	// outside the four directions.
	ErrInvalidState = errors.New("patrol: invalid state")
)

// Outcome classifies a single transition of the state machine.
type Outcome uint8

const (
	// Moved: the agent advanced one cell, keeping its facing.
	Moved Outcome = iota
	// Turned: the cell ahead is an Obstacle; the agent rotated clockwise in place.
	Turned
	// Exited: the cell ahead is outside the grid. Terminal.
	Exited
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Turned:
		return "turned"
	case Exited:
		return "exited"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// State is the agent's position and facing.
type State struct {
	Pos grid.Position
	Dir grid.Direction
}

func (s State) String() string {
	return fmt.Sprintf("%v %v", s.Pos, s.Dir)
}

// Option configures a patrol run via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the parameters of Trace, HasCycle and the obstruction search.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// Workers bounds obstruction-search concurrency. 0 selects GOMAXPROCS.
	Workers int

	// StepLimit caps Step calls per run. 0 selects W×H×4.
	StepLimit int

	// OnStep, if non-nil, observes every transition of Trace and HasCycle,
	// with the state the transition started from. It is not called for the
	// per-candidate runs of the obstruction search.
	OnStep func(from State, out Outcome)

	// Logger, if non-nil, receives debug summaries of each run.
	Logger *bolt.Logger

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a background context, automatic
// worker count and step ceiling, no hook and no logger.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Workers:   0,
		StepLimit: 0,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithWorkers sets the obstruction-search pool size.
//
//	n > 0: use n workers
//	n == 0: runtime.GOMAXPROCS(0)
//	n < 0: invalid → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithStepLimit sets the per-run step ceiling.
//
//	n > 0: at most n calls to Step
//	n == 0: W×H×4
//	n < 0: invalid → ErrOptionViolation
func WithStepLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: StepLimit cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.StepLimit = n
	}
}

// WithOnStep registers a transition hook.
func WithOnStep(fn func(from State, out Outcome)) Option {
	return func(o *Options) {
		o.OnStep = fn
	}
}

// WithLogger routes run summaries to l at debug level.
func WithLogger(l *bolt.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return Options{}, o.err
	}
	return o, nil
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o Options) stepLimit(g *grid.Grid) int {
	if o.StepLimit > 0 {
		return o.StepLimit
	}
	return g.Area() * grid.NumDirections
}
