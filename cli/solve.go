package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/logging"
	"github.com/katalvlaran/patrol/patrol"
)

// solveOptions holds options for the solve command.
type solveOptions struct {
	part       int
	jsonOutput bool
}

// solveResult is the JSON shape of solve --json.
type solveResult struct {
	RunID            string `json:"run_id"`
	Input            string `json:"input"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Visited          *int   `json:"visited,omitempty"`
	LoopObstructions *int   `json:"loop_obstructions,omitempty"`
	DurationMs       int64  `json:"duration_ms"`
}

// newSolveCmd creates the solve command.
func (a *App) newSolveCmd() *cobra.Command {
	opts := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve [input]",
		Short: "Print the answers to both parts",
		Long: `Solve parses the input map and prints the part 1 answer (distinct cells
visited) and the part 2 answer (loop-inducing obstruction placements).

Examples:
  patrol solve input/day6.txt
  patrol solve --part 2 --workers 8 input/day6.txt
  PATROL_INPUT=input/day6.txt patrol solve --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.part < 0 || opts.part > 2 {
				return fmt.Errorf("cli: --part must be 1 or 2 (got %d)", opts.part)
			}
			return a.runSolve(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.part, "part", 0, "Solve only part 1 or 2 (default both)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")

	return cmd
}

func (a *App) runSolve(ctx context.Context, args []string, opts *solveOptions) error {
	began := time.Now()
	g, err := a.loadGrid(args)
	if err != nil {
		return err
	}
	path, _ := a.inputPath(args)
	res := solveResult{RunID: a.runID, Input: path, Width: g.Width(), Height: g.Height()}

	if opts.part != 2 {
		n, err := a.visited(ctx, g)
		if err != nil {
			return err
		}
		res.Visited = &n
	}
	if opts.part != 1 {
		n, err := a.loops(ctx, g)
		if err != nil {
			return err
		}
		res.LoopObstructions = &n
	}
	res.DurationMs = time.Since(began).Milliseconds()

	if opts.jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if res.Visited != nil {
		fmt.Fprintf(a.stdout, "part 1: %d\n", *res.Visited)
	}
	if res.LoopObstructions != nil {
		fmt.Fprintf(a.stdout, "part 2: %d\n", *res.LoopObstructions)
	}
	return nil
}

// visited runs part 1 and logs its outcome.
func (a *App) visited(ctx context.Context, g *grid.Grid) (int, error) {
	n, err := patrol.CountVisited(g, a.patrolOptions(ctx)...)
	if err != nil {
		a.reportSimulationError("count-visited", err)
		return 0, err
	}
	a.event(a.logger.Info()).Add(logging.Operation("count-visited"), logging.Count("visited", n)).Msg("part 1 solved")
	return n, nil
}

// loops runs part 2 and logs its outcome.
func (a *App) loops(ctx context.Context, g *grid.Grid) (int, error) {
	n, err := patrol.CountLoopObstructions(g, a.patrolOptions(ctx)...)
	if err != nil {
		a.reportSimulationError("count-loop-obstructions", err)
		return 0, err
	}
	a.event(a.logger.Info()).Add(logging.Operation("count-loop-obstructions"), logging.Count("loops", n)).Msg("part 2 solved")
	return n, nil
}

// reportSimulationError logs a failed run. Hitting the step ceiling means
// the simulator itself misbehaved on a well-formed grid.
func (a *App) reportSimulationError(op string, err error) {
	msg := "simulation failed"
	if errors.Is(err, patrol.ErrStepLimit) {
		msg = "step ceiling exceeded: guard never leaves the map"
	}
	a.event(a.logger.Error()).Add(logging.Operation(op), logging.ErrorField(err)).Msg(msg)
}

// newVisitedCmd creates the visited command (part 1 only).
func (a *App) newVisitedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visited [input]",
		Short: "Print the number of distinct cells the guard visits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGrid(args)
			if err != nil {
				return err
			}
			n, err := a.visited(cmd.Context(), g)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, n)
			return nil
		},
	}
}

// newLoopsCmd creates the loops command (part 2 only).
func (a *App) newLoopsCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "loops [input]",
		Short: "Print how many single obstructions trap the guard in a loop",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGrid(args)
			if err != nil {
				return err
			}
			if !list {
				n, err := a.loops(cmd.Context(), g)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, n)
				return nil
			}

			hits, err := patrol.LoopObstructions(g, a.patrolOptions(cmd.Context())...)
			if err != nil {
				a.reportSimulationError("loop-obstructions", err)
				return err
			}
			for _, p := range hits {
				fmt.Fprintf(a.stdout, "%d,%d\n", p.X, p.Y)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List each obstruction as x,y instead of the count")

	return cmd
}
