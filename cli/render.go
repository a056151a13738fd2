package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/patrol"
)

// Marks drawn by the render command.
const (
	markRoute       = 'X'
	markObstruction = 'O'
)

// newRenderCmd creates the render command.
func (a *App) newRenderCmd() *cobra.Command {
	var obstructions bool

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Draw the map with the guard's route",
		Long: `Render prints the input map with every visited cell marked 'X'. The guard's
start keeps its arrow. With --obstructions, loop-inducing placements are
marked 'O'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGrid(args)
			if err != nil {
				return err
			}
			opts := a.patrolOptions(cmd.Context())
			start, err := patrol.Start(g)
			if err != nil {
				return err
			}

			visited, err := patrol.Trace(g, opts...)
			if err != nil {
				a.reportSimulationError("trace", err)
				return err
			}
			marks := make(map[grid.Position]rune, visited.Len())
			for _, p := range visited.Positions() {
				if p != start.Pos {
					marks[p] = markRoute
				}
			}

			if obstructions {
				hits, err := patrol.LoopObstructions(g, opts...)
				if err != nil {
					a.reportSimulationError("loop-obstructions", err)
					return err
				}
				for _, p := range hits {
					marks[p] = markObstruction
				}
			}

			fmt.Fprintln(a.stdout, g.Render(marks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&obstructions, "obstructions", false, "Also mark loop-inducing obstruction cells")

	return cmd
}
