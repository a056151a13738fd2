package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/logging"
)

// errNoInput is returned when neither a flag, argument nor config names an input.
var errNoInput = errors.New("cli: no input file (use --input, an argument, or PATROL_INPUT)")

// inputPath picks the positional argument over the configured input.
func (a *App) inputPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.cfg.Input != "" {
		return a.cfg.Input, nil
	}
	return "", errNoInput
}

// loadGrid reads and parses the input file. The trailing newline is trimmed
// before parsing; the grid format does not allow a blank last row.
func (a *App) loadGrid(args []string) (*grid.Grid, error) {
	path, err := a.inputPath(args)
	if err != nil {
		return nil, err
	}
	began := time.Now()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cli: reading input: %w", err)
	}
	g, err := grid.Parse(strings.TrimRight(string(raw), "\r\n"))
	if err != nil {
		return nil, fmt.Errorf("cli: parsing %s: %w", path, err)
	}

	a.event(a.logger.Debug()).
		Add(logging.Str("input", path), logging.GridSize(g.Width(), g.Height())).
		Add(logging.Count("obstacles", g.Count(grid.Obstacle)), logging.Duration(time.Since(began))).
		Msg("input parsed")
	return g, nil
}
