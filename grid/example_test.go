// File: grid/example_test.go
package grid_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/patrol/grid"
)

// ExampleParse reads a small map and locates the agent.
func ExampleParse() {
	g, err := grid.Parse("..#.\n.>..\n....")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	pos, dir, _ := g.FindAgent()
	fmt.Printf("%dx%d agent at %v facing %v\n", g.Width(), g.Height(), pos, dir)

	// Output:
	// 4x3 agent at (1,1) facing right
}

// ExampleParseError shows the location reported for malformed input.
func ExampleParseError() {
	_, err := grid.Parse("...\n.^.\n.*.")

	var pe *grid.ParseError
	if errors.As(err, &pe) {
		fmt.Println(pe.Line, pe.Column, errors.Is(err, grid.ErrInvalidCharacter))
	}
	fmt.Println(err)

	// Output:
	// 3 2 true
	// grid: invalid tile character '*' at line 3, column 2
}

// ExampleGrid_WithObstacle derives a blocked copy without touching the source.
func ExampleGrid_WithObstacle() {
	g, _ := grid.Parse("...\n.^.")
	blocked, _ := g.WithObstacle(grid.Pos(1, 0))
	fmt.Println(blocked)
	fmt.Println("--")
	fmt.Println(g)

	// Output:
	// .#.
	// .^.
	// --
	// ...
	// .^.
}
