package grid

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/patrol/point"
)

// Sentinel errors for grid construction and lookup.
var (
	// ErrEmptyGrid indicates input with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrInvalidCharacter indicates a character outside the tile alphabet.
	ErrInvalidCharacter = errors.New("grid: invalid tile character")
	// ErrNoAgent indicates the grid holds no agent tile.
	ErrNoAgent = errors.New("grid: no agent tile found")
	// ErrMultipleAgents indicates more than one agent tile.
	ErrMultipleAgents = errors.New("grid: more than one agent tile")
	// ErrOutOfBounds indicates a position outside the grid.
	ErrOutOfBounds = errors.New("grid: position out of bounds")
)

// Position is a zero-based (X column, Y row) cell coordinate.
type Position = point.Point[int]

// Pos is shorthand for point.New(x, y).
func Pos(x, y int) Position {
	return point.New(x, y)
}

// Direction is the facing of the agent.
type Direction uint8

// Directions in clockwise order; Turn relies on this ordering.
const (
	Up Direction = iota
	Right
	Down
	Left
)

// NumDirections is the number of distinct facings.
const NumDirections = 4

var deltas = [NumDirections]Position{
	Up:    {X: 0, Y: -1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
}

// Turn returns d rotated 90° clockwise.
func (d Direction) Turn() Direction {
	return (d + 1) % NumDirections
}

// Delta returns the unit step one cell ahead in direction d.
func (d Direction) Delta() Position {
	return deltas[d%NumDirections]
}

// Valid reports whether d is one of the four facings.
func (d Direction) Valid() bool {
	return d < NumDirections
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Tile is the content of one grid cell.
type Tile uint8

const (
	// Space is an empty, walkable cell.
	Space Tile = iota
	// Obstacle blocks the agent and makes it turn.
	Obstacle
	agentBase
)

// AgentTile returns the tile marking the agent's start with facing d.
func AgentTile(d Direction) Tile {
	return agentBase + Tile(d%NumDirections)
}

// Agent reports the facing of an agent tile; ok is false for other tiles.
func (t Tile) Agent() (d Direction, ok bool) {
	if t < agentBase || t >= agentBase+NumDirections {
		return 0, false
	}
	return Direction(t - agentBase), true
}

// Walkable reports whether the agent may step onto t. An agent tile counts
// as Space once the agent has left it.
func (t Tile) Walkable() bool {
	return t != Obstacle
}

var agentRunes = [NumDirections]rune{Up: '^', Right: '>', Down: 'v', Left: '<'}

// Rune returns the text-format character for t.
func (t Tile) Rune() rune {
	switch t {
	case Space:
		return '.'
	case Obstacle:
		return '#'
	}
	if d, ok := t.Agent(); ok {
		return agentRunes[d]
	}
	return '?'
}

// TileFromRune maps a text-format character to its Tile.
func TileFromRune(r rune) (Tile, bool) {
	switch r {
	case '.':
		return Space, true
	case '#':
		return Obstacle, true
	case '^':
		return AgentTile(Up), true
	case '>':
		return AgentTile(Right), true
	case 'v':
		return AgentTile(Down), true
	case '<':
		return AgentTile(Left), true
	default:
		return 0, false
	}
}

// ParseError describes where and why Parse rejected its input.
// Line and Column are 1-based; both are zero for whole-input failures.
type ParseError struct {
	Kind   error // one of the package sentinels
	Line   int
	Column int
	Char   rune // offending character, for ErrInvalidCharacter and ErrMultipleAgents
	Got    int  // row length found, for ErrNonRectangular
	Want   int  // row length expected, for ErrNonRectangular
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrInvalidCharacter:
		return fmt.Sprintf("%v %q at line %d, column %d", e.Kind, e.Char, e.Line, e.Column)
	case ErrNonRectangular:
		return fmt.Sprintf("%v: line %d has %d tiles, want %d", e.Kind, e.Line, e.Got, e.Want)
	case ErrMultipleAgents:
		return fmt.Sprintf("%v: second agent %q at line %d, column %d", e.Kind, e.Char, e.Line, e.Column)
	default:
		return e.Kind.Error()
	}
}

// Unwrap exposes the sentinel so errors.Is works on *ParseError.
func (e *ParseError) Unwrap() error {
	return e.Kind
}
