package grid

import (
	"strings"
)

// Grid is a rectangular tile map. It is immutable once built.
// Cells are stored row-major: cells[y*width+x].
type Grid struct {
	width, height int
	cells         []Tile
}

// New constructs a Grid from a non-empty, rectangular 2D slice of rows.
// It deep-copies the input. Unlike Parse it does not require an agent tile.
// Returns ErrEmptyGrid if rows has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Complexity: O(W×H) time and memory.
func New(rows [][]Tile) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	cells := make([]Tile, 0, w*h)
	for _, row := range rows {
		cells = append(cells, row...)
	}

	return &Grid{width: w, height: h, cells: cells}, nil
}

// Parse reads the text format described in the package documentation.
// A trailing newline must be trimmed by the caller; a "\r" before each "\n"
// is accepted. All failures are *ParseError.
func Parse(text string) (*Grid, error) {
	if text == "" {
		return nil, &ParseError{Kind: ErrEmptyGrid}
	}
	lines := strings.Split(text, "\n")

	var (
		w      = -1
		cells  []Tile
		agents int
	)
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		n := 0
		for _, r := range line {
			n++
			t, ok := TileFromRune(r)
			if !ok {
				return nil, &ParseError{Kind: ErrInvalidCharacter, Line: i + 1, Column: n, Char: r}
			}
			if _, isAgent := t.Agent(); isAgent {
				agents++
				if agents > 1 {
					return nil, &ParseError{Kind: ErrMultipleAgents, Line: i + 1, Column: n, Char: r}
				}
			}
			cells = append(cells, t)
		}
		if w < 0 {
			if n == 0 {
				return nil, &ParseError{Kind: ErrEmptyGrid, Line: 1}
			}
			w = n
			cells = append(make([]Tile, 0, w*len(lines)), cells...)
		}
		if n != w {
			return nil, &ParseError{Kind: ErrNonRectangular, Line: i + 1, Got: n, Want: w}
		}
	}
	if agents == 0 {
		return nil, &ParseError{Kind: ErrNoAgent}
	}

	return &Grid{width: w, height: len(lines), cells: cells}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Area returns Width×Height.
func (g *Grid) Area() int { return g.width * g.height }

// InBounds reports whether p lies within [0,Width)×[0,Height).
// Complexity: O(1).
func (g *Grid) InBounds(p Position) bool {
	return p.IsValid(Pos(0, 0), Pos(g.width-1, g.height-1))
}

// TileAt returns the tile at p; ok is false outside the grid.
// Complexity: O(1).
func (g *Grid) TileAt(p Position) (t Tile, ok bool) {
	if !g.InBounds(p) {
		return 0, false
	}
	return g.cells[g.Index(p)], true
}

// FindAgent returns the position and facing of the first agent tile in
// row-major order.
// Complexity: O(W×H).
func (g *Grid) FindAgent() (Position, Direction, bool) {
	for i, t := range g.cells {
		if d, ok := t.Agent(); ok {
			return g.Coordinate(i), d, true
		}
	}
	return Position{}, 0, false
}

// Count returns how many cells hold t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// WithObstacle returns a copy of g with an Obstacle at p. g is not modified.
// Returns ErrOutOfBounds if p is outside the grid.
// Complexity: O(W×H).
func (g *Grid) WithObstacle(p Position) (*Grid, error) {
	if !g.InBounds(p) {
		return nil, ErrOutOfBounds
	}
	cp := g.clone()
	cp.cells[cp.Index(p)] = Obstacle
	return cp, nil
}

func (g *Grid) clone() *Grid {
	cells := make([]Tile, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Index maps p to its row-major index: Y*Width + X.
// p must be in bounds.
// Complexity: O(1).
func (g *Grid) Index(p Position) int {
	return p.Y*g.width + p.X
}

// Coordinate converts a row-major index back to a Position.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Position {
	return Pos(idx%g.width, idx/g.width)
}

// Render draws g in the text format, replacing any cell listed in marks
// with its rune. Rows are separated by "\n" with no trailing newline.
func (g *Grid) Render(marks map[Position]rune) string {
	var b strings.Builder
	b.Grow(g.height * (g.width + 1))
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			p := Pos(x, y)
			if r, ok := marks[p]; ok {
				b.WriteRune(r)
				continue
			}
			b.WriteRune(g.cells[g.Index(p)].Rune())
		}
	}
	return b.String()
}

// String renders g back to the text format Parse accepts.
func (g *Grid) String() string {
	return g.Render(nil)
}
