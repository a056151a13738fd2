// Package grid models the fixed-size tile map a patrolling agent walks on.
//
// What:
//
//   - Grid wraps a rectangular, row-major slice of Tile values. It is
//     immutable once built; derived grids (WithObstacle) are fresh copies.
//   - Tile is Space, Obstacle, or an agent tile carrying a facing Direction.
//   - Direction is one of Up, Right, Down, Left and turns clockwise.
//   - Position is a (X column, Y row) point, zero-based, usable as a map key.
//
// Text format:
//
//	.  Space
//	#  Obstacle
//	^  agent facing Up     (also > v < for Right, Down, Left)
//
// One line per row, all lines the same length, exactly one agent. Parse does
// not tolerate a trailing blank line; callers trim the final newline first.
//
// Errors:
//
//   - ErrEmptyGrid: no rows or no columns.
//   - ErrNonRectangular: a row's length differs from the first row's.
//   - ErrInvalidCharacter: a character outside the alphabet above.
//   - ErrNoAgent / ErrMultipleAgents: Parse needs exactly one agent tile.
//   - ErrOutOfBounds: a position outside [0,Width)×[0,Height).
//
// Parse failures are returned as *ParseError, which carries the 1-based line
// and column and unwraps to one of the sentinels for errors.Is.
//
// Complexity:
//
//   - Parse, New, WithObstacle, FindAgent: O(W×H) time and memory.
//   - TileAt, InBounds, Index, Coordinate: O(1).
package grid
