// Package point provides a small generic 2-D point/vector value type.
//
// What:
//
//   - Point[T] holds an (X, Y) pair of any integer or floating-point type.
//   - Points are comparable values and can be used directly as map keys.
//   - Add steps a point by a vector; IsValid tests membership in an
//     inclusive box, which is how the grid checks its bounds.
//
// Conventions:
//
//   - X is the column and Y is the row; Y grows downward, as in text grids.
//
// Complexity: every operation is O(1).
package point
