package point

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Number is the set of element types a Point may hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Point is an (X, Y) pair. The zero value is the origin.
type Point[T Number] struct {
	X, Y T
}

// New returns the point (x, y).
func New[T Number](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

// Add returns the component-wise sum p + q.
func (p Point[T]) Add(q Point[T]) Point[T] {
	return Point[T]{X: p.X + q.X, Y: p.Y + q.Y}
}

// IsValid reports whether p lies inside the inclusive box [lo, hi].
func (p Point[T]) IsValid(lo, hi Point[T]) bool {
	return p.X >= lo.X && p.Y >= lo.Y && p.X <= hi.X && p.Y <= hi.Y
}

// String formats p as "(x,y)".
func (p Point[T]) String() string {
	return fmt.Sprintf("(%v,%v)", p.X, p.Y)
}
