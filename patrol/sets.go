package patrol

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/patrol/grid"
)

// VisitSet is the set of positions an agent occupied during one run.
// It is a dense bitset over the grid's cells in row-major order.
type VisitSet struct {
	g    *grid.Grid
	bits *bitset.BitSet
}

func newVisitSet(g *grid.Grid) *VisitSet {
	return &VisitSet{g: g, bits: bitset.New(uint(g.Area()))}
}

func (v *VisitSet) add(p grid.Position) {
	v.bits.Set(uint(v.g.Index(p)))
}

// Contains reports whether p was visited. Positions outside the grid never are.
func (v *VisitSet) Contains(p grid.Position) bool {
	if !v.g.InBounds(p) {
		return false
	}
	return v.bits.Test(uint(v.g.Index(p)))
}

// Len returns the number of distinct visited positions.
func (v *VisitSet) Len() int {
	return int(v.bits.Count())
}

// Positions returns the visited positions in row-major order.
func (v *VisitSet) Positions() []grid.Position {
	out := make([]grid.Position, 0, v.Len())
	for i, ok := v.bits.NextSet(0); ok; i, ok = v.bits.NextSet(i + 1) {
		out = append(out, v.g.Coordinate(int(i)))
	}
	return out
}

// stateSet records (position, facing) pairs.
type stateSet struct {
	g    *grid.Grid
	bits *bitset.BitSet
}

func newStateSet(g *grid.Grid) *stateSet {
	return &stateSet{g: g, bits: bitset.New(uint(g.Area() * grid.NumDirections))}
}

// insert adds s and reports whether it was already present.
func (ss *stateSet) insert(s State) (seen bool) {
	i := uint(ss.g.Index(s.Pos)*grid.NumDirections + int(s.Dir))
	if ss.bits.Test(i) {
		return true
	}
	ss.bits.Set(i)
	return false
}
